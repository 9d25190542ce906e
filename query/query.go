// Package query parses a form-encoded query string and enforces its
// surface rules (mode, pattern character classes, length) before any
// pattern compilation happens.
package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Mode is the puzzle discipline requested by a query.
type Mode int

const (
	// ModeUnknown is the zero value and never a valid decoded Mode.
	ModeUnknown Mode = iota
	WheelOfFortune
	Crossword
	Cryptogram
)

func (m Mode) String() string {
	switch m {
	case WheelOfFortune:
		return "WheelOfFortune"
	case Crossword:
		return "Crossword"
	case Cryptogram:
		return "Cryptogram"
	default:
		return "Unknown"
	}
}

// ErrValidation is wrapped by every user-facing validation failure, so
// callers can distinguish it from I/O or internal errors with errors.Is.
var ErrValidation = errors.New("query: validation failed")

// MaxPatternLength is the hard cap on pattern length.
const MaxPatternLength = 20

// Query is the decoded, validated request. Internal invariant: Pattern and
// AbsentLetters satisfy the mode's character-class rules below.
type Query struct {
	Mode          Mode
	Pattern       string
	AbsentLetters string
}

func parseMode(s string) (Mode, error) {
	switch s {
	case "WheelOfFortune":
		return WheelOfFortune, nil
	case "Crossword":
		return Crossword, nil
	case "Cryptogram":
		return Cryptogram, nil
	default:
		return ModeUnknown, fmt.Errorf("%w: unrecognized mode %q", ErrValidation, s)
	}
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// validatePattern enforces the per-mode character-class rule: letters,
// apostrophe, and hyphen are always allowed; `?` is allowed everywhere
// except Cryptogram, which instead uses uppercase letters as variables.
func validatePattern(mode Mode, pattern string) error {
	if len(pattern) > MaxPatternLength {
		return fmt.Errorf("%w: pattern length %d exceeds maximum %d", ErrValidation, len(pattern), MaxPatternLength)
	}
	for _, r := range pattern {
		switch {
		case isASCIILetter(r), r == '\'', r == '-':
			continue
		case r == '?' && mode != Cryptogram:
			continue
		default:
			return fmt.Errorf("%w: pattern contains disallowed character %q for mode %s", ErrValidation, r, mode)
		}
	}
	return nil
}

func validateAbsentLetters(s string) error {
	for _, r := range s {
		if !isASCIILetter(r) {
			return fmt.Errorf("%w: absent_letters contains disallowed character %q", ErrValidation, r)
		}
	}
	return nil
}

// Decode parses raw as a form-encoded query string (k=v&k=v..., last value
// wins per net/url.ParseQuery semantics) and validates it. mode and pattern
// are required; absent_letters defaults to "".
func Decode(raw string) (Query, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return Query{}, fmt.Errorf("%w: malformed query string: %v", ErrValidation, err)
	}

	modeStr := lastOrEmpty(values["mode"])
	if modeStr == "" {
		return Query{}, fmt.Errorf("%w: missing required key \"mode\"", ErrValidation)
	}
	mode, err := parseMode(modeStr)
	if err != nil {
		return Query{}, err
	}

	patternValues, hasPattern := values["pattern"]
	if !hasPattern {
		return Query{}, fmt.Errorf("%w: missing required key \"pattern\"", ErrValidation)
	}
	pattern := lastOrEmpty(patternValues)
	if err := validatePattern(mode, pattern); err != nil {
		return Query{}, err
	}

	absent := strings.ToLower(lastOrEmpty(values["absent_letters"]))
	if err := validateAbsentLetters(absent); err != nil {
		return Query{}, err
	}

	return Query{Mode: mode, Pattern: pattern, AbsentLetters: absent}, nil
}

func lastOrEmpty(vs []string) string {
	if len(vs) == 0 {
		return ""
	}
	return vs[len(vs)-1]
}
