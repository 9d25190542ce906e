// Package puzzle compiles a validated query.Query into the per-position
// character classes both retrieval plans run against, applying the
// mode-dependent wildcard-exclusion and bijection rules for WheelOfFortune,
// Crossword, and Cryptogram puzzles.
package puzzle

import (
	"fmt"
	"strings"

	"github.com/gridword/puzzlesearch/internal/wordauto"
	"github.com/gridword/puzzlesearch/query"
)

// PositionClass is the set of lowercase letters (plus, at a literal
// position, exactly one letter/apostrophe/hyphen) allowed at one pattern
// position.
type PositionClass struct {
	// Letters holds every byte accepted at this position.
	Letters []byte
}

// CryptogramVar records that pattern position Index carries uppercase
// variable Var, for the residual bijection check the search package applies
// after matching.
type CryptogramVar struct {
	Var   byte
	Index int
}

// CompiledPattern is everything the retrieval planner and matcher need to
// run either plan against a puzzle pattern.
type CompiledPattern struct {
	// Classes is one PositionClass per pattern rune, in order. Every plan
	// drives internal/wordauto directly off this slice.
	Classes []PositionClass
	// WildcardCount is the number of `?` (WheelOfFortune / Crossword) or
	// uppercase variables (Cryptogram) in the pattern; the retrieval
	// planner uses it to choose a plan.
	WildcardCount int
	// CryptogramVars is non-empty only in Cryptogram mode: every uppercase
	// position, for the residual bijection check applied after matching.
	CryptogramVars []CryptogramVar
}

const lowerAlphabet = "abcdefghijklmnopqrstuvwxyz"

// classExcluding returns the PositionClass of all lowercase letters not in
// excluded.
func classExcluding(excluded map[byte]bool) PositionClass {
	letters := make([]byte, 0, 26)
	for i := 0; i < len(lowerAlphabet); i++ {
		b := lowerAlphabet[i]
		if !excluded[b] {
			letters = append(letters, b)
		}
	}
	return PositionClass{Letters: letters}
}

func literalClass(b byte) PositionClass {
	return PositionClass{Letters: []byte{b}}
}

func toSet(s string) map[byte]bool {
	set := make(map[byte]bool, len(s))
	for i := 0; i < len(s); i++ {
		set[s[i]] = true
	}
	return set
}

// Compile builds a CompiledPattern from q. q is assumed already validated
// by query.Decode and is not re-checked: an unrecognized mode panics as an
// internal invariant failure, and any other pattern byte is compiled as a
// literal position.
func Compile(q query.Query) (*CompiledPattern, error) {
	switch q.Mode {
	case query.WheelOfFortune:
		return compileWheelOfFortune(q), nil
	case query.Crossword:
		return compileCrossword(q), nil
	case query.Cryptogram:
		return compileCryptogram(q), nil
	default:
		panic(fmt.Sprintf("puzzle: internal: unvalidated mode %v", q.Mode))
	}
}

func compileWheelOfFortune(q query.Query) *CompiledPattern {
	excluded := toSet(q.AbsentLetters)
	pattern := strings.ToLower(q.Pattern)
	for _, r := range pattern {
		if r != '?' {
			excluded[byte(r)] = true
		}
	}
	wildcard := classExcluding(excluded)

	classes := make([]PositionClass, 0, len(pattern))
	wildcards := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '?' {
			classes = append(classes, wildcard)
			wildcards++
			continue
		}
		classes = append(classes, literalClass(pattern[i]))
	}
	return finishCompile(classes, wildcards, nil)
}

func compileCrossword(q query.Query) *CompiledPattern {
	// The Crossword wildcard class is [a-z] unconditionally; absent_letters
	// has no effect here. Matches the reference engine's behavior
	// deliberately, not by oversight.
	wildcard := classExcluding(nil)
	pattern := strings.ToLower(q.Pattern)

	classes := make([]PositionClass, 0, len(pattern))
	wildcards := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '?' {
			classes = append(classes, wildcard)
			wildcards++
			continue
		}
		classes = append(classes, literalClass(pattern[i]))
	}
	return finishCompile(classes, wildcards, nil)
}

func compileCryptogram(q query.Query) *CompiledPattern {
	known := toSet(q.AbsentLetters)
	for _, r := range q.Pattern {
		if r >= 'a' && r <= 'z' {
			known[byte(r)] = true
		}
	}

	classes := make([]PositionClass, 0, len(q.Pattern))
	var vars []CryptogramVar
	for i := 0; i < len(q.Pattern); i++ {
		r := q.Pattern[i]
		if r >= 'A' && r <= 'Z' {
			lower := r - 'A' + 'a'
			excluded := make(map[byte]bool, len(known)+1)
			for k := range known {
				excluded[k] = true
			}
			excluded[lower] = true
			classes = append(classes, classExcluding(excluded))
			vars = append(vars, CryptogramVar{Var: r, Index: i})
			continue
		}
		classes = append(classes, literalClass(r))
	}
	return finishCompile(classes, len(vars), vars)
}

func finishCompile(classes []PositionClass, wildcards int, vars []CryptogramVar) *CompiledPattern {
	return &CompiledPattern{
		Classes:        classes,
		WildcardCount:  wildcards,
		CryptogramVars: vars,
	}
}

// Automaton builds the internal/wordauto DFA both retrieval plans run
// against, directly off Classes (see internal/wordauto's
// package doc for why).
func (cp *CompiledPattern) Automaton() *wordauto.DFA {
	sets := make([]wordauto.ClassSet, len(cp.Classes))
	for i, c := range cp.Classes {
		var set wordauto.ClassSet
		for _, b := range c.Letters {
			set[b] = true
		}
		sets[i] = set
	}
	return wordauto.New(sets)
}
