// Package corpus parses raw n-gram frequency shards into normalized
// (word, count) pairs and aggregates them into a frequency table.
package corpus

import (
	"fmt"
	"strconv"
	"strings"
)

// posSuffixes are the part-of-speech tags recognized by the line parser.
// _NUM is deliberately absent: numeric tokens contain digits and fail the
// head-token alphabet filter, so they are dropped rather than normalized.
var posSuffixes = []string{
	"_NOUN", "_VERB", "_ADJ", "_ADV", "_ADP", "_PRON", "_DET", "_CONJ", "_PRT",
}

// stripPartOfSpeech removes exactly one trailing part-of-speech suffix from
// token, if present. Tokens without a recognized suffix are returned
// unchanged, underscores and all.
func stripPartOfSpeech(token string) string {
	for _, suf := range posSuffixes {
		if strings.HasSuffix(token, suf) {
			return token[:len(token)-len(suf)]
		}
	}
	return token
}

// isHeadTokenChar reports whether r is allowed in the raw head token, prior
// to part-of-speech stripping.
func isHeadTokenChar(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r == '\'' || r == '_' || r == '-':
		return true
	}
	return false
}

// Record is one parsed shard line: a normalized word and its summed count
// across all year,match,volume triples on the line.
type Record struct {
	Word  string
	Count uint64
}

// ParseLine parses a single whitespace-delimited corpus line. ok is false
// when the line should be silently dropped (empty, disallowed head-token
// characters, or a residual underscore after POS stripping).
// err is non-nil only for malformed count fields, which are never silently
// tolerated: the dataset is trusted, and corruption is a hard failure.
func ParseLine(line string) (rec Record, ok bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Record{}, false, nil
	}

	head := fields[0]
	for _, r := range head {
		if !isHeadTokenChar(r) {
			return Record{}, false, nil
		}
	}

	if strings.ContainsRune(head, '_') {
		head = stripPartOfSpeech(head)
		if strings.ContainsRune(head, '_') {
			return Record{}, false, nil
		}
	}

	word := strings.ToLower(head)
	if word == "" {
		return Record{}, false, nil
	}

	var total uint64
	for _, tok := range fields[1:] {
		parts := strings.Split(tok, ",")
		if len(parts) < 2 {
			return Record{}, false, fmt.Errorf("corpus: malformed triple %q: want year,match,volume", tok)
		}
		n, perr := strconv.ParseUint(parts[1], 10, 64)
		if perr != nil {
			return Record{}, false, fmt.Errorf("corpus: malformed match count %q: %w", parts[1], perr)
		}
		total += n
	}

	return Record{Word: word, Count: total}, true, nil
}
