// Package search implements the retrieval planner, matcher, post-filter,
// and combination search. It ties dict, puzzle, and internal/wordauto
// together into the online query path.
package search

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/gridword/puzzlesearch/config"
	"github.com/gridword/puzzlesearch/dict"
	"github.com/gridword/puzzlesearch/internal/wordauto"
	"github.com/gridword/puzzlesearch/puzzle"
)

// Plan is the retrieval strategy chosen by ChoosePlan.
type Plan int

const (
	PlanFST Plan = iota
	PlanLinearScan
)

func (p Plan) String() string {
	if p == PlanFST {
		return "FST"
	}
	return "LinearScan"
}

// Result is one ranked match.
type Result struct {
	Word  string `json:"word"`
	Count uint64 `json:"frequency"`
}

// InternalError wraps an internal invariant violation: a structural failure
// in code the engine built itself, never a user input problem. Recovered at
// the CLI/HTTP boundary rather than crashing the process.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return "search: internal error: " + e.Err.Error() }
func (e *InternalError) Unwrap() error { return e.Err }

// ChoosePlan picks FST-DFA traversal when the wildcard count is below the
// configured threshold, otherwise a linear scan of the text list.
func ChoosePlan(cp *puzzle.CompiledPattern, threshold int) Plan {
	if cp.WildcardCount < threshold {
		return PlanFST
	}
	return PlanLinearScan
}

// Engine runs queries against an open Dictionary.
type Engine struct {
	Dict      *dict.Dictionary
	Threshold int
}

// NewEngine returns an Engine reading cfg's threshold.
func NewEngine(d *dict.Dictionary, cfg config.Config) *Engine {
	threshold := cfg.Search.FSTThreshold
	if threshold <= 0 {
		threshold = config.DefaultFSTThreshold
	}
	return &Engine{Dict: d, Threshold: threshold}
}

// Search runs cp against whichever plan ChoosePlan selects, applies the
// cryptogram post-filter when cp has variables, and returns results ranked
// by count descending, word ascending.
func (e *Engine) Search(cp *puzzle.CompiledPattern) ([]Result, error) {
	return e.SearchWithPlan(cp, ChoosePlan(cp, e.Threshold))
}

// SearchWithPlan runs cp against a caller-chosen plan instead of letting
// ChoosePlan decide. Exposed primarily so callers (and tests) can verify
// that both plans agree on the same pattern; production callers should use
// Search.
func (e *Engine) SearchWithPlan(cp *puzzle.CompiledPattern, plan Plan) ([]Result, error) {
	var results []Result
	var err error
	automaton := cp.Automaton()
	switch plan {
	case PlanFST:
		results = e.searchFST(automaton)
	case PlanLinearScan:
		results, err = e.searchLinearScan(automaton)
	default:
		panic(fmt.Sprintf("search: internal: unknown plan %v", plan))
	}
	if err != nil {
		return nil, err
	}

	if len(cp.CryptogramVars) > 0 {
		results = applyCryptogramFilter(results, cp.CryptogramVars)
	}

	rank(results)
	return results, nil
}

// searchFST composes the FST node graph with automaton, collecting every
// accepted (word, count) pair without ever touching the text list.
func (e *Engine) searchFST(automaton *wordauto.DFA) []Result {
	var out []Result
	e.Dict.FST.Walk(automaton, func(word string, count uint64) bool {
		out = append(out, Result{Word: word, Count: count})
		return true
	})
	return out
}

// searchLinearScan scans the text list line by line, testing automaton
// against the leading token. Used when the wildcard count is too high for
// FST traversal to prune effectively.
func (e *Engine) searchLinearScan(automaton *wordauto.DFA) ([]Result, error) {
	f, err := os.Open(e.Dict.TextPath)
	if err != nil {
		return nil, fmt.Errorf("search: open text list: %w", err)
	}
	defer f.Close()

	var out []Result
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1<<16), 1<<20)
	for sc.Scan() {
		line := sc.Text()
		sp := strings.IndexByte(line, ' ')
		if sp < 0 {
			continue
		}
		word, countStr := line[:sp], line[sp+1:]
		if !automaton.Match(word) {
			continue
		}
		count, perr := strconv.ParseUint(countStr, 10, 64)
		if perr != nil {
			return nil, &InternalError{Err: fmt.Errorf("malformed count in text list line %q: %w", line, perr)}
		}
		out = append(out, Result{Word: word, Count: count})
	}
	if serr := sc.Err(); serr != nil {
		return nil, fmt.Errorf("search: scan text list: %w", serr)
	}
	return out, nil
}

// applyCryptogramFilter is the residual bijection check: for every returned
// word, each uppercase pattern variable must map to the same decoded
// letter at every position it appears. Matches where the mapping holds are
// kept.
func applyCryptogramFilter(results []Result, vars []puzzle.CryptogramVar) []Result {
	out := results[:0]
	for _, r := range results {
		if isValidCryptogramMapping(r.Word, vars) {
			out = append(out, r)
		}
	}
	return out
}

func isValidCryptogramMapping(word string, vars []puzzle.CryptogramVar) bool {
	mapping := make(map[byte]byte, len(vars))
	for _, v := range vars {
		if v.Index >= len(word) {
			return false
		}
		decoded := word[v.Index]
		if existing, ok := mapping[v.Var]; ok {
			if existing != decoded {
				return false
			}
			continue
		}
		mapping[v.Var] = decoded
	}
	return true
}

// rank sorts results by count descending, word ascending. Both plans are
// re-sorted: neither's natural emission order (key-ascending for FST, file
// order for linear scan) is the ranked order.
func rank(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].Count != results[j].Count {
			return results[i].Count > results[j].Count
		}
		return results[i].Word < results[j].Word
	})
}

// Combination enumerates dictionary words where position i is drawn from
// sets[i], given ordered per-position character sets. Always uses the FST
// plan; there is no wildcard count to threshold against since there is no
// puzzle mode or query behind this search.
func (e *Engine) Combination(sets []puzzle.PositionClass) ([]Result, error) {
	automaton := (&puzzle.CompiledPattern{Classes: sets}).Automaton()
	results := e.searchFST(automaton)
	rank(results)
	return results, nil
}
