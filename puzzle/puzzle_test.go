package puzzle_test

import (
	"testing"

	"github.com/gridword/puzzlesearch/puzzle"
	"github.com/gridword/puzzlesearch/query"
)

func mustCompile(t *testing.T, q query.Query) *puzzle.CompiledPattern {
	t.Helper()
	cp, err := puzzle.Compile(q)
	if err != nil {
		t.Fatalf("Compile(%+v): %v", q, err)
	}
	return cp
}

func matches(cp *puzzle.CompiledPattern, w string) bool {
	return cp.Automaton().Match(w)
}

func TestWheelOfFortuneExcludesRevealedAndAbsentLetters(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.WheelOfFortune, Pattern: "t?e", AbsentLetters: "h"})

	if got, want := cp.WildcardCount, 1; got != want {
		t.Fatalf("WildcardCount = %d, want %d", got, want)
	}
	for _, w := range []string{"tie", "toe"} {
		if !matches(cp, w) {
			t.Errorf("expected %q to match", w)
		}
	}
	for _, w := range []string{"the", "tee"} {
		if matches(cp, w) {
			t.Errorf("expected %q NOT to match (scenario 2)", w)
		}
	}
}

func TestWheelOfFortuneScenario3ExactLiteral(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.WheelOfFortune, Pattern: "is"})
	if !matches(cp, "is") {
		t.Fatal("expected \"is\" to match")
	}
	if matches(cp, "its") {
		t.Error("expected \"its\" NOT to match a literal 2-char pattern")
	}
}

func TestCrosswordScenario4AllowsReuse(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.Crossword, Pattern: "t?e?"})
	if !matches(cp, "tree") {
		t.Error("expected \"tree\" to match Crossword t?e?")
	}
}

func TestWheelOfFortuneScenario5RejectsReuse(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.WheelOfFortune, Pattern: "t?e?"})
	if matches(cp, "tree") {
		t.Error("expected \"tree\" NOT to match WheelOfFortune t?e? (e repeats a revealed letter)")
	}
}

func TestWheelOfFortuneScenario6ApostropheLiteral(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.WheelOfFortune, Pattern: "c??'t"})
	if !matches(cp, "can't") {
		t.Error("expected \"can't\" to match c??'t")
	}
}

func TestWheelOfFortuneScenario7HyphenLiteral(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.WheelOfFortune, Pattern: "n?n-?e??er", AbsentLetters: "t"})
	if !matches(cp, "non-ledger") {
		t.Error("expected \"non-ledger\" to match n?n-?e??er")
	}
}

func TestCryptogramScenario8RejectsSelfMap(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.Cryptogram, Pattern: "TBC"})
	if got, want := cp.WildcardCount, 3; got != want {
		t.Fatalf("WildcardCount = %d, want %d", got, want)
	}
	if !matches(cp, "and") {
		t.Error("expected \"and\" to match TBC")
	}
	if matches(cp, "the") {
		t.Error("expected \"the\" NOT to match TBC: T maps to t, its own lowercase")
	}
}

func TestCryptogramScenario9RepeatedVariable(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.Cryptogram, Pattern: "ABCC"})
	if !matches(cp, "will") {
		t.Error("expected \"will\" to match ABCC")
	}
	if len(cp.CryptogramVars) != 4 {
		t.Fatalf("CryptogramVars has %d entries, want 4", len(cp.CryptogramVars))
	}
}

func TestCryptogramScenario10MixedCase(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.Cryptogram, Pattern: "XBch"})
	if !matches(cp, "such") {
		t.Error("expected \"such\" to match XBch")
	}
}

func TestAutomatonRejectsWrongLengthAndDisallowedBytes(t *testing.T) {
	cp := mustCompile(t, query.Query{Mode: query.WheelOfFortune, Pattern: "t?e", AbsentLetters: "h"})
	dfa := cp.Automaton()

	cases := map[string]bool{
		"tie":  true,
		"toe":  true,
		"the":  false, // h excluded
		"tee":  false, // e excluded from wildcard position
		"ti":   false, // too short
		"ties": false, // too long
	}
	for w, want := range cases {
		if got := dfa.Match(w); got != want {
			t.Errorf("dfa.Match(%q) = %v, want %v", w, got, want)
		}
	}
}
