package wordauto

import "testing"

func classFromString(s string) ClassSet {
	var c ClassSet
	for i := 0; i < len(s); i++ {
		c[s[i]] = true
	}
	return c
}

func run(d *DFA, word string) bool {
	state := d.Start()
	for i := 0; i < len(word); i++ {
		state = d.Step(state, word[i])
		if state == DeadState {
			return false
		}
	}
	return d.IsAccepting(state)
}

func TestDFAMatchesFixedLengthPattern(t *testing.T) {
	// pattern "t?e" with absent letter h -> t [a-z]-{h,t,e} e
	classes := []ClassSet{
		Literal('t'),
		classFromString("abcdfgijklmnopqrsuvwxyz"), // no h, t, e
		Literal('e'),
	}
	d := New(classes)

	for word, want := range map[string]bool{
		"tie":  true,
		"toe":  true,
		"the":  false, // h excluded
		"tee":  false, // e excluded from wildcard position
		"ti":   false, // too short
		"ties": false, // too long
	} {
		if got := run(d, word); got != want {
			t.Errorf("run(%q) = %v, want %v", word, got, want)
		}
	}
}

func TestDFARejectsWrongLength(t *testing.T) {
	d := New([]ClassSet{Literal('a'), Literal('b')})
	if run(d, "a") {
		t.Error("short input should not match")
	}
	if run(d, "abc") {
		t.Error("long input should not match")
	}
	if !run(d, "ab") {
		t.Error("exact input should match")
	}
}
