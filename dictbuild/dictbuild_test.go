package dictbuild_test

import (
	"path/filepath"
	"testing"

	"github.com/gridword/puzzlesearch/dictbuild"
	"github.com/gridword/puzzlesearch/fstmap"
	"github.com/gridword/puzzlesearch/internal/wordauto"
)

func TestSelectAppliesCutoffAndSortsAscending(t *testing.T) {
	totals := map[string]uint64{
		"the":   1_500_000,
		"rare":  9_999,
		"and":   900_000,
		"zzyzx": 10_000,
	}
	got := dictbuild.Select(totals, dictbuild.DefaultCutoff)

	if len(got) != 3 {
		t.Fatalf("Select returned %d entries, want 3: %v", len(got), got)
	}
	words := []string{got[0].Word, got[1].Word, got[2].Word}
	want := []string{"and", "the", "zzyzx"}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("Select()[%d] = %q, want %q (byte order)", i, words[i], want[i])
		}
	}
}

func TestWriteProducesRoundTrippableArtifacts(t *testing.T) {
	dir := t.TempDir()
	textPath := filepath.Join(dir, "word_frequency.txt")
	fstPath := filepath.Join(dir, "word_frequency.fst")

	totals := map[string]uint64{
		"the":  1_500_000,
		"and":  900_000,
		"rare": 500,
	}

	stats, err := dictbuild.Write(totals, dictbuild.DefaultCutoff, textPath, fstPath)
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if stats.TotalWords != 3 || stats.KeptWords != 2 {
		t.Errorf("Stats = %+v, want TotalWords=3 KeptWords=2", stats)
	}

	textEntries, err := dictbuild.ParseTextList(textPath)
	if err != nil {
		t.Fatalf("ParseTextList: %v", err)
	}
	if len(textEntries) != 2 {
		t.Fatalf("text list has %d entries, want 2", len(textEntries))
	}

	m, err := fstmap.Open(fstPath)
	if err != nil {
		t.Fatalf("fstmap.Open: %v", err)
	}
	defer m.Close()

	for word, count := range textEntries {
		got, ok := m.Lookup(word)
		if !ok {
			t.Errorf("FST missing word %q present in text list", word)
			continue
		}
		if got != count {
			t.Errorf("FST count for %q = %d, text list has %d", word, got, count)
		}
	}

	var any wordauto.ClassSet
	for c := byte('a'); c <= 'z'; c++ {
		any[c] = true
	}
	classes := make([]wordauto.ClassSet, 3)
	for i := range classes {
		classes[i] = any
	}
	dfa := wordauto.New(classes)

	seen := map[string]bool{}
	m.Walk(dfa, func(word string, count uint64) bool {
		seen[word] = true
		if textEntries[word] != count {
			t.Errorf("Walk count for %q = %d, text list has %d", word, count, textEntries[word])
		}
		return true
	})
	for word := range textEntries {
		if len(word) == 3 && !seen[word] {
			t.Errorf("FST walk missed text-list word %q", word)
		}
	}
	if _, rejected := textEntries["rare"]; rejected {
		t.Error("cutoff should have excluded \"rare\" from the text list")
	}
}
