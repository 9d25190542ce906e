// Package dictbuild takes the aggregator's in-memory frequency table and
// emits the two persisted dictionary representations the query engine
// reads: a human-readable text list and a sorted FST map, with identical
// key sets.
package dictbuild

import (
	"bufio"
	"fmt"
	"os"
	"sort"

	"github.com/gridword/puzzlesearch/fstmap"
)

// DefaultCutoff is the minimum corpus frequency for a word to enter the
// persisted dictionary.
const DefaultCutoff = 10_000

// Entry is one word's surviving frequency, kept alongside the aggregator's
// raw totals for reporting.
type Entry struct {
	Word  string
	Count uint64
}

// Select filters totals to entries with count >= cutoff and returns them
// sorted by word in ascending byte order — the order the FST builder
// requires. WriteTextList re-sorts its own copy before writing.
func Select(totals map[string]uint64, cutoff uint64) []Entry {
	entries := make([]Entry, 0, len(totals))
	for w, c := range totals {
		if c >= cutoff {
			entries = append(entries, Entry{Word: w, Count: c})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Word < entries[j].Word })
	return entries
}

// WriteTextList writes entries to path as newline-terminated "word count"
// records. The repository writes in (count desc, word asc) order for
// readability, but readers must not rely on this order.
func WriteTextList(path string, entries []Entry) error {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Count != sorted[j].Count {
			return sorted[i].Count > sorted[j].Count
		}
		return sorted[i].Word < sorted[j].Word
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dictbuild: create %q: %w", path, err)
	}
	defer f.Close()

	bw := bufio.NewWriterSize(f, 4<<20)
	for _, e := range sorted {
		if _, err := fmt.Fprintf(bw, "%s %d\n", e.Word, e.Count); err != nil {
			return fmt.Errorf("dictbuild: write %q: %w", path, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dictbuild: flush %q: %w", path, err)
	}
	return f.Sync()
}

// WriteFSTMap streams entries (already word-ascending, per Select) into an
// fstmap.Builder and finalizes it to path.
func WriteFSTMap(path string, entries []Entry) error {
	b := fstmap.NewBuilder()
	for _, e := range entries {
		b.Insert(e.Word, e.Count)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("dictbuild: create %q: %w", path, err)
	}
	defer f.Close()

	if err := b.Finalize(f); err != nil {
		return fmt.Errorf("dictbuild: finalize %q: %w", path, err)
	}
	return f.Sync()
}

// Stats summarizes one Write call, used by dictgen's post-write log line.
// Write fills TotalWords and KeptWords only; DroppedLines and TotalLines
// are left zero, since Write sees only the aggregated totals.
type Stats struct {
	TotalWords   int
	KeptWords    int
	DroppedLines int
	TotalLines   int
}

// Write selects entries at or above cutoff from totals and persists both
// artifacts. textPath/fstPath are the target word_frequency.txt /
// word_frequency.fst locations.
func Write(totals map[string]uint64, cutoff uint64, textPath, fstPath string) (Stats, error) {
	entries := Select(totals, cutoff)
	stats := Stats{TotalWords: len(totals), KeptWords: len(entries)}

	if err := WriteTextList(textPath, entries); err != nil {
		return stats, err
	}
	if err := WriteFSTMap(fstPath, entries); err != nil {
		return stats, err
	}
	return stats, nil
}

// ParseTextList reads a word_frequency.txt file back into a map, used by
// the round-trip property test: every word in the FST appears in the text
// list with the same count, and vice versa.
func ParseTextList(path string) (map[string]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictbuild: open %q: %w", path, err)
	}
	defer f.Close()

	out := make(map[string]uint64)
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Text()
		if line == "" {
			continue
		}
		var word string
		var count uint64
		if _, err := fmt.Sscanf(line, "%s %d", &word, &count); err != nil {
			return nil, fmt.Errorf("dictbuild: malformed line %q: %w", line, err)
		}
		out[word] = count
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
