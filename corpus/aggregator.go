package corpus

// Aggregator accumulates per-word frequency totals across shards. Addition
// is associative and commutative, so shard processing order never matters.
// Not safe for concurrent use; the preprocessor is single-threaded by
// design.
type Aggregator struct {
	totals map[string]uint64
}

// NewAggregator returns an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{totals: make(map[string]uint64)}
}

// Add accumulates rec's count into the running total for rec.Word.
func (a *Aggregator) Add(rec Record) {
	a.totals[rec.Word] += rec.Count
}

// Len returns the number of distinct words seen so far.
func (a *Aggregator) Len() int {
	return len(a.totals)
}

// Totals returns the live underlying map. Callers must not mutate it.
func (a *Aggregator) Totals() map[string]uint64 {
	return a.totals
}
