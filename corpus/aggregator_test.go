package corpus

import "testing"

func TestAggregatorAccumulatesAcrossShards(t *testing.T) {
	a := NewAggregator()
	a.Add(Record{Word: "the", Count: 10})
	a.Add(Record{Word: "the", Count: 5})
	a.Add(Record{Word: "of", Count: 3})

	totals := a.Totals()
	if totals["the"] != 15 {
		t.Errorf("totals[the] = %d, want 15", totals["the"])
	}
	if totals["of"] != 3 {
		t.Errorf("totals[of] = %d, want 3", totals["of"])
	}
	if a.Len() != 2 {
		t.Errorf("Len() = %d, want 2", a.Len())
	}
}

func TestAggregatorOrderIndependent(t *testing.T) {
	a1 := NewAggregator()
	a1.Add(Record{Word: "a", Count: 1})
	a1.Add(Record{Word: "b", Count: 2})

	a2 := NewAggregator()
	a2.Add(Record{Word: "b", Count: 2})
	a2.Add(Record{Word: "a", Count: 1})

	if a1.Totals()["a"] != a2.Totals()["a"] || a1.Totals()["b"] != a2.Totals()["b"] {
		t.Fatal("aggregation must be order independent")
	}
}
