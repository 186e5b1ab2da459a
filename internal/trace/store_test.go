package trace

import (
	"testing"
)

func TestAddAssignsFields(t *testing.T) {
	s := NewStore(DefaultStoreConfig())

	tr := s.Add("Trust the process.", true, map[string]string{"spread": "celtic"})
	if tr.ID == "" {
		t.Fatal("expected non-empty trace ID")
	}
	if tr.Complexity <= 0 {
		t.Fatalf("expected positive complexity, got %f", tr.Complexity)
	}
	if !tr.Accepted {
		t.Fatal("expected accepted flag to be set")
	}
	if tr.Metadata["spread"] != "celtic" {
		t.Fatalf("metadata not stored: %v", tr.Metadata)
	}
	if tr.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}
}

func TestAddCopiesMetadata(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	meta := map[string]string{"k": "v"}
	tr := s.Add("text", true, meta)

	meta["k"] = "mutated"
	if s.Traces()[0].Metadata["k"] != "v" {
		t.Fatal("store must not share the caller's metadata map")
	}
	_ = tr
}

func TestTracesOrderedAndCopied(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	s.Add("first", true, nil)
	s.Add("second", false, nil)
	s.Add("third", true, nil)

	got := s.Traces()
	if len(got) != 3 {
		t.Fatalf("expected 3 traces, got %d", len(got))
	}
	if got[0].Text != "first" || got[2].Text != "third" {
		t.Fatalf("traces out of insertion order: %v", got)
	}

	// Mutating the returned slice must not affect the store.
	got[0].Text = "mutated"
	if s.Traces()[0].Text != "first" {
		t.Fatal("Traces must return a copy")
	}
}

func TestFindSimilarOrdering(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	near := "Trust your intuition when the path ahead seems unclear and let patience guide each step."
	far := "Quarterly revenue grew eight percent driven by strong demand in the logistics segment."
	s.Add(far, true, nil)
	s.Add(near, true, nil)

	query := "Trust your intuition when the road ahead seems unclear and let patience guide every step."
	got := s.FindSimilar(query, 2)
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].Trace.Text != near {
		t.Fatalf("nearest trace should come first, got %q", got[0].Trace.Text)
	}
	if got[0].Distance > got[1].Distance {
		t.Fatal("results not sorted by ascending distance")
	}
}

func TestFindSimilarLimitsK(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	s.Add("one interpretation about change", true, nil)
	s.Add("another interpretation about stillness", true, nil)
	s.Add("a third interpretation about growth", true, nil)

	if got := s.FindSimilar("interpretation", 2); len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got := s.FindSimilar("interpretation", 0); got != nil {
		t.Fatalf("expected nil for k=0, got %v", got)
	}
}

func TestFindSimilarDeduplicatesText(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	s.Add("the same interpretation text", true, nil)
	s.Add("the same interpretation text", false, nil)

	got := s.FindSimilar("the same interpretation text", 5)
	if len(got) != 1 {
		t.Fatalf("duplicate texts should collapse to one result, got %d", len(got))
	}
}

func TestFindSimilarAccepted(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	s.Add("rejected variant of the reading", false, nil)
	s.Add("accepted variant of the reading", true, nil)

	got := s.FindSimilarAccepted("variant of the reading", 5)
	if len(got) != 1 {
		t.Fatalf("expected 1 accepted result, got %d", len(got))
	}
	if !got[0].Trace.Accepted {
		t.Fatal("result should be an accepted trace")
	}
}

func TestStats(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	s.Add("accepted one", true, nil)
	s.Add("accepted two", true, nil)
	s.Add("rejected one", false, nil)

	stats := s.Stats()
	if stats.Total != 3 || stats.Accepted != 2 || stats.Rejected != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MeanComplexity <= 0 {
		t.Fatalf("expected positive mean complexity, got %f", stats.MeanComplexity)
	}
}

func TestClearAndRestore(t *testing.T) {
	s := NewStore(DefaultStoreConfig())
	s.Add("something", true, nil)

	saved := s.Traces()
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("expected empty store after clear, got %d", s.Len())
	}

	s.Restore(saved)
	if s.Len() != 1 || s.Traces()[0].Text != "something" {
		t.Fatalf("restore did not reproduce the sequence: %v", s.Traces())
	}
}
