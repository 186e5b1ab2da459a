package vacuum

import "testing"

func TestObserveAccumulates(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	tr.Observe(100, true)
	tr.Observe(50, false)
	tr.Observe(25, false)

	s := tr.State()
	if s.TraceCount != 3 {
		t.Fatalf("expected count 3, got %d", s.TraceCount)
	}
	if s.Acceptance != 100 {
		t.Fatalf("expected acceptance 100, got %f", s.Acceptance)
	}
	if s.Resistance != 75 {
		t.Fatalf("expected resistance 75, got %f", s.Resistance)
	}
}

func TestZeroPointRisesWithRejection(t *testing.T) {
	balanced := NewTracker(DefaultConfig())
	skewed := NewTracker(DefaultConfig())

	// Same total count and complexity mass, different accept/reject split.
	for i := 0; i < 4; i++ {
		balanced.Observe(100, i%2 == 0)
	}
	for i := 0; i < 4; i++ {
		skewed.Observe(100, i == 0) // 1 accepted, 3 rejected
	}

	if skewed.ZeroPointEnergy() <= balanced.ZeroPointEnergy() {
		t.Fatalf("more rejection should raise the floor: %f vs %f",
			skewed.ZeroPointEnergy(), balanced.ZeroPointEnergy())
	}
}

func TestZeroPointBounds(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	if tr.ZeroPointEnergy() != 0 {
		t.Fatalf("empty tracker should have zero floor, got %f", tr.ZeroPointEnergy())
	}

	for i := 0; i < 1000; i++ {
		tr.Observe(1000, false)
	}
	zpe := tr.ZeroPointEnergy()
	if zpe >= DefaultConfig().MaxZeroPoint {
		t.Fatalf("floor must stay below the cap: %f", zpe)
	}
	if zpe <= 0 {
		t.Fatalf("rejections should raise the floor above zero, got %f", zpe)
	}
}

func TestResetClearsAccumulators(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	tr.Observe(100, false)
	tr.Reset()

	s := tr.State()
	if s.TraceCount != 0 || s.Resistance != 0 || s.Acceptance != 0 || s.ZeroPoint != 0 {
		t.Fatalf("reset did not clear state: %+v", s)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	a := NewTracker(DefaultConfig())
	a.Observe(120, true)
	a.Observe(80, false)

	b := NewTracker(DefaultConfig())
	b.Restore(a.State())

	if a.State() != b.State() {
		t.Fatalf("restore should reproduce state: %+v vs %+v", a.State(), b.State())
	}
}

func TestRestoreClampsNegative(t *testing.T) {
	tr := NewTracker(DefaultConfig())
	tr.Restore(State{TraceCount: -1, Resistance: -5, Acceptance: -5})

	s := tr.State()
	if s.TraceCount != 0 || s.Resistance != 0 || s.Acceptance != 0 {
		t.Fatalf("negative snapshot values should clamp to zero: %+v", s)
	}
}
