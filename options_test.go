package vtrace

import "testing"

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.Mode != ModeOutline {
		t.Errorf("default Mode = %v, want ModeOutline", p.Mode)
	}
	if p.ErrorThreshold <= 0 {
		t.Errorf("default ErrorThreshold = %v, want > 0", p.ErrorThreshold)
	}
	if p.ColorMax != 255 {
		t.Errorf("default ColorMax = %v, want 255", p.ColorMax)
	}
}

func TestNewParamsAppliesOptions(t *testing.T) {
	p := newParams([]Option{
		WithMode(ModeCenterline),
		WithErrorThreshold(0.5),
		WithSimplifyThreshold(2.0),
		WithCornerThreshold(1.2),
		WithLengthThreshold(10),
		WithOptimize(true),
		WithColorMax(128),
		WithThreads(4),
		WithTurnPolicy(TurnPolicyMajority),
	})

	if p.Mode != ModeCenterline {
		t.Errorf("Mode = %v, want ModeCenterline", p.Mode)
	}
	if p.ErrorThreshold != 0.5 {
		t.Errorf("ErrorThreshold = %v, want 0.5", p.ErrorThreshold)
	}
	if p.SimplifyThreshold != 2.0 {
		t.Errorf("SimplifyThreshold = %v, want 2.0", p.SimplifyThreshold)
	}
	if p.CornerThreshold != 1.2 {
		t.Errorf("CornerThreshold = %v, want 1.2", p.CornerThreshold)
	}
	if p.LengthThreshold != 10 {
		t.Errorf("LengthThreshold = %v, want 10", p.LengthThreshold)
	}
	if !p.Optimize {
		t.Error("Optimize = false, want true")
	}
	if p.ColorMax != 128 {
		t.Errorf("ColorMax = %v, want 128", p.ColorMax)
	}
	if p.Threads != 4 {
		t.Errorf("Threads = %v, want 4", p.Threads)
	}
	if p.TurnPolicy != TurnPolicyMajority {
		t.Errorf("TurnPolicy = %v, want TurnPolicyMajority", p.TurnPolicy)
	}
}

func TestNewParamsNoOptionsMatchesDefault(t *testing.T) {
	got := newParams(nil)
	want := DefaultParams()
	if got != want {
		t.Errorf("newParams(nil) = %+v, want %+v", got, want)
	}
}
