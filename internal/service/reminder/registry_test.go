package reminder

import (
	"testing"
	"time"
)

func TestFireOncePerKey(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	if !r.FireOnce(1, "class:2026-01-05:09:00:Calculus", now) {
		t.Fatal("first firing should pass")
	}
	// Subsequent ticks inside the same window must stay silent.
	for i := 0; i < 5; i++ {
		if r.FireOnce(1, "class:2026-01-05:09:00:Calculus", now.Add(time.Duration(i)*15*time.Second)) {
			t.Fatalf("tick %d fired again for the same window", i)
		}
	}
}

func TestFireOnceIsPerStudent(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	if !r.FireOnce(1, "progress:2026-01-05", now) {
		t.Fatal("student 1 should fire")
	}
	if !r.FireOnce(2, "progress:2026-01-05", now) {
		t.Fatal("same key for another student should fire independently")
	}
}

func TestDistinctWindowsFireSeparately(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	if !r.FireOnce(1, "break:2026-01-05:10", now) {
		t.Fatal("10:00 break should fire")
	}
	if !r.FireOnce(1, "break:2026-01-05:12", now.Add(2*time.Hour)) {
		t.Fatal("12:00 break is a new window and should fire")
	}
}

func TestSweepDropsOldEntriesOnly(t *testing.T) {
	r := NewRegistry()
	now := time.Now()

	r.FireOnce(1, "progress:2026-01-03", now.Add(-72*time.Hour))
	r.FireOnce(1, "progress:2026-01-05", now)

	removed := r.Sweep(48*time.Hour, now)
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	if r.Len() != 1 {
		t.Fatalf("expected 1 surviving entry, got %d", r.Len())
	}

	// The surviving window is still deduped.
	if r.FireOnce(1, "progress:2026-01-05", now) {
		t.Fatal("swept registry re-fired a live window")
	}
}
