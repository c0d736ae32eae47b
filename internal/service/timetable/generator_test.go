package timetable

import (
	"sort"
	"testing"

	"acadetrack-service/internal/domain/student"
)

func classSchedule() []student.TimetableEntry {
	return []student.TimetableEntry{
		{Day: "Monday", Time: "09:00", Subject: "Calculus", Room: "A101"},
		{Day: "Monday", Time: "14:00", Subject: "Physics", Room: "B2"},
		{Day: "Wednesday", Time: "10:00", Subject: "Calculus", Room: "A101"},
		{Day: "Friday", Time: "11:00", Subject: "Databases", Room: "Lab 3"},
	}
}

func TestGenerateKeepsEveryClass(t *testing.T) {
	got := NewGenerator(1).Generate(classSchedule())

	found := 0
	for _, e := range got {
		if e.Type == student.EntryClass {
			found++
		}
	}
	if found != 4 {
		t.Fatalf("expected 4 class entries, got %d", found)
	}
}

func TestGenerateNeverDoubleBooks(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		got := NewGenerator(seed).Generate(classSchedule())

		slots := make(map[string]string)
		for _, e := range got {
			key := e.Day + " " + e.Time
			if prev, ok := slots[key]; ok {
				t.Fatalf("seed %d: slot %s booked twice (%s and %s)", seed, key, prev, e.Subject)
			}
			slots[key] = e.Subject
		}
	}
}

func TestGenerateIsDeterministicPerSeed(t *testing.T) {
	a := NewGenerator(42).Generate(classSchedule())
	b := NewGenerator(42).Generate(classSchedule())

	if len(a) != len(b) {
		t.Fatalf("same seed produced different lengths: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at entry %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateSkipsSunday(t *testing.T) {
	for seed := int64(0); seed < 20; seed++ {
		for _, e := range NewGenerator(seed).Generate(classSchedule()) {
			if e.Day == "Sunday" {
				t.Fatalf("seed %d: generated entry on Sunday: %+v", seed, e)
			}
		}
	}
}

func TestGenerateAddsLunchBreaks(t *testing.T) {
	got := NewGenerator(7).Generate(classSchedule())

	lunches := make(map[string]bool)
	for _, e := range got {
		if e.Type == student.EntryBreak && e.Time == "12:00" {
			lunches[e.Day] = true
		}
	}
	for _, day := range []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"} {
		if !lunches[day] {
			t.Fatalf("missing lunch break on %s", day)
		}
	}
}

func TestGenerateStudySlotsOnlyInKnownHours(t *testing.T) {
	allowed := make(map[string]bool)
	for _, h := range studyHours {
		allowed[h] = true
	}

	for seed := int64(0); seed < 20; seed++ {
		for _, e := range NewGenerator(seed).Generate(classSchedule()) {
			if e.Type == student.EntryStudy && !allowed[e.Time] {
				t.Fatalf("seed %d: study session at unexpected hour %s", seed, e.Time)
			}
		}
	}
}

func TestGenerateSortedByDayThenTime(t *testing.T) {
	got := NewGenerator(3).Generate(classSchedule())

	sorted := sort.SliceIsSorted(got, func(i, j int) bool {
		if dayOrder[got[i].Day] != dayOrder[got[j].Day] {
			return dayOrder[got[i].Day] < dayOrder[got[j].Day]
		}
		return got[i].Time < got[j].Time
	})
	if !sorted {
		t.Fatalf("entries not sorted by day then time: %+v", got)
	}
}

func TestGenerateWithNoClasses(t *testing.T) {
	got := NewGenerator(5).Generate(nil)

	for _, e := range got {
		if e.Type == student.EntryClass {
			t.Fatalf("unexpected class entry: %+v", e)
		}
		if e.Type == student.EntryStudy && e.Subject != "Self Study" {
			t.Fatalf("study subject should fall back to Self Study, got %q", e.Subject)
		}
	}
}
