package student

import (
	"encoding/json"
	"reflect"
	"testing"
	"time"
)

func TestRecordRoundTrip(t *testing.T) {
	rec := &Record{
		Activities: []Activity{
			{ID: "01ACT", Name: "Read chapter 4", Category: CategoryReading, Date: "2026-08-30", DurationMinutes: 45, Completed: true},
		},
		Goals: []Goal{
			{ID: "01GOAL", Title: "Finish thesis draft", Deadline: "2026-09-15", Progress: 40, Priority: PriorityHigh, Tags: []string{"thesis"}},
		},
		Timetable: []TimetableEntry{
			{Day: "Monday", Time: "09:00", Subject: "Algorithms", Type: EntryClass, Duration: "1 hour", Room: "B204"},
		},
	}

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}

	var loaded Record
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	loaded.Normalize()

	if !reflect.DeepEqual(rec, &loaded) {
		t.Fatalf("round trip mismatch:\nwant %+v\ngot  %+v", rec, &loaded)
	}
}

func TestRecordRoundTripEmptyDefaults(t *testing.T) {
	// A blob persisted with absent collections must load as empty
	// slices, not nil.
	var loaded Record
	if err := json.Unmarshal([]byte(`{}`), &loaded); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	loaded.Normalize()

	if loaded.Activities == nil || loaded.Goals == nil || loaded.Timetable == nil {
		t.Fatalf("expected empty-slice defaults, got %+v", loaded)
	}
	if len(loaded.Activities)+len(loaded.Goals)+len(loaded.Timetable) != 0 {
		t.Fatalf("expected empty record")
	}
}

func TestMergeReplacesOnlyPresentCollections(t *testing.T) {
	rec := EmptyRecord()
	rec.Goals = []Goal{{ID: "g1", Title: "Old goal", Deadline: "2026-09-01"}}

	rec.Merge(&RecordPatch{
		Activities: []Activity{{ID: "a1", Name: "Revision", Date: "2026-08-30"}},
	})

	if len(rec.Activities) != 1 || rec.Activities[0].ID != "a1" {
		t.Fatalf("activities not replaced: %+v", rec.Activities)
	}
	if len(rec.Goals) != 1 || rec.Goals[0].ID != "g1" {
		t.Fatalf("goals must be untouched by a patch without goals: %+v", rec.Goals)
	}
}

func TestActivitiesOnAndClassesOn(t *testing.T) {
	rec := &Record{
		Activities: []Activity{
			{ID: "a1", Date: "2026-08-30"},
			{ID: "a2", Date: "2026-08-29"},
		},
		Timetable: []TimetableEntry{
			{Day: "Monday", Time: "09:00", Subject: "Algorithms", Type: EntryClass},
			{Day: "Monday", Time: "14:00", Subject: "Study - Maths", Type: EntryStudy},
			{Day: "Tuesday", Time: "09:00", Subject: "Physics", Type: EntryClass},
		},
	}

	if got := rec.ActivitiesOn("2026-08-30"); len(got) != 1 || got[0].ID != "a1" {
		t.Fatalf("unexpected activities: %+v", got)
	}
	if got := rec.ClassesOn(time.Monday); len(got) != 1 || got[0].Subject != "Algorithms" {
		t.Fatalf("unexpected classes: %+v", got)
	}
}
