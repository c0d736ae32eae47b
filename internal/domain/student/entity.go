// internal/domain/student/entity.go
package student

import (
	"time"

	"github.com/lib/pq"
)

// Activity categories mirror what the tracker UI offers.
const (
	CategoryStudy      = "study"
	CategoryAssignment = "assignment"
	CategoryReading    = "reading"
	CategoryExercise   = "exercise"
	CategoryOther      = "other"
)

// Timetable entry types.
const (
	EntryClass = "class"
	EntryStudy = "study"
	EntryBreak = "break"
)

// Goal priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Activity is a single tracked activity for one day.
type Activity struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	Date            string `json:"date"` // YYYY-MM-DD
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
}

// Goal is a deadline-bound objective with a progress percentage.
type Goal struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Deadline  string         `json:"deadline"` // YYYY-MM-DD
	Completed bool           `json:"completed"`
	Progress  int            `json:"progress"` // 0-100
	Priority  string         `json:"priority"`
	Tags      pq.StringArray `json:"tags,omitempty"`
}

// TimetableEntry is one slot in the weekly timetable.
type TimetableEntry struct {
	Day      string `json:"day"`  // Monday..Sunday
	Time     string `json:"time"` // HH:MM
	Subject  string `json:"subject"`
	Type     string `json:"type"` // class, study, break
	Duration string `json:"duration"`
	Room     string `json:"room"`
}

// Record is the per-student aggregate. It is loaded, mutated and
// persisted as a whole; there is no field-level transactional guarantee.
type Record struct {
	Activities []Activity       `json:"activities"`
	Goals      []Goal           `json:"goals"`
	Timetable  []TimetableEntry `json:"timetable"`
}

// EmptyRecord returns a record with non-nil slices, the default value
// substituted whenever the stored blob is missing or unparseable.
func EmptyRecord() *Record {
	return &Record{
		Activities: []Activity{},
		Goals:      []Goal{},
		Timetable:  []TimetableEntry{},
	}
}

// Normalize replaces nil collections with empty ones so that a
// store-then-load round trip reproduces the record field for field.
func (r *Record) Normalize() {
	if r.Activities == nil {
		r.Activities = []Activity{}
	}
	if r.Goals == nil {
		r.Goals = []Goal{}
	}
	if r.Timetable == nil {
		r.Timetable = []TimetableEntry{}
	}
}

// Merge applies a partial update: only the collections present in the
// patch replace their counterparts. Mirrors the client contract where
// each screen submits the fields it owns and the whole record is
// persisted afterwards.
func (r *Record) Merge(patch *RecordPatch) {
	if patch.Activities != nil {
		r.Activities = patch.Activities
	}
	if patch.Goals != nil {
		r.Goals = patch.Goals
	}
	if patch.Timetable != nil {
		r.Timetable = patch.Timetable
	}
	r.Normalize()
}

// ActivitiesOn returns the activities recorded for the given date.
func (r *Record) ActivitiesOn(date string) []Activity {
	var out []Activity
	for _, a := range r.Activities {
		if a.Date == date {
			out = append(out, a)
		}
	}
	return out
}

// ClassesOn returns the timetable class entries for the given weekday.
func (r *Record) ClassesOn(weekday time.Weekday) []TimetableEntry {
	day := weekday.String()
	var out []TimetableEntry
	for _, e := range r.Timetable {
		if e.Day == day && e.Type == EntryClass {
			out = append(out, e)
		}
	}
	return out
}
