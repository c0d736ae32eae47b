package student

import (
	"testing"
	"time"

	"acadetrack-service/internal/domain/student"
)

func TestStartOfWeekIsMondayMidnight(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	for day := 5; day <= 11; day++ { // 2026-01-05 (Mon) .. 2026-01-11 (Sun)
		now := time.Date(2026, 1, day, 15, 30, 0, 0, loc)
		got := startOfWeek(now)
		if got.Weekday() != time.Monday {
			t.Fatalf("day %d: startOfWeek landed on %s", day, got.Weekday())
		}
		if got.Format("2006-01-02 15:04:05") != "2026-01-05 00:00:00" {
			t.Fatalf("day %d: startOfWeek = %s", day, got.Format("2006-01-02 15:04:05"))
		}
	}
}

func TestStudyHoursCountMondayInWesternTimezone(t *testing.T) {
	// Activity dates are plain calendar days; Monday's entries belong to
	// the week regardless of the caller's UTC offset.
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 1, 7, 12, 0, 0, 0, loc) // Wednesday

	rec := &student.Record{Activities: []student.Activity{
		{ID: "a1", Name: "Lecture notes", Category: student.CategoryStudy, Date: "2026-01-05", DurationMinutes: 90},
		{ID: "a2", Name: "Course reader", Category: student.CategoryReading, Date: "2026-01-06", DurationMinutes: 30},
		{ID: "a3", Name: "Last week", Category: student.CategoryStudy, Date: "2026-01-04", DurationMinutes: 60},
		{ID: "a4", Name: "Gym", Category: student.CategoryOther, Date: "2026-01-05", DurationMinutes: 60},
	}}

	got := studyHoursSince(rec, startOfWeek(now))
	if got != 2.0 {
		t.Fatalf("study hours = %v, want 2.0 (Monday and Tuesday study/reading only)", got)
	}
}
