package reminder

import (
	"testing"
	"time"

	"acadetrack-service/internal/domain/notification"
	"acadetrack-service/internal/domain/student"
)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

// 2026-01-05 is a Monday.
func recordWithClass(classTime string) *student.Record {
	return &student.Record{
		Timetable: []student.TimetableEntry{
			{Day: "Monday", Time: classTime, Subject: "Calculus", Type: student.EntryClass, Room: "A101"},
		},
	}
}

func TestClassReminderFiresInsideWindow(t *testing.T) {
	rec := recordWithClass("09:00")
	settings := notification.DefaultSettings()

	for _, tick := range []string{"2026-01-05 08:45:00", "2026-01-05 08:45:30", "2026-01-05 08:45:59"} {
		got := classCandidates(at(t, tick), rec, settings)
		if len(got) != 1 {
			t.Fatalf("tick %s: expected 1 candidate, got %d", tick, len(got))
		}
		if got[0].Message != "Calculus starts in 15 minutes in A101" {
			t.Fatalf("unexpected message: %q", got[0].Message)
		}
		if got[0].Priority != notification.PriorityHigh {
			t.Fatalf("expected high priority, got %s", got[0].Priority)
		}
	}
}

func TestClassReminderQuietOutsideWindow(t *testing.T) {
	rec := recordWithClass("09:00")
	settings := notification.DefaultSettings()

	for _, tick := range []string{"2026-01-05 08:44:59", "2026-01-05 08:46:00", "2026-01-05 09:00:00"} {
		if got := classCandidates(at(t, tick), rec, settings); len(got) != 0 {
			t.Fatalf("tick %s: expected no candidates, got %+v", tick, got)
		}
	}
}

func TestClassReminderHonorsCustomLeadTime(t *testing.T) {
	rec := recordWithClass("10:00")
	settings := notification.DefaultSettings()
	settings.ReminderMinutes = 30

	if got := classCandidates(at(t, "2026-01-05 09:30:00"), rec, settings); len(got) != 1 {
		t.Fatalf("expected candidate at 30 minute lead, got %d", len(got))
	}
	if got := classCandidates(at(t, "2026-01-05 09:45:00"), rec, settings); len(got) != 0 {
		t.Fatalf("expected nothing at 15 minute mark, got %+v", got)
	}
}

func TestClassReminderSkipsOtherDays(t *testing.T) {
	rec := recordWithClass("09:00")
	// 2026-01-06 is a Tuesday.
	if got := classCandidates(at(t, "2026-01-06 08:45:00"), rec, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("Monday class fired on Tuesday: %+v", got)
	}
}

func TestGoalDeadlineExactDayOffsets(t *testing.T) {
	now := at(t, "2026-01-05 10:00:00")
	cases := []struct {
		deadline string
		want     int
		priority notification.Priority
	}{
		{"2026-01-06", 1, notification.PriorityHigh},
		{"2026-01-08", 1, notification.PriorityMedium},
		{"2026-01-12", 1, notification.PriorityMedium},
		{"2026-01-07", 0, ""},
		{"2026-01-05", 0, ""},
		{"2026-01-04", 0, ""},
		{"2026-01-20", 0, ""},
	}

	for _, tc := range cases {
		rec := &student.Record{Goals: []student.Goal{
			{ID: "g1", Title: "Finish thesis draft", Deadline: tc.deadline},
		}}
		got := goalCandidates(now, rec, notification.DefaultSettings())
		if len(got) != tc.want {
			t.Fatalf("deadline %s: expected %d candidates, got %d", tc.deadline, tc.want, len(got))
		}
		if tc.want == 1 && got[0].Priority != tc.priority {
			t.Fatalf("deadline %s: priority = %s, want %s", tc.deadline, got[0].Priority, tc.priority)
		}
	}
}

func TestGoalDeadlineAcrossDSTTransition(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// Clocks spring forward on 2026-03-08, so midnight-to-midnight
	// from the 5th to the 8th spans 71 hours, not 72.
	now := time.Date(2026, 3, 5, 10, 0, 0, 0, loc)
	rec := &student.Record{Goals: []student.Goal{
		{ID: "g1", Title: "Finish thesis draft", Deadline: "2026-03-08"},
	}}

	got := goalCandidates(now, rec, notification.DefaultSettings())
	if len(got) != 1 {
		t.Fatalf("expected the 3-day reminder across the DST gap, got %d candidates", len(got))
	}
	if got[0].Priority != notification.PriorityMedium {
		t.Fatalf("priority = %s, want %s", got[0].Priority, notification.PriorityMedium)
	}
	if got[0].Message != `"Finish thesis draft" is due in 3 days` {
		t.Fatalf("unexpected message: %q", got[0].Message)
	}
}

func TestGoalDeadlineIgnoresCompletedGoals(t *testing.T) {
	now := at(t, "2026-01-05 10:00:00")
	rec := &student.Record{Goals: []student.Goal{
		{ID: "g1", Title: "Done already", Deadline: "2026-01-06", Completed: true},
	}}
	if got := goalCandidates(now, rec, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("completed goal produced candidates: %+v", got)
	}
}

func TestDailyProgressAtEight(t *testing.T) {
	rec := &student.Record{Activities: []student.Activity{
		{ID: "a1", Name: "Read ch. 4", Date: "2026-01-05", Completed: true},
		{ID: "a2", Name: "Problem set", Date: "2026-01-05", Completed: false},
		{ID: "a3", Name: "Old entry", Date: "2026-01-04", Completed: true},
	}}

	got := progressCandidates(at(t, "2026-01-05 20:00:30"), rec, notification.DefaultSettings())
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate at 20:00, got %d", len(got))
	}
	if got[0].Message != "You completed 1 of 2 activities today (50%)" {
		t.Fatalf("unexpected message: %q", got[0].Message)
	}

	if got := progressCandidates(at(t, "2026-01-05 19:59:59"), rec, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("fired before 20:00: %+v", got)
	}
	if got := progressCandidates(at(t, "2026-01-05 20:01:00"), rec, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("fired after the window: %+v", got)
	}
}

func TestDailyProgressQuietWithoutActivities(t *testing.T) {
	now := at(t, "2026-01-05 20:00:30")

	if got := progressCandidates(now, student.EmptyRecord(), notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("empty record produced a summary: %+v", got)
	}

	// Activities on other days do not count as today's.
	rec := &student.Record{Activities: []student.Activity{
		{ID: "a1", Name: "Old entry", Date: "2026-01-04", Completed: true},
	}}
	if got := progressCandidates(now, rec, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("stale activities produced a summary: %+v", got)
	}
}

func TestMiddayMotivationAtTwo(t *testing.T) {
	if got := motivationCandidates(at(t, "2026-01-05 14:00:10"), nil, notification.DefaultSettings()); len(got) != 1 {
		t.Fatalf("expected motivation at 14:00, got %d", len(got))
	}
	if got := motivationCandidates(at(t, "2026-01-05 15:00:00"), nil, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("motivation fired at 15:00: %+v", got)
	}
}

func TestBreakReminderEvenHoursInActiveWindow(t *testing.T) {
	settings := notification.DefaultSettings()

	fires := []string{"2026-01-05 10:00:00", "2026-01-05 12:00:30", "2026-01-05 20:00:59"}
	for _, tick := range fires {
		if got := breakCandidates(at(t, tick), nil, settings); len(got) != 1 {
			t.Fatalf("tick %s: expected break reminder, got %d", tick, len(got))
		}
	}

	quiet := []string{
		"2026-01-05 11:00:00", // odd hour
		"2026-01-05 08:00:00", // before active window
		"2026-01-05 22:00:00", // after active window
		"2026-01-05 10:01:00", // past minute zero
	}
	for _, tick := range quiet {
		if got := breakCandidates(at(t, tick), nil, settings); len(got) != 0 {
			t.Fatalf("tick %s: unexpected break reminder %+v", tick, got)
		}
	}
}

func TestWeeklyReportSundayEvening(t *testing.T) {
	rec := &student.Record{
		Activities: []student.Activity{
			{ID: "a1", Date: "2026-01-09", DurationMinutes: 90, Completed: true},
			{ID: "a2", Date: "2026-01-10", DurationMinutes: 30, Completed: false},
			{ID: "a3", Date: "2025-12-20", DurationMinutes: 600, Completed: true}, // outside the week
		},
		Goals: []student.Goal{
			{ID: "g1", Completed: true},
			{ID: "g2", Completed: false},
		},
	}

	// 2026-01-11 is a Sunday.
	got := weeklyReportCandidates(at(t, "2026-01-11 19:00:00"), rec, notification.DefaultSettings())
	if len(got) != 1 {
		t.Fatalf("expected weekly report, got %d", len(got))
	}
	if got[0].Message != "This week: 2.0 hours tracked, 1 activities completed, 1 goals done." {
		t.Fatalf("unexpected message: %q", got[0].Message)
	}

	if got := weeklyReportCandidates(at(t, "2026-01-10 19:00:00"), rec, notification.DefaultSettings()); len(got) != 0 {
		t.Fatalf("weekly report fired on Saturday: %+v", got)
	}
}
