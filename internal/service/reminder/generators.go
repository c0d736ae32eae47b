// internal/service/reminder/generators.go
package reminder

import (
	"fmt"
	"time"

	"acadetrack-service/internal/domain/notification"
	"acadetrack-service/internal/domain/student"
)

// Candidate is one reminder a generator wants to send. Key identifies
// the window so the registry can enforce fire-once semantics.
type Candidate struct {
	Key      string
	Category notification.Category
	Priority notification.Priority
	Title    string
	Message  string
	Icon     string
}

// Generator evaluates one reminder rule against a student's record at
// an instant. Generators are pure: all state lives in the registry.
type Generator struct {
	Name     string
	Enabled  func(s notification.Settings) bool
	Evaluate func(now time.Time, rec *student.Record, s notification.Settings) []Candidate
}

// Generators returns the full rule set in evaluation order.
func Generators() []Generator {
	return []Generator{
		{
			Name:     "class_reminder",
			Enabled:  func(s notification.Settings) bool { return s.ClassReminders },
			Evaluate: classCandidates,
		},
		{
			Name:     "goal_deadline",
			Enabled:  func(s notification.Settings) bool { return s.GoalDeadlines },
			Evaluate: goalCandidates,
		},
		{
			Name:     "daily_progress",
			Enabled:  func(s notification.Settings) bool { return s.DailyProgress },
			Evaluate: progressCandidates,
		},
		{
			Name:     "midday_motivation",
			Enabled:  func(s notification.Settings) bool { return s.DailyProgress },
			Evaluate: motivationCandidates,
		},
		{
			Name:     "break_reminder",
			Enabled:  func(s notification.Settings) bool { return true },
			Evaluate: breakCandidates,
		},
		{
			Name:     "weekly_report",
			Enabled:  func(s notification.Settings) bool { return s.WeeklyReports },
			Evaluate: weeklyReportCandidates,
		},
	}
}

// classCandidates fires once per class, in the sixty second window
// starting exactly ReminderMinutes before the class begins.
func classCandidates(now time.Time, rec *student.Record, s notification.Settings) []Candidate {
	var out []Candidate
	date := now.Format("2006-01-02")

	for _, class := range rec.ClassesOn(now.Weekday()) {
		classTime, err := time.ParseInLocation("2006-01-02 15:04", date+" "+class.Time, now.Location())
		if err != nil {
			continue
		}

		remindAt := classTime.Add(-time.Duration(s.ReminderMinutes) * time.Minute)
		if now.Before(remindAt) || !now.Before(remindAt.Add(time.Minute)) {
			continue
		}

		message := fmt.Sprintf("%s starts in %d minutes", class.Subject, s.ReminderMinutes)
		if class.Room != "" {
			message += " in " + class.Room
		}

		out = append(out, Candidate{
			Key:      fmt.Sprintf("class:%s:%s:%s", date, class.Time, class.Subject),
			Category: notification.CategoryClass,
			Priority: notification.PriorityHigh,
			Title:    "Class Reminder",
			Message:  message,
			Icon:     "calendar",
		})
	}
	return out
}

// goalCandidates fires for incomplete goals exactly 1, 3 or 7 days
// before their deadline, once per goal per day.
func goalCandidates(now time.Time, rec *student.Record, _ notification.Settings) []Candidate {
	var out []Candidate
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for _, goal := range rec.Goals {
		if goal.Completed {
			continue
		}
		deadline, err := time.ParseInLocation("2006-01-02", goal.Deadline, now.Location())
		if err != nil {
			continue
		}

		// Round absorbs DST offset shifts so the gap stays a whole
		// number of calendar days.
		days := int(deadline.Sub(today).Round(24*time.Hour).Hours() / 24)
		if days != 1 && days != 3 && days != 7 {
			continue
		}

		priority := notification.PriorityMedium
		message := fmt.Sprintf("%q is due in %d days", goal.Title, days)
		if days == 1 {
			priority = notification.PriorityHigh
			message = fmt.Sprintf("%q is due tomorrow", goal.Title)
		}

		out = append(out, Candidate{
			Key:      fmt.Sprintf("goal:%s:%d:%s", goal.ID, days, today.Format("2006-01-02")),
			Category: notification.CategoryGoal,
			Priority: priority,
			Title:    "Goal Deadline Approaching",
			Message:  message,
			Icon:     "target",
		})
	}
	return out
}

// progressCandidates fires the daily summary at 20:00, on days the
// student actually logged something.
func progressCandidates(now time.Time, rec *student.Record, _ notification.Settings) []Candidate {
	if now.Hour() != 20 || now.Minute() != 0 {
		return nil
	}

	date := now.Format("2006-01-02")
	total, completed := 0, 0
	for _, a := range rec.ActivitiesOn(date) {
		total++
		if a.Completed {
			completed++
		}
	}
	if total == 0 {
		return nil
	}

	return []Candidate{{
		Key:      "progress:" + date,
		Category: notification.CategoryProgress,
		Priority: notification.PriorityLow,
		Title:    "Daily Progress",
		Message: fmt.Sprintf("You completed %d of %d activities today (%d%%)",
			completed, total, completed*100/total),
		Icon: "chart",
	}}
}

var motivationMessages = []string{
	"Halfway through the day. Keep the momentum going!",
	"A little progress each day adds up to big results.",
	"Stay focused. Your future self will thank you.",
	"One task at a time. You've got this.",
}

// motivationCandidates fires a midday nudge at 14:00.
func motivationCandidates(now time.Time, _ *student.Record, _ notification.Settings) []Candidate {
	if now.Hour() != 14 || now.Minute() != 0 {
		return nil
	}

	date := now.Format("2006-01-02")
	return []Candidate{{
		Key:      "motivation:" + date,
		Category: notification.CategoryMotivation,
		Priority: notification.PriorityLow,
		Title:    "Keep Going!",
		Message:  motivationMessages[now.YearDay()%len(motivationMessages)],
		Icon:     "spark",
	}}
}

// breakCandidates fires on even hours inside the active window, at
// minute zero.
func breakCandidates(now time.Time, _ *student.Record, s notification.Settings) []Candidate {
	hour := now.Hour()
	if now.Minute() != 0 || hour%2 != 0 {
		return nil
	}
	if hour < s.ActiveHourStart || hour > s.ActiveHourEnd {
		return nil
	}

	return []Candidate{{
		Key:      fmt.Sprintf("break:%s:%02d", now.Format("2006-01-02"), hour),
		Category: notification.CategoryBreak,
		Priority: notification.PriorityLow,
		Title:    "Time for a Break",
		Message:  "You've been at it for a while. Stretch, hydrate, rest your eyes.",
		Icon:     "coffee",
	}}
}

// weeklyReportCandidates fires the week's summary on Sunday at 19:00.
func weeklyReportCandidates(now time.Time, rec *student.Record, _ notification.Settings) []Candidate {
	if now.Weekday() != time.Sunday || now.Hour() != 19 || now.Minute() != 0 {
		return nil
	}

	weekStart := now.AddDate(0, 0, -6)
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, now.Location())

	minutes := 0
	completed := 0
	for _, a := range rec.Activities {
		d, err := time.ParseInLocation("2006-01-02", a.Date, now.Location())
		if err != nil || d.Before(weekStart) {
			continue
		}
		minutes += a.DurationMinutes
		if a.Completed {
			completed++
		}
	}

	goalsDone := 0
	for _, g := range rec.Goals {
		if g.Completed {
			goalsDone++
		}
	}

	year, week := now.ISOWeek()
	return []Candidate{{
		Key:      fmt.Sprintf("report:%d-W%02d", year, week),
		Category: notification.CategoryReport,
		Priority: notification.PriorityLow,
		Title:    "Weekly Report",
		Message: fmt.Sprintf("This week: %.1f hours tracked, %d activities completed, %d goals done.",
			float64(minutes)/60.0, completed, goalsDone),
		Icon: "report",
	}}
}
