// internal/domain/notification/entity.go
package notification

import (
	"database/sql"
	"time"
)

type Category string

const (
	CategoryClass      Category = "class"
	CategoryGoal       Category = "goal"
	CategoryProgress   Category = "progress"
	CategoryMotivation Category = "motivation"
	CategoryBreak      Category = "break"
	CategoryReport     Category = "report"
	CategorySystem     Category = "system"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// HistoryCap bounds the stored notification history per student; the
// oldest entry is evicted when a new one arrives at the cap.
const HistoryCap = 50

// RetentionDays is how long notifications are kept before the daily
// sweep purges them.
const RetentionDays = 7

// DefaultListLimit is the page size used when a listing request does
// not specify one.
const DefaultListLimit = 20

type Notification struct {
	ID         string       `json:"id" db:"id"`
	IdentityID int64        `json:"identity_id" db:"identity_id"`
	Category   Category     `json:"category" db:"category"`
	Priority   Priority     `json:"priority" db:"priority"`
	Title      string       `json:"title" db:"title"`
	Message    string       `json:"message" db:"message"`
	Icon       string       `json:"icon,omitempty" db:"icon"`
	IsRead     bool         `json:"is_read" db:"is_read"`
	CreatedAt  time.Time    `json:"created_at" db:"created_at"`
	ReadAt     sql.NullTime `json:"read_at,omitempty" db:"read_at"`
}

// Settings controls which reminder generators run for a student and
// how far ahead of a class the reminder fires. Missing or corrupt
// stored settings fall back to DefaultSettings.
type Settings struct {
	ClassReminders  bool `json:"class_reminders"`
	GoalDeadlines   bool `json:"goal_deadlines"`
	DailyProgress   bool `json:"daily_progress"`
	WeeklyReports   bool `json:"weekly_reports"`
	ReminderMinutes int  `json:"reminder_minutes"`
	ActiveHourStart int  `json:"active_hour_start"`
	ActiveHourEnd   int  `json:"active_hour_end"`
}

func DefaultSettings() Settings {
	return Settings{
		ClassReminders:  true,
		GoalDeadlines:   true,
		DailyProgress:   true,
		WeeklyReports:   true,
		ReminderMinutes: 15,
		ActiveHourStart: 9,
		ActiveHourEnd:   21,
	}
}

// Normalize clamps out-of-range values back to the defaults.
func (s *Settings) Normalize() {
	if s.ReminderMinutes <= 0 {
		s.ReminderMinutes = 15
	}
	if s.ActiveHourStart < 0 || s.ActiveHourStart > 23 {
		s.ActiveHourStart = 9
	}
	if s.ActiveHourEnd <= s.ActiveHourStart || s.ActiveHourEnd > 23 {
		s.ActiveHourEnd = 21
	}
}
