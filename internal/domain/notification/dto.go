// internal/domain/notification/dto.go
package notification

type ListFilters struct {
	IsRead   *bool     `form:"is_read"`
	Category *Category `form:"category"`
	Page     int       `form:"page"`
	PageSize int       `form:"page_size"`
}

type Summary struct {
	TotalUnread int `json:"total_unread"`
	TotalRead   int `json:"total_read"`
	Total       int `json:"total"`
}

type ListResponse struct {
	Notifications []Notification `json:"notifications"`
	Summary       Summary        `json:"summary"`
	Total         int64          `json:"total"`
	Page          int            `json:"page"`
	PageSize      int            `json:"page_size"`
	TotalPages    int            `json:"total_pages"`
}

type UpdateSettingsRequest struct {
	ClassReminders  *bool `json:"class_reminders,omitempty"`
	GoalDeadlines   *bool `json:"goal_deadlines,omitempty"`
	DailyProgress   *bool `json:"daily_progress,omitempty"`
	WeeklyReports   *bool `json:"weekly_reports,omitempty"`
	ReminderMinutes *int  `json:"reminder_minutes,omitempty"`
	ActiveHourStart *int  `json:"active_hour_start,omitempty"`
	ActiveHourEnd   *int  `json:"active_hour_end,omitempty"`
}

// Apply merges the patch into existing settings and normalizes.
func (r *UpdateSettingsRequest) Apply(s *Settings) {
	if r.ClassReminders != nil {
		s.ClassReminders = *r.ClassReminders
	}
	if r.GoalDeadlines != nil {
		s.GoalDeadlines = *r.GoalDeadlines
	}
	if r.DailyProgress != nil {
		s.DailyProgress = *r.DailyProgress
	}
	if r.WeeklyReports != nil {
		s.WeeklyReports = *r.WeeklyReports
	}
	if r.ReminderMinutes != nil {
		s.ReminderMinutes = *r.ReminderMinutes
	}
	if r.ActiveHourStart != nil {
		s.ActiveHourStart = *r.ActiveHourStart
	}
	if r.ActiveHourEnd != nil {
		s.ActiveHourEnd = *r.ActiveHourEnd
	}
	s.Normalize()
}
