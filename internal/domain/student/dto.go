// internal/domain/student/dto.go
package student

import (
	"strings"
	"time"

	xerrors "acadetrack-service/internal/pkg/errors"
)

// RecordPatch carries a partial record update. Nil collections are
// left untouched by Merge.
type RecordPatch struct {
	Activities []Activity       `json:"activities,omitempty"`
	Goals      []Goal           `json:"goals,omitempty"`
	Timetable  []TimetableEntry `json:"timetable,omitempty"`
}

// CreateActivityRequest for adding one activity.
type CreateActivityRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Date            string `json:"date"`
	DurationMinutes int    `json:"duration_minutes"`
	Completed       bool   `json:"completed"`
}

// CreateGoalRequest for adding one goal.
type CreateGoalRequest struct {
	Title    string   `json:"title"`
	Deadline string   `json:"deadline"`
	Priority string   `json:"priority"`
	Tags     []string `json:"tags"`
}

// UpdateGoalRequest merges progress/state changes into an existing goal.
type UpdateGoalRequest struct {
	Title     *string `json:"title,omitempty"`
	Deadline  *string `json:"deadline,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
	Progress  *int    `json:"progress,omitempty"`
	Priority  *string `json:"priority,omitempty"`
}

// UpdateActivityRequest merges changes into an existing activity.
type UpdateActivityRequest struct {
	Name            *string `json:"name,omitempty"`
	Category        *string `json:"category,omitempty"`
	Date            *string `json:"date,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Completed       *bool   `json:"completed,omitempty"`
}

// GenerateTimetableRequest carries the uploaded class schedule.
type GenerateTimetableRequest struct {
	Classes []TimetableEntry `json:"classes"`
}

// Summary aggregates today's completion ratio and goal counts for the
// dashboard.
type Summary struct {
	Date               string  `json:"date"`
	ActivitiesToday    int     `json:"activities_today"`
	CompletedToday     int     `json:"completed_today"`
	CompletionPercent  int     `json:"completion_percent"`
	TotalGoals         int     `json:"total_goals"`
	CompletedGoals     int     `json:"completed_goals"`
	AverageProgress    int     `json:"average_progress"`
	StudyHoursThisWeek float64 `json:"study_hours_this_week"`
}

func invalid(field, msg string) error {
	return xerrors.Wrap(xerrors.ErrInvalidInput, field+": "+msg)
}

func validDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func (r *CreateActivityRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("name", "activity name is required")
	}
	if !validDate(r.Date) {
		return invalid("date", "date must be YYYY-MM-DD")
	}
	if r.DurationMinutes < 0 {
		return invalid("duration_minutes", "duration cannot be negative")
	}
	return nil
}

func (r *CreateGoalRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return invalid("title", "goal title is required")
	}
	if !validDate(r.Deadline) {
		return invalid("deadline", "deadline must be YYYY-MM-DD")
	}
	switch r.Priority {
	case "", PriorityHigh, PriorityMedium, PriorityLow:
	default:
		return invalid("priority", "priority must be high, medium or low")
	}
	return nil
}

func (r *UpdateGoalRequest) Validate() error {
	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		return invalid("progress", "progress must be between 0 and 100")
	}
	if r.Deadline != nil && !validDate(*r.Deadline) {
		return invalid("deadline", "deadline must be YYYY-MM-DD")
	}
	if r.Priority != nil {
		switch *r.Priority {
		case PriorityHigh, PriorityMedium, PriorityLow:
		default:
			return invalid("priority", "priority must be high, medium or low")
		}
	}
	return nil
}

func (r *GenerateTimetableRequest) Validate() error {
	for i, c := range r.Classes {
		if strings.TrimSpace(c.Subject) == "" {
			return invalid("classes", "class subject is required")
		}
		if _, err := time.Parse("15:04", c.Time); err != nil {
			return invalid("classes", "class time must be HH:MM")
		}
		switch c.Day {
		case "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday":
		default:
			return invalid("classes", "unknown day for class "+r.Classes[i].Subject)
		}
	}
	return nil
}
