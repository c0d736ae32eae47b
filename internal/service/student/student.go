// internal/service/student/student.go
package student

import (
	"context"
	"time"

	"acadetrack-service/internal/domain/student"
	xerrors "acadetrack-service/internal/pkg/errors"
	"acadetrack-service/internal/repository/postgres"

	"github.com/lib/pq"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// StudentService works on the whole-record model: every mutation loads
// the record, applies the change in memory and persists the full blob.
type StudentService struct {
	repo   *postgres.StudentRepository
	logger *zap.Logger
}

func NewStudentService(repo *postgres.StudentRepository, logger *zap.Logger) *StudentService {
	return &StudentService{repo: repo, logger: logger}
}

// ========== Record ==========

// GetRecord returns the student's full record.
func (s *StudentService) GetRecord(ctx context.Context, identityID int64) (*student.Record, error) {
	return s.repo.LoadRecord(ctx, identityID)
}

// PatchRecord replaces only the collections present in the patch.
func (s *StudentService) PatchRecord(ctx context.Context, identityID int64, patch *student.RecordPatch) (*student.Record, error) {
	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	rec.Merge(patch)

	if err := s.repo.SaveRecord(ctx, identityID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ========== Activities ==========

func (s *StudentService) AddActivity(ctx context.Context, identityID int64, req *student.CreateActivityRequest) (*student.Activity, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = student.CategoryOther
	}

	activity := student.Activity{
		ID:              ulid.Make().String(),
		Name:            req.Name,
		Category:        category,
		Date:            req.Date,
		DurationMinutes: req.DurationMinutes,
		Completed:       req.Completed,
	}
	rec.Activities = append(rec.Activities, activity)

	if err := s.repo.SaveRecord(ctx, identityID, rec); err != nil {
		return nil, err
	}
	return &activity, nil
}

func (s *StudentService) UpdateActivity(ctx context.Context, identityID int64, activityID string, req *student.UpdateActivityRequest) (*student.Activity, error) {
	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range rec.Activities {
		if rec.Activities[i].ID == activityID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, xerrors.ErrNotFound
	}

	a := &rec.Activities[idx]
	if req.Name != nil {
		a.Name = *req.Name
	}
	if req.Category != nil {
		a.Category = *req.Category
	}
	if req.Date != nil {
		a.Date = *req.Date
	}
	if req.DurationMinutes != nil {
		a.DurationMinutes = *req.DurationMinutes
	}
	if req.Completed != nil {
		a.Completed = *req.Completed
	}

	if err := s.repo.SaveRecord(ctx, identityID, rec); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *StudentService) DeleteActivity(ctx context.Context, identityID int64, activityID string) error {
	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return err
	}

	kept := rec.Activities[:0]
	found := false
	for _, a := range rec.Activities {
		if a.ID == activityID {
			found = true
			continue
		}
		kept = append(kept, a)
	}
	if !found {
		return xerrors.ErrNotFound
	}
	rec.Activities = kept

	return s.repo.SaveRecord(ctx, identityID, rec)
}

// ========== Goals ==========

func (s *StudentService) AddGoal(ctx context.Context, identityID int64, req *student.CreateGoalRequest) (*student.Goal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	priority := req.Priority
	if priority == "" {
		priority = student.PriorityMedium
	}

	goal := student.Goal{
		ID:       ulid.Make().String(),
		Title:    req.Title,
		Deadline: req.Deadline,
		Priority: priority,
		Tags:     pq.StringArray(req.Tags),
	}
	rec.Goals = append(rec.Goals, goal)

	if err := s.repo.SaveRecord(ctx, identityID, rec); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *StudentService) UpdateGoal(ctx context.Context, identityID int64, goalID string, req *student.UpdateGoalRequest) (*student.Goal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range rec.Goals {
		if rec.Goals[i].ID == goalID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, xerrors.ErrNotFound
	}

	g := &rec.Goals[idx]
	if req.Title != nil {
		g.Title = *req.Title
	}
	if req.Deadline != nil {
		g.Deadline = *req.Deadline
	}
	if req.Completed != nil {
		g.Completed = *req.Completed
	}
	if req.Progress != nil {
		g.Progress = *req.Progress
		if g.Progress >= 100 {
			g.Completed = true
		}
	}
	if req.Priority != nil {
		g.Priority = *req.Priority
	}

	if err := s.repo.SaveRecord(ctx, identityID, rec); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *StudentService) DeleteGoal(ctx context.Context, identityID int64, goalID string) error {
	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return err
	}

	kept := rec.Goals[:0]
	found := false
	for _, g := range rec.Goals {
		if g.ID == goalID {
			found = true
			continue
		}
		kept = append(kept, g)
	}
	if !found {
		return xerrors.ErrNotFound
	}
	rec.Goals = kept

	return s.repo.SaveRecord(ctx, identityID, rec)
}

// ========== Timetable ==========

// SetTimetable replaces the stored timetable wholesale.
func (s *StudentService) SetTimetable(ctx context.Context, identityID int64, entries []student.TimetableEntry) (*student.Record, error) {
	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []student.TimetableEntry{}
	}
	rec.Timetable = entries

	if err := s.repo.SaveRecord(ctx, identityID, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ========== Summary ==========

// Summary computes today's completion ratio and goal aggregates.
func (s *StudentService) Summary(ctx context.Context, identityID int64, now time.Time) (*student.Summary, error) {
	rec, err := s.repo.LoadRecord(ctx, identityID)
	if err != nil {
		return nil, err
	}

	today := now.Format("2006-01-02")
	summary := &student.Summary{Date: today}

	for _, a := range rec.ActivitiesOn(today) {
		summary.ActivitiesToday++
		if a.Completed {
			summary.CompletedToday++
		}
	}
	if summary.ActivitiesToday > 0 {
		summary.CompletionPercent = summary.CompletedToday * 100 / summary.ActivitiesToday
	}

	totalProgress := 0
	for _, g := range rec.Goals {
		summary.TotalGoals++
		if g.Completed {
			summary.CompletedGoals++
		}
		totalProgress += g.Progress
	}
	if summary.TotalGoals > 0 {
		summary.AverageProgress = totalProgress / summary.TotalGoals
	}

	summary.StudyHoursThisWeek = studyHoursSince(rec, startOfWeek(now))
	return summary, nil
}

// startOfWeek returns midnight of the current week's Monday.
func startOfWeek(now time.Time) time.Time {
	day := now
	for day.Weekday() != time.Monday {
		day = day.AddDate(0, 0, -1)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
}

func studyHoursSince(rec *student.Record, from time.Time) float64 {
	// Dates are calendar days, so compare them as YYYY-MM-DD strings
	// rather than instants in mixed locations.
	fromDate := from.Format("2006-01-02")
	minutes := 0
	for _, a := range rec.Activities {
		if a.Date < fromDate {
			continue
		}
		if a.Category == student.CategoryStudy || a.Category == student.CategoryReading {
			minutes += a.DurationMinutes
		}
	}
	return float64(minutes) / 60.0
}
