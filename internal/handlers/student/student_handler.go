// internal/handlers/student/student_handler.go
package student

import (
	"net/http"
	"strconv"
	"time"

	"acadetrack-service/internal/domain/student"
	"acadetrack-service/internal/middleware"
	"acadetrack-service/internal/pkg/response"
	studentService "acadetrack-service/internal/service/student"
	"acadetrack-service/internal/service/timetable"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentHandler struct {
	studentService *studentService.StudentService
	logger         *zap.Logger
}

func NewStudentHandler(svc *studentService.StudentService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		studentService: svc,
		logger:         logger,
	}
}

// ========== Record ==========

// GetRecord returns the whole student record
func (h *StudentHandler) GetRecord(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	rec, err := h.studentService.GetRecord(c.Request.Context(), identityID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", rec)
}

// PatchRecord replaces the submitted collections
func (h *StudentHandler) PatchRecord(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var patch student.RecordPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	rec, err := h.studentService.PatchRecord(c.Request.Context(), identityID, &patch)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "record updated", rec)
}

// ========== Activities ==========

func (h *StudentHandler) AddActivity(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req student.CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	activity, err := h.studentService.AddActivity(c.Request.Context(), identityID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "activity added", activity)
}

func (h *StudentHandler) UpdateActivity(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req student.UpdateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	activity, err := h.studentService.UpdateActivity(c.Request.Context(), identityID, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "activity updated", activity)
}

func (h *StudentHandler) DeleteActivity(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	if err := h.studentService.DeleteActivity(c.Request.Context(), identityID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "activity deleted", nil)
}

// ========== Goals ==========

func (h *StudentHandler) AddGoal(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req student.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	goal, err := h.studentService.AddGoal(c.Request.Context(), identityID, &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "goal added", goal)
}

func (h *StudentHandler) UpdateGoal(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req student.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	goal, err := h.studentService.UpdateGoal(c.Request.Context(), identityID, c.Param("id"), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "goal updated", goal)
}

func (h *StudentHandler) DeleteGoal(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	if err := h.studentService.DeleteGoal(c.Request.Context(), identityID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "goal deleted", nil)
}

// ========== Timetable ==========

// GenerateTimetable builds a weekly plan around the uploaded classes
// and stores it as the student's timetable. A seed query parameter
// makes the result reproducible.
func (h *StudentHandler) GenerateTimetable(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req student.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}
	if err := req.Validate(); err != nil {
		response.FromError(c, err)
		return
	}

	seed := time.Now().UnixNano()
	if raw := c.Query("seed"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "seed must be an integer", err)
			return
		}
		seed = parsed
	}

	entries := timetable.NewGenerator(seed).Generate(req.Classes)

	rec, err := h.studentService.SetTimetable(c.Request.Context(), identityID, entries)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "timetable generated", gin.H{
		"timetable": rec.Timetable,
		"seed":      seed,
	})
}

// SetTimetable replaces the timetable with the submitted entries
func (h *StudentHandler) SetTimetable(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	var req struct {
		Timetable []student.TimetableEntry `json:"timetable"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	rec, err := h.studentService.SetTimetable(c.Request.Context(), identityID, req.Timetable)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "timetable updated", rec.Timetable)
}

// ========== Summary ==========

// Summary returns today's progress and goal aggregates
func (h *StudentHandler) Summary(c *gin.Context) {
	identityID := middleware.MustGetIdentityID(c)

	summary, err := h.studentService.Summary(c.Request.Context(), identityID, time.Now())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "ok", summary)
}
