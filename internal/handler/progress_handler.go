package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/response"
)

type progressService interface {
	Page(ctx context.Context, req dto.ProgressListRequest) *dto.ProgressPageResponse
	CourseInsight(ctx context.Context, course string) (*dto.CourseInsightResponse, error)
	SendFeedback(ctx context.Context, studentID int, req dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

// ProgressHandler serves the student progress page.
type ProgressHandler struct {
	service progressService
}

// NewProgressHandler constructs the handler.
func NewProgressHandler(service progressService) *ProgressHandler {
	return &ProgressHandler{service: service}
}

// Students godoc
// @Summary Tracked students with filters and summary cards
// @Tags Progress
// @Produce json
// @Param search query string false "Name or email substring"
// @Param status query string false "Status filter (Active, At Risk, Inactive, All)"
// @Success 200 {object} response.Envelope
// @Router /progress/students [get]
func (h *ProgressHandler) Students(c *gin.Context) {
	var req dto.ProgressListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filter parameters"))
		return
	}
	response.JSON(c, http.StatusOK, h.service.Page(c.Request.Context(), req))
}

// CourseInsight godoc
// @Summary Chart series and stats for one course
// @Tags Progress
// @Produce json
// @Param name path string true "Course name"
// @Success 200 {object} response.Envelope
// @Router /progress/courses/{name} [get]
func (h *ProgressHandler) CourseInsight(c *gin.Context) {
	res, err := h.service.CourseInsight(c.Request.Context(), c.Param("name"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// SendFeedback godoc
// @Summary Deliver mentor feedback to one student
// @Tags Progress
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param payload body dto.FeedbackRequest true "Feedback message"
// @Success 200 {object} response.Envelope
// @Router /progress/students/{id}/feedback [post]
func (h *ProgressHandler) SendFeedback(c *gin.Context) {
	studentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "student id must be numeric"))
		return
	}
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid feedback payload"))
		return
	}
	res, err := h.service.SendFeedback(c.Request.Context(), studentID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}
