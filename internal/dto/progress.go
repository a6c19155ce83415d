package dto

import "github.com/noah-isme/mentor-insight-api/internal/models"

// ProgressListRequest captures student-progress filter query parameters.
type ProgressListRequest struct {
	Search string `form:"search"`
	Status string `form:"status"`
}

// ProgressPageResponse bundles tracked students, the summary cards and the
// available course insight names.
type ProgressPageResponse struct {
	Students []models.TrackedStudent `json:"students"`
	Summary  models.ProgressSummary  `json:"summary"`
	Courses  []string                `json:"courses"`
}

// CourseInsightResponse wraps a single course's chart series.
type CourseInsightResponse struct {
	Course  string               `json:"course"`
	Insight models.CourseInsight `json:"insight"`
}

// FeedbackRequest is a mentor's feedback message for one student.
type FeedbackRequest struct {
	Message string `json:"message" validate:"required,min=1,max=2000"`
}

// FeedbackResponse acknowledges a delivered feedback message.
type FeedbackResponse struct {
	StudentID int    `json:"studentId"`
	Student   string `json:"student"`
	Delivered bool   `json:"delivered"`
}
