package dto

import (
	"time"

	"github.com/noah-isme/mentor-insight-api/internal/models"
)

// LearnerListRequest captures reports-page filter query parameters.
type LearnerListRequest struct {
	Search  string `form:"search"`
	BatchID string `form:"batchId"`
}

// LearnerListResponse returns the visible learners under the active filters
// together with the current selection.
type LearnerListResponse struct {
	Learners []models.Learner `json:"learners"`
	Selected []string         `json:"selected"`
}

// SelectionResponse echoes the selection set after a mutation.
type SelectionResponse struct {
	Selected []string `json:"selected"`
	Count    int      `json:"count"`
}

// DecisionResponse returns the learner after an approve/reject decision.
type DecisionResponse struct {
	Learner models.Learner `json:"learner"`
	Synced  bool           `json:"synced"`
}

// ExportResponse describes a generated report file and how to fetch it.
type ExportResponse struct {
	ExportID    string    `json:"exportId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
