package dto

import "github.com/noah-isme/mentor-insight-api/internal/models"

// DashboardOverviewResponse bundles every resource the overview page renders.
type DashboardOverviewResponse struct {
	Stats       models.DashboardStats  `json:"stats"`
	Students    []models.Student       `json:"students"`
	Courses     []models.Course        `json:"courses"`
	Evaluations []models.Evaluation    `json:"evaluations"`
	Sessions    []models.Session       `json:"sessions"`
	Messages    []models.Message       `json:"messages"`
	Insights    models.Insights        `json:"insights"`
}

// ReportStats carries the aggregate cards on the reports page.
type ReportStats struct {
	TotalLearners       int `json:"totalLearners"`
	ActiveBatches       int `json:"activeBatches"`
	PendingCertificates int `json:"pendingCertificates"`
	AvgProgress         int `json:"avgProgress"`
}

// ReportsPageResponse bundles learners, batches and derived stats.
type ReportsPageResponse struct {
	Learners      []models.Learner  `json:"learners"`
	Batches       []models.Batch    `json:"batches"`
	BatchFeedback map[string]string `json:"batchFeedback"`
	Stats         ReportStats       `json:"stats"`
}
