package models

// StudentStatus enumerates activity categories on the progress page.
type StudentStatus string

const (
	StatusActive   StudentStatus = "Active"
	StatusAtRisk   StudentStatus = "At Risk"
	StatusInactive StudentStatus = "Inactive"
)

// TrackedStudent is an individual monitored on the student progress page.
type TrackedStudent struct {
	ID             int           `json:"id"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Progress       int           `json:"progress"`
	Status         StudentStatus `json:"status"`
	LastActive     string        `json:"last_active"`
	TasksCompleted int           `json:"tasks_completed"`
	TotalTasks     int           `json:"total_tasks"`
}

// EngagementPoint is one weekday's engagement reading for a course.
type EngagementPoint struct {
	Day        string `json:"day"`
	Engagement int    `json:"engagement"`
}

// ActivityPoint is one day's activity volume for a course.
type ActivityPoint struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CourseStats carries headline figures for a course insight panel.
type CourseStats struct {
	TotalStudents int    `json:"total_students"`
	AvgTimeSpent  string `json:"avg_time_spent"`
	DropOffRate   string `json:"drop_off_rate"`
}

// CourseInsight groups the chart series and stats for one course.
type CourseInsight struct {
	Engagement []EngagementPoint `json:"engagement"`
	Activity   []ActivityPoint   `json:"activity"`
	Stats      CourseStats       `json:"stats"`
}

// ProgressSummary aggregates the tracked-student collection.
type ProgressSummary struct {
	TotalStudents int `json:"total_students"`
	AvgProgress   int `json:"avg_progress"`
	ActiveCount   int `json:"active_count"`
	AtRiskCount   int `json:"at_risk_count"`
}
