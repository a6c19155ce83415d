package models

import "encoding/json"

// Student represents an individual shown on the dashboard overview.
type Student struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	CoursesEnrolled int    `json:"courses_enrolled"`
	Progress        int    `json:"progress"`
	LastActivity    string `json:"last_activity"`
}

// Course represents a curriculum unit with enrollment figures.
type Course struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Level    string `json:"level"`
	Image    string `json:"image,omitempty"`
	Students int    `json:"students"`
	Progress int    `json:"progress"`
}

// Evaluation is a pending assignment review referencing a student and course.
type Evaluation struct {
	ID          int    `json:"id"`
	StudentName string `json:"student_name"`
	Course      string `json:"course"`
	Assignment  string `json:"assignment"`
	DueDate     string `json:"due_date"`
	Status      string `json:"status"`
}

// Message is a short note from a student to the mentor.
type Message struct {
	ID          int    `json:"id"`
	StudentName string `json:"student_name"`
	Message     string `json:"message"`
	Time        string `json:"time"`
}

// Session is a scheduled or live mentoring session. Status is nil unless live.
type Session struct {
	ID     int     `json:"id"`
	Title  string  `json:"title"`
	Time   string  `json:"time"`
	Status *string `json:"status"`
}

// SessionLive marks a session currently in progress.
const SessionLive = "LIVE"

// MonthlyProgress holds one month's progress score per tracked student,
// serialized flat as {"month": "Jan", "alice": 42, ...} to match the
// consumer-side chart format.
type MonthlyProgress struct {
	Month  string
	Scores map[string]int
}

// MarshalJSON flattens the scores next to the month label.
func (m MonthlyProgress) MarshalJSON() ([]byte, error) {
	flat := make(map[string]interface{}, len(m.Scores)+1)
	flat["month"] = m.Month
	for key, score := range m.Scores {
		flat[key] = score
	}
	return json.Marshal(flat)
}

// UnmarshalJSON reverses the flattened layout.
func (m *MonthlyProgress) UnmarshalJSON(data []byte) error {
	flat := map[string]interface{}{}
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	m.Scores = make(map[string]int, len(flat))
	for key, value := range flat {
		if key == "month" {
			if s, ok := value.(string); ok {
				m.Month = s
			}
			continue
		}
		if n, ok := value.(float64); ok {
			m.Scores[key] = int(n)
		}
	}
	return nil
}

// CourseEngagement summarizes interaction volume for one course.
type CourseEngagement struct {
	Course       string `json:"course"`
	TimeSpent    int    `json:"time_spent"`
	Interactions int    `json:"interactions"`
}

// Insights bundles the dashboard chart series.
type Insights struct {
	ProgressData   []MonthlyProgress  `json:"progress_data"`
	EngagementData []CourseEngagement `json:"engagement_data"`
}

// DashboardStats carries the aggregate counters shown on the overview cards.
type DashboardStats struct {
	EnrolledCourses    int `json:"enrolled_courses"`
	ActiveCourses      int `json:"active_courses"`
	CompletedCourses   int `json:"completed_courses"`
	TotalStudents      int `json:"total_students"`
	PendingEvaluations int `json:"pending_evaluations"`
	UpcomingSessions   int `json:"upcoming_sessions"`
}
