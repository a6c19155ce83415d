package mockdata

import (
	"math/rand"
	"strings"
	"time"

	"github.com/noah-isme/mentor-insight-api/internal/models"
)

// Dataset is a self-consistent synthetic snapshot of every resource the
// dashboard serves. It substitutes for the upstream learning platform when
// live fetching is unavailable.
type Dataset struct {
	Stats       models.DashboardStats
	Students    []models.Student
	Courses     []models.Course
	Evaluations []models.Evaluation
	Sessions    []models.Session
	Messages    []models.Message
	Insights    models.Insights

	Learners      []models.Learner
	Batches       []models.Batch
	BatchFeedback map[string]string

	TrackedStudents []models.TrackedStudent
	CourseInsights  map[string]models.CourseInsight
}

// Generator synthesizes datasets from fixed base records plus randomized
// derived fields. Inject a seeded rand.Rand for reproducible output.
type Generator struct {
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator builds a generator. A zero seed uses wall-clock entropy.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		now: time.Now,
	}
}

var baseStudents = []string{
	"Alice Johnson", "Bob Smith", "Charlie Brown",
	"Diana Prince", "Eve Wilson", "Frank Miller",
}

var baseCourses = []struct {
	Title string
	Level string
}{
	{"React for Beginners", "Beginner"},
	{"Advanced Node.js", "Advanced"},
	{"Python Basics", "Beginner"},
	{"JavaScript Fundamentals", "Intermediate"},
	{"Database Design", "Intermediate"},
	{"Machine Learning Intro", "Advanced"},
}

var insightMonths = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun"}

// Generate produces a fresh dataset. Each call re-rolls the random fields, so
// callers that need stability across requests must hold onto the result.
func (g *Generator) Generate() *Dataset {
	students := g.students()
	courses := g.courses()
	evaluations := evaluationsFor(students, courses)
	sessions := sessionList()
	messages := messagesFor(students)

	ds := &Dataset{
		Students:        students,
		Courses:         courses,
		Evaluations:     evaluations,
		Sessions:        sessions,
		Messages:        messages,
		Insights:        g.insights(students, courses),
		Learners:        sampleLearners(),
		Batches:         sampleBatches(),
		BatchFeedback:   sampleBatchFeedback(),
		TrackedStudents: sampleTrackedStudents(),
		CourseInsights:  sampleCourseInsights(),
	}
	ds.Stats = computeStats(ds)
	return ds
}

func (g *Generator) students() []models.Student {
	out := make([]models.Student, 0, len(baseStudents))
	for i, name := range baseStudents {
		daysAgo := g.rng.Float64() * 10
		last := g.now().Add(-time.Duration(daysAgo * float64(24*time.Hour)))
		out = append(out, models.Student{
			ID:              i + 1,
			Name:            name,
			CoursesEnrolled: g.rng.Intn(4) + 1,
			Progress:        g.rng.Intn(71) + 30,
			LastActivity:    last.Format("2006-01-02"),
		})
	}
	return out
}

func (g *Generator) courses() []models.Course {
	out := make([]models.Course, 0, len(baseCourses))
	for i, base := range baseCourses {
		out = append(out, models.Course{
			ID:       i + 1,
			Title:    base.Title,
			Level:    base.Level,
			Students: g.rng.Intn(16) + 5,
			Progress: g.rng.Intn(101),
		})
	}
	// Guarantee at least one completed course for the stats partition.
	for i := range out {
		if out[i].Title == "Python Basics" {
			out[i].Progress = 100
		}
	}
	return out
}

func evaluationsFor(students []models.Student, courses []models.Course) []models.Evaluation {
	return []models.Evaluation{
		{ID: 1, StudentName: students[0].Name, Course: courses[0].Title, Assignment: "Build a Todo App", DueDate: "2023-12-15", Status: "Pending"},
		{ID: 2, StudentName: students[1].Name, Course: courses[1].Title, Assignment: "API Development Project", DueDate: "2023-12-18", Status: "Pending"},
		{ID: 3, StudentName: students[3].Name, Course: courses[3].Title, Assignment: "DOM Manipulation Quiz", DueDate: "2023-12-20", Status: "Pending"},
	}
}

func messagesFor(students []models.Student) []models.Message {
	return []models.Message{
		{ID: 1, StudentName: students[3].Name, Message: "Can we review the last assignment?", Time: "2h ago"},
		{ID: 2, StudentName: students[1].Name, Message: "I have a question about the project setup.", Time: "5h ago"},
		{ID: 3, StudentName: students[0].Name, Message: "Thanks for the feedback!", Time: "1d ago"},
	}
}

func sessionList() []models.Session {
	live := models.SessionLive
	return []models.Session{
		{ID: 1, Title: "React Q&A", Time: "10:00 AM Today", Status: &live},
		{ID: 2, Title: "Node.js Workshop", Time: "2:00 PM Tomorrow", Status: nil},
	}
}

func (g *Generator) insights(students []models.Student, courses []models.Course) models.Insights {
	keys := make([]string, 0, len(students))
	for _, s := range students {
		first := strings.SplitN(s.Name, " ", 2)[0]
		keys = append(keys, strings.ToLower(first))
	}

	progress := make([]models.MonthlyProgress, 0, len(insightMonths))
	for _, month := range insightMonths {
		scores := make(map[string]int, len(keys))
		for _, key := range keys {
			scores[key] = g.rng.Intn(60) + 10
		}
		progress = append(progress, models.MonthlyProgress{Month: month, Scores: scores})
	}

	engagement := make([]models.CourseEngagement, 0, len(courses))
	for _, course := range courses {
		engagement = append(engagement, models.CourseEngagement{
			Course:       course.Title,
			TimeSpent:    g.rng.Intn(150) + 50,
			Interactions: g.rng.Intn(70) + 20,
		})
	}

	return models.Insights{ProgressData: progress, EngagementData: engagement}
}

func computeStats(ds *Dataset) models.DashboardStats {
	stats := models.DashboardStats{
		TotalStudents:      len(ds.Students),
		PendingEvaluations: len(ds.Evaluations),
	}
	for _, s := range ds.Students {
		stats.EnrolledCourses += s.CoursesEnrolled
	}
	for _, c := range ds.Courses {
		if c.Progress == 100 {
			stats.CompletedCourses++
		} else {
			stats.ActiveCourses++
		}
	}
	for _, s := range ds.Sessions {
		if s.Status == nil || *s.Status != models.SessionLive {
			stats.UpcomingSessions++
		}
	}
	return stats
}

func sampleLearners() []models.Learner {
	return []models.Learner{
		{ID: "L001", Name: "Alice Johnson", BatchID: "B001", BatchName: "Batch A-2024", Progress: 95, CertificateStatus: models.CertificateUnsigned, CompletionDate: "2024-10-15", FinalScore: 95},
		{ID: "L002", Name: "Bob Smith", BatchID: "B002", BatchName: "Batch B-2024", Progress: 65, CertificateStatus: models.CertificateUnsigned, CompletionDate: "2024-09-10", FinalScore: 72},
		{ID: "L003", Name: "Charlie Brown", BatchID: "B003", BatchName: "Batch C-2024", Progress: 88, CertificateStatus: models.CertificateUnsigned, CompletionDate: "2024-09-28", FinalScore: 89},
		{ID: "L004", Name: "David Wilson", BatchID: "B004", BatchName: "Batch D-2024", Progress: 70, CertificateStatus: models.CertificateUnsigned, CompletionDate: "2024-08-14", FinalScore: 74},
		{ID: "L005", Name: "Emily Clark", BatchID: "B005", BatchName: "Batch E-2024", Progress: 98, CertificateStatus: models.CertificateUnsigned, CompletionDate: "2024-10-20", FinalScore: 97},
		{ID: "L006", Name: "Fiona Davis", BatchID: "B006", BatchName: "Batch F-2024", Progress: 60, CertificateStatus: models.CertificateUnsigned, CompletionDate: "2024-07-05", FinalScore: 63},
	}
}

func sampleBatches() []models.Batch {
	return []models.Batch{
		{ID: "B001", Name: "Batch A-2024", StartDate: "2024-01-15", EndDate: "2024-06-15", TotalEnrolled: 25, Completed: 18, AvgProgress: 82},
		{ID: "B002", Name: "Batch B-2024", StartDate: "2024-03-01", EndDate: "2024-08-01", TotalEnrolled: 30, Completed: 12, AvgProgress: 65},
		{ID: "B003", Name: "Batch C-2024", StartDate: "2024-04-10", EndDate: "2024-09-10", TotalEnrolled: 28, Completed: 20, AvgProgress: 78},
		{ID: "B004", Name: "Batch D-2024", StartDate: "2024-02-18", EndDate: "2024-07-15", TotalEnrolled: 32, Completed: 16, AvgProgress: 70},
		{ID: "B005", Name: "Batch E-2024", StartDate: "2024-05-05", EndDate: "2024-10-05", TotalEnrolled: 22, Completed: 10, AvgProgress: 86},
		{ID: "B006", Name: "Batch F-2024", StartDate: "2024-01-20", EndDate: "2024-05-20", TotalEnrolled: 26, Completed: 14, AvgProgress: 67},
	}
}

func sampleBatchFeedback() map[string]string {
	return map[string]string{
		"Batch A-2024": "Good progress, strong engagement",
		"Batch B-2024": "Needs improvement in assignment submissions",
		"Batch C-2024": "Excellent participation and completion rate",
		"Batch D-2024": "Learners are improving steadily",
		"Batch E-2024": "Outstanding group, very consistent",
		"Batch F-2024": "Slow progress, requires more support",
	}
}

func sampleTrackedStudents() []models.TrackedStudent {
	return []models.TrackedStudent{
		{ID: 1, Name: "Emily Johnson", Email: "emily.j@school.edu", Progress: 87, Status: models.StatusActive, LastActive: "2 hours ago", TasksCompleted: 26, TotalTasks: 30},
		{ID: 2, Name: "Michael Chen", Email: "michael.c@school.edu", Progress: 52, Status: models.StatusAtRisk, LastActive: "3 days ago", TasksCompleted: 15, TotalTasks: 30},
		{ID: 3, Name: "Sarah Williams", Email: "sarah.w@school.edu", Progress: 94, Status: models.StatusActive, LastActive: "5 hours ago", TasksCompleted: 28, TotalTasks: 30},
		{ID: 4, Name: "James Rodriguez", Email: "james.r@school.edu", Progress: 23, Status: models.StatusInactive, LastActive: "1 week ago", TasksCompleted: 7, TotalTasks: 30},
		{ID: 5, Name: "Olivia Brown", Email: "olivia.b@school.edu", Progress: 79, Status: models.StatusActive, LastActive: "1 day ago", TasksCompleted: 24, TotalTasks: 30},
	}
}

func sampleCourseInsights() map[string]models.CourseInsight {
	return map[string]models.CourseInsight{
		"Node.js Fundamentals": {
			Engagement: []models.EngagementPoint{
				{Day: "Mon", Engagement: 20}, {Day: "Tue", Engagement: 10}, {Day: "Wed", Engagement: 18},
				{Day: "Thu", Engagement: 15}, {Day: "Fri", Engagement: 8},
			},
			Activity: []models.ActivityPoint{
				{Name: "Sun", Value: 10}, {Name: "Mon", Value: 15}, {Name: "Tue", Value: 15},
				{Name: "Wed", Value: 17}, {Name: "Thu", Value: 15}, {Name: "Fri", Value: 10}, {Name: "Sat", Value: 18},
			},
			Stats: models.CourseStats{TotalStudents: 5, AvgTimeSpent: "90 mins", DropOffRate: "25%"},
		},
		"React Basics": {
			Engagement: []models.EngagementPoint{
				{Day: "Mon", Engagement: 18}, {Day: "Tue", Engagement: 12}, {Day: "Wed", Engagement: 20},
				{Day: "Thu", Engagement: 25}, {Day: "Fri", Engagement: 10},
			},
			Activity: []models.ActivityPoint{
				{Name: "Sun", Value: 11}, {Name: "Mon", Value: 12}, {Name: "Tue", Value: 16},
				{Name: "Wed", Value: 15}, {Name: "Thu", Value: 10}, {Name: "Fri", Value: 18}, {Name: "Sat", Value: 12},
			},
			Stats: models.CourseStats{TotalStudents: 5, AvgTimeSpent: "75 mins", DropOffRate: "30%"},
		},
	}
}
