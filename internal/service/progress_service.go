package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	"github.com/noah-isme/mentor-insight-api/internal/models"
	"github.com/noah-isme/mentor-insight-api/internal/remote"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/mail"
)

// ProgressService serves the student-progress page: tracked students, course
// insight charts and mentor feedback delivery.
type ProgressService struct {
	client    *remote.Client
	dashboard *DashboardService
	notifier  mail.Notifier
	validate  *validator.Validate
	logger    *zap.Logger

	mu       sync.RWMutex
	students []models.TrackedStudent
	insights map[string]models.CourseInsight
	loaded   bool
}

// ProgressServiceParams groups constructor dependencies.
type ProgressServiceParams struct {
	Client    *remote.Client
	Dashboard *DashboardService
	Notifier  mail.Notifier
	Logger    *zap.Logger
}

// NewProgressService constructs a ProgressService.
func NewProgressService(params ProgressServiceParams) *ProgressService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressService{
		client:    params.Client,
		dashboard: params.Dashboard,
		notifier:  params.Notifier,
		validate:  validator.New(),
		logger:    logger,
	}
}

// Load resolves tracked students and course insights, falling back to the
// fixed sample data when the upstream is unavailable.
func (s *ProgressService) Load(ctx context.Context, refresh bool) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded && !refresh {
		return
	}

	ds := s.dashboard.Dataset()

	var wg sync.WaitGroup
	var students []models.TrackedStudent
	var insights map[string]models.CourseInsight
	wg.Add(2)
	go func() {
		defer wg.Done()
		students = remote.Resolve(ctx, s.client, "tracked_students", "students", ds.TrackedStudents)
	}()
	go func() {
		defer wg.Done()
		insights = remote.Resolve(ctx, s.client, "course_insights", "courses", ds.CourseInsights)
	}()
	wg.Wait()

	if len(insights) == 0 {
		insights = ds.CourseInsights
	}

	s.mu.Lock()
	s.students = students
	s.insights = insights
	s.loaded = true
	s.mu.Unlock()
}

// Page returns students filtered by status and search term, plus summary
// cards and the available course names.
func (s *ProgressService) Page(ctx context.Context, req dto.ProgressListRequest) *dto.ProgressPageResponse {
	s.Load(ctx, false)

	s.mu.RLock()
	defer s.mu.RUnlock()

	students := filterStudents(s.students, req)
	courses := make([]string, 0, len(s.insights))
	for name := range s.insights {
		courses = append(courses, name)
	}
	sort.Strings(courses)

	return &dto.ProgressPageResponse{
		Students: students,
		Summary:  summarize(s.students),
		Courses:  courses,
	}
}

// CourseInsight returns one course's chart series.
func (s *ProgressService) CourseInsight(ctx context.Context, course string) (*dto.CourseInsightResponse, error) {
	s.Load(ctx, false)

	s.mu.RLock()
	defer s.mu.RUnlock()
	insight, ok := s.insights[course]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %q not found", course))
	}
	return &dto.CourseInsightResponse{Course: course, Insight: insight}, nil
}

// SendFeedback delivers a mentor's message to one student. Delivery is
// best-effort: a mail failure is reported in the response, not as an error.
func (s *ProgressService) SendFeedback(ctx context.Context, studentID int, req dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "feedback message is required")
	}

	s.Load(ctx, false)

	s.mu.RLock()
	var student *models.TrackedStudent
	for i := range s.students {
		if s.students[i].ID == studentID {
			st := s.students[i]
			student = &st
			break
		}
	}
	s.mu.RUnlock()

	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %d not found", studentID))
	}

	delivered := false
	if s.notifier != nil {
		subject := "Feedback from your mentor"
		if err := s.notifier.Send(ctx, student.Name, student.Email, subject, req.Message); err != nil {
			s.logger.Sugar().Warnw("feedback delivery failed", "student_id", studentID, "error", err)
		} else {
			delivered = true
		}
	}

	return &dto.FeedbackResponse{StudentID: student.ID, Student: student.Name, Delivered: delivered}, nil
}

func filterStudents(students []models.TrackedStudent, req dto.ProgressListRequest) []models.TrackedStudent {
	search := strings.ToLower(req.Search)
	out := make([]models.TrackedStudent, 0, len(students))
	for _, st := range students {
		if req.Status != "" && req.Status != "All" && string(st.Status) != req.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.Email), search) {
			continue
		}
		out = append(out, st)
	}
	return out
}

func summarize(students []models.TrackedStudent) models.ProgressSummary {
	summary := models.ProgressSummary{TotalStudents: len(students)}
	if len(students) == 0 {
		return summary
	}
	sum := 0
	for _, st := range students {
		sum += st.Progress
		switch st.Status {
		case models.StatusActive:
			summary.ActiveCount++
		case models.StatusAtRisk:
			summary.AtRiskCount++
		}
	}
	summary.AvgProgress = (sum + len(students)/2) / len(students)
	return summary
}
