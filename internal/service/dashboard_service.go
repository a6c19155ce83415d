package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	"github.com/noah-isme/mentor-insight-api/internal/mockdata"
	"github.com/noah-isme/mentor-insight-api/internal/models"
	"github.com/noah-isme/mentor-insight-api/internal/remote"
)

const dashboardCacheKey = "dashboard:overview"

// DashboardService composes the overview page payload: each resource is
// resolved independently against the upstream with the shared mock dataset as
// fallback, then aggregate statistics are derived.
type DashboardService struct {
	client    *remote.Client
	generator *mockdata.Generator
	cache     *CacheService
	logger    *zap.Logger
	cacheTTL  time.Duration

	mu      sync.Mutex
	dataset *mockdata.Dataset
}

// DashboardServiceParams groups constructor dependencies.
type DashboardServiceParams struct {
	Client    *remote.Client
	Generator *mockdata.Generator
	Cache     *CacheService
	Logger    *zap.Logger
	CacheTTL  time.Duration
}

// NewDashboardService constructs a DashboardService with sane defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	generator := params.Generator
	if generator == nil {
		generator = mockdata.NewGenerator(0)
	}
	ttl := params.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &DashboardService{
		client:    params.Client,
		generator: generator,
		cache:     params.Cache,
		logger:    logger,
		cacheTTL:  ttl,
	}
}

// Dataset returns the process-wide fallback dataset, generated once on first
// use so repeated requests see stable random values.
func (s *DashboardService) Dataset() *mockdata.Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dataset == nil {
		s.dataset = s.generator.Generate()
	}
	return s.dataset
}

// Refresh discards the memoized dataset so the next access re-rolls it.
func (s *DashboardService) Refresh(ctx context.Context) {
	s.mu.Lock()
	s.dataset = nil
	s.mu.Unlock()
	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, dashboardCacheKey)
	}
}

// Overview resolves all seven overview resources concurrently and returns the
// composed payload. The second return reports cache utilisation.
func (s *DashboardService) Overview(ctx context.Context) (*dto.DashboardOverviewResponse, bool, error) {
	var cached dto.DashboardOverviewResponse
	if hit, err := s.cache.Get(ctx, dashboardCacheKey, &cached); err == nil && hit {
		return &cached, true, nil
	}

	ds := s.Dataset()
	out := &dto.DashboardOverviewResponse{}

	// Each resource resolves independently; one failure never affects the
	// others.
	var wg sync.WaitGroup
	resolve := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fn()
		}()
	}
	resolve(func() {
		out.Stats = remote.Resolve(ctx, s.client, "stats", "mentor/stats", ds.Stats)
	})
	resolve(func() {
		out.Students = remote.Resolve(ctx, s.client, "students", "mentor/students", ds.Students)
	})
	resolve(func() {
		out.Courses = remote.Resolve(ctx, s.client, "courses", "mentor/courses", ds.Courses)
	})
	resolve(func() {
		out.Evaluations = remote.Resolve(ctx, s.client, "evaluations", "mentor/evaluations", ds.Evaluations)
	})
	resolve(func() {
		out.Sessions = remote.Resolve(ctx, s.client, "sessions", "mentor/sessions", ds.Sessions)
	})
	resolve(func() {
		out.Messages = remote.Resolve(ctx, s.client, "messages", "mentor/messages", ds.Messages)
	})
	resolve(func() {
		out.Insights = remote.Resolve(ctx, s.client, "insights", "mentor/insights", ds.Insights)
	})
	wg.Wait()

	if s.cache.Enabled() {
		if err := s.cache.Set(ctx, dashboardCacheKey, out, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache dashboard overview", zap.Error(err))
		}
	}
	return out, false, nil
}

// AverageProgress computes the rounded mean of learner progress, 0 when the
// collection is empty.
func AverageProgress(learners []models.Learner) int {
	if len(learners) == 0 {
		return 0
	}
	sum := 0
	for _, l := range learners {
		sum += l.Progress
	}
	// Integer rounding of sum/len without drifting through float64.
	return (sum + len(learners)/2) / len(learners)
}

// ReportStatsFor derives the reports-page aggregate cards.
func ReportStatsFor(learners []models.Learner, batches []models.Batch) dto.ReportStats {
	pending := 0
	for _, l := range learners {
		if l.CertificateStatus == models.CertificateUnsigned {
			pending++
		}
	}
	return dto.ReportStats{
		TotalLearners:       len(learners),
		ActiveBatches:       len(batches),
		PendingCertificates: pending,
		AvgProgress:         AverageProgress(learners),
	}
}
