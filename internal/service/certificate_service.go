package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	"github.com/noah-isme/mentor-insight-api/internal/models"
	"github.com/noah-isme/mentor-insight-api/internal/remote"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/jobs"
)

// DecisionSyncJob is the payload pushed onto the sync queue after an
// optimistic approve/reject.
type DecisionSyncJob struct {
	LearnerID string
	Path      string
}

type decisionQueue interface {
	Enqueue(jobs.Job) error
}

// CertificateService owns the reports-page learner and batch collections for
// the session and applies certificate decisions. Decisions commit locally
// first; the upstream confirmation is queued best-effort and never rolled
// back on failure.
type CertificateService struct {
	client    *remote.Client
	dashboard *DashboardService
	selection *SelectionService
	queue     decisionQueue
	logger    *zap.Logger

	mu       sync.RWMutex
	learners []models.Learner
	batches  []models.Batch
	loaded   bool
}

// CertificateServiceParams groups constructor dependencies.
type CertificateServiceParams struct {
	Client    *remote.Client
	Dashboard *DashboardService
	Selection *SelectionService
	Queue     *jobs.Queue
	Logger    *zap.Logger
}

// NewCertificateService constructs a CertificateService.
func NewCertificateService(params CertificateServiceParams) *CertificateService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &CertificateService{
		client:    params.Client,
		dashboard: params.Dashboard,
		selection: params.Selection,
		logger:    logger,
	}
	if params.Queue != nil {
		svc.queue = params.Queue
	}
	return svc
}

// Load resolves learners and batches, keeping them as session state. When
// refresh is false and a collection is already loaded, the in-memory copy is
// reused. The selection set is pruned against the reloaded collection so it
// never references vanished learners.
func (s *CertificateService) Load(ctx context.Context, refresh bool) {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded && !refresh {
		return
	}

	ds := s.dashboard.Dataset()

	var wg sync.WaitGroup
	var learners []models.Learner
	var batches []models.Batch
	wg.Add(2)
	go func() {
		defer wg.Done()
		learners = remote.Resolve(ctx, s.client, "learners", "learners", ds.Learners)
	}()
	go func() {
		defer wg.Done()
		batches = remote.Resolve(ctx, s.client, "batches", "batches", ds.Batches)
	}()
	wg.Wait()

	s.mu.Lock()
	s.learners = learners
	s.batches = batches
	s.loaded = true
	s.mu.Unlock()

	if s.selection != nil {
		s.selection.Prune(learners)
	}
}

// Learners returns a copy of the current learner collection.
func (s *CertificateService) Learners() []models.Learner {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Learner, len(s.learners))
	copy(out, s.learners)
	return out
}

// Batches returns a copy of the current batch collection.
func (s *CertificateService) Batches() []models.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Batch, len(s.batches))
	copy(out, s.batches)
	return out
}

// BatchByID finds a batch by its identifier.
func (s *CertificateService) BatchByID(id string) (models.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.batches {
		if b.ID == id {
			return b, true
		}
	}
	return models.Batch{}, false
}

// Page composes the full reports-page payload with derived stats.
func (s *CertificateService) Page(ctx context.Context, refresh bool) *dto.ReportsPageResponse {
	s.Load(ctx, refresh)
	learners := s.Learners()
	batches := s.Batches()
	return &dto.ReportsPageResponse{
		Learners:      learners,
		Batches:       batches,
		BatchFeedback: s.dashboard.Dataset().BatchFeedback,
		Stats:         ReportStatsFor(learners, batches),
	}
}

// Approve marks a learner's certificate signed and queues the upstream sync.
func (s *CertificateService) Approve(ctx context.Context, learnerID string) (*dto.DecisionResponse, error) {
	return s.decide(ctx, learnerID, models.CertificateSigned, "approve")
}

// Reject marks a learner's certificate rejected and queues the upstream sync.
func (s *CertificateService) Reject(ctx context.Context, learnerID string) (*dto.DecisionResponse, error) {
	return s.decide(ctx, learnerID, models.CertificateRejected, "reject")
}

func (s *CertificateService) decide(ctx context.Context, learnerID string, status models.CertificateStatus, action string) (*dto.DecisionResponse, error) {
	s.Load(ctx, false)

	s.mu.Lock()
	var updated *models.Learner
	for i := range s.learners {
		if s.learners[i].ID == learnerID {
			s.learners[i].CertificateStatus = status
			l := s.learners[i]
			updated = &l
			break
		}
	}
	s.mu.Unlock()

	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("learner %s not found", learnerID))
	}

	// Local state is committed; the remote confirmation is fire-and-forget.
	queued := false
	if s.queue != nil && s.client.Configured() {
		job := jobs.Job{
			ID:   uuid.NewString(),
			Type: "certificate." + action,
			Payload: DecisionSyncJob{
				LearnerID: learnerID,
				Path:      fmt.Sprintf("learners/%s/%s", learnerID, action),
			},
		}
		if err := s.queue.Enqueue(job); err != nil {
			s.logger.Sugar().Warnw("decision sync enqueue failed", "learner_id", learnerID, "action", action, "error", err)
		} else {
			queued = true
		}
	}

	return &dto.DecisionResponse{Learner: *updated, Synced: queued}, nil
}

// CertificatePath returns the static download path for a learner's
// certificate. Eligibility requires 100% progress or a signed certificate.
func (s *CertificateService) CertificatePath(ctx context.Context, learnerID string) (string, error) {
	s.Load(ctx, false)

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, l := range s.learners {
		if l.ID != learnerID {
			continue
		}
		if !l.CertificateEligible() {
			return "", appErrors.Clone(appErrors.ErrPreconditionFailed, "certificate not available until the learner completes the program or is approved")
		}
		return fmt.Sprintf("/certificates/%s.pdf", learnerID), nil
	}
	return "", appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("learner %s not found", learnerID))
}

// SyncHandler builds the queue handler that pushes queued decisions upstream.
func SyncHandler(client *remote.Client) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		payload, ok := job.Payload.(DecisionSyncJob)
		if !ok {
			return fmt.Errorf("unexpected payload type %T", job.Payload)
		}
		return client.Post(ctx, payload.Path, nil)
	}
}
