package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentor-insight-api/internal/mockdata"
	"github.com/noah-isme/mentor-insight-api/internal/models"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
)

func newCertificateFixture() (*CertificateService, *SelectionService) {
	selection := NewSelectionService()
	dashboard := NewDashboardService(DashboardServiceParams{
		Generator: mockdata.NewGenerator(5),
	})
	svc := NewCertificateService(CertificateServiceParams{
		Dashboard: dashboard,
		Selection: selection,
	})
	return svc, selection
}

func TestLoadFallsBackToSampleData(t *testing.T) {
	svc, _ := newCertificateFixture()
	svc.Load(context.Background(), false)

	learners := svc.Learners()
	require.Len(t, learners, 6)
	assert.Equal(t, "Alice Johnson", learners[0].Name)
	require.Len(t, svc.Batches(), 6)
}

func TestLoadPrunesSelection(t *testing.T) {
	svc, selection := newCertificateFixture()
	selection.Toggle("L001")
	selection.Toggle("GONE")

	svc.Load(context.Background(), true)
	assert.Equal(t, []string{"L001"}, selection.SelectedIDs())
}

func TestApproveCommitsLocally(t *testing.T) {
	svc, _ := newCertificateFixture()

	res, err := svc.Approve(context.Background(), "L002")
	require.NoError(t, err)
	assert.Equal(t, models.CertificateSigned, res.Learner.CertificateStatus)
	// No upstream configured, so nothing was queued for sync.
	assert.False(t, res.Synced)

	for _, l := range svc.Learners() {
		if l.ID == "L002" {
			assert.Equal(t, models.CertificateSigned, l.CertificateStatus)
		}
	}
}

func TestRejectCommitsLocally(t *testing.T) {
	svc, _ := newCertificateFixture()

	res, err := svc.Reject(context.Background(), "L003")
	require.NoError(t, err)
	assert.Equal(t, models.CertificateRejected, res.Learner.CertificateStatus)
}

func TestDecideUnknownLearner(t *testing.T) {
	svc, _ := newCertificateFixture()

	_, err := svc.Approve(context.Background(), "L999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCertificatePathEligibility(t *testing.T) {
	svc, _ := newCertificateFixture()
	ctx := context.Background()

	// Sample learner L002 has 65% progress, unsigned.
	_, err := svc.CertificatePath(ctx, "L002")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)

	// Approval makes the certificate available regardless of progress.
	_, err = svc.Approve(ctx, "L002")
	require.NoError(t, err)
	path, err := svc.CertificatePath(ctx, "L002")
	require.NoError(t, err)
	assert.Equal(t, "/certificates/L002.pdf", path)

	_, err = svc.CertificatePath(ctx, "L999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestPageStats(t *testing.T) {
	svc, _ := newCertificateFixture()
	page := svc.Page(context.Background(), false)

	assert.Equal(t, 6, page.Stats.TotalLearners)
	assert.Equal(t, 6, page.Stats.ActiveBatches)
	assert.Equal(t, 6, page.Stats.PendingCertificates)
	assert.Equal(t, 79, page.Stats.AvgProgress)
	assert.NotEmpty(t, page.BatchFeedback["Batch A-2024"])
}
