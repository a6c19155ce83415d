package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentor-insight-api/internal/mockdata"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/storage"
)

type exportFixture struct {
	exports   *ExportService
	selection *SelectionService
	dir       string
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStorage(dir)
	require.NoError(t, err)

	selection := NewSelectionService()
	dashboard := NewDashboardService(DashboardServiceParams{
		Generator: mockdata.NewGenerator(21),
	})
	certificates := NewCertificateService(CertificateServiceParams{
		Dashboard: dashboard,
		Selection: selection,
	})
	exports := NewExportService(ExportServiceParams{
		Certificates: certificates,
		Selection:    selection,
		Storage:      store,
		Signer:       storage.NewSignedURLSigner("test-secret", time.Hour),
	})
	return &exportFixture{exports: exports, selection: selection, dir: dir}
}

func (f *exportFixture) readStored(t *testing.T, relPath string) string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join(f.dir, relPath))
	require.NoError(t, err)
	return string(raw)
}

func (f *exportFixture) storedFileCount(t *testing.T) int {
	t.Helper()
	count := 0
	err := filepath.WalkDir(f.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			count++
		}
		return nil
	})
	require.NoError(t, err)
	return count
}

func TestAllLearnersCSV(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.exports.AllLearnersCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "reports_certifications.csv", res.Filename)
	assert.Equal(t, "text/csv", res.ContentType)
	assert.Contains(t, res.URL, "/reports/export/")

	content := f.readStored(t, res.ExportID+"/"+res.Filename)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "Name,Batch,Progress,Certificate Status", lines[0])
	assert.Equal(t, "Alice Johnson,Batch A-2024,95%,unsigned", lines[1])
}

func TestSelectedCSVRequiresSelection(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.exports.SelectedCSV(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, "no learners selected", appErrors.FromError(err).Message)
	assert.Equal(t, 0, f.storedFileCount(t))
}

func TestSelectedCSV(t *testing.T) {
	f := newExportFixture(t)
	f.selection.Toggle("L001")
	f.selection.Toggle("L005")

	res, err := f.exports.SelectedCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "selected_learners.csv", res.Filename)

	content := f.readStored(t, res.ExportID+"/"+res.Filename)
	assert.Contains(t, content, "Alice Johnson")
	assert.Contains(t, content, "Emily Clark")
	assert.NotContains(t, content, "Bob Smith")
}

func TestSelectedPDFIsRealPDF(t *testing.T) {
	f := newExportFixture(t)
	f.selection.Toggle("L002")

	res, err := f.exports.SelectedPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "selected_learners.pdf", res.Filename)
	assert.Equal(t, "application/pdf", res.ContentType)

	content := f.readStored(t, res.ExportID+"/"+res.Filename)
	assert.True(t, strings.HasPrefix(content, "%PDF"))
}

func TestSelectedPDFRequiresSelection(t *testing.T) {
	f := newExportFixture(t)

	_, err := f.exports.SelectedPDF(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Equal(t, 0, f.storedFileCount(t))
}

func TestBatchCSVUsesBatchHeadersAndFilename(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.exports.BatchCSV(context.Background(), "B003")
	require.NoError(t, err)
	assert.Equal(t, "Batch_C-2024_report.csv", res.Filename)

	content := f.readStored(t, res.ExportID+"/"+res.Filename)
	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,ID,Progress,Certificate Status", lines[0])
	assert.Equal(t, "Charlie Brown,L003,88%,unsigned", lines[1])
}

func TestLearnerFeedbackReport(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.exports.LearnerFeedbackReport(context.Background(), "L001")
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson-feedback-report.txt", res.Filename)
	assert.Equal(t, "text/plain", res.ContentType)

	content := f.readStored(t, res.ExportID+"/"+res.Filename)
	assert.Contains(t, content, "FEEDBACK REPORT")
	assert.Contains(t, content, "Learner: Alice Johnson")
	assert.Contains(t, content, "Final Score: 95%")
	assert.Contains(t, content, "Excellent performance! Strong conceptual understanding.")

	_, err = f.exports.LearnerFeedbackReport(context.Background(), "L999")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBatchFeedbackReportGuards(t *testing.T) {
	f := newExportFixture(t)
	ctx := context.Background()

	_, err := f.exports.BatchFeedbackReport(ctx, "")
	require.Error(t, err)
	assert.Equal(t, "please select a batch first", appErrors.FromError(err).Message)

	_, err = f.exports.BatchFeedbackReport(ctx, "B999")
	require.Error(t, err)
	assert.Equal(t, "no learners found for this batch", appErrors.FromError(err).Message)

	assert.Equal(t, 0, f.storedFileCount(t))
}

func TestBatchFeedbackReportContent(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.exports.BatchFeedbackReport(context.Background(), "B002")
	require.NoError(t, err)
	assert.Equal(t, "Batch_B-2024_BatchFeedbackReport.txt", res.Filename)

	content := f.readStored(t, res.ExportID+"/"+res.Filename)
	assert.Contains(t, content, "=========== BATCH FEEDBACK REPORT ===========")
	assert.Contains(t, content, "Batch: Batch B-2024")
	assert.Contains(t, content, "Total Learners: 1")
	assert.Contains(t, content, "1. Bob Smith")
	// Bob's final score is 72: below 75, at or above 60.
	assert.Contains(t, content, "Average progress. Improvement recommended.")
}

func TestFeedbackTextThresholds(t *testing.T) {
	cases := []struct {
		score      int
		individual string
		batch      string
	}{
		{95, "Excellent performance! Strong conceptual understanding.", "Excellent performance! Shows strong understanding."},
		{90, "Excellent performance! Strong conceptual understanding.", "Excellent performance! Shows strong understanding."},
		{89, "Good progress. Can continue to improve.", "Good progress with consistent effort."},
		{80, "Good progress. Can continue to improve.", "Good progress with consistent effort."},
		{75, "Good progress. Can continue to improve.", "Good progress with consistent effort."},
		{74, "Average performance. Needs improvement.", "Average progress. Improvement recommended."},
		{65, "Average performance. Needs improvement.", "Average progress. Improvement recommended."},
		{60, "Average performance. Needs improvement.", "Average progress. Improvement recommended."},
		{59, "Insufficient performance. Further learning required.", "Below expectation. Needs improvement."},
		{40, "Insufficient performance. Further learning required.", "Below expectation. Needs improvement."},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.individual, FeedbackText(tc.score), "individual wording for score %d", tc.score)
		assert.Equal(t, tc.batch, BatchFeedbackText(tc.score), "batch wording for score %d", tc.score)
	}
}

func TestOpenResolvesContentType(t *testing.T) {
	f := newExportFixture(t)

	res, err := f.exports.AllLearnersCSV(context.Background())
	require.NoError(t, err)

	exportID, relPath, _, err := f.exports.ParseToken(res.Token, false)
	require.NoError(t, err)
	assert.Equal(t, res.ExportID, exportID)

	file, filename, contentType, err := f.exports.Open(relPath)
	require.NoError(t, err)
	defer file.Close() //nolint:errcheck
	assert.Equal(t, "reports_certifications.csv", filename)
	assert.Equal(t, "text/csv", contentType)
}
