package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/mentor-insight-api/internal/models"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/export"
	"github.com/noah-isme/mentor-insight-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title, subtitle string) ([]byte, error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportResult captures successful generation metadata.
type ExportResult struct {
	ExportID    string
	Filename    string
	ContentType string
	Token       string
	URL         string
	ExpiresAt   time.Time
}

// ExportService renders learner reports (CSV, PDF and plain-text feedback)
// and persists them for signed download. Files are stored under a per-export
// directory so the download keeps its exact filename.
type ExportService struct {
	certificates *CertificateService
	selection    *SelectionService
	storage      fileStorage
	csv          csvRenderer
	pdf          pdfRenderer
	signer       *storage.SignedURLSigner
	metrics      *MetricsService
	logger       *zap.Logger
	cfg          ExportConfig
	now          func() time.Time
}

// ExportServiceParams groups constructor dependencies.
type ExportServiceParams struct {
	Certificates *CertificateService
	Selection    *SelectionService
	Storage      fileStorage
	Signer       *storage.SignedURLSigner
	Metrics      *MetricsService
	Logger       *zap.Logger
	Config       ExportConfig
}

// NewExportService constructs an ExportService.
func NewExportService(params ExportServiceParams) *ExportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg := params.Config
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.APIPrefix == "" {
		cfg.APIPrefix = "/api/v1"
	}
	return &ExportService{
		certificates: params.Certificates,
		selection:    params.Selection,
		storage:      params.Storage,
		csv:          export.NewCSVExporter(),
		pdf:          export.NewPDFExporter(),
		signer:       params.Signer,
		metrics:      params.Metrics,
		logger:       logger,
		cfg:          cfg,
		now:          time.Now,
	}
}

var learnerCSVHeaders = []string{"Name", "Batch", "Progress", "Certificate Status"}
var batchCSVHeaders = []string{"Name", "ID", "Progress", "Certificate Status"}

// AllLearnersCSV exports every learner as reports_certifications.csv.
func (s *ExportService) AllLearnersCSV(ctx context.Context) (*ExportResult, error) {
	s.certificates.Load(ctx, false)
	learners := s.certificates.Learners()

	payload, err := s.csv.Render(learnerDataset(learners))
	if err != nil {
		return nil, err
	}
	return s.store("reports_certifications.csv", "text/csv", payload, "csv")
}

// SelectedCSV exports the selected learners as selected_learners.csv. An
// empty selection is refused and writes no file.
func (s *ExportService) SelectedCSV(ctx context.Context) (*ExportResult, error) {
	selected, err := s.selectedLearners(ctx)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(learnerDataset(selected))
	if err != nil {
		return nil, err
	}
	return s.store("selected_learners.csv", "text/csv", payload, "csv")
}

// SelectedPDF exports the selected learners as a PDF document. An empty
// selection is refused and writes no file.
func (s *ExportService) SelectedPDF(ctx context.Context) (*ExportResult, error) {
	selected, err := s.selectedLearners(ctx)
	if err != nil {
		return nil, err
	}
	subtitle := fmt.Sprintf("Generated %s", s.now().Format("2006-01-02"))
	payload, err := s.pdf.Render(learnerDataset(selected), "Selected Learners", subtitle)
	if err != nil {
		return nil, err
	}
	return s.store("selected_learners.pdf", "application/pdf", payload, "pdf")
}

// BatchCSV exports the learners of one batch as <batch_name>_report.csv.
func (s *ExportService) BatchCSV(ctx context.Context, batchID string) (*ExportResult, error) {
	s.certificates.Load(ctx, false)

	rows := make([]map[string]string, 0)
	for _, l := range s.certificates.Learners() {
		if l.BatchID != batchID {
			continue
		}
		rows = append(rows, map[string]string{
			"Name":               l.Name,
			"ID":                 l.ID,
			"Progress":           fmt.Sprintf("%d%%", l.Progress),
			"Certificate Status": string(l.CertificateStatus),
		})
	}

	payload, err := s.csv.Render(export.Dataset{Headers: batchCSVHeaders, Rows: rows})
	if err != nil {
		return nil, err
	}

	name := batchID
	if batch, ok := s.certificates.BatchByID(batchID); ok {
		name = sanitizeFilename(batch.Name)
	}
	return s.store(name+"_report.csv", "text/csv", payload, "csv")
}

// LearnerFeedbackReport generates a per-learner plain-text feedback report,
// with the qualitative sentence selected by the 90/75/60 score thresholds.
func (s *ExportService) LearnerFeedbackReport(ctx context.Context, learnerID string) (*ExportResult, error) {
	s.certificates.Load(ctx, false)

	var learner *models.Learner
	for _, l := range s.certificates.Learners() {
		if l.ID == learnerID {
			found := l
			learner = &found
			break
		}
	}
	if learner == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("learner %s not found", learnerID))
	}

	var b strings.Builder
	b.WriteString("FEEDBACK REPORT\n\n")
	fmt.Fprintf(&b, "Learner: %s\n", learner.Name)
	fmt.Fprintf(&b, "Batch: %s\n", learner.BatchName)
	fmt.Fprintf(&b, "Completion Date: %s\n", learner.CompletionDate)
	fmt.Fprintf(&b, "Final Score: %d%%\n", learner.FinalScore)
	fmt.Fprintf(&b, "Progress: %d%%\n\n", learner.Progress)
	fmt.Fprintf(&b, "Feedback:\n%s\n", FeedbackText(learner.FinalScore))

	filename := fmt.Sprintf("%s-feedback-report.txt", learner.Name)
	return s.store(filename, "text/plain", []byte(b.String()), "text")
}

// BatchFeedbackReport generates a numbered plain-text feedback report for all
// learners in one batch. Refused when no batch is chosen or the batch has no
// matching learners.
func (s *ExportService) BatchFeedbackReport(ctx context.Context, batchID string) (*ExportResult, error) {
	if batchID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "please select a batch first")
	}

	s.certificates.Load(ctx, false)

	batchName := batchID
	if batch, ok := s.certificates.BatchByID(batchID); ok {
		batchName = batch.Name
	}

	learners := make([]models.Learner, 0)
	for _, l := range s.certificates.Learners() {
		if l.BatchID == batchID {
			learners = append(learners, l)
		}
	}
	if len(learners) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no learners found for this batch")
	}

	var b strings.Builder
	b.WriteString("=========== BATCH FEEDBACK REPORT ===========\n\n")
	fmt.Fprintf(&b, "Batch: %s\n", batchName)
	fmt.Fprintf(&b, "Total Learners: %d\n\n", len(learners))
	b.WriteString("--------------------------------------------\n")
	for i, l := range learners {
		fmt.Fprintf(&b, "\n%d. %s\n", i+1, l.Name)
		fmt.Fprintf(&b, "Progress: %d%%\n", l.Progress)
		fmt.Fprintf(&b, "Final Score: %d%%\n", l.FinalScore)
		fmt.Fprintf(&b, "Feedback: %s\n", BatchFeedbackText(l.FinalScore))
		b.WriteString("--------------------------------------------\n")
	}

	filename := fmt.Sprintf("%s_BatchFeedbackReport.txt", sanitizeFilename(batchName))
	return s.store(filename, "text/plain", []byte(b.String()), "text")
}

// ParseToken validates download token metadata.
func (s *ExportService) ParseToken(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error) {
	return s.signer.Parse(token, allowExpired)
}

// Open returns a handle to the stored file plus its download metadata.
func (s *ExportService) Open(relPath string) (*os.File, string, string, error) {
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", "", err
	}
	parts := strings.SplitN(relPath, "/", 2)
	filename := relPath
	if len(parts) == 2 {
		filename = parts[1]
	}
	return file, filename, contentTypeFor(filename), nil
}

// Cleanup removes expired export files and returns the deleted names.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ExportService) selectedLearners(ctx context.Context) ([]models.Learner, error) {
	s.certificates.Load(ctx, false)
	if s.selection.Count() == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no learners selected")
	}
	selected := s.selection.Selected(s.certificates.Learners())
	if len(selected) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "no learners selected")
	}
	return selected, nil
}

func (s *ExportService) store(filename, contentType string, payload []byte, kind string) (*ExportResult, error) {
	exportID := uuid.NewString()
	relPath, err := s.storage.Save(exportID+"/"+filename, payload)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/reports/export/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token)

	if s.metrics != nil {
		s.metrics.RecordExport(kind)
	}
	s.logger.Sugar().Infow("export generated", "export_id", exportID, "filename", filename, "kind", kind)

	return &ExportResult{
		ExportID:    exportID,
		Filename:    filename,
		ContentType: contentType,
		Token:       token,
		URL:         url,
		ExpiresAt:   expiresAt,
	}, nil
}

func learnerDataset(learners []models.Learner) export.Dataset {
	rows := make([]map[string]string, 0, len(learners))
	for _, l := range learners {
		batch := l.BatchName
		if batch == "" {
			batch = "-"
		}
		rows = append(rows, map[string]string{
			"Name":               l.Name,
			"Batch":              batch,
			"Progress":           fmt.Sprintf("%d%%", l.Progress),
			"Certificate Status": string(l.CertificateStatus),
		})
	}
	return export.Dataset{Headers: learnerCSVHeaders, Rows: rows}
}

// FeedbackText maps a final score to the per-learner qualitative sentence.
func FeedbackText(score int) string {
	switch {
	case score >= 90:
		return "Excellent performance! Strong conceptual understanding."
	case score >= 75:
		return "Good progress. Can continue to improve."
	case score >= 60:
		return "Average performance. Needs improvement."
	default:
		return "Insufficient performance. Further learning required."
	}
}

// BatchFeedbackText maps a final score to the batch-report wording.
func BatchFeedbackText(score int) string {
	switch {
	case score >= 90:
		return "Excellent performance! Shows strong understanding."
	case score >= 75:
		return "Good progress with consistent effort."
	case score >= 60:
		return "Average progress. Improvement recommended."
	default:
		return "Below expectation. Needs improvement."
	}
}

func sanitizeFilename(name string) string {
	return strings.Join(strings.Fields(name), "_")
}

func contentTypeFor(filename string) string {
	switch {
	case strings.HasSuffix(filename, ".csv"):
		return "text/csv"
	case strings.HasSuffix(filename, ".pdf"):
		return "application/pdf"
	default:
		return "text/plain"
	}
}
