package handler

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	"github.com/noah-isme/mentor-insight-api/internal/service"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/response"
)

type exportService interface {
	AllLearnersCSV(ctx context.Context) (*service.ExportResult, error)
	SelectedCSV(ctx context.Context) (*service.ExportResult, error)
	SelectedPDF(ctx context.Context) (*service.ExportResult, error)
	BatchCSV(ctx context.Context, batchID string) (*service.ExportResult, error)
	LearnerFeedbackReport(ctx context.Context, learnerID string) (*service.ExportResult, error)
	BatchFeedbackReport(ctx context.Context, batchID string) (*service.ExportResult, error)
	ParseToken(token string, allowExpired bool) (exportID, relPath string, expiresAt time.Time, err error)
	Open(relPath string) (*os.File, string, string, error)
}

// ExportHandler exposes report generation and signed downloads.
type ExportHandler struct {
	exports exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(exports exportService) *ExportHandler {
	return &ExportHandler{exports: exports}
}

// AllLearnersCSV godoc
// @Summary Export every learner as CSV
// @Tags Exports
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /reports/exports/learners/csv [post]
func (h *ExportHandler) AllLearnersCSV(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*service.ExportResult, error) {
		return h.exports.AllLearnersCSV(ctx)
	})
}

// SelectedCSV godoc
// @Summary Export the selected learners as CSV
// @Tags Exports
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/exports/selected/csv [post]
func (h *ExportHandler) SelectedCSV(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*service.ExportResult, error) {
		return h.exports.SelectedCSV(ctx)
	})
}

// SelectedPDF godoc
// @Summary Export the selected learners as PDF
// @Tags Exports
// @Produce json
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/exports/selected/pdf [post]
func (h *ExportHandler) SelectedPDF(c *gin.Context) {
	h.respond(c, func(ctx context.Context) (*service.ExportResult, error) {
		return h.exports.SelectedPDF(ctx)
	})
}

// BatchCSV godoc
// @Summary Export one batch's learners as CSV
// @Tags Exports
// @Produce json
// @Param id path string true "Batch ID"
// @Success 201 {object} response.Envelope
// @Router /reports/exports/batches/{id}/csv [post]
func (h *ExportHandler) BatchCSV(c *gin.Context) {
	batchID := c.Param("id")
	h.respond(c, func(ctx context.Context) (*service.ExportResult, error) {
		return h.exports.BatchCSV(ctx, batchID)
	})
}

// LearnerFeedback godoc
// @Summary Generate a plain-text feedback report for one learner
// @Tags Exports
// @Produce json
// @Param id path string true "Learner ID"
// @Success 201 {object} response.Envelope
// @Router /reports/exports/learners/{id}/feedback [post]
func (h *ExportHandler) LearnerFeedback(c *gin.Context) {
	learnerID := c.Param("id")
	h.respond(c, func(ctx context.Context) (*service.ExportResult, error) {
		return h.exports.LearnerFeedbackReport(ctx, learnerID)
	})
}

// BatchFeedback godoc
// @Summary Generate a plain-text feedback report for one batch
// @Tags Exports
// @Produce json
// @Param id path string true "Batch ID"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /reports/exports/batches/{id}/feedback [post]
func (h *ExportHandler) BatchFeedback(c *gin.Context) {
	batchID := c.Param("id")
	h.respond(c, func(ctx context.Context) (*service.ExportResult, error) {
		return h.exports.BatchFeedbackReport(ctx, batchID)
	})
}

// Download godoc
// @Summary Stream a previously generated export via its signed token
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200
// @Failure 403 {object} response.Envelope
// @Router /reports/export/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	token := c.Param("token")
	_, relPath, _, err := h.exports.ParseToken(token, false)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token"))
		return
	}

	file, filename, contentType, err := h.exports.Open(relPath)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "export no longer available"))
		return
	}
	defer file.Close() //nolint:errcheck

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, file)
}

func (h *ExportHandler) respond(c *gin.Context, generate func(context.Context) (*service.ExportResult, error)) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	res, err := generate(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.ExportResponse{
		ExportID:    res.ExportID,
		Filename:    res.Filename,
		ContentType: res.ContentType,
		DownloadURL: res.URL,
		ExpiresAt:   res.ExpiresAt,
	})
}
