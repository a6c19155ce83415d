package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/mentor-insight-api/internal/dto"
	"github.com/noah-isme/mentor-insight-api/internal/models"
	appErrors "github.com/noah-isme/mentor-insight-api/pkg/errors"
	"github.com/noah-isme/mentor-insight-api/pkg/response"
)

type certificateService interface {
	Page(ctx context.Context, refresh bool) *dto.ReportsPageResponse
	Learners() []models.Learner
	Approve(ctx context.Context, learnerID string) (*dto.DecisionResponse, error)
	Reject(ctx context.Context, learnerID string) (*dto.DecisionResponse, error)
	CertificatePath(ctx context.Context, learnerID string) (string, error)
	Load(ctx context.Context, refresh bool)
}

type selectionStore interface {
	Toggle(id string) bool
	SelectAllVisible(learners []models.Learner) []string
	Clear()
	SetFilters(search, batchID string)
	Visible(learners []models.Learner) []models.Learner
	SelectedIDs() []string
	Count() int
}

// ReportHandler serves the reports page: learner listing with filters,
// selection management and certificate decisions.
type ReportHandler struct {
	certificates certificateService
	selection    selectionStore
}

// NewReportHandler constructs the handler.
func NewReportHandler(certificates certificateService, selection selectionStore) *ReportHandler {
	return &ReportHandler{certificates: certificates, selection: selection}
}

// Page godoc
// @Summary Reports page payload with learners, batches and derived stats
// @Tags Reports
// @Produce json
// @Param refresh query bool false "Reload collections from the upstream"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) Page(c *gin.Context) {
	refresh := c.Query("refresh") == "true"
	page := h.certificates.Page(c.Request.Context(), refresh)
	response.JSON(c, http.StatusOK, page)
}

// Learners godoc
// @Summary Visible learners under the active search and batch filter
// @Tags Reports
// @Produce json
// @Param search query string false "Case-insensitive name substring"
// @Param batchId query string false "Batch ID filter"
// @Success 200 {object} response.Envelope
// @Router /reports/learners [get]
func (h *ReportHandler) Learners(c *gin.Context) {
	var req dto.LearnerListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid filter parameters"))
		return
	}
	h.certificates.Load(c.Request.Context(), false)
	h.selection.SetFilters(req.Search, req.BatchID)

	response.JSON(c, http.StatusOK, dto.LearnerListResponse{
		Learners: h.selection.Visible(h.certificates.Learners()),
		Selected: h.selection.SelectedIDs(),
	})
}

// ToggleSelection godoc
// @Summary Toggle one learner in the selection set
// @Tags Reports
// @Produce json
// @Param id path string true "Learner ID"
// @Success 200 {object} response.Envelope
// @Router /reports/selection/{id}/toggle [post]
func (h *ReportHandler) ToggleSelection(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "learner id is required"))
		return
	}
	h.selection.Toggle(id)
	response.JSON(c, http.StatusOK, dto.SelectionResponse{
		Selected: h.selection.SelectedIDs(),
		Count:    h.selection.Count(),
	})
}

// SelectAllVisible godoc
// @Summary Replace the selection with all learners passing the active filters
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/selection/select-all [post]
func (h *ReportHandler) SelectAllVisible(c *gin.Context) {
	h.certificates.Load(c.Request.Context(), false)
	ids := h.selection.SelectAllVisible(h.certificates.Learners())
	response.JSON(c, http.StatusOK, dto.SelectionResponse{Selected: ids, Count: len(ids)})
}

// ClearSelection godoc
// @Summary Empty the selection set
// @Tags Reports
// @Success 204 "No Content"
// @Router /reports/selection [delete]
func (h *ReportHandler) ClearSelection(c *gin.Context) {
	h.selection.Clear()
	response.NoContent(c)
}

// Selection godoc
// @Summary Current selection set
// @Tags Reports
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /reports/selection [get]
func (h *ReportHandler) Selection(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.SelectionResponse{
		Selected: h.selection.SelectedIDs(),
		Count:    h.selection.Count(),
	})
}

// Approve godoc
// @Summary Approve a learner's certificate
// @Tags Reports
// @Produce json
// @Param id path string true "Learner ID"
// @Success 200 {object} response.Envelope
// @Router /reports/learners/{id}/approve [post]
func (h *ReportHandler) Approve(c *gin.Context) {
	res, err := h.certificates.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Reject godoc
// @Summary Reject a learner's certificate
// @Tags Reports
// @Produce json
// @Param id path string true "Learner ID"
// @Success 200 {object} response.Envelope
// @Router /reports/learners/{id}/reject [post]
func (h *ReportHandler) Reject(c *gin.Context) {
	res, err := h.certificates.Reject(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, res)
}

// Certificate godoc
// @Summary Resolve the certificate download path for an eligible learner
// @Tags Reports
// @Produce json
// @Param id path string true "Learner ID"
// @Success 200 {object} response.Envelope
// @Router /reports/learners/{id}/certificate [get]
func (h *ReportHandler) Certificate(c *gin.Context) {
	path, err := h.certificates.CertificatePath(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"path": path})
}
