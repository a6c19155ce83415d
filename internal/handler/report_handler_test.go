package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentor-insight-api/internal/mockdata"
	"github.com/noah-isme/mentor-insight-api/internal/service"
	"github.com/noah-isme/mentor-insight-api/pkg/storage"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type reportFixture struct {
	reports   *ReportHandler
	exports   *ExportHandler
	selection *service.SelectionService
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	selection := service.NewSelectionService()
	dashboard := service.NewDashboardService(service.DashboardServiceParams{
		Generator: mockdata.NewGenerator(17),
	})
	certificates := service.NewCertificateService(service.CertificateServiceParams{
		Dashboard: dashboard,
		Selection: selection,
	})
	exports := service.NewExportService(service.ExportServiceParams{
		Certificates: certificates,
		Selection:    selection,
		Storage:      store,
		Signer:       storage.NewSignedURLSigner("secret", time.Hour),
	})

	return &reportFixture{
		reports:   NewReportHandler(certificates, selection),
		exports:   NewExportHandler(exports),
		selection: selection,
	}
}

func performRequest(handler gin.HandlerFunc, method, target string, params gin.Params) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Params = params
	handler(c)
	c.Writer.WriteHeaderNow()
	return rec
}

func TestReportPage(t *testing.T) {
	f := newReportFixture(t)

	rec := performRequest(f.reports.Page, http.MethodGet, "/reports", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	stats := envelope.Data["stats"].(map[string]interface{})
	assert.Equal(t, float64(6), stats["totalLearners"])
	assert.Equal(t, float64(6), stats["pendingCertificates"])
}

func TestLearnersFilterQuery(t *testing.T) {
	f := newReportFixture(t)

	rec := performRequest(f.reports.Learners, http.MethodGet, "/reports/learners?search=alice", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	learners := envelope.Data["learners"].([]interface{})
	require.Len(t, learners, 1)
	first := learners[0].(map[string]interface{})
	assert.Equal(t, "Alice Johnson", first["name"])
}

func TestSelectionRoundTrip(t *testing.T) {
	f := newReportFixture(t)

	rec := performRequest(f.reports.ToggleSelection, http.MethodPost, "/reports/selection/L001/toggle",
		gin.Params{{Key: "id", Value: "L001"}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, f.selection.Count())

	rec = performRequest(f.reports.SelectAllVisible, http.MethodPost, "/reports/selection/select-all", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 6, f.selection.Count())

	rec = performRequest(f.reports.ClearSelection, http.MethodDelete, "/reports/selection", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, f.selection.Count())
}

func TestApproveEndpoint(t *testing.T) {
	f := newReportFixture(t)

	rec := performRequest(f.reports.Approve, http.MethodPost, "/reports/learners/L001/approve",
		gin.Params{{Key: "id", Value: "L001"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	learner := envelope.Data["learner"].(map[string]interface{})
	assert.Equal(t, "signed", learner["certificate_status"])

	rec = performRequest(f.reports.Approve, http.MethodPost, "/reports/learners/L999/approve",
		gin.Params{{Key: "id", Value: "L999"}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCertificateEndpointGuards(t *testing.T) {
	f := newReportFixture(t)

	// L002 sits at 65% progress and is unsigned.
	rec := performRequest(f.reports.Certificate, http.MethodGet, "/reports/learners/L002/certificate",
		gin.Params{{Key: "id", Value: "L002"}})
	assert.Equal(t, http.StatusPreconditionFailed, rec.Code)

	performRequest(f.reports.Approve, http.MethodPost, "/reports/learners/L002/approve",
		gin.Params{{Key: "id", Value: "L002"}})
	rec = performRequest(f.reports.Certificate, http.MethodGet, "/reports/learners/L002/certificate",
		gin.Params{{Key: "id", Value: "L002"}})
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "/certificates/L002.pdf", envelope.Data["path"])
}

func TestExportSelectedGuardReturnsBadRequest(t *testing.T) {
	f := newReportFixture(t)

	rec := performRequest(f.exports.SelectedCSV, http.MethodPost, "/reports/exports/selected/csv", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "no learners selected", envelope.Error["message"])
}

func TestExportAndDownloadFlow(t *testing.T) {
	f := newReportFixture(t)
	f.selection.Toggle("L001")

	rec := performRequest(f.exports.SelectedCSV, http.MethodPost, "/reports/exports/selected/csv", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	url := envelope.Data["downloadUrl"].(string)
	token := url[len("/api/v1/reports/export/"):]

	rec = performRequest(f.exports.Download, http.MethodGet, "/reports/export/"+token,
		gin.Params{{Key: "token", Value: token}})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "selected_learners.csv")
	assert.Contains(t, rec.Body.String(), "Alice Johnson")
}
