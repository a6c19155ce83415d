package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentor-insight-api/internal/models"
	"github.com/noah-isme/mentor-insight-api/pkg/config"
)

type recordingObserver struct {
	resources []string
}

func (r *recordingObserver) RecordFallback(resource string) {
	r.resources = append(r.resources, resource)
}

func newTestClient(baseURL string, observer FallbackObserver) *Client {
	return NewClient(config.UpstreamConfig{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Timeout:    time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}, nil, observer)
}

func TestResolveSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"L001","name":"Alice Johnson","batch_id":"B001","batch_name":"Batch A-2024","progress":95,"certificate_status":"unsigned","final_score":95}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	fallback := []models.Learner{{ID: "fallback"}}
	got := Resolve(context.Background(), client, "learners", "/learners", fallback)

	require.Len(t, got, 1)
	assert.Equal(t, "L001", got[0].ID)
	assert.Equal(t, 95, got[0].Progress)
}

func TestResolveFallbackOnErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	observer := &recordingObserver{}
	client := newTestClient(srv.URL, observer)
	fallback := []models.Learner{{ID: "L001"}}
	got := Resolve(context.Background(), client, "learners", "/learners", fallback)

	assert.Equal(t, fallback, got)
	assert.Equal(t, []string{"learners"}, observer.resources)
}

func TestResolveFallbackOnWrongContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	fallback := []models.Batch{{ID: "B001"}}
	got := Resolve(context.Background(), client, "batches", "/batches", fallback)

	assert.Equal(t, fallback, got)
}

func TestResolveFallbackWhenUnconfigured(t *testing.T) {
	observer := &recordingObserver{}
	client := NewClient(config.UpstreamConfig{}, nil, observer)

	fallback := models.DashboardStats{TotalStudents: 6}
	got := Resolve(context.Background(), client, "stats", "/stats", fallback)

	assert.Equal(t, fallback, got)
	assert.Equal(t, []string{"stats"}, observer.resources)
}

func TestResolveRetriesBeforeSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"total_students":5}`))
	}))
	defer srv.Close()

	client := NewClient(config.UpstreamConfig{
		BaseURL:    srv.URL,
		Timeout:    time.Second,
		MaxRetries: 3,
		RetryDelay: time.Millisecond,
	}, nil, nil)

	got := Resolve(context.Background(), client, "stats", "/stats", models.DashboardStats{})
	assert.Equal(t, 5, got.TotalStudents)
	assert.Equal(t, 2, calls)
}

func TestResolveIsolationAcrossResources(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/learners" {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"B009","name":"Batch X"}]`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	learnerFallback := []models.Learner{{ID: "L001"}}

	learners := Resolve(context.Background(), client, "learners", "/learners", learnerFallback)
	batches := Resolve(context.Background(), client, "batches", "/batches", []models.Batch{})

	assert.Equal(t, learnerFallback, learners)
	require.Len(t, batches, 1)
	assert.Equal(t, "B009", batches[0].ID)
}

func TestPostSendsPayload(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, nil)
	err := client.Post(context.Background(), "/learners/L001/approve", nil)

	require.NoError(t, err)
	assert.Equal(t, "/learners/L001/approve", gotPath)
	assert.Equal(t, "test-key", gotKey)
}

func TestPostNoopWhenUnconfigured(t *testing.T) {
	client := NewClient(config.UpstreamConfig{}, nil, nil)
	require.NoError(t, client.Post(context.Background(), "/learners/L001/approve", nil))
}
