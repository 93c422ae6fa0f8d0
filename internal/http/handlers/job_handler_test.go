// README: Handler tests for the job completion and driver queue endpoints.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"drover/internal/config"
	"drover/internal/http/handlers"
	"drover/internal/modules/assign"
	"drover/internal/modules/cluster"
	"drover/internal/modules/dispatch"
	"drover/internal/modules/job"
	"drover/internal/modules/journal"
	"drover/internal/modules/location"
	"drover/internal/modules/sequence"
	"drover/internal/types"
)

// stubSnapshots serves a fixed snapshot.
type stubSnapshots struct {
	snap *job.Snapshot
}

func (s *stubSnapshots) Get(_ context.Context) (*job.Snapshot, error) { return s.snap, nil }
func (s *stubSnapshots) Invalidate()                                  {}

type stubPersister struct{}

func (s *stubPersister) Enqueue(_ []*job.Job) {}

type stubJournal struct{}

func (s *stubJournal) AppendEvent(_ context.Context, _ *journal.Event) error { return nil }
func (s *stubJournal) ListByJob(_ context.Context, _ types.ID) ([]*journal.Event, error) {
	return nil, nil
}

type stubGeocoder struct{}

func (s *stubGeocoder) LookupMany(_ context.Context, _ []string) (map[string]*location.PostcodeInfo, error) {
	return map[string]*location.PostcodeInfo{}, nil
}

func buildTestRouter(snap *job.Snapshot) *gin.Engine {
	gin.SetMode(gin.TestMode)
	resolver := location.NewService(nil)
	cfg := config.DefaultDispatchConfig()
	svc := dispatch.NewService(
		&stubSnapshots{snap: snap}, &stubPersister{}, &stubJournal{}, &stubGeocoder{},
		resolver,
		cluster.NewService(resolver, cfg),
		assign.NewService(resolver, cfg),
		sequence.NewService(),
	)

	r := gin.New()
	jobHandler := handlers.NewJobHandler(svc)
	r.POST("/api/jobs/:id/complete", jobHandler.Complete)
	driverHandler := handlers.NewDriverHandler(svc)
	r.GET("/api/drivers/:name/queue", driverHandler.Queue)
	return r
}

func testSnapshot() *job.Snapshot {
	return &job.Snapshot{Jobs: []*job.Job{
		{ID: "A", SelectedDriver: "alice", OrderNo: 1, Status: job.StatusActive, Active: true},
		{ID: "B", SelectedDriver: "alice", OrderNo: 2, Status: job.StatusPending},
	}}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestComplete_PromotesNext(t *testing.T) {
	r := buildTestRouter(testSnapshot())
	w := doJSON(r, http.MethodPost, "/api/jobs/A/complete", map[string]any{"driver": "alice"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Changed []struct {
			JobID   string `json:"job_id"`
			OrderNo int    `json:"order_no"`
			Status  string `json:"job_status"`
			Active  bool   `json:"job_active"`
		} `json:"changed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Changed) != 2 {
		t.Fatalf("changed = %d jobs, want 2", len(resp.Changed))
	}
	byID := map[string]string{}
	for _, c := range resp.Changed {
		byID[c.JobID] = c.Status
	}
	if byID["A"] != string(job.StatusCompleted) {
		t.Errorf("A status = %s, want completed", byID["A"])
	}
	if byID["B"] != string(job.StatusActive) {
		t.Errorf("B status = %s, want active", byID["B"])
	}
}

func TestComplete_UnknownDriver(t *testing.T) {
	r := buildTestRouter(testSnapshot())
	w := doJSON(r, http.MethodPost, "/api/jobs/A/complete", map[string]any{"driver": "nobody"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestComplete_UnknownJob(t *testing.T) {
	r := buildTestRouter(testSnapshot())
	w := doJSON(r, http.MethodPost, "/api/jobs/missing/complete", map[string]any{"driver": "alice"})
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestComplete_MissingDriver(t *testing.T) {
	r := buildTestRouter(testSnapshot())
	w := doJSON(r, http.MethodPost, "/api/jobs/A/complete", map[string]any{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestQueue_ReturnsOrderedJobs(t *testing.T) {
	r := buildTestRouter(testSnapshot())
	w := doJSON(r, http.MethodGet, "/api/drivers/alice/queue", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Driver string `json:"driver"`
		Jobs   []struct {
			JobID   string `json:"job_id"`
			OrderNo int    `json:"order_no"`
		} `json:"jobs"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Driver != "alice" || len(resp.Jobs) != 2 {
		t.Fatalf("response = %+v, want alice with 2 jobs", resp)
	}
	if resp.Jobs[0].JobID != "A" || resp.Jobs[1].JobID != "B" {
		t.Errorf("queue order = %s,%s, want A,B", resp.Jobs[0].JobID, resp.Jobs[1].JobID)
	}
}

func TestQueue_UnknownDriver(t *testing.T) {
	r := buildTestRouter(testSnapshot())
	w := doJSON(r, http.MethodGet, "/api/drivers/nobody/queue", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
