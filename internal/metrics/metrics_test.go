package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_RecordCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordTokenIssued()
	c.RecordTokenIssued()
	c.RecordAuthFailure()
	c.RecordRequestCreated()
	c.RecordRequestConflict()
	c.RecordRequestConflict()
	c.RecordRequestConflict()

	if got := testutil.ToFloat64(c.tokensIssued); got != 2 {
		t.Errorf("tokens issued = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.authFailures); got != 1 {
		t.Errorf("auth failures = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.requestsCreated); got != 1 {
		t.Errorf("requests created = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.requestConflicts); got != 3 {
		t.Errorf("request conflicts = %v, want 3", got)
	}
}

func TestCollector_RecordHTTPStatusByCode(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(200)
	c.RecordHTTPStatus(409)

	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("200")); got != 2 {
		t.Errorf("200 count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.httpStatus.WithLabelValues("409")); got != 1 {
		t.Errorf("409 count = %v, want 1", got)
	}
}

func TestHandler_ExposesRegisteredMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTokenIssued()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, req)

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), "cookiteer_tokens_issued_total 1") {
		t.Errorf("scrape output should contain token counter, got:\n%s", w.Body.String())
	}
}

func TestCollectorImplementsInterface(t *testing.T) {
	var _ MetricsCollector = (*Collector)(nil)
}
