package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_CountsByGroupAndOutcome(t *testing.T) {
	r := NewRecorder()
	r.Observe("admin", "ok")
	r.Observe("admin", "ok")
	r.Observe("student", "error")

	if got := testutil.ToFloat64(r.requests.WithLabelValues("admin", "ok")); got != 2 {
		t.Fatalf("admin/ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.requests.WithLabelValues("student", "error")); got != 1 {
		t.Fatalf("student/error = %v, want 1", got)
	}
}

func TestRecorder_TracksInFlight(t *testing.T) {
	r := NewRecorder()
	r.Started("student")
	r.Started("admin")
	if got := testutil.ToFloat64(r.inFlight); got != 2 {
		t.Fatalf("in flight = %v, want 2", got)
	}

	r.Observe("student", "ok")
	r.Observe("admin", "error")
	if got := testutil.ToFloat64(r.inFlight); got != 0 {
		t.Fatalf("in flight after settle = %v, want 0", got)
	}
}

func TestRecorder_HandlerExposesCounter(t *testing.T) {
	r := NewRecorder()
	r.Observe("company", "ok")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body := rec.Body.String()
	if !strings.Contains(body, `placement_client_requests_total{group="company",outcome="ok"} 1`) {
		t.Fatalf("metric missing from exposition:\n%s", body)
	}
}
