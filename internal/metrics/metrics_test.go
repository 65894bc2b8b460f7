package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_IncrementJobsStarted(t *testing.T) {
	m := NewMetrics()
	m.IncrementJobsStarted("otx_hostname")

	snapshot := m.GetSnapshot()
	if snapshot["jobs_started"] != 1 {
		t.Errorf("expected jobs_started 1, got %d", snapshot["jobs_started"])
	}
	if got := testutil.ToFloat64(m.startedVec.WithLabelValues("otx_hostname")); got != 1 {
		t.Errorf("expected prometheus counter 1, got %v", got)
	}
}

func TestMetrics_IncrementJobsStopped(t *testing.T) {
	m := NewMetrics()
	m.IncrementJobsStopped("budget")
	m.IncrementJobsStopped("end_of_data")

	snapshot := m.GetSnapshot()
	if snapshot["jobs_stopped"] != 2 {
		t.Errorf("expected jobs_stopped 2, got %d", snapshot["jobs_stopped"])
	}
}

func TestMetrics_PagesAndFailures(t *testing.T) {
	m := NewMetrics()
	m.IncrementPagesOpened("otx_domain")
	m.IncrementPagesOpened("otx_domain")
	m.IncrementTabFailures()

	snapshot := m.GetSnapshot()
	if snapshot["pages_opened"] != 2 {
		t.Errorf("expected pages_opened 2, got %d", snapshot["pages_opened"])
	}
	if snapshot["tab_failures"] != 1 {
		t.Errorf("expected tab_failures 1, got %d", snapshot["tab_failures"])
	}
}

func TestMetrics_SetActiveJobs(t *testing.T) {
	m := NewMetrics()
	m.SetActiveJobs(3)
	m.SetActiveJobs(1)

	if got := m.GetSnapshot()["active_jobs"]; got != 1 {
		t.Errorf("expected active_jobs 1, got %d", got)
	}
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.IncrementDispatched("lookup")
	m.IncrementRateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`osint_pivot_dispatched_tabs_total{route="lookup"} 1`,
		"osint_pivot_dispatch_rate_limited_total 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q", want)
		}
	}
}

func TestMetrics_ConcurrentAccess(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncrementJobsStarted("otx_hostname")
			m.IncrementPagesOpened("otx_hostname")
			m.IncrementDispatched("keyword")
		}()
	}

	wg.Wait()

	snapshot := m.GetSnapshot()
	if snapshot["jobs_started"] != 100 {
		t.Errorf("expected jobs_started 100, got %d", snapshot["jobs_started"])
	}
	if snapshot["pages_opened"] != 100 {
		t.Errorf("expected pages_opened 100, got %d", snapshot["pages_opened"])
	}
	if snapshot["dispatched"] != 100 {
		t.Errorf("expected dispatched 100, got %d", snapshot["dispatched"])
	}
}
