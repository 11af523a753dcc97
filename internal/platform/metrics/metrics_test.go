package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func findFamily(t *testing.T, reg *prometheus.Registry, name string) *dto.MetricFamily {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf
		}
	}
	t.Fatalf("%s metric not found", name)
	return nil
}

func labelValue(m *dto.Metric, name string) string {
	for _, lp := range m.GetLabel() {
		if lp.GetName() == name {
			return lp.GetValue()
		}
	}
	return ""
}

func TestRecordOperation(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordOperation("save", "success", 10*time.Millisecond)
	c.RecordOperation("save", "success", 20*time.Millisecond)
	c.RecordOperation("load", "not_found", time.Millisecond)

	mf := findFamily(t, reg, "profile_console_operations_total")
	if len(mf.GetMetric()) != 2 {
		t.Fatalf("expected 2 series, got %d", len(mf.GetMetric()))
	}
	for _, m := range mf.GetMetric() {
		op := labelValue(m, "operation")
		val := m.GetCounter().GetValue()
		switch op {
		case "save":
			if val != 2 || labelValue(m, "result") != "success" {
				t.Errorf("save series = %v/%s", val, labelValue(m, "result"))
			}
		case "load":
			if val != 1 || labelValue(m, "result") != "not_found" {
				t.Errorf("load series = %v/%s", val, labelValue(m, "result"))
			}
		default:
			t.Errorf("unexpected operation label %q", op)
		}
	}

	latency := findFamily(t, reg, "profile_console_operation_duration_seconds")
	var samples uint64
	for _, m := range latency.GetMetric() {
		samples += m.GetHistogram().GetSampleCount()
	}
	if samples != 3 {
		t.Errorf("expected 3 latency samples, got %d", samples)
	}
}

func TestObserveState(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.ObserveState(true, false)
	if v := findFamily(t, reg, "profile_console_loading").GetMetric()[0].GetGauge().GetValue(); v != 1 {
		t.Errorf("loading = %v, want 1", v)
	}
	if v := findFamily(t, reg, "profile_console_profile_present").GetMetric()[0].GetGauge().GetValue(); v != 0 {
		t.Errorf("profile_present = %v, want 0", v)
	}

	c.ObserveState(false, true)
	if v := findFamily(t, reg, "profile_console_loading").GetMetric()[0].GetGauge().GetValue(); v != 0 {
		t.Errorf("loading = %v, want 0", v)
	}
	if v := findFamily(t, reg, "profile_console_profile_present").GetMetric()[0].GetGauge().GetValue(); v != 1 {
		t.Errorf("profile_present = %v, want 1", v)
	}
}

func TestMiddlewareCountsStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	h := c.Middleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))

	for _, path := range []string{"/", "/", "/missing"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	mf := findFamily(t, reg, "profile_console_http_responses_total")
	counts := map[string]float64{}
	for _, m := range mf.GetMetric() {
		counts[labelValue(m, "status_code")] = m.GetCounter().GetValue()
	}
	if counts["200"] != 2 || counts["404"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordOperation("delete", "success", time.Millisecond)

	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	resp := w.Result()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "profile_console_operations_total") {
		t.Error("response should contain profile_console_operations_total metric")
	}
}
