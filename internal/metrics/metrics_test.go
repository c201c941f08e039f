// Venuerec - Venue Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/venuerec

package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"gonum.org/v1/gonum/mat"

	"github.com/tomtom215/venuerec/internal/recommend"
)

// getCounterValue extracts the value from a Prometheus counter
func getCounterValue(counter prometheus.Counter) float64 {
	var m io_prometheus_client.Metric
	if err := counter.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func sampleRunResult() *recommend.RunResult {
	return &recommend.RunResult{
		RunID:        "run-1",
		TargetUserID: 1,
		Matrix: recommend.MatrixStats{
			Users:      3,
			Categories: 4,
			NonZero:    6,
			Density:    0.5,
		},
		Backends: []recommend.BackendResult{
			{
				Backend: "nnf",
				Factors: &recommend.FactorPair{
					Backend:     "nnf",
					Rank:        2,
					UserFactors: mat.NewDense(3, 2, nil),
					ItemFactors: mat.NewDense(2, 4, nil),
					Diagnostics: recommend.FactorDiagnostics{
						Iterations:          37,
						Converged:           true,
						ReconstructionError: 0.25,
					},
				},
				Metrics: recommend.MetricsResult{Precision: 0.5, Recall: 1, Coverage: 0.5},
			},
			{
				Backend: "tsd",
				Factors: &recommend.FactorPair{
					Backend:     "tsd",
					Rank:        1,
					UserFactors: mat.NewDense(3, 1, nil),
					ItemFactors: mat.NewDense(1, 4, nil),
					Diagnostics: recommend.FactorDiagnostics{ReconstructionError: 1.5},
				},
				Metrics: recommend.MetricsResult{Precision: 0.25, Recall: 0.5, Coverage: 1},
			},
		},
		Timings: map[string]time.Duration{
			recommend.StageBuildMatrix: 5 * time.Millisecond,
			recommend.StageTotal:       40 * time.Millisecond,
		},
		CompletedAt: time.Unix(1700000000, 0),
	}
}

func TestRecordRun(t *testing.T) {
	RecordRun(sampleRunResult())

	tests := []struct {
		name  string
		gauge prometheus.Gauge
		want  float64
	}{
		{"users", MatrixCells.WithLabelValues("users"), 3},
		{"categories", MatrixCells.WithLabelValues("categories"), 4},
		{"non_zero", MatrixCells.WithLabelValues("non_zero"), 6},
		{"nnf iterations", FactorizationIterations.WithLabelValues("nnf"), 37},
		{"tsd iterations", FactorizationIterations.WithLabelValues("tsd"), 0},
		{"nnf error", ReconstructionError.WithLabelValues("nnf"), 0.25},
		{"tsd error", ReconstructionError.WithLabelValues("tsd"), 1.5},
		{"nnf precision", RecommendationPrecision.WithLabelValues("nnf"), 0.5},
		{"tsd recall", RecommendationRecall.WithLabelValues("tsd"), 0.5},
		{"tsd coverage", RecommendationCoverage.WithLabelValues("tsd"), 1},
		{"last success", RunLastSuccess, 1700000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(tt.gauge); got != tt.want {
				t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
			}
		})
	}

	if n := testutil.CollectAndCount(StageDuration, "venuerec_stage_duration_seconds"); n < 2 {
		t.Errorf("stage duration series = %d, want at least 2", n)
	}
}

func TestRecordRun_Nil(t *testing.T) {
	// Must not panic.
	RecordRun(nil)
}

func TestRecordRun_MissingFactors(t *testing.T) {
	result := &recommend.RunResult{
		Backends: []recommend.BackendResult{
			{Backend: "mock", Metrics: recommend.MetricsResult{Precision: 0.75}},
		},
	}
	RecordRun(result)

	if got := testutil.ToFloat64(RecommendationPrecision.WithLabelValues("mock")); got != 0.75 {
		t.Errorf("precision = %v, want 0.75", got)
	}
}

func TestRecordRecordsLoaded(t *testing.T) {
	before := getCounterValue(RecordsLoaded)
	RecordRecordsLoaded(12)
	after := getCounterValue(RecordsLoaded)

	if after-before != 12 {
		t.Errorf("records loaded delta = %v, want 12", after-before)
	}
}

func TestRecordRunError(t *testing.T) {
	stages := []string{"load", "engine", "export"}

	for _, stage := range stages {
		t.Run(stage, func(t *testing.T) {
			counter := RunErrors.WithLabelValues(stage)
			before := getCounterValue(counter)
			RecordRunError(stage)
			if got := getCounterValue(counter); got != before+1 {
				t.Errorf("run errors[%s] = %v, want %v", stage, got, before+1)
			}
		})
	}
}

func TestConcurrentRecording(t *testing.T) {
	before := getCounterValue(RecordsLoaded)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordRecordsLoaded(1)
			RecordStage("load", time.Millisecond)
		}()
	}
	wg.Wait()

	if got := getCounterValue(RecordsLoaded) - before; got != 20 {
		t.Errorf("records loaded delta = %v, want 20", got)
	}
}

func TestPushGatherer(t *testing.T) {
	var (
		mu     sync.Mutex
		method string
		path   string
		body   string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		method, path, body = r.Method, r.URL.Path, string(b)
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "venuerec_test_gauge", Help: "test"})
	g.Set(3)
	reg.MustRegister(g)

	if err := PushGatherer(context.Background(), server.URL, "venuerec", reg); err != nil {
		t.Fatalf("PushGatherer() error = %v", err)
	}

	mu.Lock()
	defer mu.Unlock()
	if method != http.MethodPut {
		t.Errorf("method = %s, want PUT", method)
	}
	if path != "/metrics/job/venuerec" {
		t.Errorf("path = %s, want /metrics/job/venuerec", path)
	}
	if body == "" {
		t.Error("expected a non-empty push body")
	}
}

func TestPushGatherer_Errors(t *testing.T) {
	if err := PushGatherer(context.Background(), "", "venuerec", prometheus.NewRegistry()); err == nil {
		t.Error("expected error for empty url")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	err := PushGatherer(context.Background(), server.URL, "venuerec", prometheus.NewRegistry())
	if err == nil {
		t.Fatal("expected error for failing pushgateway")
	}
	if !strings.Contains(err.Error(), "failed to push metrics") {
		t.Errorf("error = %v, want push failure", err)
	}
}

// TestMetricGathering tests that metrics can be gathered using testutil
func TestMetricGathering(t *testing.T) {
	RecordStage("load", time.Millisecond)
	RecordRunError("load")

	problems, err := testutil.GatherAndLint(prometheus.DefaultGatherer)
	if err != nil {
		t.Logf("Lint errors (may be expected): %v", err)
	}
	for _, p := range problems {
		t.Logf("Metric lint problem: %s", p.Text)
	}
}
