package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestStockMetricsCountsOutcomesAndUnits(t *testing.T) {
	reg := prometheus.NewRegistry()
	stock := NewStockMetrics(reg)
	stock.Observe(OpAdd, OutcomeOK, 5)
	stock.Observe(OpAdd, OutcomeOK, -2)
	stock.Observe(OpSell, OutcomeInsufficient, 10)
	stock.Observe(OpSell, OutcomeOK, 3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "stock_operations_total", map[string]string{"op": OpAdd, "outcome": OutcomeOK}); err != nil {
		t.Fatalf("fetch add ok: %v", err)
	} else if got != 2 {
		t.Fatalf("expected add ok=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_operations_total", map[string]string{"op": OpSell, "outcome": OutcomeInsufficient}); err != nil {
		t.Fatalf("fetch sell insufficient: %v", err)
	} else if got != 1 {
		t.Fatalf("expected sell insufficient=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_units_total", map[string]string{"op": OpAdd}); err != nil {
		t.Fatalf("fetch add units: %v", err)
	} else if got != 5 {
		t.Fatalf("expected add units=5, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "stock_units_total", map[string]string{"op": OpSell}); err != nil {
		t.Fatalf("fetch sell units: %v", err)
	} else if got != 3 {
		t.Fatalf("expected sell units=3, got %f", got)
	}
}

func TestHTTPMetricsExportsCounterAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	httpMetrics := NewHTTPMetrics(reg)
	httpMetrics.Observe("GET", "/api/groups/{id:[0-9]+}", 404, 20*time.Millisecond)
	httpMetrics.Observe("GET", "", 404, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "/api/groups/{id:[0-9]+}", "status": "404"}); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}

	if _, err := fetchCounterValue(mfs, "http_requests_total", map[string]string{"route": "unmatched"}); err != nil {
		t.Fatalf("fetch unmatched: %v", err)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", map[string]string{"method": "GET", "route": "/api/groups/{id:[0-9]+}"}); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestNilRegistererIsNoop(t *testing.T) {
	NewStockMetrics(nil).Observe(OpAdd, OutcomeOK, 1)
	NewHTTPMetrics(nil).Observe("GET", "/", 200, time.Second)

	var stock *StockMetrics
	stock.Observe(OpSell, OutcomeOK, 1)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing labels %v", name, labels)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name string, labels map[string]string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabels(metric.GetLabel(), labels) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing labels %v", name, labels)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabels(pairs []*dto.LabelPair, want map[string]string) bool {
	for name, value := range want {
		found := false
		for _, label := range pairs {
			if label.GetName() == name && label.GetValue() == value {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
