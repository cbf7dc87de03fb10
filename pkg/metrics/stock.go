package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Stock operation labels.
const (
	OpAdd  = "add"
	OpSell = "sell"

	OutcomeOK           = "ok"
	OutcomeNotFound     = "not_found"
	OutcomeInsufficient = "insufficient"
	OutcomeError        = "error"
)

// StockMetrics counts stock adjustments and the units they moved.
type StockMetrics struct {
	operations *prometheus.CounterVec
	units      *prometheus.CounterVec
}

// NewStockMetrics registers the stock metrics on the provided registerer. A
// nil registerer yields a no-op recorder.
func NewStockMetrics(reg prometheus.Registerer) *StockMetrics {
	if reg == nil {
		return &StockMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_operations_total",
		Help: "Stock add/sell requests by outcome.",
	}, []string{"op", "outcome"})
	units := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_units_total",
		Help: "Units added or sold by successful stock operations.",
	}, []string{"op"})
	reg.MustRegister(operations, units)
	return &StockMetrics{operations: operations, units: units}
}

// Observe records one stock operation. Units are only counted on success and
// only when positive.
func (s *StockMetrics) Observe(op, outcome string, amount int) {
	if s == nil || s.operations == nil {
		return
	}
	s.operations.WithLabelValues(normalizeLabel(op), normalizeLabel(outcome)).Inc()
	if outcome == OutcomeOK && amount > 0 {
		s.units.WithLabelValues(normalizeLabel(op)).Add(float64(amount))
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
