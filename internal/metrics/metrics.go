// Package metrics exposes Prometheus instruments for the encode
// pipeline. Recording calls are safe before Register() runs: they are
// package-level vars, not obtained from a registry, matching the
// teacher's internal/metrics.go pattern of calling
// metrics.X.WithLabelValues(...) unconditionally from the pipelines.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecordsEncodedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mrtwriter_records_encoded_total",
			Help: "MRT records encoded, by record family.",
		},
		[]string{"kind"},
	)

	BytesWrittenTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mrtwriter_bytes_written_total",
			Help: "Bytes written, by record family.",
		},
		[]string{"kind"},
	)

	EncodeErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mrtwriter_encode_errors_total",
			Help: "Encode failures, by stage and error kind.",
		},
		[]string{"stage", "reason"},
	)

	EncodeDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mrtwriter_encode_duration_seconds",
			Help:    "Time spent inside export_bytes, by operation.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
		},
		[]string{"op"},
	)

	RibPeerTableSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mrtwriter_rib_peer_table_size",
			Help: "Peer count of the most recently exported RIB snapshot.",
		},
		[]string{"composer"},
	)
)

var registerOnce sync.Once

// Register registers every collector above with the default registry. It
// is safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RecordsEncodedTotal,
			BytesWrittenTotal,
			EncodeErrorsTotal,
			EncodeDuration,
			RibPeerTableSize,
		)
	})
}
