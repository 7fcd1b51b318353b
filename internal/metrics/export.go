package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	exportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "简历导出耗时分布（秒）。",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"format", "outcome"},
	)

	exportBytes = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "artifact_bytes",
			Help:      "导出产物大小（字节）。",
			Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
		},
		[]string{"format"},
	)
)

// ObserveExport 记录一次导出的耗时与结果。
func ObserveExport(format string, started time.Time, size int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	exportDuration.WithLabelValues(format, outcome).Observe(time.Since(started).Seconds())
	if err == nil {
		exportBytes.WithLabelValues(format).Observe(float64(size))
	}
}
