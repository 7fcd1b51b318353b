package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 分享链接事件。
const (
	ShareIssued         = "issued"
	ShareRevoked        = "revoked"
	ShareTokenCollision = "token_collision"
	ShareRetryExhausted = "retry_exhausted"
	SharePublicHit      = "public_hit"
	SharePublicMiss     = "public_miss"
)

var shareLinkEvents = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "share",
		Name:      "events_total",
		Help:      "分享链接状态变化与公开访问次数。",
	},
	[]string{"event"},
)

// ObserveShareEvent 记录一次分享链接事件。
func ObserveShareEvent(event string) {
	shareLinkEvents.WithLabelValues(event).Inc()
}
