// Package observability provides metrics and tracing.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulatedLoads counts simulated content loads by resource.
	SimulatedLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safespace_simulated_loads_total",
		Help: "Total number of simulated content loads by resource",
	}, []string{"resource"})

	// FeedTicks counts live-feed timer firings by outcome.
	FeedTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safespace_feed_ticks_total",
		Help: "Total live-feed timer firings by outcome",
	}, []string{"outcome"})

	// WebSocketConnectionsTotal is the gauge of active feed connections.
	WebSocketConnectionsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "safespace_websocket_connections_total",
		Help: "Total number of active WebSocket feed connections",
	})

	// WebSocketDroppedMessages counts feed events dropped because a
	// client's outbound buffer was full.
	WebSocketDroppedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safespace_websocket_dropped_messages_total",
		Help: "Total feed events dropped by reason",
	}, []string{"reason"})

	// NoticesPushed counts toast notifications by kind.
	NoticesPushed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safespace_notices_pushed_total",
		Help: "Total toast notifications pushed by kind",
	}, []string{"kind"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "safespace_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)
