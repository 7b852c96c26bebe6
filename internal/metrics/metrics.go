// Package metrics defines the Prometheus collectors exposed at /metrics.
package metrics

import (
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests by method, route, and status code",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)

	RateLimitedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "rate_limited_total",
			Help:      "Requests rejected by a rate limiter, by limiter name",
		},
		[]string{"route"},
	)

	SubscriptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "subscriptions_total",
			Help:      "Newsletter subscription attempts by result",
		},
		[]string{"result"},
	)

	ContactMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "contact_messages_total",
			Help:      "Contact form submissions by result",
		},
		[]string{"result"},
	)

	CommentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "intake",
			Name:      "comments_total",
			Help:      "Blog comment submissions by result",
		},
		[]string{"result"},
	)

	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "logins_total",
			Help:      "Admin login attempts by result",
		},
		[]string{"result"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mail",
			Name:      "notifications_total",
			Help:      "Outgoing emails by kind and result",
		},
		[]string{"kind", "result"},
	)

	DBConnectionPoolSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "db",
			Name:      "pool_connections",
			Help:      "Database connection pool stats",
		},
		[]string{"state"},
	)
)

// Result label values.
const (
	ResultSuccess   = "success"
	ResultFailure   = "failure"
	ResultInvalid   = "invalid"
	ResultDuplicate = "duplicate"
	ResultDisabled  = "disabled"
)

// PoolStats is the subset of pgxpool.Stat the collector reads.
type PoolStats interface {
	TotalConns() int32
	IdleConns() int32
	AcquiredConns() int32
}

type PoolStatsProvider interface {
	Stat() PoolStats
}

type pgxPoolAdapter struct {
	pool *pgxpool.Pool
}

func (a *pgxPoolAdapter) Stat() PoolStats {
	return a.pool.Stat()
}

// PoolStatsCollector samples pool stats on an interval until stopped.
type PoolStatsCollector struct {
	provider PoolStatsProvider
	stopChan chan struct{}
	wg       sync.WaitGroup
}

func NewPoolStatsCollector(pool *pgxpool.Pool) *PoolStatsCollector {
	return NewPoolStatsCollectorWithProvider(&pgxPoolAdapter{pool: pool})
}

func NewPoolStatsCollectorWithProvider(provider PoolStatsProvider) *PoolStatsCollector {
	return &PoolStatsCollector{
		provider: provider,
		stopChan: make(chan struct{}),
	}
}

func (c *PoolStatsCollector) Start(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stopChan:
				return
			}
		}
	}()
}

func (c *PoolStatsCollector) collect() {
	stats := c.provider.Stat()
	DBConnectionPoolSize.WithLabelValues("total").Set(float64(stats.TotalConns()))
	DBConnectionPoolSize.WithLabelValues("idle").Set(float64(stats.IdleConns()))
	DBConnectionPoolSize.WithLabelValues("in_use").Set(float64(stats.AcquiredConns()))
}

func (c *PoolStatsCollector) Stop() {
	close(c.stopChan)
	c.wg.Wait()
}
