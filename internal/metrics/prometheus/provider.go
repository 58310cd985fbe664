package prometheus

import (
	"time"

	"blog-service/internal/metrics"
)

type PrometheusMetricsProvider struct{}

func NewPrometheusMetricsProvider() metrics.Provider {
	return &PrometheusMetricsProvider{}
}

func (p *PrometheusMetricsProvider) IncrementGraphQLRequests(operation, status string) {
	GraphQLRequestsTotal.WithLabelValues(operation, status).Inc()
}

func (p *PrometheusMetricsProvider) RecordGraphQLRequestDuration(operation, status string, duration time.Duration) {
	GraphQLRequestDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementCacheHits() {
	CacheHitsTotal.Inc()
}

func (p *PrometheusMetricsProvider) IncrementCacheMisses() {
	CacheMissesTotal.Inc()
}

func (p *PrometheusMetricsProvider) RecordCacheOperationDuration(operation string, duration time.Duration) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

func (p *PrometheusMetricsProvider) IncrementEventsDelivered(topic string) {
	EventsDeliveredTotal.WithLabelValues(topic).Inc()
}

func (p *PrometheusMetricsProvider) IncrementSubscriptions(topic string) {
	ActiveSubscriptions.WithLabelValues(topic).Inc()
}

func (p *PrometheusMetricsProvider) DecrementSubscriptions(topic string) {
	ActiveSubscriptions.WithLabelValues(topic).Dec()
}

func (p *PrometheusMetricsProvider) SetServiceHealth(healthy bool) {
	if healthy {
		ServiceHealth.Set(1)
	} else {
		ServiceHealth.Set(0)
	}
}
