package metrics

import "time"

//go:generate mockery --name Provider --dir . --output ../../mocks/metrics --outpkg mocks --filename MetricsProvider.go
type Provider interface {
	IncrementGraphQLRequests(operation, status string)
	RecordGraphQLRequestDuration(operation, status string, duration time.Duration)

	IncrementCacheHits()
	IncrementCacheMisses()
	RecordCacheOperationDuration(operation string, duration time.Duration)

	IncrementEventsDelivered(topic string)
	IncrementSubscriptions(topic string)
	DecrementSubscriptions(topic string)

	SetServiceHealth(healthy bool)
}
