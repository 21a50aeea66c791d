package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncRoundsScored()
	IncSettlementsComputed()
	ObserveScoringDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	IncEventsPublished()
	SetStartupTime(duration float64)
}

// MetricsStore is the durable counter store. Unlike the Prometheus
// metrics it survives restarts; it backs the lifetime totals endpoint.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
