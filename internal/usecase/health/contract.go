package health

import "context"

// StoragePinger checks document storage availability.
type StoragePinger interface {
	Ping(ctx context.Context) error
}

// EmbeddingChecker checks embedding provider availability.
type EmbeddingChecker interface {
	HealthCheck(ctx context.Context) error
}

// DocumentCounter reports the corpus size.
type DocumentCounter interface {
	Count(ctx context.Context) (int, error)
}
