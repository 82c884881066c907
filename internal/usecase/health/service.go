package health

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/plagcheck/internal/logger"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates total failure.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Component names used in Report.Checks.
const (
	ComponentStorage   = "storage"
	ComponentEmbedding = "embedding"
)

// Report aggregates health check results.
type Report struct {
	Status    Status
	Checks    map[string]CheckResult
	Documents int
}

// Service coordinates health checks.
type Service struct {
	storage   StoragePinger
	embedding EmbeddingChecker
	docs      DocumentCounter
}

// New creates a Service. embedding and docs can be nil.
func New(storage StoragePinger, embedding EmbeddingChecker, docs DocumentCounter) *Service {
	return &Service{storage: storage, embedding: embedding, docs: docs}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	log := logger.FromContext(ctx)
	checks := make(map[string]CheckResult)

	if err := s.storage.Ping(ctx); err != nil {
		log.Warn("Storage health check failed", zap.Error(err))
		checks[ComponentStorage] = CheckError
	} else {
		checks[ComponentStorage] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			log.Warn("Embedding health check failed", zap.Error(err))
			checks[ComponentEmbedding] = CheckError
		} else {
			checks[ComponentEmbedding] = CheckOK
		}
	}

	report := Report{Status: aggregate(checks), Checks: checks}
	if s.docs != nil && checks[ComponentStorage] == CheckOK {
		if n, err := s.docs.Count(ctx); err == nil {
			report.Documents = n
		}
	}
	return report
}

func aggregate(checks map[string]CheckResult) Status {
	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}
	switch {
	case failed == 0:
		return Healthy
	case failed == len(checks):
		return Unhealthy
	default:
		return Degraded
	}
}
