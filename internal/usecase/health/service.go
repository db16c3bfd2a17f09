// Package health aggregates component liveness into one report.
package health

import "context"

// StorePinger checks vector store availability.
type StorePinger interface {
	Ping(ctx context.Context) error
}

// VectorizerChecker checks embedding provider availability.
type VectorizerChecker interface {
	HealthCheck(ctx context.Context) error
}

// Status is the aggregated health status.
type Status string

const (
	// Healthy means every component answered.
	Healthy Status = "ok"
	// Degraded means at least one component failed but not all.
	Degraded Status = "degraded"
	// Unhealthy means every component failed.
	Unhealthy Status = "error"
)

// CheckResult is one component's outcome.
type CheckResult string

const (
	// CheckOK indicates a passing check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing check.
	CheckError CheckResult = "error"
)

// Report aggregates component check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store      StorePinger
	vectorizer VectorizerChecker
}

// New creates a Service. vectorizer can be nil when the embedder has no
// remote dependency to probe.
func New(store StorePinger, vectorizer VectorizerChecker) *Service {
	return &Service{store: store, vectorizer: vectorizer}
}

// Check probes every component and aggregates the outcome.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.store.Ping(ctx); err != nil {
		checks["store"] = CheckError
	} else {
		checks["store"] = CheckOK
	}

	if s.vectorizer != nil {
		if err := s.vectorizer.HealthCheck(ctx); err != nil {
			checks["vectorizer"] = CheckError
		} else {
			checks["vectorizer"] = CheckOK
		}
	}

	failed := 0
	for _, v := range checks {
		if v == CheckError {
			failed++
		}
	}

	status := Healthy
	switch {
	case failed == len(checks):
		if failed > 0 {
			status = Unhealthy
		}
	case failed > 0:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
