package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the database answers but the catalog does not.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
	// CheckSkipped indicates a check that did not run.
	CheckSkipped CheckResult = "skipped"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	catalog CatalogProber
}

// New creates a Service. catalog can be nil.
func New(db DBPinger, catalog CatalogProber) *Service {
	return &Service{db: db, catalog: catalog}
}

// Check runs health checks against all components. The catalog probe is
// skipped when the database does not answer.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		if s.catalog != nil {
			checks["catalog"] = CheckSkipped
		}
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.catalog != nil {
		if err := s.catalog.Probe(ctx); err != nil {
			checks["catalog"] = CheckError
			status = Degraded
		} else {
			checks["catalog"] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
