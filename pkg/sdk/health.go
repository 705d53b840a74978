package catalogo

import (
	"context"

	healthuc "github.com/kailas-cloud/catalogo/internal/usecase/health"
)

// HealthStatus is the database and catalog table health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // "database", "catalog" -> "ok", "error", "skipped"
}

// OK reports whether every check passed.
func (h HealthStatus) OK() bool { return h.Status == string(healthuc.Healthy) }

// Health pings the database and counts the catalog table.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return HealthStatus{
		Status: string(report.Status),
		Checks: checks,
	}
}

// healthUseCase is the internal interface for health checks.
type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
