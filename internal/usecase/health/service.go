package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates a required component is failing.
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

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	catalog Catalog
	index   Index
	cache   CachePinger
}

// New creates a Service. cache can be nil when caching is disabled.
func New(catalog Catalog, index Index, cache CachePinger) *Service {
	return &Service{catalog: catalog, index: index, cache: cache}
}

// Check runs health checks against all components. An empty catalog or
// index makes the service unhealthy; a failing cache only degrades it.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)
	status := Healthy

	checks["catalog"] = result(s.catalog.Len() > 0)
	checks["index"] = result(s.index.Ready())
	if checks["catalog"] == CheckError || checks["index"] == CheckError {
		status = Unhealthy
	}

	if s.cache != nil {
		checks["cache"] = result(s.cache.Ping(ctx) == nil)
		if checks["cache"] == CheckError && status == Healthy {
			status = Degraded
		}
	}

	return Report{Status: status, Checks: checks}
}

func result(ok bool) CheckResult {
	if ok {
		return CheckOK
	}
	return CheckError
}
