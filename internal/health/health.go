// Package health provides health check implementations for the API's
// dependencies. Checkers feed the /ready endpoint; /health stays a plain
// liveness probe.
package health

import "context"

// Checker is a single dependency health check.
type Checker interface {
	HealthCheck(ctx context.Context) error
}
