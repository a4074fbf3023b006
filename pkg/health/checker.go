// Package health implements liveness and readiness checks for the service's
// external dependencies.
package health

import (
	"context"
	"time"
)

// DefaultTimeout bounds a single readiness probe.
const DefaultTimeout = 5 * time.Second

// Status represents the health status of a component.
type Status string

const (
	StatusUp   Status = "up"
	StatusDown Status = "down"
)

// Result is the outcome of a single health check.
type Result struct {
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

// Checker is implemented per dependency (postgres, kafka, ...).
type Checker interface {
	Name() string
	Check(ctx context.Context) Result
}
