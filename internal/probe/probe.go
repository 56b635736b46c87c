// Package probe answers a single question: is the backend reachable right now?
package probe

import (
	"context"
	"log/slog"
)

// HealthChecker issues the backend health request.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Prober cheaply determines whether the backend is currently reachable.
// The answer is advisory: ordinary reads and writes always attempt the
// network themselves and fall back independently.
type Prober struct {
	checker HealthChecker
	logger  *slog.Logger
}

// New constructs a Prober over the given health checker.
func New(checker HealthChecker, logger *slog.Logger) *Prober {
	return &Prober{checker: checker, logger: logger}
}

// Check reports backend reachability. Every failure mode, timeout included,
// collapses to false; it never returns an error and has no side effects.
func (p *Prober) Check(ctx context.Context) bool {
	if err := p.checker.Health(ctx); err != nil {
		if p.logger != nil {
			p.logger.Warn("backend unreachable", "error", err)
		}
		return false
	}
	return true
}
