// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// CommandRunner runs external toolchain processes.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and blocks until it exits.
	//
	// Output is streamed to the logger (or the telemetry vertex found in ctx) while the
	// process runs and is also returned in full on success. A non-zero exit or a failure
	// to start yields a *domain.ExternalToolError.
	Run(ctx context.Context, cmd domain.Command) (*domain.Output, error)
}
