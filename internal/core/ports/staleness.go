package ports

import "go.trai.ch/kiln/internal/core/domain"

// StalenessChecker compares a target artifact against its inputs.
//
//go:generate mockgen -destination=mocks/mock_staleness.go -package=mocks -source=staleness.go
type StalenessChecker interface {
	// NeedsRebuild reports whether target is missing or older than any input.
	NeedsRebuild(target string, inputs domain.FileSet) (bool, error)
}
