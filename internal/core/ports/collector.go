package ports

import "go.trai.ch/kiln/internal/core/domain"

// FileCollector enumerates source files.
//
//go:generate mockgen -destination=mocks/mock_collector.go -package=mocks -source=collector.go
type FileCollector interface {
	// Collect walks root depth-first and returns the regular files accepted by match,
	// in walk order. A missing root yields an empty set.
	Collect(root string, match func(path string) bool) (domain.FileSet, error)
}
