package ports

import "go.trai.ch/kiln/internal/core/domain"

// Fingerprinter digests the membership of an input file set.
//
//go:generate mockgen -destination=mocks/mock_fingerprinter.go -package=mocks -source=fingerprinter.go
type Fingerprinter interface {
	// Digest returns a stable hash of the sorted paths in files.
	Digest(files domain.FileSet) uint64
}
