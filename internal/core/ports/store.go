package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigStore persists the rebuild-affecting configuration of the last successful build.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ConfigStore interface {
	// Load reads the persisted configuration.
	// Returns nil, nil if the file is missing or holds no readable key.
	Load(path string) (*domain.PersistedConfig, error)

	// Save overwrites the file with cfg and the digest of the input file set.
	Save(path string, cfg domain.Config, inputsDigest uint64) error
}
