package ports

import "go.trai.ch/kiln/internal/core/domain"

// EnvironmentLoader reads the developer-local settings file.
//
//go:generate mockgen -source=environment.go -destination=mocks/mock_environment.go -package=mocks
type EnvironmentLoader interface {
	// Load parses the settings file at path.
	// A missing file yields a zero Environment. Unknown keys are an error.
	Load(path string) (domain.Environment, error)
}
