package ports

import "go.trai.ch/kiln/internal/core/domain"

// ProjectLoader defines the interface for loading the project layout.
//
//go:generate mockgen -source=project_loader.go -destination=mocks/mock_project_loader.go -package=mocks
type ProjectLoader interface {
	// Load reads the optional manifest in the given working directory and returns the project.
	Load(cwd string) (*domain.Project, error)
}
