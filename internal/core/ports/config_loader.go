package ports

import "go.trai.ch/kiln/internal/core/domain"

// ConfigLoader defines the interface for loading the project settings.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load locates kiln.yaml by walking up from cwd and merges it with the environment.
	// When no config file exists, cwd becomes the project root and defaults apply.
	Load(cwd string) (*domain.Settings, error)
}
