package ports

import (
	"context"

	"go.trai.ch/kiln/internal/core/domain"
)

// ReloadNotifier tells connected browsers to reload.
//
//go:generate go run go.uber.org/mock/mockgen -source=server.go -destination=mocks/mock_server.go -package=mocks
type ReloadNotifier interface {
	Reload(ctx context.Context, event domain.ReloadEvent)
}

// DevServer serves the output directory over HTTP with live reload.
type DevServer interface {
	ReloadNotifier
	// Start binds the listen address and serves in the background.
	Start(ctx context.Context) error
	// Stop shuts the server down and disconnects all clients.
	Stop(ctx context.Context) error
	// URL returns the address the server is reachable at.
	URL() string
}

// Metrics records pipeline and reload activity.
type Metrics interface {
	ObservePipeline(class domain.AssetClass, mode domain.Mode, seconds float64, err error)
	ObserveReload(class domain.AssetClass)
	SetReloadClients(n int)
}

// DevServerFactory creates a DevServer once flags and configuration are resolved.
type DevServerFactory interface {
	// NewServer returns a server for outputDir, an absolute path.
	NewServer(outputDir string, settings domain.ServerSettings) DevServer
}
