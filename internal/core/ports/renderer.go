package ports

import (
	"context"
	"time"
)

// Renderer is the abstraction for progress output.
// It decouples telemetry collection from presentation.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start initializes the renderer and begins its lifecycle.
	Start(ctx context.Context) error

	// Stop signals the renderer to stop accepting new events and flush buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated.
	Wait() error

	// OnPlanEmit is called when the orchestrator has planned a batch of pipelines.
	OnPlanEmit(tasks []string)

	// OnTaskStart is called when a pipeline or stage begins.
	// parentID is empty for top-level spans.
	OnTaskStart(spanID, parentID, name string, startTime time.Time)

	// OnTaskLog is called when a pipeline emits output. data may hold partial lines.
	OnTaskLog(spanID string, data []byte)

	// OnTaskComplete is called when a pipeline or stage finishes. err is nil on success.
	OnTaskComplete(spanID string, endTime time.Time, err error)
}
