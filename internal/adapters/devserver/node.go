package devserver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/adapters/metrics"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the development server factory Graft node.
const NodeID graft.ID = "adapter.dev_server"

// Factory implements ports.DevServerFactory.
type Factory struct {
	logger   ports.Logger
	recorder *metrics.Recorder
}

// NewFactory creates a Factory whose servers expose recorder at /metrics.
func NewFactory(logger ports.Logger, recorder *metrics.Recorder) *Factory {
	return &Factory{logger: logger, recorder: recorder}
}

// NewServer creates a Server for outputDir.
func (f *Factory) NewServer(outputDir string, settings domain.ServerSettings) ports.DevServer {
	return NewServer(f.logger, f.recorder, f.recorder.Handler(), outputDir, settings)
}

func init() {
	graft.Register(graft.Node[ports.DevServerFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID, metrics.NodeID},
		Run: func(ctx context.Context) (ports.DevServerFactory, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			rec, err := graft.Dep[*metrics.Recorder](ctx)
			if err != nil {
				return nil, err
			}
			return NewFactory(log, rec), nil
		},
	})
}
