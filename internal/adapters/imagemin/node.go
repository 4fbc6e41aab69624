package imagemin

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/logger"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the raster image optimizer Graft node.
const NodeID graft.ID = "adapter.image_optimizer"

func init() {
	graft.Register(graft.Node[ports.ImageOptimizer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ImageOptimizer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOptimizer(log), nil
		},
	})
}
