package svg

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/domain"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the vector optimizer Graft node.
const NodeID graft.ID = "adapter.vector_optimizer"

func init() {
	graft.Register(graft.Node[ports.VectorOptimizer]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VectorOptimizer, error) {
			return NewOptimizer(domain.DefaultSVGPlugins())
		},
	})
}
