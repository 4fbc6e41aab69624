package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

const (
	// HasherNodeID is the unique identifier for the output hasher Graft node.
	HasherNodeID graft.ID = "adapter.hasher"
	// CleanerNodeID is the unique identifier for the output cleaner Graft node.
	CleanerNodeID graft.ID = "adapter.cleaner"
)

func init() {
	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.OutputCleaner]{
		ID:        CleanerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.OutputCleaner, error) {
			return NewCleaner(), nil
		},
	})
}
