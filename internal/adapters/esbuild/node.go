package esbuild

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/core/ports"
)

// NodeID is the unique identifier for the script compiler Graft node.
const NodeID graft.ID = "adapter.script_compiler"

func init() {
	graft.Register(graft.Node[ports.ScriptCompiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ScriptCompiler, error) {
			return NewCompiler(), nil
		},
	})
}
