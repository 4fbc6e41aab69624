package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/kiln/internal/adapters/cas"        //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/config"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/devserver"  //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/esbuild"    //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/fs"         //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/imagemin"   //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/logger"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/metrics"    //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/minify"     //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/sass"       //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/stylesheet" //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/svg"        //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/adapters/watcher"    //nolint:depguard // Wired in app layer
	"go.trai.ch/kiln/internal/core/ports"
	"go.trai.ch/kiln/internal/engine/assets"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// TransformsNodeID is the unique identifier for the transform bundle Graft node.
	TransformsNodeID graft.ID = "app.transforms"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what main needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[assets.Transforms]{
		ID:        TransformsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			sass.NodeID,
			stylesheet.NodeID,
			esbuild.NodeID,
			minify.NodeID,
			svg.NodeID,
			imagemin.NodeID,
		},
		Run: runTransformsNode,
	})

	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.CleanerNodeID,
			watcher.NodeID,
			devserver.NodeID,
			metrics.NodeID,
			TransformsNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

func runTransformsNode(ctx context.Context) (assets.Transforms, error) {
	var t assets.Transforms
	var err error

	if t.Styles, err = graft.Dep[ports.StyleCompiler](ctx); err != nil {
		return t, err
	}
	if t.Sheets, err = graft.Dep[ports.StylesheetProcessor](ctx); err != nil {
		return t, err
	}
	if t.Scripts, err = graft.Dep[ports.ScriptCompiler](ctx); err != nil {
		return t, err
	}
	if t.Minifier, err = graft.Dep[ports.Minifier](ctx); err != nil {
		return t, err
	}
	if t.Vectors, err = graft.Dep[ports.VectorOptimizer](ctx); err != nil {
		return t, err
	}
	if t.Images, err = graft.Dep[ports.ImageOptimizer](ctx); err != nil {
		return t, err
	}
	return t, nil
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	cleaner, err := graft.Dep[ports.OutputCleaner](ctx)
	if err != nil {
		return nil, err
	}
	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}
	servers, err := graft.Dep[ports.DevServerFactory](ctx)
	if err != nil {
		return nil, err
	}
	recorder, err := graft.Dep[*metrics.Recorder](ctx)
	if err != nil {
		return nil, err
	}
	transforms, err := graft.Dep[assets.Transforms](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, store, hasher, cleaner, w, servers, recorder, transforms), nil
}
