package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wikipath/internal/adapters/logger"
	"go.trai.ch/wikipath/internal/core/ports"
)

// NodeID identifies the wikipath.yaml loader in the dependency graph.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			// Unknown keys are reported through the shared logger.
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
