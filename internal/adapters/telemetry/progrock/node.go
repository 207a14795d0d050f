package progrock

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wikipath/internal/adapters/logger"
	"go.trai.ch/wikipath/internal/core/ports"
)

// NodeID identifies the progrock recorder in the dependency graph.
// Every build phase of a command run records into this single recorder.
const NodeID graft.ID = "adapter.telemetry"

func init() {
	graft.Register(graft.Node[ports.Telemetry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Telemetry, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
