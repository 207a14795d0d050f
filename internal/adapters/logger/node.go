package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wikipath/internal/core/ports"
)

// NodeID identifies the stderr logger in the dependency graph.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run:       newNode,
	})
}

// newNode builds the shared logger. App.LoadSettings switches it to JSON
// output later when the settings ask for it.
func newNode(context.Context) (ports.Logger, error) {
	return New(), nil
}
