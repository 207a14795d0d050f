package wikixml

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wikipath/internal/adapters/logger"
	"go.trai.ch/wikipath/internal/core/ports"
)

// NodeID is the unique identifier for the corpus parser Graft node.
const NodeID graft.ID = "adapter.corpus_parser"

func init() {
	graft.Register(graft.Node[ports.CorpusParser]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.CorpusParser, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewParser(log), nil
		},
	})
}
