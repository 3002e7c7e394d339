package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bob-agent/internal/adapters/logger"
	"go.trai.ch/bob-agent/internal/core/ports"
)

// NodeID is the unique identifier for the assignment loader Graft node.
const NodeID graft.ID = "adapter.assignment_loader"

func init() {
	graft.Register(graft.Node[ports.AssignmentLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.AssignmentLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
