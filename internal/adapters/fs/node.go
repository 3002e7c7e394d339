package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/bob-agent/internal/core/ports"
)

const (
	// WalkerNodeID is the unique identifier for the walker Graft node.
	WalkerNodeID graft.ID = "adapter.fs.walker"
	// HasherNodeID is the unique identifier for the hasher Graft node.
	HasherNodeID graft.ID = "adapter.fs.hasher"
	// MaterialsNodeID is the unique identifier for the material preparer Graft node.
	MaterialsNodeID graft.ID = "adapter.fs.materials"
	// PropertiesNodeID is the unique identifier for the property generator Graft node.
	PropertiesNodeID graft.ID = "adapter.fs.properties"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[*Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (*Hasher, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewHasher(walker), nil
		},
	})

	graft.Register(graft.Node[ports.MaterialPreparer]{
		ID:        MaterialsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{WalkerNodeID},
		Run: func(ctx context.Context) (ports.MaterialPreparer, error) {
			walker, err := graft.Dep[*Walker](ctx)
			if err != nil {
				return nil, err
			}
			return NewMaterials(walker), nil
		},
	})

	graft.Register(graft.Node[ports.PropertyGenerator]{
		ID:        PropertiesNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{HasherNodeID},
		Run: func(ctx context.Context) (ports.PropertyGenerator, error) {
			hasher, err := graft.Dep[*Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return NewProperties(hasher), nil
		},
	})
}
