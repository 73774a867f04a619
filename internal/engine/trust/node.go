package trust

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drift/internal/adapters/config"
	"go.trai.ch/drift/internal/adapters/contacts"
	"go.trai.ch/drift/internal/adapters/logger"
	"go.trai.ch/drift/internal/adapters/telemetry"
	"go.trai.ch/drift/internal/core/ports"
)

// NodeID is the unique identifier for the trust cache Graft node.
const NodeID graft.ID = "engine.trust_cache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, contacts.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			source, err := graft.Dep[ports.ContactSource](ctx)
			if err != nil {
				return nil, err
			}
			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}
			params := cfg.Params()
			builder := NewBuilder(source, log, params)
			return NewCache(builder, source, log, tel, params), nil
		},
	})
}
