package contacts

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drift/internal/adapters/config"
	"go.trai.ch/drift/internal/adapters/logger"
	"go.trai.ch/drift/internal/adapters/relay"
	"go.trai.ch/drift/internal/core/ports"
)

// NodeID is the unique identifier for the contact store Graft node.
const NodeID graft.ID = "adapter.contact_store"

func init() {
	graft.Register(graft.Node[ports.ContactSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, relay.NodeID},
		Run: func(ctx context.Context) (ports.ContactSource, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			fetcher, err := graft.Dep[ports.ContactListFetcher](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(fetcher, log, cfg.Params()), nil
		},
	})
}
