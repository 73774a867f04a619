package relay

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drift/internal/adapters/config"
	"go.trai.ch/drift/internal/adapters/logger"
	"go.trai.ch/drift/internal/core/ports"
)

// NodeID is the unique identifier for the relay fetcher Graft node.
const NodeID graft.ID = "adapter.contact_fetcher"

func init() {
	graft.Register(graft.Node[ports.ContactListFetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.ContactListFetcher, error) {
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewFetcher(cfg.Relays, log), nil
		},
	})
}
