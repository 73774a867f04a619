package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/drift/internal/adapters/config"
	"go.trai.ch/drift/internal/adapters/contacts"
	"go.trai.ch/drift/internal/adapters/logger"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/drift/internal/engine/trust"
)

const (
	// ServiceNodeID is the unique identifier for the trust service Graft node.
	ServiceNodeID graft.ID = "app.service"
	// ComponentsNodeID is the unique identifier for the components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*Service]{
		ID:        ServiceNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID, contacts.NodeID, trust.NodeID},
		Run: func(ctx context.Context) (*Service, error) {
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
			cache, err := graft.Dep[*trust.Cache](ctx)
			if err != nil {
				return nil, err
			}

			svc, err := New(source, cache, log, cfg.Params())
			if err != nil {
				return nil, err
			}
			if cfg.Root != "" {
				svc.SetRoot(cfg.Root)
			}
			return svc, nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ServiceNodeID, logger.NodeID, config.NodeID},
		Run: func(ctx context.Context) (*Components, error) {
			svc, err := graft.Dep[*Service](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*config.Config](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{Service: svc, Logger: log, Config: cfg}, nil
		},
	})
}
