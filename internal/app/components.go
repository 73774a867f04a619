package app

import (
	"go.trai.ch/drift/internal/adapters/config"
	"go.trai.ch/drift/internal/core/ports"
)

// Components contains the initialized application components. It provides
// controlled access to what the CLI layer needs.
type Components struct {
	Service *Service
	Logger  ports.Logger
	Config  *config.Config
}
