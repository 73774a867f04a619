// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/drift/internal/adapters/config"
	_ "go.trai.ch/drift/internal/adapters/contacts"
	_ "go.trai.ch/drift/internal/adapters/logger"
	_ "go.trai.ch/drift/internal/adapters/relay"
	_ "go.trai.ch/drift/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/drift/internal/app"
	_ "go.trai.ch/drift/internal/engine/trust"
)
