// Package ports defines the core interfaces for the trust engine.
package ports

import (
	"context"

	"go.trai.ch/drift/internal/core/domain"
)

// ContactListFetcher retrieves the raw follow list for one identity from the
// network. This is the engine's only inbound boundary.
//
// Implementations log their own transport failures. Callers treat a returned
// error as "no follows" rather than aborting a build (fail-soft).
//
//go:generate go run go.uber.org/mock/mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type ContactListFetcher interface {
	// Fetch returns the identities followed by id, in relay order.
	Fetch(ctx context.Context, id domain.Identity) ([]domain.Identity, error)
}
