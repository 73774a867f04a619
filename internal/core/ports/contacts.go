package ports

import (
	"context"

	"go.trai.ch/drift/internal/core/domain"
)

// ContactSource serves follow lists with TTL caching layered over a
// ContactListFetcher. The graph builder and the mutual-follow queries
// consume this interface.
//
//go:generate go run go.uber.org/mock/mockgen -source=contacts.go -destination=mocks/mock_contacts.go -package=mocks
type ContactSource interface {
	// FetchOne returns the follow list for one identity, served from cache
	// while fresh. A network failure degrades to an empty list, which is
	// cached like any other result. The error is non-nil only when ctx is
	// done.
	FetchOne(ctx context.Context, id domain.Identity) (domain.ContactList, error)

	// FetchMany returns follow lists for a set of identities, batching the
	// network round-trips for entries that are missing or stale. A failed
	// fetch degrades to an empty list for that identity only. The error is
	// non-nil only when ctx is done.
	FetchMany(ctx context.Context, ids []domain.Identity) (map[domain.Identity][]domain.Identity, error)

	// Invalidate drops the cached entry for one identity.
	Invalidate(id domain.Identity)

	// InvalidateAll drops every cached entry.
	InvalidateAll()

	// Len reports the number of cached entries.
	Len() int
}
