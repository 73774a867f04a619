// Package relay implements the contact-list fetcher over nostr relays.
//
// Follow lists live in kind-3 (contact list) events: one replaceable event
// per author whose "p" tags name the followed pubkeys. The fetcher queries
// every configured relay and keeps the newest event seen, since relays are
// eventually consistent and any one of them may hold a stale copy.
package relay

import (
	"context"
	"sync"

	"github.com/nbd-wtf/go-nostr"
	"go.trai.ch/drift/internal/core/domain"
	"go.trai.ch/drift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Fetcher implements ports.ContactListFetcher over a fixed relay set.
// Connections are dialed lazily and reused across fetches.
type Fetcher struct {
	relays []string
	log    ports.Logger

	mu    sync.Mutex
	conns map[string]*nostr.Relay
}

// NewFetcher creates a Fetcher for the given relay URLs.
func NewFetcher(relays []string, log ports.Logger) *Fetcher {
	return &Fetcher{
		relays: relays,
		log:    log,
		conns:  make(map[string]*nostr.Relay),
	}
}

// Fetch returns the identities followed by id according to the newest
// contact-list event any relay holds. A missing list is not an error: an
// identity that published nothing follows nobody. An error is returned only
// when every relay failed, and callers degrade it to an empty list.
func (f *Fetcher) Fetch(ctx context.Context, id domain.Identity) ([]domain.Identity, error) {
	if !nostr.IsValidPublicKey(id.String()) {
		return nil, zerr.With(domain.ErrInvalidIdentity, "identity", id.Short())
	}

	filter := nostr.Filter{
		Kinds:   []int{nostr.KindContactList},
		Authors: []string{id.String()},
		Limit:   1,
	}

	var newest *nostr.Event
	var lastErr error
	reached := 0

	for _, url := range f.relays {
		conn, err := f.conn(ctx, url)
		if err != nil {
			lastErr = err
			f.log.Warn("relay connect failed", "relay", url, "err", err)
			continue
		}
		events, err := conn.QuerySync(ctx, filter)
		if err != nil {
			lastErr = err
			f.log.Warn("relay query failed", "relay", url, "err", err)
			f.drop(url)
			continue
		}
		reached++
		for _, ev := range events {
			// Relays are untrusted; ignore events signed by someone else.
			if ev.PubKey != id.String() || ev.Kind != nostr.KindContactList {
				continue
			}
			if newest == nil || ev.CreatedAt > newest.CreatedAt {
				newest = ev
			}
		}
	}

	if reached == 0 {
		return nil, zerr.Wrap(lastErr, "no relay reachable for contact list")
	}
	if newest == nil {
		return nil, nil
	}
	return followsFromTags(newest.Tags), nil
}

// conn returns a live connection for the relay URL, dialing when needed.
func (f *Fetcher) conn(ctx context.Context, url string) (*nostr.Relay, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if conn, ok := f.conns[url]; ok {
		return conn, nil
	}
	conn, err := nostr.RelayConnect(ctx, url)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "relay dial failed"), "relay", url)
	}
	f.conns[url] = conn
	return conn, nil
}

// drop discards a connection after a failed query so the next fetch redials.
func (f *Fetcher) drop(url string) {
	f.mu.Lock()
	conn, ok := f.conns[url]
	delete(f.conns, url)
	f.mu.Unlock()
	if ok {
		_ = conn.Close()
	}
}

// Close closes every open relay connection.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for url, conn := range f.conns {
		_ = conn.Close()
		delete(f.conns, url)
	}
	return nil
}

// followsFromTags extracts followed pubkeys from a contact-list event's "p"
// tags, dropping malformed entries.
func followsFromTags(tags nostr.Tags) []domain.Identity {
	out := make([]domain.Identity, 0, len(tags))
	for _, tag := range tags {
		if len(tag) < 2 || tag[0] != "p" {
			continue
		}
		if !nostr.IsValidPublicKey(tag[1]) {
			continue
		}
		out = append(out, domain.Identity(tag[1]))
	}
	return out
}
