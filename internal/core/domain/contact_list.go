package domain

import (
	"time"

	"github.com/cespare/xxhash/v2"
)

// ContactList is the follow list of a single identity as last fetched from
// the network. A refresh replaces the whole value atomically; a ContactList
// is never mutated in place.
type ContactList struct {
	Owner     Identity
	Follows   []Identity
	FetchedAt time.Time
}

// NewContactList builds a ContactList from a raw fetch result, dropping
// duplicates, empty entries and self-references while preserving order.
func NewContactList(owner Identity, follows []Identity, fetchedAt time.Time) ContactList {
	seen := make(map[Identity]struct{}, len(follows))
	cleaned := make([]Identity, 0, len(follows))
	for _, f := range follows {
		if f == "" || f == owner {
			continue
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		cleaned = append(cleaned, f)
	}
	return ContactList{Owner: owner, Follows: cleaned, FetchedAt: fetchedAt}
}

// Age reports how long ago the list was fetched.
func (c ContactList) Age(now time.Time) time.Duration {
	return now.Sub(c.FetchedAt)
}

// Contains reports whether the owner follows the given identity.
func (c ContactList) Contains(id Identity) bool {
	for _, f := range c.Follows {
		if f == id {
			return true
		}
	}
	return false
}

// Fingerprint returns a stable hash over the owner and the ordered follow
// set. The trust cache compares fingerprints across fetches to detect that a
// root's own follow list changed and its graphs must be rebuilt.
func (c ContactList) Fingerprint() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(string(c.Owner))
	for _, f := range c.Follows {
		_, _ = h.WriteString("\x00")
		_, _ = h.WriteString(string(f))
	}
	return h.Sum64()
}
