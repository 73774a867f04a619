package domain

import "time"

// Post is the minimal shape of a board post the trust engine filters and
// ranks. Author is empty when the post carries no author pubkey; such posts
// pass through filtering unfiltered but rank below every scored post.
type Post struct {
	ID        string
	Author    Identity
	CreatedAt time.Time
	Content   string
}
