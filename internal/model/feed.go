package model

import "time"

// Feed is a subscribed RSS/Atom/JSON-feed source. URL is immutable and
// unique; Title is refreshed on each successful ingestion; FetchedAt is nil
// until the first successful ingestion.
type Feed struct {
	ID           int64
	URL          string
	Title        string
	FetchedAt    *time.Time
	IsSubscribed bool
	ETag         *string
	LastModified *string
	ContentHash  *string
	ErrorMessage *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
