package model

import "time"

// Article is one entry of a Feed. (FeedID, GUID) is unique; rows are created
// only by ingestion and mutated only for IsRead (user action) or title/url
// (re-ingestion of the same guid).
type Article struct {
	ID        int64
	FeedID    int64
	GUID      string
	Title     string
	URL       string
	IsRead    bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Feed is populated by queries that join the owning feed.
	Feed *Feed
}

// ArticleFlag is the projection used for unread-count computation.
type ArticleFlag struct {
	ID     int64
	FeedID int64
	IsRead bool
}
