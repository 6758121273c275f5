package models

import (
	"gorm.io/gorm"
)

// WatchStatus is the bucket a list entry currently sits in.
type WatchStatus string

const (
	StatusWatchlist WatchStatus = "watchlist"
	StatusWatching  WatchStatus = "watching"
	StatusCompleted WatchStatus = "completed"
)

// IsValidStatus reports whether s is one of the three watch statuses.
func IsValidStatus(s WatchStatus) bool {
	return s == StatusWatchlist || s == StatusWatching || s == StatusCompleted
}

// MediaType tags a catalog item as a movie or a TV show.
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// IsValidMediaType reports whether t is a known catalog item type.
func IsValidMediaType(t MediaType) bool {
	return t == MediaMovie || t == MediaTV
}

// UserMovie is one user's relationship to one catalog item. An item lives in
// exactly one status bucket at a time; the composite unique index is the
// backstop against concurrent duplicate adds.
type UserMovie struct {
	gorm.Model
	UserID   uint        `gorm:"not null;uniqueIndex:idx_user_item" json:"userId"`
	ItemID   int64       `gorm:"not null;uniqueIndex:idx_user_item" json:"itemId"`
	ItemType MediaType   `gorm:"not null;uniqueIndex:idx_user_item" json:"itemType"`
	Status   WatchStatus `gorm:"not null;default:watchlist" json:"status"`
}
