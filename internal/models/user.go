package models

import (
	"time"

	"gorm.io/gorm"
)

// Roles assignable to a user. Everyone starts as RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Avatars is the fixed set of selectable profile pictures.
var Avatars = []string{
	"avatar1", "avatar2", "avatar3", "avatar4",
	"avatar5", "avatar6", "avatar7", "avatar8",
}

// IsValidAvatar reports whether name belongs to the fixed avatar set.
func IsValidAvatar(name string) bool {
	for _, a := range Avatars {
		if a == name {
			return true
		}
	}
	return false
}

// User represents a registered user in the system.
type User struct {
	gorm.Model
	Pseudo       string `gorm:"unique;not null" json:"pseudo"`
	Email        string `gorm:"unique;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:user" json:"role"`
	Avatar       string `gorm:"not null;default:avatar1" json:"avatar"`

	// Genre preferences, one list per media type.
	MovieGenres []int64 `gorm:"serializer:json" json:"movieGenres"`
	TVGenres    []int64 `gorm:"serializer:json" json:"tvGenres"`

	VerifiedAt *time.Time `json:"verifiedAt"`
	BlockedAt  *time.Time `json:"-"`
}

// EnsureUserIndexes adds case-insensitive unique indexes on email and pseudo.
// The column-level unique tags compare case-sensitively, which would let
// Foo@x and foo@x both persist under an insert race even though lookups fold
// case. Runs after AutoMigrate; works on postgres and sqlite alike.
func EnsureUserIndexes(db *gorm.DB) error {
	for _, stmt := range []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_ci ON users (LOWER(email))",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_pseudo_ci ON users (LOWER(pseudo))",
	} {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// Verified reports whether the account confirmed its email address.
func (u *User) Verified() bool {
	return u.VerifiedAt != nil
}

// Blocked reports whether the account was administratively blocked.
func (u *User) Blocked() bool {
	return u.BlockedAt != nil
}

// Follow is a directional edge: follower follows followee.
// The composite unique index makes duplicate inserts fail atomically,
// which is what keeps follow idempotent under concurrent requests.
type Follow struct {
	gorm.Model
	FollowerID uint `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followerId"`
	FolloweeID uint `gorm:"not null;uniqueIndex:idx_follow_edge" json:"followeeId"`
}

// Like is a directional edge: liker liked the list of user UserID.
type Like struct {
	gorm.Model
	UserID  uint `gorm:"not null;uniqueIndex:idx_like_edge" json:"userId"`
	LikerID uint `gorm:"not null;uniqueIndex:idx_like_edge" json:"likerId"`
}
