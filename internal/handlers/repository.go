package handlers

import (
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"
)

// UserRepository captures the persistence operations required by handlers.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(userID uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByPseudo(pseudo string) (*models.User, error)
	SaveUser(user *models.User) error
	DeleteUser(userID uint) error
}

// TokenRepository captures the token persistence operations required by handlers.
type TokenRepository interface {
	Create(token *models.Token) error
	GetByHash(hash string, purpose models.TokenPurpose) (*models.Token, error)
	GetValidByUserAndPurpose(userID uint, purpose models.TokenPurpose) (*models.Token, error)
	DeleteByID(id uint) error
	DeleteByUserAndPurpose(userID uint, purpose models.TokenPurpose) error
	DeleteExpired(before time.Time) (int64, error)
}

// WatchlistRepository captures the list-entry operations required by handlers.
type WatchlistRepository interface {
	Add(entry *models.UserMovie) error
	SetStatus(userID uint, itemID int64, itemType models.MediaType, status models.WatchStatus) (*models.UserMovie, error)
	Remove(userID uint, itemID int64, itemType models.MediaType) error
	ListByUser(userID uint, status models.WatchStatus) ([]models.UserMovie, error)
}

// ReviewRepository captures the review operations required by handlers.
type ReviewRepository interface {
	Create(review *models.Review) error
	Update(userID uint, movieID int64, rating int, comment string) (*models.Review, error)
	Delete(userID uint, movieID int64) error
	ListByMovie(movieID int64) ([]models.Review, error)
}

// SocialRepository captures the follow/like operations required by handlers.
type SocialRepository interface {
	Follow(followerID, followeeID uint) error
	Unfollow(followerID, followeeID uint) error
	FollowingIDs(followerID uint) ([]uint, error)
	FollowingCount(followerID uint) (int64, error)
	ToggleLike(userID, likerID uint) (liked bool, count int64, err error)
	LikeCount(userID uint) (int64, error)
	HasLiked(userID, likerID uint) (bool, error)
}
