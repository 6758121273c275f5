package repositories

import (
	"errors"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SocialRepository struct {
	DB *gorm.DB
}

// Follow adds a directional edge. The insert is an atomic set-add: on a
// duplicate the conflict clause turns it into a no-op instead of an error,
// so two racing requests net out to a single edge.
func (r *SocialRepository) Follow(followerID, followeeID uint) error {
	edge := models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	return r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

// Unfollow removes the edge; removing an absent edge is a no-op.
func (r *SocialRepository) Unfollow(followerID, followeeID uint) error {
	return r.DB.Unscoped().
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error
}

// FollowingIDs returns the ids of every user the given user follows.
func (r *SocialRepository) FollowingIDs(followerID uint) ([]uint, error) {
	ids := []uint{}
	err := r.DB.Model(&models.Follow{}).
		Where("follower_id = ?", followerID).
		Order("created_at ASC").
		Pluck("followee_id", &ids).Error
	return ids, err
}

func (r *SocialRepository) FollowingCount(followerID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&models.Follow{}).Where("follower_id = ?", followerID).Count(&n).Error
	return n, err
}

// ToggleLike flips whether liker likes userID's list and returns the new
// membership state plus the resulting like count. Callers cannot force a
// direction, only invert the current state.
func (r *SocialRepository) ToggleLike(userID, likerID uint) (liked bool, count int64, err error) {
	var existing models.Like
	err = r.DB.Where("user_id = ? AND liker_id = ?", userID, likerID).First(&existing).Error
	switch {
	case err == nil:
		if err = r.DB.Unscoped().Delete(&existing).Error; err != nil {
			return false, 0, err
		}
		liked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		edge := models.Like{UserID: userID, LikerID: likerID}
		if err = r.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error; err != nil {
			return false, 0, err
		}
		liked = true
	default:
		return false, 0, err
	}

	count, err = r.LikeCount(userID)
	if err != nil {
		return false, 0, err
	}
	return liked, count, nil
}

// LikeCount returns how many users like userID's list.
func (r *SocialRepository) LikeCount(userID uint) (int64, error) {
	var n int64
	err := r.DB.Model(&models.Like{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

// HasLiked reports whether liker currently likes userID's list.
func (r *SocialRepository) HasLiked(userID, likerID uint) (bool, error) {
	var n int64
	err := r.DB.Model(&models.Like{}).
		Where("user_id = ? AND liker_id = ?", userID, likerID).
		Count(&n).Error
	return n > 0, err
}
