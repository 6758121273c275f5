package repositories

import (
	"errors"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound = errors.New("review not found")
	ErrReviewExists   = errors.New("review already exists")
)

type ReviewRepository struct {
	DB *gorm.DB
}

// Create rejects a second review by the same user for the same movie.
func (r *ReviewRepository) Create(review *models.Review) error {
	var existing models.Review
	err := r.DB.
		Where("movie_id = ? AND user_id = ?", review.MovieID, review.UserID).
		First(&existing).Error
	if err == nil {
		return ErrReviewExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := r.DB.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewExists
		}
		return err
	}
	return nil
}

// Update is scoped by the (user, movie) pair; the compound key is the
// authorization boundary, there is no separate ownership check.
func (r *ReviewRepository) Update(userID uint, movieID int64, rating int, comment string) (*models.Review, error) {
	var review models.Review
	err := r.DB.
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		First(&review).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	updates := map[string]any{"rating": rating, "comment": comment}
	if err := r.DB.Model(&review).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepository) Delete(userID uint, movieID int64) error {
	result := r.DB.Unscoped().
		Where("movie_id = ? AND user_id = ?", movieID, userID).
		Delete(&models.Review{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// ListByMovie returns every review for a catalog item, most recent edit first.
func (r *ReviewRepository) ListByMovie(movieID int64) ([]models.Review, error) {
	reviews := []models.Review{}
	err := r.DB.
		Where("movie_id = ?", movieID).
		Order("updated_at DESC").
		Find(&reviews).Error
	return reviews, err
}
