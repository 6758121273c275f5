package repositories

import (
	"errors"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"

	"gorm.io/gorm"
)

var (
	ErrEntryNotFound = errors.New("list entry not found")
	ErrEntryExists   = errors.New("list entry already exists")
)

type WatchlistRepository struct {
	DB *gorm.DB
}

// Add creates a list entry. A duplicate (user, item, type) triple surfaces as
// ErrEntryExists whether it was caught by the lookup or, under a race, by the
// unique index at insert time.
func (r *WatchlistRepository) Add(entry *models.UserMovie) error {
	var existing models.UserMovie
	err := r.DB.
		Where("user_id = ? AND item_id = ? AND item_type = ?", entry.UserID, entry.ItemID, entry.ItemType).
		First(&existing).Error
	if err == nil {
		return ErrEntryExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := r.DB.Create(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEntryExists
		}
		return err
	}
	return nil
}

// SetStatus overwrites the status of an existing entry and bumps UpdatedAt.
// Any status is reachable from any other.
func (r *WatchlistRepository) SetStatus(userID uint, itemID int64, itemType models.MediaType, status models.WatchStatus) (*models.UserMovie, error) {
	var entry models.UserMovie
	err := r.DB.
		Where("user_id = ? AND item_id = ? AND item_type = ?", userID, itemID, itemType).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := r.DB.Model(&entry).Update("status", status).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove hard-deletes so the unique index frees up for a later re-add.
func (r *WatchlistRepository) Remove(userID uint, itemID int64, itemType models.MediaType) error {
	result := r.DB.Unscoped().
		Where("user_id = ? AND item_id = ? AND item_type = ?", userID, itemID, itemType).
		Delete(&models.UserMovie{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ListByUser returns the user's entries, most recently touched first.
// An empty status means all buckets.
func (r *WatchlistRepository) ListByUser(userID uint, status models.WatchStatus) ([]models.UserMovie, error) {
	entries := []models.UserMovie{}
	q := r.DB.Where("user_id = ?", userID)
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Order("updated_at DESC").Find(&entries).Error
	return entries, err
}
