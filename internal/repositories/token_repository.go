package repositories

import (
	"errors"
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"

	"gorm.io/gorm"
)

var ErrTokenNotFound = errors.New("token not found")

type TokenRepository struct {
	DB *gorm.DB
}

func (r *TokenRepository) Create(token *models.Token) error {
	return r.DB.Create(token).Error
}

// GetByHash returns the token record matching the sha256 of a presented
// secret, regardless of expiry; the caller decides between expired and valid.
func (r *TokenRepository) GetByHash(hash string, purpose models.TokenPurpose) (*models.Token, error) {
	var t models.Token
	err := r.DB.Where("token_hash = ? AND purpose = ?", hash, purpose).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetValidByUserAndPurpose returns an unexpired token for the user, if any.
// Used to short-circuit reissue requests while a live token is out.
func (r *TokenRepository) GetValidByUserAndPurpose(userID uint, purpose models.TokenPurpose) (*models.Token, error) {
	var t models.Token
	err := r.DB.
		Where("user_id = ? AND purpose = ? AND expires_at > ?", userID, purpose, time.Now()).
		Order("created_at DESC").
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) DeleteByID(id uint) error {
	return r.DB.Unscoped().Delete(&models.Token{}, id).Error
}

func (r *TokenRepository) DeleteByUserAndPurpose(userID uint, purpose models.TokenPurpose) error {
	return r.DB.Unscoped().
		Where("user_id = ? AND purpose = ?", userID, purpose).
		Delete(&models.Token{}).Error
}

// DeleteExpired removes every token past its expiry; returns how many went.
func (r *TokenRepository) DeleteExpired(before time.Time) (int64, error) {
	tx := r.DB.Unscoped().Where("expires_at <= ?", before).Delete(&models.Token{})
	return tx.RowsAffected, tx.Error
}
