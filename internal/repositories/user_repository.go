package repositories

import (
	"errors"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"

	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) CreateUser(user *models.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.DB.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail looks a user up case-insensitively; emails differing only in
// case refer to the same account.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("LOWER(email) = LOWER(?)", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByPseudo(pseudo string) (*models.User, error) {
	var user models.User
	err := r.DB.Where("LOWER(pseudo) = LOWER(?)", pseudo).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveUser persists every field of an already-loaded user row.
func (r *UserRepository) SaveUser(user *models.User) error {
	return r.DB.Save(user).Error
}

// DeleteUser removes the row for good; a soft delete would keep the unique
// email and pseudo occupied and block re-registration.
func (r *UserRepository) DeleteUser(userID uint) error {
	result := r.DB.Unscoped().Delete(&models.User{}, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}
