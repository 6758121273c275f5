package repositories

import (
	"errors"
	"time"

	"github.com/Mart1n-S/WatchListy-sub000/internal/models"

	"gorm.io/gorm"
)

// CleanupUnverifiedUserIfExpired deletes an unverified user once their
// verification token is gone or expired, freeing the email and pseudo for a
// fresh registration. Returns true if a deletion occurred.
func CleanupUnverifiedUserIfExpired(userRepo *UserRepository, tokenRepo *TokenRepository, user *models.User) (bool, error) {
	if user.Verified() {
		return false, nil
	}

	var t models.Token
	err := tokenRepo.DB.
		Where("user_id = ? AND purpose = ?", user.ID, models.TokenPurposeVerifyEmail).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No token left; treat as expired and free up the identifiers.
			if delErr := userRepo.DeleteUser(user.ID); delErr != nil {
				return false, delErr
			}
			return true, nil
		}
		return false, err
	}

	if t.Expired(time.Now()) {
		if delErr := userRepo.DeleteUser(user.ID); delErr != nil {
			return false, delErr
		}
		_ = tokenRepo.DeleteByID(t.ID)
		return true, nil
	}

	return false, nil
}

// ReapExpired removes expired tokens and the unverified accounts they were
// gating. Run periodically by the scheduler.
func ReapExpired(userRepo *UserRepository, tokenRepo *TokenRepository) (tokens int64, users int64, err error) {
	var stale []models.User
	cutoff := time.Now()
	err = userRepo.DB.
		Joins("JOIN tokens ON tokens.user_id = users.id").
		Where("users.verified_at IS NULL AND tokens.purpose = ? AND tokens.expires_at <= ?",
			models.TokenPurposeVerifyEmail, cutoff).
		Find(&stale).Error
	if err != nil {
		return 0, 0, err
	}
	for i := range stale {
		deleted, cerr := CleanupUnverifiedUserIfExpired(userRepo, tokenRepo, &stale[i])
		if cerr != nil {
			return 0, users, cerr
		}
		if deleted {
			users++
		}
	}

	tokens, err = tokenRepo.DeleteExpired(cutoff)
	return tokens, users, err
}
