package models

import (
	"gorm.io/gorm"
)

// Review is a user's rating and comment on a catalog item. One review per
// (user, movie) pair, enforced by the composite unique index; mutation is
// scoped by the same pair so authorship is the key itself.
type Review struct {
	gorm.Model
	MovieID   int64  `gorm:"not null;uniqueIndex:idx_user_review" json:"movieId"`
	UserID    uint   `gorm:"not null;uniqueIndex:idx_user_review" json:"userId"`
	UserName  string `gorm:"not null" json:"userName"`
	UserImage string `json:"userImage"`
	Rating    int    `gorm:"not null" json:"rating"`
	Comment   string `gorm:"type:text" json:"comment"`
}
