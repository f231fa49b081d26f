package models

import "gorm.io/gorm"

// Review is a user's rating of a tutorial. One review per (tutorial, user);
// the unique index is the backstop against duplicate-create races.
type Review struct {
	gorm.Model
	TutorialID uint   `json:"tutorial_id" gorm:"not null;uniqueIndex:idx_review_tutorial_user"`
	UserID     uint   `json:"user_id" gorm:"not null;uniqueIndex:idx_review_tutorial_user"`
	Rating     int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment    string `json:"comment" gorm:"type:text;not null"`
	IsVerified bool   `json:"is_verified" gorm:"default:false"`

	// Association - only populated when Preloaded
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
