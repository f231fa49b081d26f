package models

import "gorm.io/gorm"

// Category groups tutorials into a taxonomy
type Category struct {
	gorm.Model
	Name          string `json:"name" gorm:"unique;not null"`
	NameAmharic   string `json:"name_amharic" gorm:"default:''"`
	Description   string `json:"description" gorm:"type:text;default:''"`
	Icon          string `json:"icon" gorm:"default:''"`
	TutorialCount int    `json:"tutorial_count" gorm:"default:0"`
	IsDeleted     bool   `json:"-" gorm:"default:false"`
}
