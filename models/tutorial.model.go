package models

import "gorm.io/gorm"

// Tutorial is a single learning unit authored by a teacher
type Tutorial struct {
	gorm.Model
	Title        string  `json:"title" gorm:"not null"`
	TitleAmharic string  `json:"title_amharic" gorm:"default:''"`
	Description  string  `json:"description" gorm:"type:text"`
	Content      string  `json:"content" gorm:"type:text"`
	CategoryID   uint    `json:"category_id" gorm:"index;not null"`
	TeacherID    uint    `json:"teacher_id" gorm:"index;not null"`
	Level        string  `json:"level" gorm:"default:'BEGINNER'"` // BEGINNER, INTERMEDIATE, ADVANCED
	Duration     int     `json:"duration" gorm:"default:0"`       // estimated minutes
	ThumbnailURL string  `json:"thumbnail_url" gorm:"default:''"`
	VideoURL     string  `json:"video_url" gorm:"default:''"`
	Rating       float64 `json:"rating" gorm:"default:0"` // running average, 0 when rating_count is 0
	RatingCount  int     `json:"rating_count" gorm:"default:0"`
	ViewCount    int     `json:"view_count" gorm:"default:0"`
	IsPublished  bool    `json:"is_published" gorm:"default:false"`
	IsDeleted    bool    `json:"-" gorm:"default:false"`
}
