package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage     string     `json:"profile_image" gorm:"default:''"`
	Name             string     `json:"name" gorm:"default:''"`
	Email            string     `json:"email" gorm:"unique;not null"`
	Mobile           string     `json:"mobile" gorm:"default:''"`
	Role             string     `json:"role" gorm:"default:'STUDENT'"` // STUDENT, TEACHER, ADMIN
	Password         string     `json:"-" gorm:"not null"`
	Bio              string     `json:"bio" gorm:"type:text;default:''"`
	IsEmailVerified  bool       `json:"is_email_verified" gorm:"default:false"`
	IsMobileVerified bool       `json:"is_mobile_verified" gorm:"default:false"`
	LastLogin        *time.Time `json:"last_login"`
	IsDeleted        bool       `json:"-" gorm:"default:false"`
}

// OTP stores one-time verification codes sent by SMS
type OTP struct {
	gorm.Model
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	Code      string    `json:"-" gorm:"not null"`
	Reference string    `json:"reference" gorm:"index"` // opaque code returned to the client
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `json:"is_used" gorm:"default:false"`
}
