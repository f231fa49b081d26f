package quiz

import "gorm.io/gorm"

// Quiz belongs to a tutorial and is authored by a teacher
type Quiz struct {
	gorm.Model
	TutorialID     uint    `json:"tutorial_id" gorm:"index;not null"`
	TeacherID      uint    `json:"teacher_id" gorm:"index;not null"`
	Title          string  `json:"title" gorm:"not null"`
	Description    string  `json:"description" gorm:"type:text"`
	TimeLimit      int     `json:"time_limit" gorm:"default:0"`     // minutes, 0 = unlimited (1-180 when set)
	PassingScore   int     `json:"passing_score" gorm:"default:70"` // percentage threshold
	MaxAttempts    int     `json:"max_attempts" gorm:"default:0"`   // 0 = unlimited
	IsPublished    bool    `json:"is_published" gorm:"default:false"`
	IsActive       bool    `json:"is_active" gorm:"default:true"`
	TotalQuestions int     `json:"total_questions" gorm:"default:0"`
	TotalAttempts  int     `json:"total_attempts" gorm:"default:0"`
	AverageScore   float64 `json:"average_score" gorm:"default:0"`
	IsDeleted      bool    `json:"-" gorm:"default:false"`
}
