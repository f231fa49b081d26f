package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Progress status values
const (
	ProgressNotStarted = "not_started"
	ProgressInProgress = "in_progress"
	ProgressCompleted  = "completed"
)

// Progress tracks a user's completion of a tutorial. Unique per (user, tutorial),
// created lazily on first interaction.
type Progress struct {
	gorm.Model
	UserID             uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_tutorial"`
	TutorialID         uint           `json:"tutorial_id" gorm:"not null;uniqueIndex:idx_progress_user_tutorial"`
	Status             string         `json:"status" gorm:"default:'not_started'"`
	ProgressPercentage float64        `json:"progress_percentage" gorm:"default:0"` // clamped to [0,100]
	TimeSpent          int            `json:"time_spent" gorm:"default:0"`          // minutes, accumulates
	LastPosition       string         `json:"last_position" gorm:"default:''"`      // resume marker
	QuizAttempts       datatypes.JSON `json:"quiz_attempts"`                        // attempt summaries appended on submit
	CompletedAt        *time.Time     `json:"completed_at"`                         // set once, never cleared
}

// QuizAttemptSummary is one entry of the Progress.QuizAttempts history
type QuizAttemptSummary struct {
	QuizID      uint      `json:"quiz_id"`
	AttemptID   uint      `json:"attempt_id"`
	Score       int       `json:"score"`
	IsPassed    bool      `json:"is_passed"`
	CompletedAt time.Time `json:"completed_at"`
}
