package quiz

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Attempt status values. in_progress is the initial state, the rest are terminal.
const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
	AttemptTimeout    = "timeout"
	AttemptAbandoned  = "abandoned"
)

// QuizAttempt is one instance of a user taking a quiz. Score is always
// computed server-side, never client-supplied.
type QuizAttempt struct {
	gorm.Model
	UserID         uint              `json:"user_id" gorm:"index:idx_attempt_user_quiz;not null"`
	QuizID         uint              `json:"quiz_id" gorm:"index:idx_attempt_user_quiz;not null"`
	Score          int               `json:"score" gorm:"default:0"` // 0-100
	TotalQuestions int               `json:"total_questions" gorm:"default:0"` // snapshot at start
	CorrectAnswers int               `json:"correct_answers" gorm:"default:0"`
	TimeTaken      int               `json:"time_taken" gorm:"default:0"` // minutes
	Answers        datatypes.JSONMap `json:"answers"`                     // question id -> submitted answer
	IsPassed       bool              `json:"is_passed" gorm:"default:false"`
	AttemptNumber  int               `json:"attempt_number" gorm:"default:1"`
	Status         string            `json:"status" gorm:"default:'in_progress'"`
	StartedAt      time.Time         `json:"started_at"`
	CompletedAt    *time.Time        `json:"completed_at"`
}
