package utils

import (
	"etutor/database"
	quizModels "etutor/models/quiz"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// defaultAttemptWindowMinutes is the fallback expiry window for quizzes with
// no time limit of their own.
const defaultAttemptWindowMinutes = 30

// InitializeAttemptSweeper starts the background job that marks stale
// in_progress quiz attempts as abandoned.
func InitializeAttemptSweeper() {
	log.Println("[ATTEMPT-SWEEPER] Initializing attempt sweeper...")

	c := cron.New()

	// Every 10 minutes
	c.AddFunc("*/10 * * * *", func() {
		SweepAbandonedAttempts()
	})

	c.Start()
	log.Println("[ATTEMPT-SWEEPER] Attempt sweeper started - runs every 10 minutes")
}

// SweepAbandonedAttempts transitions in_progress attempts past their expiry
// window into the abandoned state.
func SweepAbandonedAttempts() {
	db := database.Database.Db
	now := time.Now()

	// Anything newer than the shortest possible window cannot have expired yet
	var attempts []quizModels.QuizAttempt
	cutoff := now.Add(-1 * time.Minute)
	if err := db.
		Where("status = ? AND started_at < ?", quizModels.AttemptInProgress, cutoff).
		Find(&attempts).Error; err != nil {
		log.Printf("[ATTEMPT-SWEEPER] Error fetching in-progress attempts: %v", err)
		return
	}

	swept := 0
	for _, attempt := range attempts {
		var q quizModels.Quiz
		if err := db.Where("id = ?", attempt.QuizID).First(&q).Error; err != nil {
			log.Printf("[ATTEMPT-SWEEPER] Error fetching quiz %d: %v", attempt.QuizID, err)
			continue
		}

		window := q.TimeLimit
		if window <= 0 {
			window = defaultAttemptWindowMinutes
		}

		if now.Sub(attempt.StartedAt) <= time.Duration(window)*time.Minute {
			continue
		}

		if err := db.Model(&quizModels.QuizAttempt{}).
			Where("id = ? AND status = ?", attempt.ID, quizModels.AttemptInProgress).
			Update("status", quizModels.AttemptAbandoned).Error; err != nil {
			log.Printf("[ATTEMPT-SWEEPER] Error abandoning attempt %d: %v", attempt.ID, err)
			continue
		}
		swept++
	}

	if swept > 0 {
		log.Printf("[ATTEMPT-SWEEPER] Marked %d stale attempts as abandoned", swept)
	}
}
