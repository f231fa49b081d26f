package quiz

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Question type values
const (
	TypeMultipleChoice = "multiple_choice"
	TypeTrueFalse      = "true_false"
	TypeShortAnswer    = "short_answer"
)

// Question belongs to a quiz. Options is a JSON array of choices
// (2-6 entries for multiple_choice).
type Question struct {
	gorm.Model
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	QuestionText  string         `json:"question_text" gorm:"type:text;not null"`
	QuestionType  string         `json:"question_type" gorm:"default:'multiple_choice'"`
	Options       datatypes.JSON `json:"options"`
	CorrectAnswer string         `json:"correct_answer,omitempty" gorm:"not null"`
	Points        int            `json:"points" gorm:"default:1"` // 1-10
	OrderIndex    int            `json:"order" gorm:"default:0"`  // presentation and grading order
	IsActive      bool           `json:"is_active" gorm:"default:true"`
	IsDeleted     bool           `json:"-" gorm:"default:false"`
}
