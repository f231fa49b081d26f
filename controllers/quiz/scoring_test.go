package quizController

import (
	"testing"

	quizModels "etutor/models/quiz"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func question(id uint, correct string, points int) quizModels.Question {
	return quizModels.Question{
		Model:         gorm.Model{ID: id},
		QuizID:        1,
		CorrectAnswer: correct,
		Points:        points,
	}
}

func TestLooseEqual(t *testing.T) {
	testCases := []struct {
		name      string
		submitted interface{}
		correct   string
		want      bool
	}{
		{"equal strings", "B", "B", true},
		{"different strings", "A", "B", false},
		{"case sensitive", "b", "B", false},
		{"number matches numeric string", float64(2), "2", true},
		{"numeric string matches numeric string", "2", "2", true},
		{"decimal forms match", "2.0", "2", true},
		{"different numbers", float64(3), "2", false},
		{"bool true matches string", true, "true", true},
		{"nil never matches", nil, "B", false},
		{"whitespace trimmed", " B ", "B", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, looseEqual(tc.submitted, tc.correct))
		})
	}
}

func TestGradeAnswers(t *testing.T) {
	questions := []quizModels.Question{
		question(1, "B", 10),
		question(2, "2", 10),
	}

	testCases := []struct {
		name        string
		answers     map[string]interface{}
		wantCorrect int
		wantEarned  int
		wantScore   int
	}{
		{
			name:        "all correct",
			answers:     map[string]interface{}{"1": "B", "2": float64(2)},
			wantCorrect: 2,
			wantEarned:  20,
			wantScore:   100,
		},
		{
			name:        "half correct",
			answers:     map[string]interface{}{"1": "A", "2": float64(2)},
			wantCorrect: 1,
			wantEarned:  10,
			wantScore:   50,
		},
		{
			name:        "no answers submitted",
			answers:     map[string]interface{}{},
			wantCorrect: 0,
			wantEarned:  0,
			wantScore:   0,
		},
		{
			name:        "unknown question ids are ignored",
			answers:     map[string]interface{}{"99": "B"},
			wantCorrect: 0,
			wantEarned:  0,
			wantScore:   0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := gradeAnswers(questions, tc.answers)
			assert.Equal(t, tc.wantCorrect, result.CorrectAnswers)
			assert.Equal(t, tc.wantEarned, result.PointsEarned)
			assert.Equal(t, 20, result.TotalPoints)
			assert.Equal(t, tc.wantScore, result.Score)
		})
	}
}

func TestGradeAnswersRounding(t *testing.T) {
	questions := []quizModels.Question{
		question(1, "A", 1),
		question(2, "B", 1),
		question(3, "C", 1),
	}

	result := gradeAnswers(questions, map[string]interface{}{"1": "A"})
	assert.Equal(t, 33, result.Score) // 1/3 rounds down

	result = gradeAnswers(questions, map[string]interface{}{"1": "A", "2": "B"})
	assert.Equal(t, 67, result.Score) // 2/3 rounds up
}

func TestGradeAnswersWeightedPoints(t *testing.T) {
	questions := []quizModels.Question{
		question(1, "A", 1),
		question(2, "B", 9),
	}

	result := gradeAnswers(questions, map[string]interface{}{"2": "B"})
	assert.Equal(t, 1, result.CorrectAnswers)
	assert.Equal(t, 9, result.PointsEarned)
	assert.Equal(t, 90, result.Score)
}

func TestGradeAnswersEmptyQuestionSet(t *testing.T) {
	result := gradeAnswers(nil, map[string]interface{}{"1": "A"})
	assert.Equal(t, 0, result.Score)
	assert.Equal(t, 0, result.TotalPoints)
}

func TestGradeAnswersDeterministic(t *testing.T) {
	questions := []quizModels.Question{
		question(1, "B", 10),
		question(2, "2", 5),
	}
	answers := map[string]interface{}{"1": "B", "2": "2"}

	first := gradeAnswers(questions, answers)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, gradeAnswers(questions, answers))
	}
	assert.GreaterOrEqual(t, first.Score, 0)
	assert.LessOrEqual(t, first.Score, 100)
}
