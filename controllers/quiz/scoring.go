package quizController

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	quizModels "etutor/models/quiz"
)

// gradeResult holds the outcome of grading one set of submitted answers
type gradeResult struct {
	CorrectAnswers int
	PointsEarned   int
	TotalPoints    int
	Score          int // rounded percentage, 0-100
}

// looseEqual compares a submitted answer to the stored correct answer.
// Equal strings match, and values that both parse as numbers match
// numerically, so a submitted 2 grades equal to a stored "2".
func looseEqual(submitted interface{}, correct string) bool {
	s := strings.TrimSpace(answerToString(submitted))
	c := strings.TrimSpace(correct)
	if s == c {
		return true
	}

	sn, errS := strconv.ParseFloat(s, 64)
	cn, errC := strconv.ParseFloat(c, 64)
	return errS == nil && errC == nil && sn == cn
}

func answerToString(v interface{}) string {
	switch a := v.(type) {
	case string:
		return a
	case float64:
		return strconv.FormatFloat(a, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(a)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", a)
	}
}

// gradeAnswers grades a map of question id -> submitted answer against the
// given question set. Pure computation, callers persist the result.
func gradeAnswers(questions []quizModels.Question, answers map[string]interface{}) gradeResult {
	var result gradeResult

	for _, q := range questions {
		result.TotalPoints += q.Points

		submitted, ok := answers[strconv.FormatUint(uint64(q.ID), 10)]
		if !ok {
			continue
		}

		if looseEqual(submitted, q.CorrectAnswer) {
			result.CorrectAnswers++
			result.PointsEarned += q.Points
		}
	}

	if result.TotalPoints > 0 {
		result.Score = int(math.Round(float64(result.PointsEarned) / float64(result.TotalPoints) * 100))
	}

	return result
}
