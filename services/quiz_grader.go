package services

import (
	"math"

	"strivehub/models"
)

// A quiz passes at half marks or better.
const quizPassScore = 50

// Full-score quizzes are worth this much XP, scaled linearly by score.
const quizMaxXP = 30

// GradeQuiz scores submitted answers against the step's questions and returns
// the percent score. Missing or out-of-range answers count as wrong.
func GradeQuiz(questions []models.QuizQuestion, answers []int) int {
	if len(questions) == 0 {
		return 0
	}

	correct := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if answers[i] == q.CorrectIndex {
			correct++
		}
	}
	return int(math.Round(float64(correct) / float64(len(questions)) * 100))
}

// QuizPassed reports whether a percent score passes the quiz.
func QuizPassed(score int) bool {
	return score >= quizPassScore
}

// QuizXP converts a percent score into an XP award.
func QuizXP(score int) int {
	return int(math.Round(float64(score) / 100 * quizMaxXP))
}
