package services

import (
	"testing"

	"strivehub/models"
)

func sampleQuestions() []models.QuizQuestion {
	return []models.QuizQuestion{
		{Prompt: "q1", Options: []string{"a", "b"}, CorrectIndex: 0},
		{Prompt: "q2", Options: []string{"a", "b"}, CorrectIndex: 1},
		{Prompt: "q3", Options: []string{"a", "b", "c"}, CorrectIndex: 2},
		{Prompt: "q4", Options: []string{"a", "b"}, CorrectIndex: 0},
	}
}

func TestGradeQuiz(t *testing.T) {
	questions := sampleQuestions()

	score := GradeQuiz(questions, []int{0, 1, 2, 0})
	if score != 100 {
		t.Errorf("all correct: got %d, want 100", score)
	}

	score = GradeQuiz(questions, []int{0, 1, 0, 1})
	if score != 50 {
		t.Errorf("half correct: got %d, want 50", score)
	}

	score = GradeQuiz(questions, []int{1, 0, 0, 1})
	if score != 0 {
		t.Errorf("none correct: got %d, want 0", score)
	}
}

func TestGradeQuizShortAnswers(t *testing.T) {
	questions := sampleQuestions()

	// Missing answers count as wrong
	score := GradeQuiz(questions, []int{0, 1})
	if score != 50 {
		t.Errorf("partial answers: got %d, want 50", score)
	}

	if got := GradeQuiz(nil, []int{0}); got != 0 {
		t.Errorf("empty quiz: got %d, want 0", got)
	}
}

func TestQuizPassed(t *testing.T) {
	if QuizPassed(49) {
		t.Error("49 must not pass")
	}
	if !QuizPassed(50) {
		t.Error("50 must pass")
	}
	if !QuizPassed(100) {
		t.Error("100 must pass")
	}
}

func TestQuizXP(t *testing.T) {
	cases := []struct {
		score int
		want  int
	}{
		{100, 30},
		{50, 15},
		{75, 23}, // 22.5 rounds up
		{0, 0},
	}
	for _, c := range cases {
		if got := QuizXP(c.score); got != c.want {
			t.Errorf("QuizXP(%d) = %d, want %d", c.score, got, c.want)
		}
	}
}
