package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuizQuestion is a single multiple-choice question. The correct index is
// never serialized to clients.
type QuizQuestion struct {
	Prompt       string   `bson:"prompt" json:"prompt"`
	Options      []string `bson:"options" json:"options"`
	CorrectIndex int      `bson:"correctIndex" json:"-"`
}

// LearningStep is a unit of the learning track with an attached quiz.
type LearningStep struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Order       int                `bson:"order" json:"order"`
	Questions   []QuizQuestion     `bson:"questions" json:"questions"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// QuizSubmission records a graded quiz attempt.
type QuizSubmission struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	StepID    primitive.ObjectID `bson:"stepId" json:"stepId"`
	Answers   []int              `bson:"answers" json:"answers"`
	Score     int                `bson:"score" json:"score"` // percent 0-100
	Passed    bool               `bson:"passed" json:"passed"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
