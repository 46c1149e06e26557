package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is a coding exercise evaluated by the AI reviewer.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Prompt      string             `bson:"prompt" json:"prompt"`
	Language    string             `bson:"language" json:"language"`
	Difficulty  string             `bson:"difficulty" json:"difficulty"` // "easy", "medium", "hard"
	XPReward    int                `bson:"xpReward" json:"xpReward"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ChallengeAttempt records a submission and its evaluation. Failed attempts are
// kept with a zero XP award for audit purposes.
type ChallengeAttempt struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	ChallengeID primitive.ObjectID `bson:"challengeId" json:"challengeId"`
	Code        string             `bson:"code" json:"code"`
	Passed      bool               `bson:"passed" json:"passed"`
	Score       int                `bson:"score" json:"score"` // 0-100
	Feedback    string             `bson:"feedback" json:"feedback"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// ChallengeEvaluation is the structured verdict returned by the evaluator.
type ChallengeEvaluation struct {
	Passed   bool   `json:"passed"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}
