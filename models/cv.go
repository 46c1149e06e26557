package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CV review lifecycle states
const (
	CVReviewPending   = "pending"
	CVReviewCompleted = "completed"
	CVReviewFailed    = "failed"
)

// CVReview holds an uploaded CV and the asynchronous analysis result.
type CVReview struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	FileName     string             `bson:"fileName" json:"fileName"`
	Text         string             `bson:"text" json:"-"`
	Status       string             `bson:"status" json:"status"`
	OverallScore int                `bson:"overallScore" json:"overallScore"` // 0-100
	Strengths    []string           `bson:"strengths,omitempty" json:"strengths,omitempty"`
	Improvements []string           `bson:"improvements,omitempty" json:"improvements,omitempty"`
	Feedback     string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt  *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}

// CVAnalysis is the structured result produced by the analyzer.
type CVAnalysis struct {
	OverallScore int      `json:"overallScore"`
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
	Feedback     string   `json:"feedback"`
}
