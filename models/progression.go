package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// XPHistoryRecord is an append-only ledger entry written once per XP award.
// Records are never updated or deleted.
type XPHistoryRecord struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty" json:"id,omitempty"`
	UserID     primitive.ObjectID  `bson:"userId" json:"userId"`
	SourceType string              `bson:"sourceType" json:"sourceType"`
	SourceID   *primitive.ObjectID `bson:"sourceId,omitempty" json:"sourceId,omitempty"`
	XPAmount   int                 `bson:"xpAmount" json:"xpAmount"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
}

// ActivityRecord mirrors the XP ledger for feed/timeline display. It is written
// in the same transaction as its XPHistoryRecord.
type ActivityRecord struct {
	ID        primitive.ObjectID     `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID     `bson:"userId" json:"userId"`
	Type      string                 `bson:"type" json:"type"`
	Meta      map[string]interface{} `bson:"meta,omitempty" json:"meta,omitempty"`
	XPEarned  int                    `bson:"xpEarned" json:"xpEarned"`
	CreatedAt time.Time              `bson:"createdAt" json:"createdAt"`
}

// GamificationEvent represents a gamification event to broadcast via WebSocket
type GamificationEvent struct {
	Type        string    `json:"type"` // "xp_awarded", "streak_updated"
	UserID      string    `json:"userId"`
	Source      string    `json:"source,omitempty"`
	XPAmount    int       `json:"xpAmount,omitempty"`
	NewTotal    int       `json:"newTotal,omitempty"`
	Title       string    `json:"title,omitempty"`
	StreakCount int       `json:"streakCount,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
