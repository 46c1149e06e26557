package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserSkill is a skill a user has added to their profile.
type UserSkill struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Level     string             `bson:"level" json:"level"` // "beginner", "intermediate", "advanced"
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
