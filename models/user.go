package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User defines a user entity. Title is derived from XPTotal and is never set
// independently; StreakCount and LastActiveDate are updated together.
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email          string             `bson:"email" json:"email"`
	Password       string             `bson:"password" json:"-"`
	DisplayName    string             `bson:"displayName" json:"displayName"`
	Bio            string             `bson:"bio" json:"bio"`
	AvatarURL      string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	XPTotal        int                `bson:"xpTotal" json:"xpTotal"`
	Title          string             `bson:"title" json:"title"`
	StreakCount    int                `bson:"streakCount" json:"streakCount"`
	LastActiveDate *time.Time         `bson:"lastActiveDate,omitempty" json:"lastActiveDate,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}
