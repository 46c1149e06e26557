package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a community feed entry.
type Post struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	Email        string             `bson:"email" json:"email"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	AvatarURL    string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Content      string             `bson:"content" json:"content"`
	LikeCount    int                `bson:"likeCount" json:"likeCount"`
	CommentCount int                `bson:"commentCount" json:"commentCount"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// PostComment is a comment on a post.
type PostComment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PostID      primitive.ObjectID `bson:"postId" json:"postId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	DisplayName string             `bson:"displayName" json:"displayName"`
	Content     string             `bson:"content" json:"content"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Follow links a follower to a followed user.
type Follow struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	FollowerID primitive.ObjectID `bson:"followerId" json:"followerId"`
	FolloweeID primitive.ObjectID `bson:"followeeId" json:"followeeId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
