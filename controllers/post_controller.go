package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"strivehub/db"
	"strivehub/models"
	"strivehub/progression"
)

const communityPostXP = 5

// CreatePostHandler creates a new community post and awards XP
func CreatePostHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Get user details for denormalized display fields
	var user models.User
	if err := db.MongoDatabase.Collection("users").FindOne(dbCtx, bson.M{"_id": uid}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	now := time.Now()
	post := models.Post{
		ID:          primitive.NewObjectID(),
		UserID:      uid,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
		Content:     req.Content,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.MongoDatabase.Collection("posts").InsertOne(dbCtx, post); err != nil {
		log.Printf("Failed to create post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	title, err := progressionEngine.AwardXP(dbCtx, uid, communityPostXP, progression.SourceCommunityPost, &post.ID)
	if err != nil {
		log.Printf("Failed to award post xp: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}
	if _, err := progressionEngine.TouchStreak(dbCtx, uid); err != nil {
		log.Printf("Failed to touch streak: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post, "xpAwarded": communityPostXP, "title": title})
}

// GetFeedHandler returns paginated posts for the feed
func GetFeedHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if page < 1 {
		page = 1
	}
	skip := (page - 1) * limit

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := db.MongoDatabase.Collection("posts").Find(dbCtx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch feed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feed"})
		return
	}
	defer cursor.Close(dbCtx)

	posts := []models.Post{}
	if err := cursor.All(dbCtx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode feed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "page": page, "limit": limit})
}

// GetPostHandler returns a single post
func GetPostHandler(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var post models.Post
	if err := db.MongoDatabase.Collection("posts").FindOne(dbCtx, bson.M{"_id": postID}).Decode(&post); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePostHandler deletes the authenticated user's own post
func DeletePostHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"_id": postID, "userId": userID.(primitive.ObjectID)}
	result, err := db.MongoDatabase.Collection("posts").DeleteOne(dbCtx, filter)
	if err != nil {
		log.Printf("Failed to delete post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}
