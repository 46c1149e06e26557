package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"strivehub/db"
	"strivehub/models"
)

// CreateCommentHandler adds a comment to a post
func CreateCommentHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	postCollection := db.MongoDatabase.Collection("posts")
	count, err := postCollection.CountDocuments(dbCtx, bson.M{"_id": postID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	var user models.User
	if err := db.MongoDatabase.Collection("users").FindOne(dbCtx, bson.M{"_id": uid}).Decode(&user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}

	comment := models.PostComment{
		ID:          primitive.NewObjectID(),
		PostID:      postID,
		UserID:      uid,
		DisplayName: user.DisplayName,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}

	if _, err := db.MongoDatabase.Collection("post_comments").InsertOne(dbCtx, comment); err != nil {
		log.Printf("Failed to create comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	postCollection.UpdateOne(dbCtx, bson.M{"_id": postID}, bson.M{"$inc": bson.M{"commentCount": 1}})

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetCommentsHandler lists comments for a post, oldest first
func GetCommentsHandler(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := db.MongoDatabase.Collection("post_comments").Find(dbCtx, bson.M{"postId": postID}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(dbCtx)

	comments := []models.PostComment{}
	if err := cursor.All(dbCtx, &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteCommentHandler deletes the caller's own comment
func DeleteCommentHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	commentID, err := primitive.ObjectIDFromHex(c.Param("commentId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid comment ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var comment models.PostComment
	filter := bson.M{"_id": commentID, "userId": userID.(primitive.ObjectID)}
	if err := db.MongoDatabase.Collection("post_comments").FindOneAndDelete(dbCtx, filter).Decode(&comment); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	db.MongoDatabase.Collection("posts").UpdateOne(dbCtx, bson.M{"_id": comment.PostID}, bson.M{"$inc": bson.M{"commentCount": -1}})

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
