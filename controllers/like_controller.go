package controllers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"strivehub/db"
	"strivehub/models"
)

// ToggleLikeHandler toggles a like on a post
func ToggleLikeHandler(c *gin.Context) {
	if db.RedisClient == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Likes temporarily unavailable"})
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	postID := c.Param("id")
	postObjectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	// Redis keys: a sorted set ranking posts by likes, and a per-user marker
	key := "post:" + postID + ":likes"
	userKey := "post:" + postID + ":user:" + uid.Hex()

	postCollection := db.MongoDatabase.Collection("posts")
	ctx := c.Request.Context()

	existsN, err := db.RedisClient.Exists(ctx, userKey).Result()
	alreadyLiked := err == nil && existsN > 0

	if alreadyLiked {
		// Unlike: remove the marker and decrement the count
		_, err = db.RedisClient.Del(ctx, userKey).Result()
		if err == nil {
			db.RedisClient.ZIncrBy(ctx, key, -1, postID)
			postCollection.UpdateOne(ctx, bson.M{"_id": postObjectID}, bson.M{"$inc": bson.M{"likeCount": -1}})
		}

		var post struct {
			LikeCount int64 `bson:"likeCount"`
		}
		postCollection.FindOne(ctx, bson.M{"_id": postObjectID}).Decode(&post)

		c.JSON(http.StatusOK, gin.H{
			"liked":   false,
			"count":   post.LikeCount,
			"message": "Unliked",
		})
		return
	}

	// SetNX makes the like idempotent under concurrent requests
	set, err := db.RedisClient.SetNX(ctx, userKey, "1", 0).Result()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like post"})
		return
	}

	if set {
		db.RedisClient.ZIncrBy(ctx, key, 1, postID)
		postCollection.UpdateOne(ctx, bson.M{"_id": postObjectID}, bson.M{"$inc": bson.M{"likeCount": 1}})

		var post struct {
			LikeCount int64 `bson:"likeCount"`
		}
		postCollection.FindOne(ctx, bson.M{"_id": postObjectID}).Decode(&post)

		c.JSON(http.StatusOK, gin.H{
			"liked":   true,
			"count":   post.LikeCount,
			"message": "Liked",
		})
	} else {
		// Another request won the race; report the liked state
		var post struct {
			LikeCount int64 `bson:"likeCount"`
		}
		postCollection.FindOne(ctx, bson.M{"_id": postObjectID}).Decode(&post)

		c.JSON(http.StatusOK, gin.H{
			"liked":   true,
			"count":   post.LikeCount,
			"message": "Already liked",
		})
	}
}

// GetLikesHandler returns like count and whether the caller liked the post
func GetLikesHandler(c *gin.Context) {
	postID := c.Param("id")
	postObjectID, err := primitive.ObjectIDFromHex(postID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	postCollection := db.MongoDatabase.Collection("posts")
	ctx := c.Request.Context()
	var post struct {
		LikeCount int64 `bson:"likeCount"`
	}
	if err := postCollection.FindOne(ctx, bson.M{"_id": postObjectID}).Decode(&post); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	liked := false
	if userID, exists := c.Get("userID"); exists && db.RedisClient != nil {
		userKey := "post:" + postID + ":user:" + userID.(primitive.ObjectID).Hex()
		existsN, _ := db.RedisClient.Exists(ctx, userKey).Result()
		liked = existsN > 0
	}

	c.JSON(http.StatusOK, gin.H{
		"likes": post.LikeCount,
		"liked": liked,
	})
}

// GetTopLikedPostsHandler returns top liked posts
func GetTopLikedPostsHandler(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 50 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	postCollection := db.MongoDatabase.Collection("posts")

	findOptions := options.Find().
		SetSort(bson.D{{Key: "likeCount", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := postCollection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err = cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}
