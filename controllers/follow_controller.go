package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"strivehub/db"
	"strivehub/models"
)

// FollowUserHandler makes the caller follow another user
func FollowUserHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	followerID := userID.(primitive.ObjectID)

	followeeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}
	if followeeID == followerID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	count, err := db.MongoDatabase.Collection("users").CountDocuments(dbCtx, bson.M{"_id": followeeID})
	if err != nil || count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	followCollection := db.MongoDatabase.Collection("follows")
	existing := followCollection.FindOne(dbCtx, bson.M{"followerId": followerID, "followeeId": followeeID})
	if existing.Err() == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Already following"})
		return
	}
	if existing.Err() != mongo.ErrNoDocuments {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	follow := models.Follow{
		ID:         primitive.NewObjectID(),
		FollowerID: followerID,
		FolloweeID: followeeID,
		CreatedAt:  time.Now(),
	}
	if _, err := followCollection.InsertOne(dbCtx, follow); err != nil {
		log.Printf("Failed to create follow: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to follow user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Followed"})
}

// UnfollowUserHandler removes a follow relationship
func UnfollowUserHandler(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	followeeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	filter := bson.M{"followerId": userID.(primitive.ObjectID), "followeeId": followeeID}
	result, err := db.MongoDatabase.Collection("follows").DeleteOne(dbCtx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unfollow user"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not following this user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed"})
}

// GetFollowersHandler lists followers of a user
func GetFollowersHandler(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.MongoDatabase.Collection("follows").Find(dbCtx, bson.M{"followeeId": targetID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
		return
	}
	defer cursor.Close(dbCtx)

	follows := []models.Follow{}
	if err := cursor.All(dbCtx, &follows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode followers"})
		return
	}

	followerIDs := make([]primitive.ObjectID, 0, len(follows))
	for _, f := range follows {
		followerIDs = append(followerIDs, f.FollowerID)
	}

	users := []models.User{}
	if len(followerIDs) > 0 {
		userCursor, err := db.MongoDatabase.Collection("users").Find(dbCtx, bson.M{"_id": bson.M{"$in": followerIDs}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch followers"})
			return
		}
		defer userCursor.Close(dbCtx)
		if err := userCursor.All(dbCtx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode followers"})
			return
		}
	}

	type followerInfo struct {
		ID          primitive.ObjectID `json:"id"`
		DisplayName string             `json:"displayName"`
		Title       string             `json:"title"`
		XPTotal     int                `json:"xpTotal"`
	}
	followers := make([]followerInfo, 0, len(users))
	for _, u := range users {
		followers = append(followers, followerInfo{
			ID:          u.ID,
			DisplayName: u.DisplayName,
			Title:       u.Title,
			XPTotal:     u.XPTotal,
		})
	}

	c.JSON(http.StatusOK, gin.H{"followers": followers, "count": len(followers)})
}

// GetFollowingHandler lists users the given user follows
func GetFollowingHandler(c *gin.Context) {
	targetID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.MongoDatabase.Collection("follows").Find(dbCtx, bson.M{"followerId": targetID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
		return
	}
	defer cursor.Close(dbCtx)

	follows := []models.Follow{}
	if err := cursor.All(dbCtx, &follows); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode following"})
		return
	}

	followeeIDs := make([]primitive.ObjectID, 0, len(follows))
	for _, f := range follows {
		followeeIDs = append(followeeIDs, f.FolloweeID)
	}

	following := []bson.M{}
	if len(followeeIDs) > 0 {
		userCursor, err := db.MongoDatabase.Collection("users").Find(dbCtx, bson.M{"_id": bson.M{"$in": followeeIDs}})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch following"})
			return
		}
		defer userCursor.Close(dbCtx)

		var users []models.User
		if err := userCursor.All(dbCtx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode following"})
			return
		}
		for _, u := range users {
			following = append(following, bson.M{
				"id":          u.ID,
				"displayName": u.DisplayName,
				"title":       u.Title,
				"xpTotal":     u.XPTotal,
			})
		}
	}

	c.JSON(http.StatusOK, gin.H{"following": following, "count": len(following)})
}
