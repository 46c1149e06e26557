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
)

// GetProfile returns the authenticated user's profile
func GetProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.MongoDatabase.Collection("users").FindOne(dbCtx, bson.M{"_id": userID.(primitive.ObjectID)}).Decode(&user)
	if err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateProfile updates mutable profile fields (never progression state)
func UpdateProfile(ctx *gin.Context) {
	userID, exists := ctx.Get("userID")
	if !exists {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req struct {
		DisplayName string `json:"displayName"`
		Bio         string `json:"bio"`
		AvatarURL   string `json:"avatarUrl"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	update := bson.M{"updatedAt": time.Now()}
	if req.DisplayName != "" {
		update["displayName"] = req.DisplayName
	}
	if req.Bio != "" {
		update["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		update["avatarUrl"] = req.AvatarURL
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := db.MongoDatabase.Collection("users").UpdateByID(dbCtx, userID.(primitive.ObjectID), bson.M{"$set": update})
	if err != nil {
		log.Printf("Failed to update profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// GetUser returns the public progression state of any user
func GetUser(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.MongoDatabase.Collection("users").FindOne(dbCtx, bson.M{"_id": id}).Decode(&user); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":             user.ID.Hex(),
		"displayName":    user.DisplayName,
		"avatarUrl":      user.AvatarURL,
		"xpTotal":        user.XPTotal,
		"title":          user.Title,
		"streakCount":    user.StreakCount,
		"lastActiveDate": user.LastActiveDate,
	})
}

// GetXPHistory returns the paginated XP ledger for a user
func GetXPHistory(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
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

	cursor, err := db.MongoDatabase.Collection("xp_history").Find(dbCtx, bson.M{"userId": id}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch xp history: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch XP history"})
		return
	}
	defer cursor.Close(dbCtx)

	records := []models.XPHistoryRecord{}
	if err := cursor.All(dbCtx, &records); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode XP history"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"history": records, "page": page, "limit": limit})
}

// GetActivity returns the paginated activity feed for a user
func GetActivity(ctx *gin.Context) {
	id, err := primitive.ObjectIDFromHex(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
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

	cursor, err := db.MongoDatabase.Collection("activities").Find(dbCtx, bson.M{"userId": id}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch activity: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}
	defer cursor.Close(dbCtx)

	activities := []models.ActivityRecord{}
	if err := cursor.All(dbCtx, &activities); err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode activity"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"activities": activities, "page": page, "limit": limit})
}
