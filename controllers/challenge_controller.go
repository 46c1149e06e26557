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
	"strivehub/progression"
	"strivehub/services"
)

// GetChallenges lists available coding challenges
func GetChallenges(c *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.MongoDatabase.Collection("challenges").Find(dbCtx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch challenges: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch challenges"})
		return
	}
	defer cursor.Close(dbCtx)

	challenges := []models.Challenge{}
	if err := cursor.All(dbCtx, &challenges); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode challenges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenges": challenges})
}

// GetChallenge returns one challenge
func GetChallenge(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var challenge models.Challenge
	if err := db.MongoDatabase.Collection("challenges").FindOne(dbCtx, bson.M{"_id": id}).Decode(&challenge); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"challenge": challenge})
}

// SubmitChallenge evaluates submitted code, persists the attempt, and awards
// XP. Failed attempts are recorded with a zero-XP award for audit purposes.
func SubmitChallenge(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	challengeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	allowed, err := submitLimiter.Allow(c.Request.Context(), uid.Hex(), "challenge_submit", 10, time.Minute)
	if err != nil {
		log.Printf("Rate limit check failed: %v", err)
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var challenge models.Challenge
	if err := db.MongoDatabase.Collection("challenges").FindOne(dbCtx, bson.M{"_id": challengeID}).Decode(&challenge); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	evaluation, err := services.EvaluateChallengeSubmission(dbCtx, challenge, req.Code)
	if err != nil {
		log.Printf("Failed to evaluate challenge submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to evaluate submission"})
		return
	}

	attempt := models.ChallengeAttempt{
		ID:          primitive.NewObjectID(),
		UserID:      uid,
		ChallengeID: challengeID,
		Code:        req.Code,
		Passed:      evaluation.Passed,
		Score:       evaluation.Score,
		Feedback:    evaluation.Feedback,
		CreatedAt:   time.Now(),
	}
	if _, err := db.MongoDatabase.Collection("challenge_attempts").InsertOne(dbCtx, attempt); err != nil {
		log.Printf("Failed to save challenge attempt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit challenge"})
		return
	}

	xpAwarded := 0
	if evaluation.Passed {
		xpAwarded = challenge.XPReward
	}

	// A failed attempt still writes a zero-XP ledger entry.
	title, err := progressionEngine.AwardXP(dbCtx, uid, xpAwarded, progression.SourceChallengeComplete, &challengeID)
	if err != nil {
		log.Printf("Failed to award challenge xp: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit challenge"})
		return
	}

	if evaluation.Passed {
		if _, err := progressionEngine.TouchStreak(dbCtx, uid); err != nil {
			log.Printf("Failed to touch streak: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit challenge"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"passed":    evaluation.Passed,
		"score":     evaluation.Score,
		"feedback":  evaluation.Feedback,
		"xpAwarded": xpAwarded,
		"title":     title,
	})
}
