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

// GetLearningSteps lists the learning track in order
func GetLearningSteps(c *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := db.MongoDatabase.Collection("learning_steps").Find(dbCtx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch learning steps: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch learning steps"})
		return
	}
	defer cursor.Close(dbCtx)

	steps := []models.LearningStep{}
	if err := cursor.All(dbCtx, &steps); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode learning steps"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"steps": steps})
}

// GetStepQuiz returns one step with its quiz questions (correct answers are
// never serialized)
func GetStepQuiz(c *gin.Context) {
	stepID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var step models.LearningStep
	if err := db.MongoDatabase.Collection("learning_steps").FindOne(dbCtx, bson.M{"_id": stepID}).Decode(&step); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"step": step})
}

// SubmitQuiz grades a quiz submission and awards XP on a pass
func SubmitQuiz(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	stepID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step ID"})
		return
	}

	var req struct {
		Answers []int `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	allowed, err := submitLimiter.Allow(c.Request.Context(), uid.Hex(), "quiz_submit", 10, time.Minute)
	if err != nil {
		log.Printf("Rate limit check failed: %v", err)
	} else if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded. Please try again later."})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var step models.LearningStep
	if err := db.MongoDatabase.Collection("learning_steps").FindOne(dbCtx, bson.M{"_id": stepID}).Decode(&step); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Step not found"})
		return
	}

	score := services.GradeQuiz(step.Questions, req.Answers)
	passed := services.QuizPassed(score)

	submission := models.QuizSubmission{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		StepID:    stepID,
		Answers:   req.Answers,
		Score:     score,
		Passed:    passed,
		CreatedAt: time.Now(),
	}
	if _, err := db.MongoDatabase.Collection("quiz_submissions").InsertOne(dbCtx, submission); err != nil {
		log.Printf("Failed to save quiz submission: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quiz"})
		return
	}

	xpAwarded := 0
	newTitle := ""
	if passed {
		xpAwarded = services.QuizXP(score)
		title, err := progressionEngine.AwardXP(dbCtx, uid, xpAwarded, progression.SourceQuizComplete, &stepID)
		if err != nil {
			log.Printf("Failed to award quiz xp: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quiz"})
			return
		}
		newTitle = title

		if _, err := progressionEngine.TouchStreak(dbCtx, uid); err != nil {
			log.Printf("Failed to touch streak: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit quiz"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"score":     score,
		"passed":    passed,
		"xpAwarded": xpAwarded,
		"title":     newTitle,
	})
}
