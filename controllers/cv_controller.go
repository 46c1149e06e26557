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

// UploadCV stores CV text for review and kicks off the background analysis
func UploadCV(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	var req struct {
		FileName string `json:"fileName"`
		Text     string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	review := models.CVReview{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		FileName:  req.FileName,
		Text:      req.Text,
		Status:    models.CVReviewPending,
		CreatedAt: time.Now(),
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.MongoDatabase.Collection("cv_reviews").InsertOne(dbCtx, review); err != nil {
		log.Printf("Failed to create cv review: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload CV"})
		return
	}

	// Analysis runs in the background; the client polls the review status.
	go runCVAnalysis(review)

	c.JSON(http.StatusAccepted, gin.H{"review": review})
}

// runCVAnalysis completes a pending review and awards XP for it
func runCVAnalysis(review models.CVReview) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	reviewCollection := db.MongoDatabase.Collection("cv_reviews")

	analysis, err := services.AnalyzeCV(ctx, review.Text)
	if err != nil {
		log.Printf("CV analysis failed for review %s: %v", review.ID.Hex(), err)
		reviewCollection.UpdateByID(ctx, review.ID, bson.M{"$set": bson.M{"status": models.CVReviewFailed}})
		return
	}

	now := time.Now()
	update := bson.M{"$set": bson.M{
		"status":       models.CVReviewCompleted,
		"overallScore": analysis.OverallScore,
		"strengths":    analysis.Strengths,
		"improvements": analysis.Improvements,
		"feedback":     analysis.Feedback,
		"completedAt":  now,
	}}
	if _, err := reviewCollection.UpdateByID(ctx, review.ID, update); err != nil {
		log.Printf("Failed to complete cv review %s: %v", review.ID.Hex(), err)
		return
	}

	// The review is already completed; an award failure here is the known
	// split outcome and is only logged.
	xp := services.CVReviewXP(analysis.OverallScore)
	if _, err := progressionEngine.AwardXP(ctx, review.UserID, xp, progression.SourceCVReview, &review.ID); err != nil {
		log.Printf("Failed to award cv review xp for %s: %v", review.ID.Hex(), err)
		return
	}
	if _, err := progressionEngine.TouchStreak(ctx, review.UserID); err != nil {
		log.Printf("Failed to touch streak after cv review %s: %v", review.ID.Hex(), err)
	}
}

// GetCVReviews lists the authenticated user's reviews
func GetCVReviews(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.MongoDatabase.Collection("cv_reviews").Find(dbCtx, bson.M{"userId": userID.(primitive.ObjectID)}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch cv reviews: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}
	defer cursor.Close(dbCtx)

	reviews := []models.CVReview{}
	if err := cursor.All(dbCtx, &reviews); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

// GetCVReview returns one review owned by the authenticated user
func GetCVReview(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var review models.CVReview
	filter := bson.M{"_id": reviewID, "userId": userID.(primitive.ObjectID)}
	if err := db.MongoDatabase.Collection("cv_reviews").FindOne(dbCtx, filter).Decode(&review); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"review": review})
}
