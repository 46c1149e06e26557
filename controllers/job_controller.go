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
	"strivehub/services"
)

// GetJobs lists job postings
func GetJobs(c *gin.Context) {
	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.MongoDatabase.Collection("jobs").Find(dbCtx, bson.M{}, findOptions)
	if err != nil {
		log.Printf("Failed to fetch jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch jobs"})
		return
	}
	defer cursor.Close(dbCtx)

	jobs := []models.Job{}
	if err := cursor.All(dbCtx, &jobs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode jobs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetJobRecommendations ranks jobs against the user's skills
func GetJobRecommendations(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	skillCursor, err := db.MongoDatabase.Collection("user_skills").Find(dbCtx, bson.M{"userId": uid})
	if err != nil {
		log.Printf("Failed to fetch skills: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}
	defer skillCursor.Close(dbCtx)

	skills := []models.UserSkill{}
	if err := skillCursor.All(dbCtx, &skills); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode skills"})
		return
	}

	skillNames := make([]string, 0, len(skills))
	for _, s := range skills {
		skillNames = append(skillNames, s.Name)
	}

	jobCursor, err := db.MongoDatabase.Collection("jobs").Find(dbCtx, bson.M{})
	if err != nil {
		log.Printf("Failed to fetch jobs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recommendations"})
		return
	}
	defer jobCursor.Close(dbCtx)

	jobs := []models.Job{}
	if err := jobCursor.All(dbCtx, &jobs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode jobs"})
		return
	}

	recommendations := services.RecommendJobs(skillNames, jobs)
	c.JSON(http.StatusOK, gin.H{"recommendations": recommendations, "total": len(recommendations)})
}
