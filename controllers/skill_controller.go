package controllers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"strivehub/db"
	"strivehub/models"
	"strivehub/progression"
)

const skillAddedXP = 10

// AddSkill adds a skill to the user's profile and awards a flat XP bonus
func AddSkill(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := userID.(primitive.ObjectID)

	var req struct {
		Name  string `json:"name" binding:"required"`
		Level string `json:"level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Skill name is required"})
		return
	}
	level := req.Level
	if level == "" {
		level = "beginner"
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	skillCollection := db.MongoDatabase.Collection("user_skills")

	// No double XP for re-adding the same skill
	var existing models.UserSkill
	err := skillCollection.FindOne(dbCtx, bson.M{"userId": uid, "name": name}).Decode(&existing)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Skill already added"})
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Printf("Failed to check existing skill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add skill"})
		return
	}

	skill := models.UserSkill{
		ID:        primitive.NewObjectID(),
		UserID:    uid,
		Name:      name,
		Level:     level,
		CreatedAt: time.Now(),
	}
	if _, err := skillCollection.InsertOne(dbCtx, skill); err != nil {
		log.Printf("Failed to add skill: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add skill"})
		return
	}

	title, err := progressionEngine.AwardXP(dbCtx, uid, skillAddedXP, progression.SourceSkillAdded, &skill.ID)
	if err != nil {
		log.Printf("Failed to award skill xp: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add skill"})
		return
	}
	if _, err := progressionEngine.TouchStreak(dbCtx, uid); err != nil {
		log.Printf("Failed to touch streak: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add skill"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"skill": skill, "xpAwarded": skillAddedXP, "title": title})
}

// GetSkills lists the authenticated user's skills
func GetSkills(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := db.MongoDatabase.Collection("user_skills").Find(dbCtx, bson.M{"userId": userID.(primitive.ObjectID)})
	if err != nil {
		log.Printf("Failed to fetch skills: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch skills"})
		return
	}
	defer cursor.Close(dbCtx)

	skills := []models.UserSkill{}
	if err := cursor.All(dbCtx, &skills); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode skills"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"skills": skills})
}
