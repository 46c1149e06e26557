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
	"strivehub/middlewares"
	"strivehub/models"
	"strivehub/utils"
)

// AdminLogin authenticates an admin and returns a JWT
func AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	err := db.MongoDatabase.Collection("admins").FindOne(dbCtx, bson.M{"email": req.Email}).Decode(&admin)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if !utils.CheckPasswordHash(req.Password, admin.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	token, err := utils.GenerateJWTToken(admin.ID.Hex(), admin.Email)
	if err != nil {
		log.Printf("Failed to generate admin token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "email": admin.Email, "name": admin.Name, "role": admin.Role},
	})
}

// CreateLearningStep creates a learning step with its quiz
func CreateLearningStep(c *gin.Context) {
	var req struct {
		Title       string                `json:"title" binding:"required"`
		Description string                `json:"description"`
		Order       int                   `json:"order"`
		Questions   []models.QuizQuestion `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	for i, q := range req.Questions {
		if len(q.Options) < 2 || q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid question at index " + strconv.Itoa(i)})
			return
		}
	}

	step := models.LearningStep{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Description: req.Description,
		Order:       req.Order,
		Questions:   req.Questions,
		CreatedAt:   time.Now(),
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.MongoDatabase.Collection("learning_steps").InsertOne(dbCtx, step); err != nil {
		log.Printf("Failed to create learning step: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create learning step"})
		return
	}

	if err := middlewares.LogAdminAction(c, "create", "step", step.ID, map[string]interface{}{"title": step.Title}); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"step": step})
}

// UpdateLearningStep updates an existing learning step
func UpdateLearningStep(c *gin.Context) {
	stepID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step ID"})
		return
	}

	var req struct {
		Title       *string                `json:"title"`
		Description *string                `json:"description"`
		Order       *int                   `json:"order"`
		Questions   *[]models.QuizQuestion `json:"questions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	update := bson.M{}
	if req.Title != nil {
		update["title"] = *req.Title
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.Order != nil {
		update["order"] = *req.Order
	}
	if req.Questions != nil {
		update["questions"] = *req.Questions
	}
	if len(update) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("learning_steps").UpdateOne(dbCtx, bson.M{"_id": stepID}, bson.M{"$set": update})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update learning step"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Learning step not found"})
		return
	}

	if err := middlewares.LogAdminAction(c, "update", "step", stepID, nil); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Learning step updated"})
}

// DeleteLearningStep removes a learning step
func DeleteLearningStep(c *gin.Context) {
	stepID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid step ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("learning_steps").DeleteOne(dbCtx, bson.M{"_id": stepID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete learning step"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Learning step not found"})
		return
	}

	if err := middlewares.LogAdminAction(c, "delete", "step", stepID, nil); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Learning step deleted"})
}

// CreateChallenge creates a coding challenge
func CreateChallenge(c *gin.Context) {
	var req struct {
		Title      string `json:"title" binding:"required"`
		Prompt     string `json:"prompt" binding:"required"`
		Language   string `json:"language"`
		Difficulty string `json:"difficulty"`
		XPReward   int    `json:"xpReward"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}
	if req.XPReward < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "XP reward cannot be negative"})
		return
	}
	if req.XPReward == 0 {
		req.XPReward = 20
	}

	challenge := models.Challenge{
		ID:         primitive.NewObjectID(),
		Title:      req.Title,
		Prompt:     req.Prompt,
		Language:   req.Language,
		Difficulty: req.Difficulty,
		XPReward:   req.XPReward,
		CreatedAt:  time.Now(),
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.MongoDatabase.Collection("challenges").InsertOne(dbCtx, challenge); err != nil {
		log.Printf("Failed to create challenge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create challenge"})
		return
	}

	if err := middlewares.LogAdminAction(c, "create", "challenge", challenge.ID, map[string]interface{}{"title": challenge.Title}); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"challenge": challenge})
}

// DeleteChallenge removes a challenge
func DeleteChallenge(c *gin.Context) {
	challengeID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid challenge ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("challenges").DeleteOne(dbCtx, bson.M{"_id": challengeID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete challenge"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Challenge not found"})
		return
	}

	if err := middlewares.LogAdminAction(c, "delete", "challenge", challengeID, nil); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Challenge deleted"})
}

// CreateJob creates a job posting
func CreateJob(c *gin.Context) {
	var req struct {
		Title       string            `json:"title" binding:"required"`
		CompanyName string            `json:"companyName" binding:"required"`
		Location    string            `json:"location"`
		Description string            `json:"description"`
		Skills      []models.JobSkill `json:"skills"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	job := models.Job{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		CompanyName: req.CompanyName,
		Location:    req.Location,
		Description: req.Description,
		Skills:      req.Skills,
		CreatedAt:   time.Now(),
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.MongoDatabase.Collection("jobs").InsertOne(dbCtx, job); err != nil {
		log.Printf("Failed to create job: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create job"})
		return
	}

	if err := middlewares.LogAdminAction(c, "create", "job", job.ID, map[string]interface{}{"title": job.Title}); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusCreated, gin.H{"job": job})
}

// DeleteJob removes a job posting
func DeleteJob(c *gin.Context) {
	jobID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("jobs").DeleteOne(dbCtx, bson.M{"_id": jobID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete job"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	if err := middlewares.LogAdminAction(c, "delete", "job", jobID, nil); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted"})
}

// AdminDeletePost removes any user's post (moderation)
func AdminDeletePost(c *gin.Context) {
	postID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := db.MongoDatabase.Collection("posts").DeleteOne(dbCtx, bson.M{"_id": postID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	// Cascade the comments; likes in Redis expire naturally
	db.MongoDatabase.Collection("post_comments").DeleteMany(dbCtx, bson.M{"postId": postID})

	if err := middlewares.LogAdminAction(c, "delete", "post", postID, map[string]interface{}{"moderation": true}); err != nil {
		log.Printf("Failed to log admin action: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

// ListUsers returns users for the admin dashboard
func ListUsers(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cursor, err := db.MongoDatabase.Collection("users").Find(dbCtx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(dbCtx)

	users := []models.User{}
	if err := cursor.All(dbCtx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users, "page": page, "limit": limit})
}

// GetAdminActionLogs returns the audit trail, newest first
func GetAdminActionLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if limit < 1 || limit > 500 {
		limit = 100
	}

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	findOptions := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := db.MongoDatabase.Collection("admin_action_logs").Find(dbCtx, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch action logs"})
		return
	}
	defer cursor.Close(dbCtx)

	logs := []models.AdminActionLog{}
	if err := cursor.All(dbCtx, &logs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode action logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"logs": logs})
}
