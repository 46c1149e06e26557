package controllers

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"strivehub/db"
	"strivehub/models"
	"strivehub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeaderboardData defines the response structure for the frontend
type LeaderboardData struct {
	Learners []Learner `json:"learners"`
	Stats    []Stat    `json:"stats"`
}

// Learner represents a leaderboard entry
type Learner struct {
	ID          string `json:"id"`
	Rank        int    `json:"rank"`
	Name        string `json:"name"`
	XPTotal     int    `json:"xpTotal"`
	Title       string `json:"title"`
	StreakCount int    `json:"streakCount"`
	AvatarURL   string `json:"avatarUrl"`
	CurrentUser bool   `json:"currentUser"`
}

// Stat represents a single statistic
type Stat struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
	Label string `json:"label"`
}

// GetLeaderboard fetches and returns leaderboard data
func GetLeaderboard(c *gin.Context) {
	currentUserID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	uid := currentUserID.(primitive.ObjectID)

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}

	// Query users sorted by total XP (descending)
	collection := db.MongoDatabase.Collection("users")
	findOptions := options.Find().
		SetSort(bson.D{{Key: "xpTotal", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := collection.Find(c, bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
		return
	}
	defer cursor.Close(c)

	var users []models.User
	if err := cursor.All(c, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode leaderboard data"})
		return
	}

	var learners []Learner
	for i, user := range users {
		name := user.DisplayName
		if name == "" {
			name = utils.ExtractNameFromEmail(user.Email)
		}

		avatarURL := user.AvatarURL
		if avatarURL == "" {
			avatarURL = "https://api.dicebear.com/9.x/adventurer/svg?seed=" + name
		}

		learners = append(learners, Learner{
			ID:          user.ID.Hex(),
			Rank:        i + 1,
			Name:        name,
			XPTotal:     user.XPTotal,
			Title:       user.Title,
			StreakCount: user.StreakCount,
			AvatarURL:   avatarURL,
			CurrentUser: user.ID == uid,
		})
	}

	ctx := context.Background()
	totalUsers, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Printf("Error counting users: %v", err)
		totalUsers = int64(len(users))
	}

	// XP EARNED TODAY from the ledger
	todayStart := time.Now().Truncate(24 * time.Hour)
	todayEnd := todayStart.Add(24 * time.Hour)

	xpToday := 0
	xpCursor, err := db.MongoDatabase.Collection("xp_history").Aggregate(ctx, []bson.M{
		{"$match": bson.M{"createdAt": bson.M{"$gte": todayStart, "$lt": todayEnd}}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$xpAmount"}}},
	})
	if err == nil {
		var result []struct {
			Total int `bson:"total"`
		}
		if err := xpCursor.All(ctx, &result); err == nil && len(result) > 0 {
			xpToday = result[0].Total
		}
		xpCursor.Close(ctx)
	}

	// ACTIVE STREAKS - users whose streak is alive as of today or yesterday
	streakThreshold := todayStart.AddDate(0, 0, -1)
	activeStreaks, err := collection.CountDocuments(ctx, bson.M{
		"streakCount":    bson.M{"$gt": 0},
		"lastActiveDate": bson.M{"$gte": streakThreshold},
	})
	if err != nil {
		log.Printf("Error counting active streaks: %v", err)
		activeStreaks = 0
	}

	// EXPERTS - users who have reached the top title tier
	experts, err := collection.CountDocuments(ctx, bson.M{"xpTotal": bson.M{"$gte": 10000}})
	if err != nil {
		experts = 0
	}

	stats := []Stat{
		{Icon: "crown", Value: strconv.Itoa(int(totalUsers)), Label: "REGISTERED LEARNERS"},
		{Icon: "flame", Value: strconv.Itoa(int(activeStreaks)), Label: "ACTIVE STREAKS"},
		{Icon: "bolt", Value: strconv.Itoa(xpToday), Label: "XP EARNED TODAY"},
		{Icon: "medal", Value: strconv.Itoa(int(experts)), Label: "EXPERTS"},
	}

	c.JSON(http.StatusOK, LeaderboardData{
		Learners: learners,
		Stats:    stats,
	})
}
