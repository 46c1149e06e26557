package utils

import (
	"context"
	"time"

	"strivehub/db"
	"strivehub/models"
	"strivehub/progression"

	"go.mongodb.org/mongo-driver/bson"
)

// PopulateTestUsers creates sample users when the collection is empty
func PopulateTestUsers() {
	collection := db.MongoDatabase.Collection("users")
	count, _ := collection.CountDocuments(context.Background(), bson.M{})

	if count > 0 {
		return
	}

	password, err := HashPassword("changeme123")
	if err != nil {
		return
	}

	testUsers := []models.User{
		{
			Email:       "user1@example.com",
			Password:    password,
			DisplayName: "CodeClimber",
			Bio:         "Learning something new every day",
			XPTotal:     0,
			Title:       progression.TitleForXP(0),
			CreatedAt:   time.Now(),
		},
		{
			Email:       "user2@example.com",
			Password:    password,
			DisplayName: "SkillSeeker",
			Bio:         "Chasing the Expert title",
			XPTotal:     0,
			Title:       progression.TitleForXP(0),
			CreatedAt:   time.Now(),
		},
	}

	var documents []interface{}
	for _, user := range testUsers {
		documents = append(documents, user)
	}

	_, err = collection.InsertMany(context.Background(), documents)
	if err != nil {
		return
	}
}

// SeedLearningData populates learning steps, challenges and jobs with sample
// content so a fresh install has something to serve
func SeedLearningData() {
	dbCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stepCollection := db.MongoDatabase.Collection("learning_steps")
	count, err := stepCollection.CountDocuments(dbCtx, bson.M{})
	if err == nil && count == 0 {
		sampleSteps := []interface{}{
			models.LearningStep{
				Title:       "Programming Basics",
				Description: "Variables, control flow and functions",
				Order:       1,
				Questions: []models.QuizQuestion{
					{
						Prompt:       "What does a variable store?",
						Options:      []string{"A value", "A file", "A network socket", "A screen"},
						CorrectIndex: 0,
					},
					{
						Prompt:       "Which construct repeats a block of code?",
						Options:      []string{"A condition", "A loop", "A comment", "A constant"},
						CorrectIndex: 1,
					},
				},
				CreatedAt: time.Now(),
			},
			models.LearningStep{
				Title:       "Data Structures",
				Description: "Arrays, maps and when to use them",
				Order:       2,
				Questions: []models.QuizQuestion{
					{
						Prompt:       "Which structure maps keys to values?",
						Options:      []string{"Array", "Stack", "Hash map", "Queue"},
						CorrectIndex: 2,
					},
				},
				CreatedAt: time.Now(),
			},
		}
		stepCollection.InsertMany(dbCtx, sampleSteps)
	}

	challengeCollection := db.MongoDatabase.Collection("challenges")
	count, err = challengeCollection.CountDocuments(dbCtx, bson.M{})
	if err == nil && count == 0 {
		sampleChallenges := []interface{}{
			models.Challenge{
				Title:      "Reverse a String",
				Prompt:     "Write a function that returns its input string reversed.",
				Language:   "any",
				Difficulty: "easy",
				XPReward:   20,
				CreatedAt:  time.Now(),
			},
			models.Challenge{
				Title:      "Find Duplicates",
				Prompt:     "Given a list of integers, return the values that appear more than once.",
				Language:   "any",
				Difficulty: "medium",
				XPReward:   35,
				CreatedAt:  time.Now(),
			},
		}
		challengeCollection.InsertMany(dbCtx, sampleChallenges)
	}

	jobCollection := db.MongoDatabase.Collection("jobs")
	count, err = jobCollection.CountDocuments(dbCtx, bson.M{})
	if err == nil && count == 0 {
		sampleJobs := []interface{}{
			models.Job{
				Title:       "Backend Engineer",
				CompanyName: "Acme Corp",
				Location:    "Remote",
				Description: "Build and operate REST APIs.",
				Skills: []models.JobSkill{
					{Name: "Go", Mandatory: true},
					{Name: "MongoDB", Mandatory: false},
					{Name: "Redis", Mandatory: false},
				},
				CreatedAt: time.Now(),
			},
			models.Job{
				Title:       "Frontend Developer",
				CompanyName: "Widget Labs",
				Location:    "Berlin",
				Description: "Ship accessible user interfaces.",
				Skills: []models.JobSkill{
					{Name: "JavaScript", Mandatory: true},
					{Name: "React", Mandatory: true},
					{Name: "CSS", Mandatory: false},
				},
				CreatedAt: time.Now(),
			},
		}
		jobCollection.InsertMany(dbCtx, sampleJobs)
	}
}
