package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JobSkill is a skill required by a job posting.
type JobSkill struct {
	Name      string `bson:"name" json:"name"`
	Mandatory bool   `bson:"mandatory" json:"mandatory"`
}

// Job is a job posting shown in recommendations.
type Job struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	CompanyName string             `bson:"companyName" json:"companyName"`
	Location    string             `bson:"location" json:"location"`
	Description string             `bson:"description" json:"description"`
	Skills      []JobSkill         `bson:"skills" json:"skills"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// JobRecommendation ranks a job against a user's skills.
type JobRecommendation struct {
	JobID            primitive.ObjectID `json:"jobId"`
	Title            string             `json:"title"`
	CompanyName      string             `json:"companyName"`
	Location         string             `json:"location"`
	MatchScore       int                `json:"matchScore"` // percent 0-100
	MandatoryMissing bool               `json:"mandatoryMissing"`
	MissingSkills    []JobSkill         `json:"missingSkills"`
}
