package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SkillSummary struct {
	Skill          string  `json:"skill"`
	Attempts       int     `json:"attempts"`
	BestPercent    float64 `json:"bestPercent"`
	AveragePercent float64 `json:"averagePercent"`
}

type MatchRecord struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`
}

type Transcript struct {
	UserID         primitive.ObjectID `json:"userId"`
	Username       string             `json:"username"`
	LanguageLevel  string             `json:"languageLevel"`
	Skills         []SkillSummary     `json:"skills"`
	Matches        MatchRecord        `json:"matches"`
	OverallPercent float64            `json:"overallPercent"`
	EstimatedLevel string             `json:"estimatedLevel"`
	GeneratedAt    time.Time          `json:"generatedAt"`
}

// TranscriptArchive registra un transcript guardado en object storage.
type TranscriptArchive struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID `json:"userId" bson:"userId"`
	ObjectName string             `json:"objectName" bson:"objectName"`
	Size       int64              `json:"size" bson:"size"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	URL        string             `json:"url,omitempty" bson:"-"`
}
