package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HistoryEntry apunta a cualquier intento (examen o match) vía testModelName + testId.
type HistoryEntry struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID `json:"userId" bson:"userId"`
	TestModelName string             `json:"testModelName" bson:"testModelName"`
	TestID        primitive.ObjectID `json:"testId" bson:"testId"`
	Skill         string             `json:"skill" bson:"skill"`
	Score         float64            `json:"score" bson:"score"`
	MaxScore      float64            `json:"maxScore" bson:"maxScore"`
	Percent       float64            `json:"percent" bson:"percent"`
	// solo para matches: win | loss | draw
	Outcome   string    `json:"outcome,omitempty" bson:"outcome,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}

const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomeDraw = "draw"
)

// AttemptResult es la respuesta al enviar un examen de práctica.
type AttemptResult struct {
	History   HistoryEntry `json:"history"`
	PerAnswer []float64    `json:"perAnswer"`
}
