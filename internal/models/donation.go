package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DonationPending  = "pending"
	DonationCaptured = "captured"
)

type Donation struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Reference   string              `json:"reference" bson:"reference"`
	DonorID     *primitive.ObjectID `json:"donorId,omitempty" bson:"donorId,omitempty"`
	DonorName   string              `json:"donorName,omitempty" bson:"donorName,omitempty"`
	AmountCents int64               `json:"amountCents" bson:"amountCents"`
	Currency    string              `json:"currency" bson:"currency"`
	Message     string              `json:"message,omitempty" bson:"message,omitempty"`
	Status      string              `json:"status" bson:"status"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
	CapturedAt  *time.Time          `json:"capturedAt,omitempty" bson:"capturedAt,omitempty"`
}

type DonationTotal struct {
	Currency    string `json:"currency" bson:"_id"`
	AmountCents int64  `json:"amountCents" bson:"amountCents"`
	Count       int64  `json:"count" bson:"count"`
}
