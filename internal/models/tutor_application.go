package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TutorApplicationPending  = "pending"
	TutorApplicationApproved = "approved"
	TutorApplicationRejected = "rejected"
)

// Documento para la colección tutor_applications
type TutorApplication struct {
	ID         primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID     primitive.ObjectID  `json:"userId" bson:"userId"`
	Status     string              `json:"status" bson:"status"` // pending|approved|rejected
	Motivation string              `json:"motivation" bson:"motivation"`
	Reason     string              `json:"reason,omitempty" bson:"reason,omitempty"`
	ReviewedBy *primitive.ObjectID `json:"reviewedBy,omitempty" bson:"reviewedBy,omitempty"`
	CreatedAt  time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt" bson:"updatedAt"`
}

type TutorApplicationRequest struct {
	Motivation string `json:"motivation"`
}

// Body para rechazar una solicitud.
type RejectTutorApplication struct {
	Reason string `json:"reason"`
}
