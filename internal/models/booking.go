package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCompleted = "completed"
)

// Booking es una sesión de tutoría trainee <-> trainer.
// Solo pasa a confirmed cuando los dos RSVP están en true.
type Booking struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	TraineeID       primitive.ObjectID `json:"traineeId" bson:"traineeId"`
	TrainerID       primitive.ObjectID `json:"trainerId" bson:"trainerId"`
	ScheduledAt     time.Time          `json:"scheduledAt" bson:"scheduledAt"`
	DurationMinutes int                `json:"durationMinutes" bson:"durationMinutes"`
	EndsAt          time.Time          `json:"endsAt" bson:"endsAt"`
	Topic           string             `json:"topic,omitempty" bson:"topic,omitempty"`
	TraineeRSVP     bool               `json:"traineeRsvp" bson:"traineeRsvp"`
	TrainerRSVP     bool               `json:"trainerRsvp" bson:"trainerRsvp"`
	Status          string             `json:"status" bson:"status"`
	ConfirmedAt     *time.Time         `json:"confirmedAt,omitempty" bson:"confirmedAt,omitempty"`
	CompletedAt     *time.Time         `json:"completedAt,omitempty" bson:"completedAt,omitempty"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
	Version         int64              `json:"version" bson:"version"`
}

func NewBooking(trainee, trainer primitive.ObjectID, at time.Time, minutes int, topic string, now time.Time) *Booking {
	return &Booking{
		ID:              primitive.NewObjectID(),
		TraineeID:       trainee,
		TrainerID:       trainer,
		ScheduledAt:     at,
		DurationMinutes: minutes,
		EndsAt:          at.Add(time.Duration(minutes) * time.Minute),
		Topic:           topic,
		Status:          BookingStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Room es la sala del relay asociada a la sesión.
func (b *Booking) Room() string {
	return "booking:" + b.ID.Hex()
}

func (b *Booking) IsParticipant(userID primitive.ObjectID) bool {
	return userID == b.TraineeID || userID == b.TrainerID
}

// SetRSVP marca la asistencia de uno de los participantes y recalcula el estado.
// Devuelve el estado anterior para que el caller detecte transiciones.
func (b *Booking) SetRSVP(userID primitive.ObjectID, attending bool, now time.Time) (string, error) {
	prev := b.Status
	if b.Status == BookingStatusCompleted {
		return prev, ErrInvalidTransition
	}

	switch userID {
	case b.TraineeID:
		b.TraineeRSVP = attending
	case b.TrainerID:
		b.TrainerRSVP = attending
	default:
		return prev, ErrNotParticipant
	}

	if b.TraineeRSVP && b.TrainerRSVP {
		if b.Status != BookingStatusConfirmed {
			b.Status = BookingStatusConfirmed
			b.ConfirmedAt = &now
		}
	} else {
		b.Status = BookingStatusPending
		b.ConfirmedAt = nil
	}
	b.UpdatedAt = now
	return prev, nil
}

// Complete cierra una sesión confirmada.
func (b *Booking) Complete(now time.Time) error {
	if b.Status != BookingStatusConfirmed {
		return ErrInvalidTransition
	}
	b.Status = BookingStatusCompleted
	b.CompletedAt = &now
	b.UpdatedAt = now
	return nil
}

// DueForCompletion: confirmada y ya terminó hace más de `grace`.
func (b *Booking) DueForCompletion(now time.Time, grace time.Duration) bool {
	return b.Status == BookingStatusConfirmed && !now.Before(b.EndsAt.Add(grace))
}
