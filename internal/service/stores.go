package service

import (
	"context"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Interfaces que consumen los servicios. Las implementan los repositorios de
// internal/repository (Mongo / Redis) y los fakes de los tests.

type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	Insert(ctx context.Context, u *models.User) error
	UpdateByID(ctx context.Context, id primitive.ObjectID, update map[string]any) error
	RaiseProgress(ctx context.Context, id primitive.ObjectID, skill string, score float64) error
	Search(ctx context.Context, userType, q string, limit, offset int) ([]models.User, error)
}

type ExamStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Exam, error)
	List(ctx context.Context, level string, limit, offset int) ([]models.Exam, error)
	Insert(ctx context.Context, e *models.Exam) error
}

type HistoryStore interface {
	Insert(ctx context.Context, h *models.HistoryEntry) error
	FindByUser(ctx context.Context, userID primitive.ObjectID, testModelName string, limit, offset int) ([]models.HistoryEntry, error)
	AllByUser(ctx context.Context, userID primitive.ObjectID) ([]models.HistoryEntry, error)
}

type BookingStore interface {
	Insert(ctx context.Context, b *models.Booking) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	Update(ctx context.Context, b *models.Booking) error
	FindByUser(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]models.Booking, error)
	TrainerBusy(ctx context.Context, trainerID primitive.ObjectID, from, to time.Time) (bool, error)
	FindConfirmedEndedBefore(ctx context.Context, t time.Time, limit int64) ([]models.Booking, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type MatchStore interface {
	Insert(ctx context.Context, m *models.Match) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error)
	Update(ctx context.Context, m *models.Match) error
	FindByUser(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]models.Match, error)
	FindExpired(ctx context.Context, now time.Time, limit int64) ([]models.Match, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

type TutorApplicationStore interface {
	Insert(ctx context.Context, app *models.TutorApplication) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.TutorApplication, error)
	FindPendingByUser(ctx context.Context, userID primitive.ObjectID) (*models.TutorApplication, error)
	UpdateIfPending(ctx context.Context, app *models.TutorApplication) (bool, error)
	FindByUser(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]models.TutorApplication, error)
	FindAll(ctx context.Context, status string, limit, offset int) ([]models.TutorApplication, error)
}

type DonationStore interface {
	Insert(ctx context.Context, d *models.Donation) error
	FindByReference(ctx context.Context, ref string) (*models.Donation, error)
	MarkCaptured(ctx context.Context, ref string, at time.Time) (bool, error)
	List(ctx context.Context, status string, limit, offset int) ([]models.Donation, error)
	Totals(ctx context.Context) ([]models.DonationTotal, error)
}

type TranscriptStore interface {
	Insert(ctx context.Context, a *models.TranscriptArchive) error
	FindByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.TranscriptArchive, error)
}

type LeaderboardStore interface {
	AddPoints(ctx context.Context, userID string, points float64) error
	Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error)
}

// ObjectStore: bucket donde se archivan los transcripts (MinIO).
type ObjectStore interface {
	Put(ctx context.Context, name, contentType string, data []byte) error
	PresignedURL(ctx context.Context, name string, ttl time.Duration) (string, error)
}

// EventPublisher publica eventos de dominio (RabbitMQ).
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// Notifier empuja un evento a una sala del relay (reemplaza el polling del cliente).
type Notifier interface {
	Notify(room, event string, payload any)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, string, any) error { return nil }

type nopNotifier struct{}

func (nopNotifier) Notify(string, string, any) {}
