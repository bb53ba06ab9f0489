package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/metrics"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	defaultBookingMinutes = 60
	sweepBatch            = 200
)

type BookingService struct {
	bookings BookingStore
	users    UserStore
	events   EventPublisher
	notifier Notifier
	grace    time.Duration
	now      func() time.Time
}

func NewBookingService(bookings BookingStore, users UserStore, pub EventPublisher, notifier Notifier, grace time.Duration) *BookingService {
	if pub == nil {
		pub = nopPublisher{}
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &BookingService{
		bookings: bookings,
		users:    users,
		events:   pub,
		notifier: notifier,
		grace:    grace,
		now:      time.Now,
	}
}

type CreateBookingData struct {
	TrainerID       primitive.ObjectID
	ScheduledAt     time.Time
	DurationMinutes int
	Topic           string
}

// Create agenda una sesión. Los dos RSVP arrancan en false.
func (s *BookingService) Create(ctx context.Context, traineeID primitive.ObjectID, data CreateBookingData) (*models.Booking, error) {
	now := s.now().UTC()

	minutes := data.DurationMinutes
	if minutes == 0 {
		minutes = defaultBookingMinutes
	}
	if minutes < 15 || minutes > 240 {
		return nil, invalid("durationMinutes must be between 15 and 240")
	}
	if !data.ScheduledAt.After(now) {
		return nil, invalid("scheduledAt must be in the future")
	}
	if data.TrainerID == traineeID {
		return nil, invalid("cannot book a session with yourself")
	}

	trainer, err := s.users.FindByID(ctx, data.TrainerID)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, fmt.Errorf("%w: trainer", ErrNotFound)
	}
	if trainer.UserType != models.UserTypeTrainer {
		return nil, invalid("selected user is not a trainer")
	}

	at := data.ScheduledAt.UTC()
	busy, err := s.bookings.TrainerBusy(ctx, trainer.ID, at, at.Add(time.Duration(minutes)*time.Minute))
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, fmt.Errorf("%w: trainer already has a session at that time", ErrConflict)
	}

	// TrainerBusy es solo el camino rápido; la reserva atómica la hace Insert
	b := models.NewBooking(traineeID, trainer.ID, at, minutes, data.Topic, now)
	if err := s.bookings.Insert(ctx, b); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, fmt.Errorf("%w: trainer already has a session at that time", ErrConflict)
		}
		return nil, err
	}

	metrics.BookingTransitions.WithLabelValues(models.BookingStatusPending).Inc()
	publish(ctx, s.events, events.BookingCreated, bookingPayload(b))
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, userID primitive.ObjectID, isAdmin bool, id primitive.ObjectID) (*models.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	if !isAdmin && !b.IsParticipant(userID) {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *BookingService) List(ctx context.Context, userID primitive.ObjectID, status string, limit, offset int) ([]models.Booking, error) {
	return s.bookings.FindByUser(ctx, userID, status, limit, offset)
}

// RSVP marca (o retira) la asistencia de un participante.
func (s *BookingService) RSVP(ctx context.Context, userID, id primitive.ObjectID, attending bool) (*models.Booking, error) {
	return s.mutate(ctx, id, func(b *models.Booking, now time.Time) error {
		_, err := b.SetRSVP(userID, attending, now)
		return err
	})
}

// Complete cierra una sesión confirmada (participantes o admin).
func (s *BookingService) Complete(ctx context.Context, userID primitive.ObjectID, isAdmin bool, id primitive.ObjectID) (*models.Booking, error) {
	return s.mutate(ctx, id, func(b *models.Booking, now time.Time) error {
		if !isAdmin && !b.IsParticipant(userID) {
			return ErrForbidden
		}
		return b.Complete(now)
	})
}

// mutate hace read-modify-write con versión; si otro request ganó, relee y reintenta.
func (s *BookingService) mutate(ctx context.Context, id primitive.ObjectID, fn func(b *models.Booking, now time.Time) error) (*models.Booking, error) {
	var (
		out  *models.Booking
		prev string
	)
	err := retryOnConflict("booking", func() error {
		b, err := s.bookings.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if b == nil {
			return ErrNotFound
		}
		before := b.Status
		if err := fn(b, s.now().UTC()); err != nil {
			return err
		}
		if err := s.bookings.Update(ctx, b); err != nil {
			return err
		}
		out, prev = b, before
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.afterTransition(ctx, prev, out)
	return out, nil
}

func (s *BookingService) afterTransition(ctx context.Context, prev string, b *models.Booking) {
	if prev != b.Status {
		metrics.BookingTransitions.WithLabelValues(b.Status).Inc()
		switch b.Status {
		case models.BookingStatusConfirmed:
			publish(ctx, s.events, events.BookingConfirmed, bookingPayload(b))
		case models.BookingStatusCompleted:
			publish(ctx, s.events, events.BookingCompleted, bookingPayload(b))
		}
	}
	s.notifier.Notify(b.Room(), "booking-updated", b)
}

// AutoCompleteDue completa sesiones confirmadas que ya terminaron (+ grace).
// Devuelve completadas y conflictos (otro proceso las tocó primero).
func (s *BookingService) AutoCompleteDue(ctx context.Context) (int, int, error) {
	now := s.now().UTC()
	due, err := s.bookings.FindConfirmedEndedBefore(ctx, now.Add(-s.grace), sweepBatch)
	if err != nil {
		return 0, 0, err
	}

	completed, conflicts := 0, 0
	for i := range due {
		b := &due[i]
		if !b.DueForCompletion(now, s.grace) {
			continue
		}
		if err := b.Complete(now); err != nil {
			continue
		}
		if err := s.bookings.Update(ctx, b); err != nil {
			if errors.Is(err, repository.ErrVersionConflict) {
				conflicts++
				continue
			}
			return completed, conflicts, err
		}
		completed++
		s.afterTransition(ctx, models.BookingStatusConfirmed, b)
	}
	if completed > 0 {
		log.Printf("[sweeper] %d bookings completados automáticamente", completed)
	}
	return completed, conflicts, nil
}

func bookingPayload(b *models.Booking) map[string]any {
	return map[string]any{
		"bookingId":   b.ID.Hex(),
		"traineeId":   b.TraineeID.Hex(),
		"trainerId":   b.TrainerID.Hex(),
		"scheduledAt": b.ScheduledAt,
		"status":      b.Status,
	}
}
