package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type bookingFixture struct {
	svc      *BookingService
	store    *fakeBookings
	pub      *recordingPublisher
	notifier *recordingNotifier
	clock    *fixedClock
	trainee  models.User
	trainer  models.User
}

func newBookingFixture() *bookingFixture {
	trainee := newTestUser("alice", models.UserTypeTrainee)
	trainer := newTestUser("bruno", models.UserTypeTrainer)
	f := &bookingFixture{
		store:    newFakeBookings(),
		pub:      &recordingPublisher{},
		notifier: &recordingNotifier{},
		clock:    &fixedClock{t: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)},
		trainee:  trainee,
		trainer:  trainer,
	}
	f.svc = NewBookingService(f.store, newFakeUsers(trainee, trainer), f.pub, f.notifier, time.Hour)
	f.svc.now = f.clock.now
	return f
}

func (f *bookingFixture) create(t *testing.T) *models.Booking {
	t.Helper()
	b, err := f.svc.Create(context.Background(), f.trainee.ID, CreateBookingData{
		TrainerID:   f.trainer.ID,
		ScheduledAt: f.clock.t.Add(24 * time.Hour),
		Topic:       "expression orale",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	return b
}

func TestCreateBooking(t *testing.T) {
	f := newBookingFixture()
	b := f.create(t)

	if b.Status != models.BookingStatusPending || b.TraineeRSVP || b.TrainerRSVP {
		t.Errorf("new booking = %+v, want pending with both RSVPs false", b)
	}
	if b.DurationMinutes != defaultBookingMinutes {
		t.Errorf("duration = %d, want %d", b.DurationMinutes, defaultBookingMinutes)
	}
	if f.pub.count(events.BookingCreated) != 1 {
		t.Error("booking.created not published")
	}
}

func TestCreateBookingValidation(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	f.create(t)

	tests := []struct {
		name string
		data CreateBookingData
		want error
	}{
		{"in the past", CreateBookingData{TrainerID: f.trainer.ID, ScheduledAt: f.clock.t.Add(-time.Hour)}, ErrInvalidInput},
		{"too long", CreateBookingData{TrainerID: f.trainer.ID, ScheduledAt: f.clock.t.Add(48 * time.Hour), DurationMinutes: 600}, ErrInvalidInput},
		{"not a trainer", CreateBookingData{TrainerID: f.trainee.ID, ScheduledAt: f.clock.t.Add(48 * time.Hour)}, ErrInvalidInput},
		{"unknown trainer", CreateBookingData{TrainerID: primitive.NewObjectID(), ScheduledAt: f.clock.t.Add(48 * time.Hour)}, ErrNotFound},
		{"overlapping slot", CreateBookingData{TrainerID: f.trainer.ID, ScheduledAt: f.clock.t.Add(24*time.Hour + 30*time.Minute)}, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, f.trainee.ID, tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

// sameSlotBookings deja pasar a los dos Create por TrainerBusy antes de que
// cualquiera llegue a Insert.
type sameSlotBookings struct {
	*fakeBookings
	arrived sync.WaitGroup
}

func (s *sameSlotBookings) TrainerBusy(ctx context.Context, trainerID primitive.ObjectID, from, to time.Time) (bool, error) {
	busy, err := s.fakeBookings.TrainerBusy(ctx, trainerID, from, to)
	s.arrived.Done()
	s.arrived.Wait()
	return busy, err
}

func TestCreateBookingConcurrentSameSlot(t *testing.T) {
	trainer := newTestUser("bruno", models.UserTypeTrainer)
	alice := newTestUser("alice", models.UserTypeTrainee)
	chloe := newTestUser("chloe", models.UserTypeTrainee)

	store := &sameSlotBookings{fakeBookings: newFakeBookings()}
	store.arrived.Add(2)
	clock := &fixedClock{t: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)}
	svc := NewBookingService(store, newFakeUsers(trainer, alice, chloe), nil, nil, time.Hour)
	svc.now = clock.now

	at := clock.t.Add(24 * time.Hour)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, trainee := range []models.User{alice, chloe} {
		wg.Add(1)
		go func(i int, trainee models.User) {
			defer wg.Done()
			_, errs[i] = svc.Create(context.Background(), trainee.ID, CreateBookingData{
				TrainerID:   trainer.ID,
				ScheduledAt: at,
			})
		}(i, trainee)
	}
	wg.Wait()

	ok, conflicts := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || conflicts != 1 {
		t.Fatalf("errs = %v, want one booking and one conflict", errs)
	}

	counts, _ := store.CountByStatus(context.Background())
	if counts[models.BookingStatusPending] != 1 {
		t.Fatalf("stored bookings = %v, want a single pending one", counts)
	}
}

func TestRSVPConfirmsOnlyWithBoth(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := f.create(t)

	got, err := f.svc.RSVP(ctx, f.trainee.ID, b.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusPending {
		t.Fatalf("status after one RSVP = %s, want pending", got.Status)
	}

	got, err = f.svc.RSVP(ctx, f.trainer.ID, b.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusConfirmed {
		t.Fatalf("status after both RSVPs = %s, want confirmed", got.Status)
	}
	if f.pub.count(events.BookingConfirmed) != 1 {
		t.Errorf("booking.confirmed published %d times, want 1", f.pub.count(events.BookingConfirmed))
	}

	got, err = f.svc.RSVP(ctx, f.trainer.ID, b.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusPending {
		t.Errorf("status after withdrawal = %s, want pending", got.Status)
	}

	if len(f.notifier.sent) != 3 || f.notifier.sent[0].room != b.Room() {
		t.Errorf("notifications = %+v", f.notifier.sent)
	}
}

func TestRSVPRejectsOutsiders(t *testing.T) {
	f := newBookingFixture()
	b := f.create(t)

	_, err := f.svc.RSVP(context.Background(), primitive.NewObjectID(), b.ID, true)
	if !errors.Is(err, models.ErrNotParticipant) {
		t.Errorf("err = %v, want ErrNotParticipant", err)
	}
}

func TestRSVPRetriesOnVersionConflict(t *testing.T) {
	tests := []struct {
		name      string
		conflicts int
		wantErr   error
	}{
		{"one lost race", 1, nil},
		{"two lost races", 2, nil},
		{"gives up", maxConflictRetries, ErrConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newBookingFixture()
			b := f.create(t)
			f.store.conflicts = tt.conflicts

			got, err := f.svc.RSVP(context.Background(), f.trainee.ID, b.ID, true)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !got.TraineeRSVP {
				t.Error("RSVP was not applied")
			}
		})
	}
}

func TestCompleteBooking(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := f.create(t)

	if _, err := f.svc.Complete(ctx, f.trainee.ID, false, b.ID); !errors.Is(err, models.ErrInvalidTransition) {
		t.Fatalf("complete pending: err = %v, want ErrInvalidTransition", err)
	}

	f.svc.RSVP(ctx, f.trainee.ID, b.ID, true)
	f.svc.RSVP(ctx, f.trainer.ID, b.ID, true)

	if _, err := f.svc.Complete(ctx, primitive.NewObjectID(), false, b.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("outsider complete: err = %v, want ErrForbidden", err)
	}

	got, err := f.svc.Complete(ctx, primitive.NewObjectID(), true, b.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != models.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
	if f.pub.count(events.BookingCompleted) != 1 {
		t.Error("booking.completed not published")
	}
}

func TestAutoCompleteDue(t *testing.T) {
	f := newBookingFixture()
	ctx := context.Background()
	b := f.create(t)
	f.svc.RSVP(ctx, f.trainee.ID, b.ID, true)
	f.svc.RSVP(ctx, f.trainer.ID, b.ID, true)

	// termina a las +25h; con 1h de gracia se cierra desde +26h
	f.clock.advance(25*time.Hour + 30*time.Minute)
	done, _, err := f.svc.AutoCompleteDue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if done != 0 {
		t.Fatalf("completed %d bookings inside the grace period", done)
	}

	f.clock.advance(time.Hour)
	done, conflicts, err := f.svc.AutoCompleteDue(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if done != 1 || conflicts != 0 {
		t.Fatalf("completed=%d conflicts=%d, want 1 0", done, conflicts)
	}

	got, _ := f.store.FindByID(ctx, b.ID)
	if got.Status != models.BookingStatusCompleted {
		t.Errorf("status = %s, want completed", got.Status)
	}
}
