package repository

import (
	"context"
	"log"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// granularidad de las reservas de agenda de un trainer
const slotSize = 15 * time.Minute

type BookingRepository struct {
	col   *mongo.Collection
	slots *mongo.Collection
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		col:   db.DB().Collection("bookings"),
		slots: db.DB().Collection("booking_slots"),
	}
}

// bookingSlot ocupa un cuarto de hora de la agenda del trainer. El índice
// único (trainerId, start) hace que dos reservas solapadas no puedan convivir.
type bookingSlot struct {
	TrainerID primitive.ObjectID `bson:"trainerId"`
	Start     time.Time          `bson:"start"`
	BookingID primitive.ObjectID `bson:"bookingId"`
}

// slotStarts cubre [from, to) redondeando hacia afuera a la grilla de 15 minutos.
func slotStarts(from, to time.Time) []time.Time {
	var out []time.Time
	for t := from.UTC().Truncate(slotSize); t.Before(to); t = t.Add(slotSize) {
		out = append(out, t)
	}
	return out
}

// Insert reserva los slots del trainer y después guarda el booking. Si algún
// slot ya está tomado devuelve ErrDuplicateKey sin dejar nada escrito.
func (r *BookingRepository) Insert(ctx context.Context, b *models.Booking) error {
	starts := slotStarts(b.ScheduledAt, b.EndsAt)
	docs := make([]any, 0, len(starts))
	for _, st := range starts {
		docs = append(docs, bookingSlot{TrainerID: b.TrainerID, Start: st, BookingID: b.ID})
	}

	if _, err := r.slots.InsertMany(ctx, docs); err != nil {
		r.releaseSlots(ctx, b.ID)
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateKey
		}
		return err
	}

	if err := insertOne(ctx, r.col, b); err != nil {
		r.releaseSlots(ctx, b.ID)
		return err
	}
	return nil
}

func (r *BookingRepository) releaseSlots(ctx context.Context, bookingID primitive.ObjectID) {
	if _, err := r.slots.DeleteMany(ctx, bson.M{"bookingId": bookingID}); err != nil {
		log.Printf("[bookings] error liberando slots de %s: %v", bookingID.Hex(), err)
	}
}

func (r *BookingRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	var b models.Booking
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// Update reemplaza el booking con control de versión optimista.
func (r *BookingRepository) Update(ctx context.Context, b *models.Booking) error {
	prev := b.Version
	b.Version++
	if err := replaceVersioned(ctx, r.col, b.ID, prev, b); err != nil {
		b.Version = prev
		return err
	}
	// una sesión completada ya no ocupa la agenda
	if b.Status == models.BookingStatusCompleted {
		r.releaseSlots(ctx, b.ID)
	}
	return nil
}

// FindByUser lista los bookings donde el usuario es trainee o trainer.
func (r *BookingRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	status string,
	limit, offset int,
) ([]models.Booking, error) {

	filter := bson.M{"$or": bson.A{
		bson.M{"traineeId": userID},
		bson.M{"trainerId": userID},
	}}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(limit, offset, "scheduledAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Booking
	for cur.Next(ctx) {
		var b models.Booking
		if err := cur.Decode(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, cur.Err()
}

// TrainerBusy: ¿el trainer ya tiene una sesión abierta que se solapa con [from, to)?
func (r *BookingRepository) TrainerBusy(ctx context.Context, trainerID primitive.ObjectID, from, to time.Time) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{
		"trainerId":   trainerID,
		"status":      bson.M{"$ne": models.BookingStatusCompleted},
		"scheduledAt": bson.M{"$lt": to},
		"endsAt":      bson.M{"$gt": from},
	}, options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FindConfirmedEndedBefore devuelve sesiones confirmadas que terminaron antes de t.
func (r *BookingRepository) FindConfirmedEndedBefore(ctx context.Context, t time.Time, limit int64) ([]models.Booking, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "endsAt", Value: 1}})

	cur, err := r.col.Find(ctx, bson.M{
		"status": models.BookingStatusConfirmed,
		"endsAt": bson.M{"$lte": t},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Booking
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, r.col)
}
