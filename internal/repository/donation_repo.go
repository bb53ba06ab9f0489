package repository

import (
	"context"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type DonationRepository struct {
	col *mongo.Collection
}

func NewDonationRepository() *DonationRepository {
	return &DonationRepository{col: db.DB().Collection("donations")}
}

func (r *DonationRepository) Insert(ctx context.Context, d *models.Donation) error {
	return insertOne(ctx, r.col, d)
}

func (r *DonationRepository) FindByReference(ctx context.Context, ref string) (*models.Donation, error) {
	var d models.Donation
	err := r.col.FindOne(ctx, bson.M{"reference": ref}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// MarkCaptured pasa pending -> captured de forma atómica.
// false = ya estaba capturada (o no existe).
func (r *DonationRepository) MarkCaptured(ctx context.Context, ref string, at time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"reference": ref, "status": models.DonationPending},
		bson.M{"$set": bson.M{"status": models.DonationCaptured, "capturedAt": at}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

func (r *DonationRepository) List(ctx context.Context, status string, limit, offset int) ([]models.Donation, error) {
	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(limit, offset, "createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Donation
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Totals suma lo capturado por moneda.
func (r *DonationRepository) Totals(ctx context.Context) ([]models.DonationTotal, error) {
	pipeline := bson.A{
		bson.D{{Key: "$match", Value: bson.D{{Key: "status", Value: models.DonationCaptured}}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$currency"},
			{Key: "amountCents", Value: bson.D{{Key: "$sum", Value: "$amountCents"}}},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.DonationTotal
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}
