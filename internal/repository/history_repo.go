package repository

import (
	"context"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type HistoryRepository struct {
	col *mongo.Collection
}

func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{col: db.DB().Collection("histories")}
}

func (r *HistoryRepository) Insert(ctx context.Context, h *models.HistoryEntry) error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	if h.CreatedAt.IsZero() {
		h.CreatedAt = time.Now()
	}
	return insertOne(ctx, r.col, h)
}

// FindByUser: historial paginado, opcionalmente filtrado por testModelName.
func (r *HistoryRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	testModelName string,
	limit, offset int,
) ([]models.HistoryEntry, error) {

	filter := bson.M{"userId": userID}
	if testModelName != "" {
		filter["testModelName"] = testModelName
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(limit, offset, "createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.HistoryEntry
	for cur.Next(ctx) {
		var h models.HistoryEntry
		if err := cur.Decode(&h); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, cur.Err()
}

func (r *HistoryRepository) AllByUser(ctx context.Context, userID primitive.ObjectID) ([]models.HistoryEntry, error) {
	return r.FindByUser(ctx, userID, "", 10000, 0)
}
