package repository

import (
	"context"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MatchRepository guarda un tipo de match (writing_matches o image_matches).
type MatchRepository struct {
	col *mongo.Collection
}

func NewMatchRepository(kind models.MatchKind) *MatchRepository {
	return &MatchRepository{col: db.DB().Collection(kind.Collection())}
}

func (r *MatchRepository) Insert(ctx context.Context, m *models.Match) error {
	return insertOne(ctx, r.col, m)
}

func (r *MatchRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Match, error) {
	var m models.Match
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Update: replace condicionado a la versión leída. Dos submits simultáneos
// del mismo jugador no pueden pisarse; el segundo recibe ErrVersionConflict.
func (r *MatchRepository) Update(ctx context.Context, m *models.Match) error {
	prev := m.Version
	m.Version++
	if err := replaceVersioned(ctx, r.col, m.ID, prev, m); err != nil {
		m.Version = prev
		return err
	}
	return nil
}

func (r *MatchRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	status string,
	limit, offset int,
) ([]models.Match, error) {

	filter := bson.M{"$or": bson.A{
		bson.M{"initiatorId": userID},
		bson.M{"opponentId": userID},
	}}
	if status != "" && status != "all" {
		filter["status"] = status
	}

	cur, err := r.col.Find(ctx, filter, pageOpts(limit, offset, "createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Match
	for cur.Next(ctx) {
		var m models.Match
		if err := cur.Decode(&m); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, cur.Err()
}

// FindExpired: pending o active con expiresAt <= now.
func (r *MatchRepository) FindExpired(ctx context.Context, now time.Time, limit int64) ([]models.Match, error) {
	opts := options.Find().
		SetLimit(limit).
		SetSort(bson.D{{Key: "expiresAt", Value: 1}})

	cur, err := r.col.Find(ctx, bson.M{
		"status":    bson.M{"$in": bson.A{models.MatchStatusPending, models.MatchStatusActive}},
		"expiresAt": bson.M{"$lte": now},
	}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Match
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MatchRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	return countByStatus(ctx, r.col)
}
