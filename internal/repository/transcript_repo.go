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

// TranscriptRepository guarda la metadata de los transcripts archivados en MinIO.
type TranscriptRepository struct {
	col *mongo.Collection
}

func NewTranscriptRepository() *TranscriptRepository {
	return &TranscriptRepository{
		col: db.DB().Collection("transcripts"),
	}
}

func (r *TranscriptRepository) Insert(ctx context.Context, a *models.TranscriptArchive) error {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *TranscriptRepository) FindByUser(ctx context.Context, userID primitive.ObjectID, limit int) ([]models.TranscriptArchive, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID}, pageOpts(limit, 0, "createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TranscriptArchive
	for cur.Next(ctx) {
		var a models.TranscriptArchive
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}
