package repository

import (
	"context"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ExamRepository lee un banco de preguntas (una colección por tipo de examen).
type ExamRepository struct {
	kind models.ExamKind
	col  *mongo.Collection
}

func NewExamRepository(kind models.ExamKind) *ExamRepository {
	return &ExamRepository{kind: kind, col: db.DB().Collection(kind.Collection())}
}

func (r *ExamRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Exam, error) {
	var e models.Exam
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Kind = r.kind
	return &e, nil
}

func (r *ExamRepository) List(ctx context.Context, level string, limit, offset int) ([]models.Exam, error) {
	filter := bson.M{}
	if level != "" {
		filter["level"] = level
	}

	opts := pageOpts(limit, offset, "createdAt").
		SetSort(bson.D{{Key: "level", Value: 1}, {Key: "title", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Exam
	for cur.Next(ctx) {
		var e models.Exam
		if err := cur.Decode(&e); err != nil {
			return nil, err
		}
		e.Kind = r.kind
		out = append(out, e)
	}
	return out, cur.Err()
}

func (r *ExamRepository) Insert(ctx context.Context, e *models.Exam) error {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	e.Kind = r.kind
	return insertOne(ctx, r.col, e)
}
