package repository

import (
	"context"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type TutorApplicationRepository struct {
	col *mongo.Collection
}

func NewTutorApplicationRepository() *TutorApplicationRepository {
	return &TutorApplicationRepository{
		col: db.DB().Collection("tutor_applications"),
	}
}

func (r *TutorApplicationRepository) Insert(ctx context.Context, app *models.TutorApplication) error {
	return insertOne(ctx, r.col, app)
}

func (r *TutorApplicationRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.TutorApplication, error) {
	var app models.TutorApplication
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// FindPendingByUser: la solicitud abierta del usuario, si tiene una.
func (r *TutorApplicationRepository) FindPendingByUser(ctx context.Context, userID primitive.ObjectID) (*models.TutorApplication, error) {
	var app models.TutorApplication
	err := r.col.FindOne(ctx, bson.M{
		"userId": userID,
		"status": models.TutorApplicationPending,
	}).Decode(&app)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateIfPending cambia el estado solo si la solicitud sigue pending.
// Devuelve false si otro admin la resolvió antes.
func (r *TutorApplicationRepository) UpdateIfPending(ctx context.Context, app *models.TutorApplication) (bool, error) {
	res, err := r.col.ReplaceOne(ctx, bson.M{
		"_id":    app.ID,
		"status": models.TutorApplicationPending,
	}, app)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *TutorApplicationRepository) FindByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	status string,
	limit, offset int,
) ([]models.TutorApplication, error) {

	filter := bson.M{"userId": userID}
	if status != "" && status != "all" {
		filter["status"] = status
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *TutorApplicationRepository) FindAll(
	ctx context.Context,
	status string,
	limit, offset int,
) ([]models.TutorApplication, error) {

	filter := bson.M{}
	if status != "" && status != "all" {
		filter["status"] = status
	}
	return r.find(ctx, filter, limit, offset)
}

func (r *TutorApplicationRepository) find(ctx context.Context, filter bson.M, limit, offset int) ([]models.TutorApplication, error) {
	cur, err := r.col.Find(ctx, filter, pageOpts(limit, offset, "createdAt"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TutorApplication
	for cur.Next(ctx) {
		var app models.TutorApplication
		if err := cur.Decode(&app); err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, cur.Err()
}
