package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrVersionConflict: otro request modificó el documento entre el read y el write.
	ErrVersionConflict = errors.New("document was modified concurrently")
	ErrDuplicateKey    = errors.New("duplicate key")
)

// replaceVersioned reemplaza el documento solo si la versión guardada sigue
// siendo `version`. El caller ya incrementó la versión dentro de `doc`.
func replaceVersioned(ctx context.Context, col *mongo.Collection, id primitive.ObjectID, version int64, doc any) error {
	res, err := col.ReplaceOne(ctx, bson.M{"_id": id, "version": version}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrVersionConflict
	}
	return nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc any) error {
	_, err := col.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateKey
	}
	return err
}

func pageOpts(limit, offset int, sortKey string) *options.FindOptions {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: sortKey, Value: -1}})
}

// countByStatus agrupa la colección por `status`.
func countByStatus(ctx context.Context, col *mongo.Collection) (map[string]int64, error) {
	pipeline := bson.A{
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cur, err := col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := map[string]int64{}
	for cur.Next(ctx) {
		var doc struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out[doc.Status] = doc.Count
	}
	return out, cur.Err()
}
