package db

import (
	"context"
	"log"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/config"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoClient *mongo.Client
var mongoDB *mongo.Database

func InitMongo(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("[mongo] error conectando: %v", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("[mongo] ping falló: %v", err)
	}

	mongoClient = client
	mongoDB = client.Database(cfg.MongoDB)
	log.Printf("[mongo] conectado, DB=%s\n", cfg.MongoDB)
}

func DB() *mongo.Database {
	return mongoDB
}

func Disconnect(ctx context.Context) error {
	if mongoClient == nil {
		return nil
	}
	return mongoClient.Disconnect(ctx)
}

func asc(keys ...string) bson.D {
	d := bson.D{}
	for _, k := range keys {
		d = append(d, bson.E{Key: k, Value: 1})
	}
	return d
}

// EnsureIndexes crea los índices que el dominio necesita (idempotente).
func EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: asc("email"), Options: unique},
			{Keys: asc("username"), Options: unique},
			{Keys: asc("userType")},
		},
		"bookings": {
			{Keys: asc("trainerId", "scheduledAt")},
			{Keys: asc("traineeId", "scheduledAt")},
			{Keys: asc("status", "endsAt")},
		},
		"booking_slots": {
			{Keys: asc("trainerId", "start"), Options: unique},
			{Keys: asc("bookingId")},
		},
		"writing_matches": {
			{Keys: asc("status", "expiresAt")},
			{Keys: asc("initiatorId")},
			{Keys: asc("opponentId")},
		},
		"image_matches": {
			{Keys: asc("status", "expiresAt")},
			{Keys: asc("initiatorId")},
			{Keys: asc("opponentId")},
		},
		"histories": {
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		"donations": {
			{Keys: asc("reference"), Options: unique},
		},
		"tutor_applications": {
			{Keys: asc("userId", "status")},
			// una sola solicitud abierta por usuario
			{Keys: asc("userId"), Options: options.Index().
				SetName("userId_pending_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": models.TutorApplicationPending})},
		},
		"transcripts": {
			{Keys: asc("userId")},
		},
	}

	for coll, idx := range indexes {
		if _, err := DB().Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
	}
	log.Println("[mongo] índices verificados")
	return nil
}
