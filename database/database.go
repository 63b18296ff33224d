// database/database.go
package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/swet3114/CampusAssets/config"
)

var Client *mongo.Client

func Connect() error {
	clientOptions := options.Client().
		ApplyURI(config.MongoURI).
		SetConnectTimeout(20 * time.Second).
		SetServerSelectionTimeout(15 * time.Second).
		SetMaxPoolSize(50)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	Client, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to create MongoDB client: %w", err)
	}

	ctxPing, cancelPing := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelPing()

	if err = Client.Ping(ctxPing, readpref.Primary()); err != nil {
		_ = Client.Disconnect(context.Background())
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Println("Connected to MongoDB")
	return nil
}

func Disconnect() {
	if Client == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
}

// EnsureIndexes bootstraps the unique indexes the allocators rely on.
// Idempotent; safe to run on every start. Without these the optimistic
// read-then-insert allocation has no correctness backstop at all.
func EnsureIndexes(ctx context.Context) error {
	db := Client.Database(config.DBName)

	userIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "emp_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("Users").Indexes().CreateMany(ctx, userIdx); err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	assetIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "serial_no", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "registration_number", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := db.Collection("Assets").Indexes().CreateMany(ctx, assetIdx); err != nil {
		return fmt.Errorf("assets indexes: %w", err)
	}

	qrIdx := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "qr_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "serial_no", Value: 1}, {Key: "institute", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "institute", Value: 1}, {Key: "department", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}
	if _, err := db.Collection("QrRegistry").Indexes().CreateMany(ctx, qrIdx); err != nil {
		return fmt.Errorf("qr indexes: %w", err)
	}

	return nil
}
