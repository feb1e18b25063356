package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	cartsCollection    = "carts"
	sessionsCollection = "checkout_sessions"
	ordersCollection   = "orders"
	outboxCollection   = "outbox_events"
	productsCollection = "products"
	artistsCollection  = "artists"
	slidesCollection   = "slides"
	socialCollection   = "social_links"
)

func ConnectMongoDB(ctx context.Context, uri, database string) (*mongo.Database, error) {
	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client.Database(database), nil
}

// EnsureIndexes creates the indexes the storefront relies on. The unique index
// on payment_details.gateway_order_id is what makes order recording
// idempotent; it is not an optimization.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	carts := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "buyer_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(90 * 24 * 60 * 60), // 90 days TTL
		},
	}
	if _, err := db.Collection(cartsCollection).Indexes().CreateMany(ctx, carts); err != nil {
		return fmt.Errorf("failed to create cart indexes: %w", err)
	}

	orders := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "payment_details.gateway_order_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "created_at", Value: -1}},
		},
	}
	if _, err := db.Collection(ordersCollection).Indexes().CreateMany(ctx, orders); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}

	sessions := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "updated_at", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "buyer_id", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).
				SetPartialFilterExpression(bson.D{{Key: "idempotency_key", Value: bson.D{{Key: "$exists", Value: true}}}}),
		},
	}
	if _, err := db.Collection(sessionsCollection).Indexes().CreateMany(ctx, sessions); err != nil {
		return fmt.Errorf("failed to create session indexes: %w", err)
	}

	outbox := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "processed", Value: 1}, {Key: "created_at", Value: 1}},
		},
	}
	if _, err := db.Collection(outboxCollection).Indexes().CreateMany(ctx, outbox); err != nil {
		return fmt.Errorf("failed to create outbox indexes: %w", err)
	}

	products := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "artist_id", Value: 1}},
		},
	}
	if _, err := db.Collection(productsCollection).Indexes().CreateMany(ctx, products); err != nil {
		return fmt.Errorf("failed to create product indexes: %w", err)
	}

	return nil
}
