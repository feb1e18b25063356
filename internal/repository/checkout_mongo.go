package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/az9589317-spec/artghar/internal/domain"
)

type mongoCheckoutRepository struct {
	collection *mongo.Collection
}

func NewMongoCheckoutRepository(db *mongo.Database) CheckoutRepository {
	return &mongoCheckoutRepository{
		collection: db.Collection(sessionsCollection),
	}
}

func (m *mongoCheckoutRepository) Create(ctx context.Context, session *domain.CheckoutSession) error {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	if _, err := m.collection.InsertOne(ctx, session); err != nil {
		return fmt.Errorf("failed to create checkout session: %w", err)
	}
	return nil
}

func (m *mongoCheckoutRepository) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session: %w", err)
	}

	return &session, nil
}

func (m *mongoCheckoutRepository) GetByIdempotencyKey(ctx context.Context, buyerID, key string) (*domain.CheckoutSession, error) {
	var session domain.CheckoutSession

	filter := bson.M{"buyer_id": buyerID, "idempotency_key": key}
	err := m.collection.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get checkout session by idempotency key: %w", err)
	}

	return &session, nil
}

// guardedUpdate applies update to the session only while it is still in the
// expected status, so two racing requests cannot both advance it.
func (m *mongoCheckoutRepository) guardedUpdate(ctx context.Context, id string, expected domain.CheckoutStatus, update bson.M) error {
	filter := bson.M{"_id": id, "status": expected}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update checkout session: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing session from a state race.
		if n, countErr := m.collection.CountDocuments(ctx, bson.M{"_id": id}); countErr == nil && n == 0 {
			return ErrSessionNotFound
		}
		return ErrStateConflict
	}
	return nil
}

func (m *mongoCheckoutRepository) SetAwaitingPayment(ctx context.Context, id, gatewayOrderID string) error {
	return m.guardedUpdate(ctx, id, domain.CheckoutStatusInitiated, bson.M{
		"$set": bson.M{
			"status":           domain.CheckoutStatusAwaitingPayment,
			"gateway_order_id": gatewayOrderID,
			"updated_at":       time.Now(),
		},
	})
}

func (m *mongoCheckoutRepository) SetPaymentVerified(ctx context.Context, id, paymentID string, shipping *domain.ShippingAddress) error {
	return m.guardedUpdate(ctx, id, domain.CheckoutStatusAwaitingPayment, bson.M{
		"$set": bson.M{
			"status":     domain.CheckoutStatusPaymentVerified,
			"payment_id": paymentID,
			"shipping":   shipping,
			"updated_at": time.Now(),
		},
	})
}

func (m *mongoCheckoutRepository) Complete(ctx context.Context, id, orderID string) error {
	return m.guardedUpdate(ctx, id, domain.CheckoutStatusPaymentVerified, bson.M{
		"$set": bson.M{
			"status":     domain.CheckoutStatusCompleted,
			"order_id":   orderID,
			"updated_at": time.Now(),
		},
	})
}

func (m *mongoCheckoutRepository) MarkFailed(ctx context.Context, id, reason string) error {
	filter := bson.M{
		"_id": id,
		"status": bson.M{"$in": []domain.CheckoutStatus{
			domain.CheckoutStatusInitiated,
			domain.CheckoutStatusAwaitingPayment,
		}},
	}
	update := bson.M{
		"$set": bson.M{
			"status":         domain.CheckoutStatusFailed,
			"failure_reason": reason,
			"updated_at":     time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark checkout session failed: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrStateConflict
	}
	return nil
}

func (m *mongoCheckoutRepository) MarkCancelled(ctx context.Context, id string) error {
	return m.guardedUpdate(ctx, id, domain.CheckoutStatusAwaitingPayment, bson.M{
		"$set": bson.M{
			"status":     domain.CheckoutStatusCancelled,
			"updated_at": time.Now(),
		},
	})
}

func (m *mongoCheckoutRepository) FindStuck(ctx context.Context, olderThan time.Duration, limit int) ([]*domain.CheckoutSession, error) {
	filter := bson.M{
		"status":     domain.CheckoutStatusPaymentVerified,
		"updated_at": bson.M{"$lt": time.Now().Add(-olderThan)},
	}

	cursor, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find stuck sessions: %w", err)
	}
	defer cursor.Close(ctx)

	var sessions []*domain.CheckoutSession
	for cursor.Next(ctx) {
		var s domain.CheckoutSession
		if err := cursor.Decode(&s); err != nil {
			return nil, fmt.Errorf("failed to decode stuck session: %w", err)
		}
		sessions = append(sessions, &s)
		if limit > 0 && len(sessions) >= limit {
			break
		}
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed iterating stuck sessions: %w", err)
	}

	return sessions, nil
}
