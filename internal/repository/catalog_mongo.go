package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/az9589317-spec/artghar/internal/domain"
)

type mongoCatalogRepository struct {
	products *mongo.Collection
	artists  *mongo.Collection
	slides   *mongo.Collection
	social   *mongo.Collection
}

func NewMongoCatalogRepository(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepository{
		products: db.Collection(productsCollection),
		artists:  db.Collection(artistsCollection),
		slides:   db.Collection(slidesCollection),
		social:   db.Collection(socialCollection),
	}
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

// products

func (m *mongoCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return listAll[domain.Product](ctx, m.products, bson.M{}, bson.D{{Key: "created_at", Value: -1}})
}

func (m *mongoCatalogRepository) ListProductsByArtist(ctx context.Context, artistID string) ([]domain.Product, error) {
	return listAll[domain.Product](ctx, m.products, bson.M{"artist_id": artistID}, bson.D{{Key: "created_at", Value: -1}})
}

func (m *mongoCatalogRepository) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var p domain.Product
	if err := m.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &p, nil
}

func (m *mongoCatalogRepository) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	if err := m.products.FindOne(ctx, bson.M{"slug": slug}).Decode(&p); err != nil {
		return nil, notFoundOr(err, "product")
	}
	return &p, nil
}

func (m *mongoCatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) error {
	stampNew(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if _, err := m.products.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (m *mongoCatalogRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	p.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"slug":        p.Slug,
		"description": p.Description,
		"price":       p.Price,
		"artist_id":   p.ArtistID,
		"category":    p.Category,
		"image_url":   p.ImageURL,
		"updated_at":  p.UpdatedAt,
	}}
	return m.updateByID(ctx, m.products, p.ID, update, "product")
}

func (m *mongoCatalogRepository) DeleteProduct(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.products, id, "product")
}

// artists

func (m *mongoCatalogRepository) ListArtists(ctx context.Context) ([]domain.Artist, error) {
	return listAll[domain.Artist](ctx, m.artists, bson.M{}, bson.D{{Key: "name", Value: 1}})
}

func (m *mongoCatalogRepository) GetArtist(ctx context.Context, id string) (*domain.Artist, error) {
	var a domain.Artist
	if err := m.artists.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, notFoundOr(err, "artist")
	}
	return &a, nil
}

func (m *mongoCatalogRepository) CreateArtist(ctx context.Context, a *domain.Artist) error {
	stampNew(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if _, err := m.artists.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create artist: %w", err)
	}
	return nil
}

func (m *mongoCatalogRepository) UpdateArtist(ctx context.Context, a *domain.Artist) error {
	a.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"name":       a.Name,
		"bio":        a.Bio,
		"avatar_url": a.AvatarURL,
		"updated_at": a.UpdatedAt,
	}}
	return m.updateByID(ctx, m.artists, a.ID, update, "artist")
}

func (m *mongoCatalogRepository) DeleteArtist(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.artists, id, "artist")
}

// slides

func (m *mongoCatalogRepository) ListSlides(ctx context.Context) ([]domain.Slide, error) {
	return listAll[domain.Slide](ctx, m.slides, bson.M{}, bson.D{{Key: "position", Value: 1}})
}

func (m *mongoCatalogRepository) CreateSlide(ctx context.Context, s *domain.Slide) error {
	stampNew(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if _, err := m.slides.InsertOne(ctx, s); err != nil {
		return fmt.Errorf("failed to create slide: %w", err)
	}
	return nil
}

func (m *mongoCatalogRepository) UpdateSlide(ctx context.Context, s *domain.Slide) error {
	s.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"position":   s.Position,
		"image_url":  s.ImageURL,
		"heading":    s.Heading,
		"subheading": s.Subheading,
		"updated_at": s.UpdatedAt,
	}}
	return m.updateByID(ctx, m.slides, s.ID, update, "slide")
}

func (m *mongoCatalogRepository) DeleteSlide(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.slides, id, "slide")
}

// social links

func (m *mongoCatalogRepository) ListSocialLinks(ctx context.Context) ([]domain.SocialLink, error) {
	return listAll[domain.SocialLink](ctx, m.social, bson.M{}, bson.D{{Key: "platform", Value: 1}})
}

func (m *mongoCatalogRepository) CreateSocialLink(ctx context.Context, l *domain.SocialLink) error {
	stampNew(&l.ID, &l.CreatedAt, &l.UpdatedAt)
	if _, err := m.social.InsertOne(ctx, l); err != nil {
		return fmt.Errorf("failed to create social link: %w", err)
	}
	return nil
}

func (m *mongoCatalogRepository) UpdateSocialLink(ctx context.Context, l *domain.SocialLink) error {
	l.UpdatedAt = time.Now()
	update := bson.M{"$set": bson.M{
		"platform":   l.Platform,
		"url":        l.URL,
		"updated_at": l.UpdatedAt,
	}}
	return m.updateByID(ctx, m.social, l.ID, update, "social link")
}

func (m *mongoCatalogRepository) DeleteSocialLink(ctx context.Context, id string) error {
	return m.deleteByID(ctx, m.social, id, "social link")
}

// helpers

func stampNew(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	*createdAt = now
	*updatedAt = now
}

func listAll[T any](ctx context.Context, c *mongo.Collection, filter bson.M, sort bson.D) ([]T, error) {
	cursor, err := c.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.Name(), err)
	}
	defer cursor.Close(ctx)

	var out []T
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.Name(), err)
	}
	return out, nil
}

func (m *mongoCatalogRepository) updateByID(ctx context.Context, c *mongo.Collection, id string, update bson.M, what string) error {
	result, err := c.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", what, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) deleteByID(ctx context.Context, c *mongo.Collection, id string, what string) error {
	result, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
