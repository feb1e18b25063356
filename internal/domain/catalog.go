package domain

import "time"

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Slug        string    `bson:"slug" json:"slug"`
	Description string    `bson:"description" json:"description"`
	Price       Paise     `bson:"price" json:"price"`
	ArtistID    string    `bson:"artist_id" json:"artist_id"`
	Category    string    `bson:"category" json:"category"`
	ImageURL    string    `bson:"image_url,omitempty" json:"image_url,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type Artist struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Bio       string    `bson:"bio" json:"bio"`
	AvatarURL string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Slide is one entry of the homepage hero slider, ordered by Position.
type Slide struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Position   int       `bson:"position" json:"position"`
	ImageURL   string    `bson:"image_url" json:"image_url"`
	Heading    string    `bson:"heading" json:"heading"`
	Subheading string    `bson:"subheading,omitempty" json:"subheading,omitempty"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updated_at"`
}

type SocialLink struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Platform  string    `bson:"platform" json:"platform"`
	URL       string    `bson:"url" json:"url"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
