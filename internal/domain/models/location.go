// internal/domain/models/location.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Location statuses.
const (
	LocationActive   = "active"
	LocationArchived = "archived"
)

// Location is a pinned point on the venue floor plan. The map widget
// and its coordinate system live in the frontend; the backend only
// stores what it is told.
type Location struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Lat       float64            `bson:"lat" json:"lat"`
	Lng       float64            `bson:"lng" json:"lng"`
	Color     string             `bson:"color,omitempty" json:"color,omitempty"`
	Level     string             `bson:"level,omitempty" json:"level,omitempty"`
	Category  string             `bson:"category,omitempty" json:"category,omitempty"`
	Status    string             `bson:"status" json:"-"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}
