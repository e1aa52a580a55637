// internal/domain/models/level.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultFloorImage is served for levels with no uploaded floor plan.
const DefaultFloorImage = "/static/arena-floor.png"

// Level is one floor of the venue with its floor-plan image.
type Level struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	ImageURL  string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}
