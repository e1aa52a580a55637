// internal/domain/models/person.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Person statuses.
const (
	PersonActive   = "Active"
	PersonInactive = "Inactive"
)

// Person is an identity record referenced by assignments. People are
// created and edited through the people feature; assignments reference
// them by _id and never duplicate their fields.
//
// NameCI and EmailCI hold case/diacritic-folded copies for search and
// login lookup.
type Person struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	NameCI    string             `bson:"name_ci" json:"-"`
	Email     string             `bson:"email,omitempty" json:"email,omitempty"`
	EmailCI   string             `bson:"email_ci,omitempty" json:"-"`
	Phone     string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Photo     string             `bson:"photo,omitempty" json:"photo,omitempty"`
	Status    string             `bson:"status" json:"status"`
	Notes     string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"-"`
	UpdatedAt time.Time          `bson:"updated_at" json:"-"`
}
