// internal/domain/models/department.go
package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Department is a named organizational unit. The engine treats
// departments as immutable: they are fetched as a flat list and
// referenced by assignments via the store-native _id.
//
// Slug is the stable human-friendly identifier used in routes. It comes
// from the explicit Code field when one is set, otherwise it is derived
// from the name.
type Department struct {
	ID          primitive.ObjectID `bson:"_id" json:"storeId"`
	Slug        string             `bson:"slug" json:"id"`
	Code        string             `bson:"code,omitempty" json:"code,omitempty"`
	Name        string             `bson:"name" json:"name"`
	NameCI      string             `bson:"name_ci" json:"-"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"-"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"-"`
}

// DepartmentSlug derives a routing slug from a department code or name:
// lowercased, runs of non-alphanumerics collapsed to single hyphens.
func DepartmentSlug(codeOrName string) string {
	var b strings.Builder
	lastHyphen := true // suppress leading hyphen
	for _, r := range strings.ToLower(codeOrName) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
