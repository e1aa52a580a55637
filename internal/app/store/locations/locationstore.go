// internal/app/store/locations/locationstore.go
package locationstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arenaops/venuehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound   = errors.New("location not found")
	ErrValidation = errors.New("invalid location")
)

// Store persists map pins. Coordinates are percentages of the floor
// image, not geographic, so no geospatial indexing is involved.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("locations")}
}

// List returns active pins, optionally restricted to one floor level.
func (s *Store) List(ctx context.Context, level string) ([]models.Location, error) {
	q := bson.M{"status": models.LocationActive}
	if level != "" {
		q["level"] = level
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Location
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Location, error) {
	var l models.Location
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": models.LocationActive}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		return models.Location{}, err
	}
	return l, nil
}

// Create inserts a new pin. Name and level are required; coordinates
// must fall inside the image.
func (s *Store) Create(ctx context.Context, l models.Location) (models.Location, error) {
	if l.Name == "" {
		return models.Location{}, fmt.Errorf("%w: missing name", ErrValidation)
	}
	if l.Level == "" {
		return models.Location{}, fmt.Errorf("%w: missing level", ErrValidation)
	}
	if !coordsInRange(l.Lat, l.Lng) {
		return models.Location{}, fmt.Errorf("%w: coordinates out of range", ErrValidation)
	}

	now := time.Now().UTC()
	l.ID = primitive.NewObjectID()
	l.Status = models.LocationActive
	l.CreatedAt = now
	l.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.Location{}, err
	}
	return l, nil
}

// Move updates a pin's coordinates, typically after a drag on the map.
func (s *Store) Move(ctx context.Context, id primitive.ObjectID, lat, lng float64) error {
	if !coordsInRange(lat, lng) {
		return ErrValidation
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.LocationActive},
		bson.M{"$set": bson.M{
			"lat":        lat,
			"lng":        lng,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Patch applies a partial update to a pin's descriptive fields. Only
// non-nil fields are written.
type Patch struct {
	Name     *string
	Color    *string
	Level    *string
	Category *string
}

func (s *Store) Update(ctx context.Context, id primitive.ObjectID, p Patch) (models.Location, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if p.Name != nil {
		if *p.Name == "" {
			return models.Location{}, fmt.Errorf("%w: missing name", ErrValidation)
		}
		set["name"] = *p.Name
	}
	if p.Color != nil {
		set["color"] = *p.Color
	}
	if p.Level != nil {
		set["level"] = *p.Level
	}
	if p.Category != nil {
		set["category"] = *p.Category
	}

	var l models.Location
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": id, "status": models.LocationActive},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return models.Location{}, ErrNotFound
	}
	if err != nil {
		return models.Location{}, err
	}
	return l, nil
}

// Archive soft-deletes a pin.
func (s *Store) Archive(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.LocationActive},
		bson.M{"$set": bson.M{
			"status":     models.LocationArchived,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "level", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_locations_level"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// coordsInRange checks the percentage coordinate bounds.
func coordsInRange(lat, lng float64) bool {
	return lat >= 0 && lat <= 100 && lng >= 0 && lng <= 100
}
