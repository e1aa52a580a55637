// internal/app/store/levels/levelstore.go
package levelstore

import (
	"context"
	"errors"
	"time"

	"github.com/arenaops/venuehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("level not found")

// Store persists floor levels and their plan images. Levels are keyed
// by name ("100", "200", "Arena Floor") rather than ObjectID because
// pins reference them by name.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("levels")}
}

// List returns all floor levels sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Level, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Level
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ImageFor returns the plan image URL for a level, falling back to the
// default floor image when the level has none configured.
func (s *Store) ImageFor(ctx context.Context, name string) (string, error) {
	var l models.Level
	err := s.c.FindOne(ctx, bson.M{"name": name}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return models.DefaultFloorImage, nil
	}
	if err != nil {
		return "", err
	}
	if l.ImageURL == "" {
		return models.DefaultFloorImage, nil
	}
	return l.ImageURL, nil
}

// UpsertImage sets the plan image for a level, creating the level
// record if it does not exist yet.
func (s *Store) UpsertImage(ctx context.Context, name, imageURL string) (models.Level, error) {
	var l models.Level
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{
			"image_url":  imageURL,
			"updated_at": time.Now().UTC(),
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&l)
	if err != nil {
		return models.Level{}, err
	}
	return l, nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetName("idx_levels_name").SetUnique(true),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
