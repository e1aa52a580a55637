// internal/app/store/departments/departmentstore.go
package departmentstore

import (
	"context"
	"errors"
	"time"

	"github.com/arenaops/venuehub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("department not found")
	ErrDuplicateSlug = errors.New("a department with this name already exists")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("departments")}
}

// List returns all departments sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Department, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Department
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Department, error) {
	var d models.Department
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return models.Department{}, ErrNotFound
	}
	if err != nil {
		return models.Department{}, err
	}
	return d, nil
}

func (s *Store) GetBySlug(ctx context.Context, slug string) (models.Department, error) {
	var d models.Department
	err := s.c.FindOne(ctx, bson.M{"slug": slug}).Decode(&d)
	if err == mongo.ErrNoDocuments {
		return models.Department{}, ErrNotFound
	}
	if err != nil {
		return models.Department{}, err
	}
	return d, nil
}

// Create inserts a department. The slug is derived from the code when
// one is set, otherwise from the name.
func (s *Store) Create(ctx context.Context, d models.Department) (models.Department, error) {
	now := time.Now().UTC()
	d.ID = primitive.NewObjectID()
	d.NameCI = text.Fold(d.Name)
	if d.Slug == "" {
		if d.Code != "" {
			d.Slug = models.DepartmentSlug(d.Code)
		} else {
			d.Slug = models.DepartmentSlug(d.Name)
		}
	}
	d.CreatedAt = now
	d.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Department{}, ErrDuplicateSlug
		}
		return models.Department{}, err
	}
	return d, nil
}

func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetName("idx_departments_slug").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_departments_name"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
