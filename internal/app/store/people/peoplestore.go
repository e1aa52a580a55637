// internal/app/store/people/peoplestore.go
package peoplestore

import (
	"context"
	"errors"
	"regexp"
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
	ErrNotFound       = errors.New("person not found")
	ErrDuplicateEmail = errors.New("a person with this email already exists")
)

// Store is the people provider: the engine consumes it only to build
// the person-lookup map for the hierarchy builder and for login lookup.
type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("people")}
}

// Create inserts a new person. Name is required; Status defaults to
// Active, matching the original intake form.
func (s *Store) Create(ctx context.Context, p models.Person) (models.Person, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.NameCI = text.Fold(p.Name)
	if p.Email != "" {
		p.EmailCI = text.Fold(p.Email)
	}
	if p.Status == "" {
		p.Status = models.PersonActive
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Person{}, ErrDuplicateEmail
		}
		return models.Person{}, err
	}
	return p, nil
}

// GetByID loads one person.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Person, error) {
	var p models.Person
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Person{}, ErrNotFound
	}
	if err != nil {
		return models.Person{}, err
	}
	return p, nil
}

// GetByIDs loads multiple people in one round trip. This is the batch
// lookup the hierarchy read path uses to build its person map, instead
// of fetching the whole collection and filtering in memory.
func (s *Store) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Person, error) {
	out := make(map[primitive.ObjectID]models.Person, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	cur, err := s.c.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var p models.Person
		if err := cur.Decode(&p); err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, cur.Err()
}

// GetByEmail looks a person up by folded email. Used by the login flow.
func (s *Store) GetByEmail(ctx context.Context, email string) (models.Person, error) {
	var p models.Person
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(email)}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return models.Person{}, ErrNotFound
	}
	if err != nil {
		return models.Person{}, err
	}
	return p, nil
}

// Search returns people whose folded name contains the folded search
// term, or everyone when the term is empty.
func (s *Store) Search(ctx context.Context, term string) ([]models.Person, error) {
	q := bson.M{}
	if term != "" {
		q["name_ci"] = bson.M{"$regex": regexp.QuoteMeta(text.Fold(term))}
	}
	cur, err := s.c.Find(ctx, q, options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	var out []models.Person
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EnsureIndexes creates the people indexes. The email index is unique
// and sparse: not every person has an email.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetName("idx_people_name"),
		},
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetName("idx_people_email").SetUnique(true).SetSparse(true),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
