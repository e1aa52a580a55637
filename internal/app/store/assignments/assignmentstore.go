// internal/app/store/assignments/assignmentstore.go
package assignmentstore

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
	// ErrNotFound is returned when an assignment id does not resolve to
	// an active record.
	ErrNotFound = errors.New("assignment not found")

	// ErrValidation is returned when a create call carries a missing or
	// malformed person/department reference or an unrecognized role.
	ErrValidation = errors.New("invalid assignment")

	// ErrNotConfigured is returned by writes when the store was built
	// without a database. Reads treat the same condition as an empty
	// result: a missing backing store is a deployment concern, not a
	// query failure.
	ErrNotConfigured = errors.New("assignment store not configured")
)

// Store is the persistence boundary for assignment records. It is
// order-agnostic: role-sequencing rules live in the hierarchy service,
// not here.
type Store struct {
	c *mongo.Collection
}

// New builds a Store over the assignments collection. A nil database is
// tolerated; see ErrNotConfigured.
func New(db *mongo.Database) *Store {
	if db == nil {
		return &Store{}
	}
	return &Store{c: db.Collection("assignments")}
}

// Filter narrows List results. Department and Person are ANDed when
// both are set.
type Filter struct {
	DepartmentID *primitive.ObjectID
	PersonID     *primitive.ObjectID
}

// FilterFromHex builds a Filter from externally supplied identifier
// strings. Malformed identifiers are deliberately treated as "no
// filter" rather than surfaced as query errors, so callers never see
// store-native id syntax problems.
func FilterFromHex(departmentID, personID string) Filter {
	var f Filter
	if oid, err := primitive.ObjectIDFromHex(departmentID); err == nil {
		f.DepartmentID = &oid
	}
	if oid, err := primitive.ObjectIDFromHex(personID); err == nil {
		f.PersonID = &oid
	}
	return f
}

// List returns active assignments matching the filter, in the store's
// natural return order. Archived records are always excluded. An
// unconfigured store lists empty.
func (s *Store) List(ctx context.Context, f Filter) ([]models.Assignment, error) {
	if s.c == nil {
		return nil, nil
	}

	q := bson.M{"status": models.AssignmentActive}
	if f.DepartmentID != nil {
		q["department_id"] = *f.DepartmentID
	}
	if f.PersonID != nil {
		q["person_id"] = *f.PersonID
	}

	cur, err := s.c.Find(ctx, q)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Assignment
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID returns a single active assignment.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error) {
	if s.c == nil {
		return models.Assignment{}, ErrNotConfigured
	}
	var a models.Assignment
	err := s.c.FindOne(ctx, bson.M{"_id": id, "status": models.AssignmentActive}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return models.Assignment{}, ErrNotFound
	}
	if err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// Create persists one new assignment. References and role are shape-
// checked here; sequencing rules are not.
func (s *Store) Create(ctx context.Context, a models.Assignment) (models.Assignment, error) {
	if s.c == nil {
		return models.Assignment{}, ErrNotConfigured
	}
	if a.PersonID.IsZero() {
		return models.Assignment{}, fmt.Errorf("%w: missing person reference", ErrValidation)
	}
	if a.DepartmentID.IsZero() {
		return models.Assignment{}, fmt.Errorf("%w: missing department reference", ErrValidation)
	}
	if _, ok := models.ParseRole(string(a.Role)); !ok {
		return models.Assignment{}, fmt.Errorf("%w: unrecognized role %q", ErrValidation, a.Role)
	}

	a.ID = primitive.NewObjectID()
	a.Status = models.AssignmentActive
	if a.Tags == nil {
		a.Tags = []string{}
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Assignment{}, err
	}
	return a, nil
}

// Archive soft-deletes an assignment. The record stays in the
// collection but is excluded from all future List results. There is no
// unarchive.
func (s *Store) Archive(ctx context.Context, id primitive.ObjectID) error {
	if s.c == nil {
		return ErrNotConfigured
	}
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "status": models.AssignmentActive},
		bson.M{"$set": bson.M{"status": models.AssignmentArchived}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// EnsureIndexes creates the indexes the list paths depend on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	if s.c == nil {
		return nil
	}
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "department_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_assignments_department"),
		},
		{
			Keys:    bson.D{{Key: "person_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_assignments_person"),
		},
		{
			Keys:    bson.D{{Key: "reports_to", Value: 1}},
			Options: options.Index().SetName("idx_assignments_reports_to"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}
