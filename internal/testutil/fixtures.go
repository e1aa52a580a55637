package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreatePerson creates a test person with the given name and email.
func (f *Fixtures) CreatePerson(ctx context.Context, name, email string) models.Person {
	f.t.Helper()

	now := time.Now().UTC()
	p := models.Person{
		ID:        primitive.NewObjectID(),
		Name:      name,
		NameCI:    text.Fold(name),
		Status:    models.PersonActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if email != "" {
		p.Email = email
		p.EmailCI = text.Fold(email)
	}

	if _, err := f.db.Collection("people").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("failed to create test person: %v", err)
	}
	return p
}

// CreateInactivePerson creates a test person with inactive status.
func (f *Fixtures) CreateInactivePerson(ctx context.Context, name, email string) models.Person {
	f.t.Helper()

	p := f.CreatePerson(ctx, name, email)
	_, err := f.db.Collection("people").UpdateOne(ctx,
		bson.M{"_id": p.ID},
		bson.M{"$set": bson.M{"status": models.PersonInactive}},
	)
	if err != nil {
		f.t.Fatalf("failed to deactivate test person: %v", err)
	}
	p.Status = models.PersonInactive
	return p
}

// CreateDepartment creates a test department with the given name.
func (f *Fixtures) CreateDepartment(ctx context.Context, name string) models.Department {
	f.t.Helper()

	now := time.Now().UTC()
	d := models.Department{
		ID:        primitive.NewObjectID(),
		Slug:      models.DepartmentSlug(name),
		Name:      name,
		NameCI:    text.Fold(name),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("departments").InsertOne(ctx, d); err != nil {
		f.t.Fatalf("failed to create test department: %v", err)
	}
	return d
}

// CreateAssignment creates a test assignment binding a person to a role
// in a department, optionally under a parent assignment.
func (f *Fixtures) CreateAssignment(ctx context.Context, deptID, personID primitive.ObjectID, role models.Role, reportsTo *primitive.ObjectID) models.Assignment {
	f.t.Helper()

	a := models.Assignment{
		ID:           primitive.NewObjectID(),
		DepartmentID: deptID,
		PersonID:     personID,
		Role:         role,
		ReportsTo:    reportsTo,
		Tags:         []string{},
		Status:       models.AssignmentActive,
		CreatedAt:    time.Now().UTC(),
	}

	if _, err := f.db.Collection("assignments").InsertOne(ctx, a); err != nil {
		f.t.Fatalf("failed to create test assignment: %v", err)
	}
	return a
}

// CreateLocation creates a test map pin on the given floor level.
func (f *Fixtures) CreateLocation(ctx context.Context, name, level string, lat, lng float64) models.Location {
	f.t.Helper()

	now := time.Now().UTC()
	l := models.Location{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Lat:       lat,
		Lng:       lng,
		Level:     level,
		Status:    models.LocationActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := f.db.Collection("locations").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test location: %v", err)
	}
	return l
}

// CreateLevel creates a test floor level with a plan image.
func (f *Fixtures) CreateLevel(ctx context.Context, name, imageURL string) models.Level {
	f.t.Helper()

	l := models.Level{
		ID:        primitive.NewObjectID(),
		Name:      name,
		ImageURL:  imageURL,
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := f.db.Collection("levels").InsertOne(ctx, l); err != nil {
		f.t.Fatalf("failed to create test level: %v", err)
	}
	return l
}
