package hierarchy_test

import (
	"context"
	"errors"
	"testing"

	"github.com/arenaops/venuehub/internal/app/hierarchy"
	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	"github.com/arenaops/venuehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeAssignments is an in-memory stand-in for the assignment store.
// It mirrors the store's observable behavior: List returns active
// records only, GetByID resolves active records only, Archive flips
// status in place.
type fakeAssignments struct {
	records []models.Assignment
	listErr error
}

func (f *fakeAssignments) List(_ context.Context, filter assignmentstore.Filter) ([]models.Assignment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.Assignment
	for _, a := range f.records {
		if a.Status != models.AssignmentActive {
			continue
		}
		if filter.DepartmentID != nil && a.DepartmentID != *filter.DepartmentID {
			continue
		}
		if filter.PersonID != nil && a.PersonID != *filter.PersonID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeAssignments) GetByID(_ context.Context, id primitive.ObjectID) (models.Assignment, error) {
	for _, a := range f.records {
		if a.ID == id && a.Status == models.AssignmentActive {
			return a, nil
		}
	}
	return models.Assignment{}, assignmentstore.ErrNotFound
}

func (f *fakeAssignments) Create(_ context.Context, a models.Assignment) (models.Assignment, error) {
	a.ID = primitive.NewObjectID()
	a.Status = models.AssignmentActive
	f.records = append(f.records, a)
	return a, nil
}

func (f *fakeAssignments) Archive(_ context.Context, id primitive.ObjectID) error {
	for i, a := range f.records {
		if a.ID == id && a.Status == models.AssignmentActive {
			f.records[i].Status = models.AssignmentArchived
			return nil
		}
	}
	return assignmentstore.ErrNotFound
}

type fakePeople struct {
	byID map[primitive.ObjectID]models.Person
}

func (f *fakePeople) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Person, error) {
	out := make(map[primitive.ObjectID]models.Person, len(ids))
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func newTestService(records ...models.Assignment) (*hierarchy.Service, *fakeAssignments, *fakePeople) {
	assignments := &fakeAssignments{records: records}
	people := &fakePeople{byID: map[primitive.ObjectID]models.Person{}}
	for _, a := range records {
		people.byID[a.PersonID] = models.Person{ID: a.PersonID, Name: "Someone"}
	}
	svc := hierarchy.New(assignments, people, zap.NewNop())
	return svc, assignments, people
}

func activeAssignment(dept primitive.ObjectID, role models.Role, reportsTo *primitive.ObjectID) models.Assignment {
	return models.Assignment{
		ID:           primitive.NewObjectID(),
		DepartmentID: dept,
		PersonID:     primitive.NewObjectID(),
		Role:         role,
		ReportsTo:    reportsTo,
		Status:       models.AssignmentActive,
	}
}

func TestProposeAssignment_NextRoleUnderParent(t *testing.T) {
	dept := primitive.NewObjectID()
	keyman := activeAssignment(dept, models.RoleKeyman, nil)
	svc, _, _ := newTestService(keyman)

	created, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: dept,
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleCaptain,
		ReportsTo:    &keyman.ID,
	})
	if err != nil {
		t.Fatalf("ProposeAssignment(Captain under Keyman) failed: %v", err)
	}
	if created.Role != models.RoleCaptain {
		t.Errorf("created role = %q, want Captain", created.Role)
	}
	if created.ReportsTo == nil || *created.ReportsTo != keyman.ID {
		t.Error("created assignment does not report to the keyman")
	}
}

func TestProposeAssignment_RoleSequenceViolation(t *testing.T) {
	dept := primitive.NewObjectID()
	keyman := activeAssignment(dept, models.RoleKeyman, nil)
	svc, _, _ := newTestService(keyman)

	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: dept,
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleMember,
		ReportsTo:    &keyman.ID,
	})
	if !errors.Is(err, hierarchy.ErrRoleSequence) {
		t.Fatalf("err = %v, want ErrRoleSequence", err)
	}
}

func TestProposeAssignment_InvalidRootRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: primitive.NewObjectID(),
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleMember,
	})
	if !errors.Is(err, hierarchy.ErrInvalidRootRole) {
		t.Fatalf("err = %v, want ErrInvalidRootRole", err)
	}
}

func TestProposeAssignment_RootRolesAllowed(t *testing.T) {
	for _, role := range []models.Role{models.RoleDepartmentOverseer, models.RoleAssistantOverseer} {
		svc, _, _ := newTestService()
		_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
			DepartmentID: primitive.NewObjectID(),
			PersonID:     primitive.NewObjectID(),
			Role:         role,
		})
		if err != nil {
			t.Errorf("ProposeAssignment(root %s) failed: %v", role, err)
		}
	}
}

func TestProposeAssignment_DuplicateOverseer(t *testing.T) {
	dept := primitive.NewObjectID()
	existing := activeAssignment(dept, models.RoleDepartmentOverseer, nil)
	svc, _, _ := newTestService(existing)

	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: dept,
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleDepartmentOverseer,
	})
	if !errors.Is(err, hierarchy.ErrDuplicateOverseer) {
		t.Fatalf("err = %v, want ErrDuplicateOverseer", err)
	}
}

func TestProposeAssignment_OverseerInOtherDepartmentIsFine(t *testing.T) {
	other := activeAssignment(primitive.NewObjectID(), models.RoleDepartmentOverseer, nil)
	svc, _, _ := newTestService(other)

	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: primitive.NewObjectID(),
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleDepartmentOverseer,
	})
	if err != nil {
		t.Fatalf("overseer in another department should not block: %v", err)
	}
}

func TestProposeAssignment_ParentNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	ghost := primitive.NewObjectID()
	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: primitive.NewObjectID(),
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleKeyman,
		ReportsTo:    &ghost,
	})
	if !errors.Is(err, hierarchy.ErrParentNotFound) {
		t.Fatalf("err = %v, want ErrParentNotFound", err)
	}
}

func TestProposeAssignment_ParentInOtherDepartment(t *testing.T) {
	parent := activeAssignment(primitive.NewObjectID(), models.RoleAssistantOverseer, nil)
	svc, _, _ := newTestService(parent)

	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: primitive.NewObjectID(), // not the parent's department
		PersonID:     primitive.NewObjectID(),
		Role:         models.RoleKeyman,
		ReportsTo:    &parent.ID,
	})
	if !errors.Is(err, hierarchy.ErrParentNotFound) {
		t.Fatalf("err = %v, want ErrParentNotFound", err)
	}
}

func TestProposeAssignment_UnrecognizedRole(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.ProposeAssignment(context.Background(), hierarchy.Proposal{
		DepartmentID: primitive.NewObjectID(),
		PersonID:     primitive.NewObjectID(),
		Role:         models.Role("Supervisor"),
	})
	if !errors.Is(err, hierarchy.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestArchive_RemovesFromSubsequentForests(t *testing.T) {
	dept := primitive.NewObjectID()
	assistant := activeAssignment(dept, models.RoleAssistantOverseer, nil)
	keyman := activeAssignment(dept, models.RoleKeyman, &assistant.ID)
	svc, _, _ := newTestService(assistant, keyman)

	before, err := svc.Forest(context.Background(), dept)
	if err != nil {
		t.Fatalf("Forest failed: %v", err)
	}
	if len(before.Roots) != 1 || len(before.Roots[0].Children) != 1 {
		t.Fatal("expected the keyman present before archiving")
	}

	if err := svc.Archive(context.Background(), keyman.ID); err != nil {
		t.Fatalf("Archive failed: %v", err)
	}

	after, err := svc.Forest(context.Background(), dept)
	if err != nil {
		t.Fatalf("Forest after archive failed: %v", err)
	}
	if len(after.Roots) != 1 || len(after.Roots[0].Children) != 0 {
		t.Fatal("archived assignment still present in the forest")
	}
}

func TestArchive_NotFound(t *testing.T) {
	svc, _, _ := newTestService()

	err := svc.Archive(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, hierarchy.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestForest_OverseerHeldApart(t *testing.T) {
	dept := primitive.NewObjectID()
	overseer := activeAssignment(dept, models.RoleDepartmentOverseer, nil)
	assistant1 := activeAssignment(dept, models.RoleAssistantOverseer, nil)
	assistant2 := activeAssignment(dept, models.RoleAssistantOverseer, nil)
	keyman := activeAssignment(dept, models.RoleKeyman, &assistant1.ID)
	svc, _, _ := newTestService(overseer, assistant1, assistant2, keyman)

	forest, err := svc.Forest(context.Background(), dept)
	if err != nil {
		t.Fatalf("Forest failed: %v", err)
	}
	if forest.Overseer == nil || forest.Overseer.Assignment.ID != overseer.ID {
		t.Fatal("department overseer not held in the top slot")
	}
	if len(forest.Roots) != 2 {
		t.Fatalf("root count = %d, want 2 assistant overseers", len(forest.Roots))
	}
	if forest.Roots[0].Assignment.ID != assistant1.ID {
		t.Fatal("roots not in store order")
	}
	if len(forest.Roots[0].Children) != 1 || forest.Roots[0].Children[0].Assignment.ID != keyman.ID {
		t.Fatal("keyman not attached under the first assistant")
	}
}

func TestForest_StoreErrorSurfaced(t *testing.T) {
	assignments := &fakeAssignments{listErr: errors.New("command rejected")}
	svc := hierarchy.New(assignments, &fakePeople{byID: map[primitive.ObjectID]models.Person{}}, zap.NewNop())

	_, err := svc.Forest(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, hierarchy.ErrStoreQuery) {
		t.Fatalf("err = %v, want ErrStoreQuery", err)
	}
}

func TestForest_DeadlineSurfacedAsUnavailable(t *testing.T) {
	assignments := &fakeAssignments{listErr: context.DeadlineExceeded}
	svc := hierarchy.New(assignments, &fakePeople{byID: map[primitive.ObjectID]models.Person{}}, zap.NewNop())

	_, err := svc.Forest(context.Background(), primitive.NewObjectID())
	if !errors.Is(err, hierarchy.ErrStoreUnavailable) {
		t.Fatalf("err = %v, want ErrStoreUnavailable", err)
	}
}
