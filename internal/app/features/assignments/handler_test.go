// internal/app/features/assignments/handler_test.go
package assignments_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/arenaops/venuehub/internal/app/features/assignments"
	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	"github.com/arenaops/venuehub/internal/app/hierarchy"
	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/arenaops/venuehub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *assignments.Handler {
	logger := zap.NewNop()
	store := assignmentstore.New(db)
	engine := hierarchy.New(store, peoplestore.New(db), logger)
	return assignments.NewHandler(store, engine, uierrors.NewErrorLogger(logger), logger)
}

func createBody(deptID, personID primitive.ObjectID, role string, reportsTo string) string {
	if reportsTo == "" {
		return fmt.Sprintf(`{"departmentId":%q,"personId":%q,"role":%q}`,
			deptID.Hex(), personID.Hex(), role)
	}
	return fmt.Sprintf(`{"departmentId":%q,"personId":%q,"role":%q,"reportsTo":%q}`,
		deptID.Hex(), personID.Hex(), role, reportsTo)
}

func TestHandleCreate_RootAndChild(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	assistant := fx.CreatePerson(ctx, "Andy Assistant", "")
	keyman := fx.CreatePerson(ctx, "Kim Keyman", "")

	// Assistant Overseer may root.
	req := testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		createBody(dept.ID, assistant.ID, "Assistant Overseer", ""))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}

	// Keyman under the assistant follows the sequence.
	req = testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		createBody(dept.ID, keyman.ID, "Keyman", created.ID))
	rec = testutil.NewRecorder()
	h.HandleCreate(rec, req)
	rec.AssertStatus(t, http.StatusCreated)
}

func TestHandleCreate_RoleSequenceViolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	assistant := fx.CreatePerson(ctx, "Andy Assistant", "")
	aa := fx.CreateAssignment(ctx, dept.ID, assistant.ID, models.RoleAssistantOverseer, nil)

	// Member directly under Assistant Overseer skips two tiers.
	member := fx.CreatePerson(ctx, "Manny Member", "")
	req := testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		createBody(dept.ID, member.ID, "Member", aa.ID.Hex()))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleCreate_InvalidRootRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	member := fx.CreatePerson(ctx, "Manny Member", "")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		createBody(dept.ID, member.ID, "Member", ""))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleCreate_DuplicateOverseer(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	first := fx.CreatePerson(ctx, "First Overseer", "")
	fx.CreateAssignment(ctx, dept.ID, first.ID, models.RoleDepartmentOverseer, nil)

	second := fx.CreatePerson(ctx, "Second Overseer", "")
	req := testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		createBody(dept.ID, second.ID, "Department Overseer", ""))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleCreate_ParentNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	keyman := fx.CreatePerson(ctx, "Kim Keyman", "")

	req := testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		createBody(dept.ID, keyman.ID, "Keyman", primitive.NewObjectID().Hex()))
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleCreate_BadReferences(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	req := testutil.NewJSONRequest(http.MethodPost, "/api/assignments",
		`{"departmentId":"not-hex","personId":"also-not-hex","role":"Keyman"}`)
	rec := testutil.NewRecorder()
	h.HandleCreate(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestServeList_FilterByDepartment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	deptA := fx.CreateDepartment(ctx, "Security")
	deptB := fx.CreateDepartment(ctx, "Parking")
	p := fx.CreatePerson(ctx, "Olive Overseer", "")
	fx.CreateAssignment(ctx, deptA.ID, p.ID, models.RoleDepartmentOverseer, nil)
	fx.CreateAssignment(ctx, deptB.ID, p.ID, models.RoleDepartmentOverseer, nil)

	req := testutil.NewRequest(http.MethodGet, "/api/assignments?departmentId="+deptA.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var views []struct {
		DepartmentID string `json:"departmentId"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("got %d assignments, want 1", len(views))
	}
	if views[0].DepartmentID != deptA.ID.Hex() {
		t.Errorf("departmentId: got %q, want %q", views[0].DepartmentID, deptA.ID.Hex())
	}
}

func TestHandleArchive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	p := fx.CreatePerson(ctx, "Olive Overseer", "")
	a := fx.CreateAssignment(ctx, dept.ID, p.ID, models.RoleDepartmentOverseer, nil)

	req := testutil.WithChiURLParam(
		testutil.NewRequest(http.MethodDelete, "/api/assignments/"+a.ID.Hex()),
		"assignmentID", a.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleArchive(rec, req)
	rec.AssertStatus(t, http.StatusNoContent)

	// Archiving the same record again reports not found.
	rec = testutil.NewRecorder()
	h.HandleArchive(rec, req)
	rec.AssertStatus(t, http.StatusNotFound)

	// Malformed id is a client error.
	bad := testutil.WithChiURLParam(
		testutil.NewRequest(http.MethodDelete, "/api/assignments/xyz"),
		"assignmentID", "xyz")
	rec = testutil.NewRecorder()
	h.HandleArchive(rec, bad)
	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestRoutes_MutationsRequireSignIn(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)
	router := assignments.Routes(h)

	req := testutil.NewJSONRequest(http.MethodPost, "/", `{}`)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	req = testutil.NewRequest(http.MethodDelete, "/"+primitive.NewObjectID().Hex())
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnauthorized)

	// Reads stay public.
	req = testutil.NewRequest(http.MethodGet, "/")
	rec = testutil.NewRecorder()
	router.ServeHTTP(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusOK)
}
