// internal/app/features/departments/handler_test.go
package departments_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/arenaops/venuehub/internal/app/features/departments"
	uierrors "github.com/arenaops/venuehub/internal/app/features/errors"
	"github.com/arenaops/venuehub/internal/app/hierarchy"
	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	departmentstore "github.com/arenaops/venuehub/internal/app/store/departments"
	peoplestore "github.com/arenaops/venuehub/internal/app/store/people"
	"github.com/arenaops/venuehub/internal/domain/models"
	"github.com/arenaops/venuehub/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newHandler(db *mongo.Database) *departments.Handler {
	logger := zap.NewNop()
	engine := hierarchy.New(assignmentstore.New(db), peoplestore.New(db), logger)
	return departments.NewHandler(departmentstore.New(db), engine, uierrors.NewErrorLogger(logger), logger)
}

func TestServeList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	fx.CreateDepartment(ctx, "Security")
	fx.CreateDepartment(ctx, "Attendants")

	req := testutil.NewRequest(http.MethodGet, "/api/departments")
	rec := testutil.NewRecorder()
	h.ServeList(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var views []struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &views); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("got %d departments, want 2", len(views))
	}
	if views[0].Name != "Attendants" || views[0].ID != "attendants" {
		t.Errorf("first department: got %+v", views[0])
	}
}

// forestResponse mirrors the hierarchy JSON the endpoint returns.
type forestResponse struct {
	Overseer *struct {
		Person struct {
			Name string `json:"name"`
		} `json:"person"`
	} `json:"overseer"`
	Roots []struct {
		Assignment struct {
			Role string `json:"role"`
		} `json:"assignment"`
		Person struct {
			Name string `json:"name"`
		} `json:"person"`
		Children []json.RawMessage `json:"children"`
	} `json:"roots"`
}

func TestServeHierarchy_EndToEnd(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	fx := testutil.NewFixtures(t, db)
	h := newHandler(db)

	dept := fx.CreateDepartment(ctx, "Security")
	overseer := fx.CreatePerson(ctx, "Olive Overseer", "")
	assistant := fx.CreatePerson(ctx, "Andy Assistant", "")
	keyman := fx.CreatePerson(ctx, "Kim Keyman", "")

	fx.CreateAssignment(ctx, dept.ID, overseer.ID, models.RoleDepartmentOverseer, nil)
	aa := fx.CreateAssignment(ctx, dept.ID, assistant.ID, models.RoleAssistantOverseer, nil)
	fx.CreateAssignment(ctx, dept.ID, keyman.ID, models.RoleKeyman, &aa.ID)

	// The path identifier accepts both the slug and the hex id.
	for _, ref := range []string{dept.Slug, dept.ID.Hex()} {
		req := testutil.WithChiURLParam(
			testutil.NewRequest(http.MethodGet, "/api/departments/"+ref+"/hierarchy"),
			"departmentID", ref)
		rec := testutil.NewRecorder()
		h.ServeHierarchy(rec, req)

		rec.AssertStatus(t, http.StatusOK)

		var forest forestResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &forest); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if forest.Overseer == nil || forest.Overseer.Person.Name != "Olive Overseer" {
			t.Errorf("ref %q: overseer not held apart: %+v", ref, forest.Overseer)
		}
		if len(forest.Roots) != 1 {
			t.Fatalf("ref %q: got %d roots, want 1", ref, len(forest.Roots))
		}
		if forest.Roots[0].Person.Name != "Andy Assistant" {
			t.Errorf("ref %q: root person: got %q", ref, forest.Roots[0].Person.Name)
		}
		if len(forest.Roots[0].Children) != 1 {
			t.Errorf("ref %q: got %d children under assistant, want 1", ref, len(forest.Roots[0].Children))
		}
	}
}

func TestServeHierarchy_UnknownDepartment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	h := newHandler(db)

	req := testutil.WithChiURLParam(
		testutil.NewRequest(http.MethodGet, "/api/departments/nope/hierarchy"),
		"departmentID", "nope")
	rec := testutil.NewRecorder()
	h.ServeHierarchy(rec, req)

	rec.AssertStatus(t, http.StatusNotFound)
}
