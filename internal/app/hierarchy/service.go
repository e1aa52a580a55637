// internal/app/hierarchy/service.go

// Package hierarchy is the assignment hierarchy engine: it validates
// proposed assignments against the role reporting order and assembles
// a department's org chart from the flat assignment records. It owns
// no state of its own; every read rebuilds the forest from the store.
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	assignmentstore "github.com/arenaops/venuehub/internal/app/store/assignments"
	"github.com/arenaops/venuehub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// AssignmentSource is the persistence boundary the engine reads and
// writes assignments through.
type AssignmentSource interface {
	List(ctx context.Context, f assignmentstore.Filter) ([]models.Assignment, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Assignment, error)
	Create(ctx context.Context, a models.Assignment) (models.Assignment, error)
	Archive(ctx context.Context, id primitive.ObjectID) error
}

// PersonDirectory supplies the person records the builder resolves
// assignment nodes against. The engine does not own person data.
type PersonDirectory interface {
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]models.Person, error)
}

// Service validates and applies assignment mutations and serves the
// department forest read path.
type Service struct {
	assignments AssignmentSource
	people      PersonDirectory
	logger      *zap.Logger
}

func New(assignments AssignmentSource, people PersonDirectory, logger *zap.Logger) *Service {
	return &Service{assignments: assignments, people: people, logger: logger}
}

// Proposal is a request to create one assignment. A nil ReportsTo
// proposes a department-level root.
type Proposal struct {
	DepartmentID primitive.ObjectID
	PersonID     primitive.ObjectID
	Role         models.Role
	ReportsTo    *primitive.ObjectID
}

// ProposeAssignment validates p against the role sequencing rules and
// persists it. Validation errors are never retried upstream; an
// invalid proposal cannot succeed on a second attempt.
//
// The duplicate-overseer check is read-before-write: two concurrent
// proposals can both pass it and both persist. The store offers no
// transaction to close that race and the engine does not pretend to.
func (s *Service) ProposeAssignment(ctx context.Context, p Proposal) (models.Assignment, error) {
	if p.PersonID.IsZero() {
		return models.Assignment{}, fmt.Errorf("%w: missing person reference", ErrValidation)
	}
	if p.DepartmentID.IsZero() {
		return models.Assignment{}, fmt.Errorf("%w: missing department reference", ErrValidation)
	}
	role, ok := models.ParseRole(string(p.Role))
	if !ok {
		return models.Assignment{}, fmt.Errorf("%w: unrecognized role %q", ErrValidation, p.Role)
	}

	if p.ReportsTo == nil {
		if !role.CanRoot() {
			return models.Assignment{}, fmt.Errorf("%w: %s", ErrInvalidRootRole, role)
		}
		if role == models.RoleDepartmentOverseer {
			if err := s.checkNoOverseer(ctx, p.DepartmentID); err != nil {
				return models.Assignment{}, err
			}
		}
	} else {
		parent, err := s.assignments.GetByID(ctx, *p.ReportsTo)
		if errors.Is(err, assignmentstore.ErrNotFound) {
			return models.Assignment{}, fmt.Errorf("%w: %s", ErrParentNotFound, p.ReportsTo.Hex())
		}
		if err != nil {
			return models.Assignment{}, storeErr(err)
		}
		if parent.DepartmentID != p.DepartmentID {
			return models.Assignment{}, fmt.Errorf("%w: %s", ErrParentNotFound, p.ReportsTo.Hex())
		}
		if want := parent.Role.Next(); role != want {
			return models.Assignment{}, fmt.Errorf("%w: %s reports take role %s, got %s",
				ErrRoleSequence, parent.Role, want, role)
		}
	}

	created, err := s.assignments.Create(ctx, models.Assignment{
		DepartmentID: p.DepartmentID,
		PersonID:     p.PersonID,
		Role:         role,
		ReportsTo:    p.ReportsTo,
	})
	if errors.Is(err, assignmentstore.ErrValidation) {
		return models.Assignment{}, fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if err != nil {
		return models.Assignment{}, storeErr(err)
	}

	s.logger.Info("assignment created",
		zap.String("assignment_id", created.ID.Hex()),
		zap.String("department_id", created.DepartmentID.Hex()),
		zap.String("role", string(created.Role)))

	return created, nil
}

func (s *Service) checkNoOverseer(ctx context.Context, departmentID primitive.ObjectID) error {
	existing, err := s.assignments.List(ctx, assignmentstore.Filter{DepartmentID: &departmentID})
	if err != nil {
		return storeErr(err)
	}
	for _, a := range existing {
		if a.Role == models.RoleDepartmentOverseer {
			return fmt.Errorf("%w: department %s", ErrDuplicateOverseer, departmentID.Hex())
		}
	}
	return nil
}

// Archive soft-deletes one assignment. The record disappears from all
// subsequent lists and forest builds; there is no unarchive.
func (s *Service) Archive(ctx context.Context, id primitive.ObjectID) error {
	err := s.assignments.Archive(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, assignmentstore.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, id.Hex())
	case errors.Is(err, assignmentstore.ErrNotConfigured):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return storeErr(err)
	}
}

// DepartmentForest is the assembled org chart for one department. The
// Department Overseer is the single top slot, held apart from the
// Assistant-Overseer-rooted trees.
type DepartmentForest struct {
	Overseer *Tree   `json:"overseer,omitempty"`
	Roots    []*Tree `json:"roots"`
}

// Forest reads the department's active assignments, resolves their
// people in one batch, and assembles the org chart. Integrity problems
// in the data (unresolvable people, reports-to cycles) degrade the
// forest and are logged, never surfaced as a caller error.
func (s *Service) Forest(ctx context.Context, departmentID primitive.ObjectID) (DepartmentForest, error) {
	all, err := s.assignments.List(ctx, assignmentstore.Filter{DepartmentID: &departmentID})
	if err != nil {
		return DepartmentForest{}, storeErr(err)
	}

	personIDs := make([]primitive.ObjectID, 0, len(all))
	seen := make(map[primitive.ObjectID]struct{}, len(all))
	for _, a := range all {
		if _, ok := seen[a.PersonID]; ok {
			continue
		}
		seen[a.PersonID] = struct{}{}
		personIDs = append(personIDs, a.PersonID)
	}
	people, err := s.people.GetByIDs(ctx, personIDs)
	if err != nil {
		return DepartmentForest{}, storeErr(err)
	}

	var overseer *Tree
	rest := make([]models.Assignment, 0, len(all))
	for _, a := range all {
		if a.Role != models.RoleDepartmentOverseer {
			rest = append(rest, a)
			continue
		}
		if overseer != nil {
			// Two overseers means the duplicate race fired; keep the
			// first and log the rest.
			s.logger.Warn("duplicate department overseer",
				zap.String("department_id", departmentID.Hex()),
				zap.String("assignment_id", a.ID.Hex()))
			continue
		}
		if p, ok := people[a.PersonID]; ok {
			overseer = &Tree{Assignment: a, Person: p, Children: []*Tree{}}
		}
	}

	roots, stats := BuildForest(rest, people)
	if !stats.Clean() {
		s.logger.Warn("hierarchy built with integrity problems",
			zap.String("department_id", departmentID.Hex()),
			zap.Int("dropped_persons", stats.DroppedPersons),
			zap.Int("truncated", stats.Truncated),
			zap.Int("cycle_members", stats.Unreachable))
	}

	return DepartmentForest{Overseer: overseer, Roots: roots}, nil
}
