// internal/domain/models/assignment.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Assignment statuses. There is no hard delete: archiving flips the
// status and the record drops out of every subsequent list.
const (
	AssignmentActive   = "active"
	AssignmentArchived = "archived"
)

// Assignment binds one person to one role within one department,
// optionally nested under a parent assignment via ReportsTo.
//
// Invariants (enforced by the hierarchy service, not the store):
//   - ReportsTo, when set, references an existing assignment in the
//     same department.
//   - At most one Department Overseer assignment per department.
type Assignment struct {
	ID           primitive.ObjectID  `bson:"_id" json:"id"`
	DepartmentID primitive.ObjectID  `bson:"department_id" json:"departmentId"`
	PersonID     primitive.ObjectID  `bson:"person_id" json:"personId"`
	Role         Role                `bson:"role" json:"role"`
	ReportsTo    *primitive.ObjectID `bson:"reports_to,omitempty" json:"reportsTo,omitempty"`
	Tags         []string            `bson:"tags" json:"tags"` // reserved; currently always empty
	Status       string              `bson:"status" json:"-"`
	CreatedAt    time.Time           `bson:"created_at" json:"-"`
}
