// internal/app/hierarchy/errors.go
package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrStoreUnavailable means the backing store could not be reached.
	// It is surfaced as-is; the source of truth being down is never
	// swallowed.
	ErrStoreUnavailable = errors.New("assignment store unreachable")

	// ErrStoreQuery means the store rejected the query itself.
	ErrStoreQuery = errors.New("assignment store rejected the query")

	// ErrValidation covers malformed references or unrecognized roles.
	ErrValidation = errors.New("invalid assignment request")

	// ErrNotFound means the assignment id does not resolve to an active
	// record.
	ErrNotFound = errors.New("assignment not found")

	// ErrInvalidRootRole means a parentless assignment was proposed for
	// a role that may not root a department.
	ErrInvalidRootRole = errors.New("role may not be assigned without a parent")

	// ErrRoleSequence means the proposed role does not follow the
	// parent's role in the reporting order.
	ErrRoleSequence = errors.New("role does not follow the reporting order")

	// ErrParentNotFound means the parent assignment does not resolve
	// within the same department.
	ErrParentNotFound = errors.New("parent assignment not found in department")

	// ErrDuplicateOverseer means the department already has an active
	// Department Overseer.
	ErrDuplicateOverseer = errors.New("department already has an overseer")
)

// storeErr classifies a raw driver error: connectivity problems become
// ErrStoreUnavailable, everything else ErrStoreQuery. Callers map the
// store package's own sentinels before reaching here.
func storeErr(err error) error {
	switch {
	case mongo.IsNetworkError(err),
		mongo.IsTimeout(err),
		errors.Is(err, mongo.ErrClientDisconnected),
		errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("%w: %v", ErrStoreQuery, err)
	}
}
