package elastic

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an index or record does not exist.
var ErrNotFound = errors.New("elastic: not found")

// ValidationError reports an index whose schema is incompatible with the
// requested operation: a dimension or metric mismatch on create, or a
// mapping without a usable dense-vector field on describe.
type ValidationError struct {
	// Index is the offending index name.
	Index string

	// Detail describes the mismatch.
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("elastic: index %q: %s", e.Index, e.Detail)
}

// BulkItemError is one failed record inside a bulk write.
type BulkItemError struct {
	ID     string
	Reason string
}

// BulkError is returned when every record of a bulk write failed.
// Partially failed batches are not errors; the failed subset is logged
// and the succeeded ids are returned instead.
type BulkError struct {
	// Index is the target index.
	Index string

	// Failed is a capped sample of the failed records.
	Failed []BulkItemError
}

func (e *BulkError) Error() string {
	if len(e.Failed) == 0 {
		return fmt.Sprintf("elastic: bulk write to index %q failed", e.Index)
	}
	return fmt.Sprintf("elastic: bulk write to index %q failed entirely (first failure: id=%s reason=%s)",
		e.Index, e.Failed[0].ID, e.Failed[0].Reason)
}

// IsNotFoundError checks if the error is a missing index/record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if the error is a schema validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsBulkError checks if the error is an all-records-failed bulk error.
func IsBulkError(err error) bool {
	var be *BulkError
	return errors.As(err, &be)
}
