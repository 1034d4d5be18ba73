package grid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

// ErrDuplicateRow indicates a row with the same normalized key already exists.
var ErrDuplicateRow = errors.New("row already exists")

// ErrDuplicateColumn indicates a column with the same label already exists.
var ErrDuplicateColumn = errors.New("column already exists")

// ErrMaxColumnsExceeded indicates the table shape does not allow another column.
var ErrMaxColumnsExceeded = errors.New("maximum number of columns reached")

// ErrEmptyLabel indicates a blank row or column label.
var ErrEmptyLabel = errors.New("label is empty")

// EditError represents a rejected structural edit. The table is unchanged.
type EditError struct {
	Shape models.TableShape
	Op    string // "add_row", "add_column"
	Key   string
	Err   error
}

func (e *EditError) Error() string {
	return fmt.Sprintf("%s %s %q: %v", e.Shape, e.Op, e.Key, e.Err)
}

func (e *EditError) Unwrap() error {
	return e.Err
}

func newEditError(shape models.TableShape, op, key string, err error) *EditError {
	return &EditError{
		Shape: shape,
		Op:    op,
		Key:   key,
		Err:   err,
	}
}
