package sizegrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/sizegrid-go/pkg/sizegrid/models"
)

// ErrReadOnly indicates a mutation or save on a view-only session.
var ErrReadOnly = errors.New("size chart is view only")

// ErrUnknownShape indicates a table shape outside the four chart tables.
var ErrUnknownShape = errors.New("unknown table shape")

// ErrFileNotFound indicates the input workbook does not exist.
var ErrFileNotFound = errors.New("file not found")

// ImportError represents an error while reading one table from a workbook.
type ImportError struct {
	SheetName string
	Shape     models.TableShape
	Err       error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import error in sheet %q (%s): %v", e.SheetName, e.Shape, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(sheetName string, shape models.TableShape, err error) *ImportError {
	return &ImportError{
		SheetName: sheetName,
		Shape:     shape,
		Err:       err,
	}
}
