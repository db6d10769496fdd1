package chartly

import (
	"errors"
	"fmt"

	"github.com/ukaji3/chartly-go/pkg/chartly/dataset"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrNoValidData is returned when no row survives validation.
var ErrNoValidData = dataset.ErrNoValidData

// ImportError represents a failure while reading rows from a source.
type ImportError struct {
	Source string
	// Line is the number of lines consumed when reading stopped, or 0.
	Line int
	Err  error
}

func (e *ImportError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("import error in %q at line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("import error in %q: %v", e.Source, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(source string, line int, err error) *ImportError {
	return &ImportError{
		Source: source,
		Line:   line,
		Err:    err,
	}
}
