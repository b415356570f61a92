package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios
var (
	// Graph errors
	ErrNodeNotFound      = errors.New("node not found")
	ErrAnswerNotFound    = errors.New("answer not found")
	ErrDuplicateNode     = errors.New("duplicate node id")
	ErrUnsupportedFormat = errors.New("unsupported question bank format")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExists   = errors.New("session already exists")
	ErrInvalidEvent    = errors.New("invalid session event")

	// Database errors
	ErrDatabaseConnection = errors.New("database connection failed")
	ErrDatabaseQuery      = errors.New("database query failed")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)

// DatabaseError represents a database operation error with context
type DatabaseError struct {
	Op    string // Operation that failed (e.g., "insert", "update", "query")
	Table string // Table involved
	Err   error  // Underlying error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database %s operation on %s: %v", e.Op, e.Table, e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// NewDatabaseError creates a new database error
func NewDatabaseError(op, table string, err error) error {
	return &DatabaseError{
		Op:    op,
		Table: table,
		Err:   err,
	}
}

// LoadError reports a question bank file that could not be decoded
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading question bank %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation failed for %s (value: %v): %s",
			e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// IsNotFound checks if error indicates a missing resource
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound) ||
		errors.Is(err, ErrAnswerNotFound) ||
		errors.Is(err, ErrSessionNotFound)
}

// WrapWithContext adds context to an error
func WrapWithContext(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
