// Package direrr defines the error taxonomy every driftdb component
// surfaces failures through (see spec §7). Each kind is a distinct Go
// type so callers can errors.As to the concrete type when they need
// structured detail (an issue list, a wrapped cause), and every type
// satisfies Kind() string so callers that only care about the category
// can switch on that instead of a type assertion.
package direrr

import "fmt"

// Issue is a single validation complaint: a path into the rejected
// value and a human-readable message.
type Issue struct {
	Path    string
	Message string
}

// NotFoundError reports that a document or storage path was missing
// where the operation required it to exist.
type NotFoundError struct {
	Category string // "document" or "path"
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Category, e.ID)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *NotFoundError) Kind() string { return "NotFound" }

// NotFound constructs a NotFoundError.
func NotFound(category, id string) error {
	return &NotFoundError{Category: category, ID: id}
}

// AlreadyExistsError reports that Insert targeted an id already
// present in the collection.
type AlreadyExistsError struct {
	ID string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("document already exists: %s", e.ID)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *AlreadyExistsError) Kind() string { return "AlreadyExists" }

// AlreadyExists constructs an AlreadyExistsError.
func AlreadyExists(id string) error {
	return &AlreadyExistsError{ID: id}
}

// InvalidPathError reports that a storage path violated the
// normalization rules in spec §4.5.
type InvalidPathError struct {
	Path   string
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path %q: %s", e.Path, e.Reason)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *InvalidPathError) Kind() string { return "InvalidPath" }

// InvalidPath constructs an InvalidPathError.
func InvalidPath(path, reason string) error {
	return &InvalidPathError{Path: path, Reason: reason}
}

// InvalidDataError reports that a candidate value failed schema
// validation. Issues are surfaced verbatim from the Validator, per
// spec §4.5.
type InvalidDataError struct {
	Issues []Issue
}

func (e *InvalidDataError) Error() string {
	if len(e.Issues) == 0 {
		return "invalid data"
	}
	return fmt.Sprintf("invalid data: %s: %s", e.Issues[0].Path, e.Issues[0].Message)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *InvalidDataError) Kind() string { return "InvalidData" }

// InvalidData constructs an InvalidDataError.
func InvalidData(issues []Issue) error {
	return &InvalidDataError{Issues: issues}
}

// InvalidContentError reports that stored content failed to parse or
// did not conform to the expected document shape.
type InvalidContentError struct {
	Path   string
	Reason string
}

func (e *InvalidContentError) Error() string {
	return fmt.Sprintf("invalid content at %q: %s", e.Path, e.Reason)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *InvalidContentError) Kind() string { return "InvalidContent" }

// InvalidContent constructs an InvalidContentError.
func InvalidContent(path, reason string) error {
	return &InvalidContentError{Path: path, Reason: reason}
}

// ClockRegressionError is a soft warning: an observed timestamp looked
// implausible (far ahead or behind local time). It is resolved by the
// normal HLC observe-then-tick machinery and is never fatal; callers
// may log it and continue.
type ClockRegressionError struct {
	Detail string
}

func (e *ClockRegressionError) Error() string {
	return fmt.Sprintf("clock regression: %s", e.Detail)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *ClockRegressionError) Kind() string { return "ClockRegression" }

// ClockRegression constructs a ClockRegressionError.
func ClockRegression(detail string) error {
	return &ClockRegressionError{Detail: detail}
}

// StorageError wraps an underlying adapter failure.
type StorageError struct {
	Op    string
	Cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Cause)
}

func (e *StorageError) Unwrap() error { return e.Cause }

// Kind identifies the error taxonomy entry this type implements.
func (e *StorageError) Kind() string { return "StorageFailure" }

// StorageFailure constructs a StorageError.
func StorageFailure(op string, cause error) error {
	return &StorageError{Op: op, Cause: cause}
}

// AsyncValidationError reports that a Validator returned a future
// instead of validating synchronously; the core rejects these
// outright (spec §4.5).
type AsyncValidationError struct {
	Schema string
}

func (e *AsyncValidationError) Error() string {
	return fmt.Sprintf("validator for schema %q returned asynchronously, which the core does not support", e.Schema)
}

// Kind identifies the error taxonomy entry this type implements.
func (e *AsyncValidationError) Kind() string { return "AsyncValidation" }

// AsyncValidation constructs an AsyncValidationError.
func AsyncValidation(schema string) error {
	return &AsyncValidationError{Schema: schema}
}
