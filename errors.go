// analyzer is the SQL semantic analyzer: it converts compiler parse trees
// into typed, resolved, validated AnalyzedQuery values. DDL statements are
// executed by the ddl package, which reuses these error kinds. This file
// defines the
// typed error kinds spec.md §7 calls out, each carrying a stack trace from
// the point it's raised via github.com/pkg/errors, matching the wrapping
// convention dolthub/matrixorigin/cockroachdb all use for domain errors.
package analyzer

import "github.com/pkg/errors"

// NameError reports an unknown table, column, user, database, or range
// variable.
type NameError struct {
	cause error
}

func (e *NameError) Error() string { return e.cause.Error() }
func (e *NameError) Unwrap() error { return e.cause }

func NameErrorf(format string, args ...interface{}) error {
	return &NameError{cause: errors.Errorf(format, args...)}
}

// AmbiguityError reports an unqualified column that matches more than one
// range table entry.
type AmbiguityError struct {
	cause error
}

func (e *AmbiguityError) Error() string { return e.cause.Error() }
func (e *AmbiguityError) Unwrap() error { return e.cause }

func AmbiguityErrorf(format string, args ...interface{}) error {
	return &AmbiguityError{cause: errors.Errorf(format, args...)}
}

// TypeError reports incompatible types in a WHEN/ELSE/BETWEEN/LIKE/WHERE/
// HAVING/arithmetic position.
type TypeError struct {
	cause error
}

func (e *TypeError) Error() string { return e.cause.Error() }
func (e *TypeError) Unwrap() error { return e.cause }

func TypeErrorf(format string, args ...interface{}) error {
	return &TypeError{cause: errors.Errorf(format, args...)}
}

// ArgError reports an invalid option value, a non-literal where a literal
// is required, or a count mismatch between view columns and projections.
type ArgError struct {
	cause error
}

func (e *ArgError) Error() string { return e.cause.Error() }
func (e *ArgError) Unwrap() error { return e.cause }

func ArgErrorf(format string, args ...interface{}) error {
	return &ArgError{cause: errors.Errorf(format, args...)}
}

// ExistsError reports that an object already exists and IF NOT EXISTS was
// not given.
type ExistsError struct {
	cause error
}

func (e *ExistsError) Error() string { return e.cause.Error() }
func (e *ExistsError) Unwrap() error { return e.cause }

func ExistsErrorf(format string, args ...interface{}) error {
	return &ExistsError{cause: errors.Errorf(format, args...)}
}

// MissingError reports that an object does not exist and IF EXISTS was not
// given.
type MissingError struct {
	cause error
}

func (e *MissingError) Error() string { return e.cause.Error() }
func (e *MissingError) Unwrap() error { return e.cause }

func MissingErrorf(format string, args ...interface{}) error {
	return &MissingError{cause: errors.Errorf(format, args...)}
}

// NotSupportedError reports a construct the analyzer recognizes but
// deliberately does not implement: subqueries, UPDATE, DELETE, USER
// literal, non-materialized-view reads, unrecognized aggregate names. A
// PRIMARY KEY table constraint in CREATE TABLE is not rejected: the parser
// discards it.
type NotSupportedError struct {
	cause error
}

func (e *NotSupportedError) Error() string { return e.cause.Error() }
func (e *NotSupportedError) Unwrap() error { return e.cause }

func NotSupportedErrorf(format string, args ...interface{}) error {
	return &NotSupportedError{cause: errors.Errorf(format, args...)}
}

// PermissionError reports user/database DDL attempted outside the system
// database, or a CREATE USER missing its required password.
type PermissionError struct {
	cause error
}

func (e *PermissionError) Error() string { return e.cause.Error() }
func (e *PermissionError) Unwrap() error { return e.cause }

func PermissionErrorf(format string, args ...interface{}) error {
	return &PermissionError{cause: errors.Errorf(format, args...)}
}

// InternalError reports a failure the analyzer cannot attribute to bad
// input, such as the view-refresh re-parse failing against SQL the
// analyzer itself generated.
type InternalError struct {
	cause error
}

func (e *InternalError) Error() string { return e.cause.Error() }
func (e *InternalError) Unwrap() error { return e.cause }

func InternalErrorf(format string, args ...interface{}) error {
	return &InternalError{cause: errors.Errorf(format, args...)}
}
