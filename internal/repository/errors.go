package repository

import "fmt"

// ValidationError reports a required field that was empty after trimming.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s cannot be empty", e.Field)
}

// DuplicateError reports a folder name collision.
type DuplicateError struct {
	Name string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("folder %q already exists", e.Name)
}

// NotFoundError reports an operation against a missing note or folder.
type NotFoundError struct {
	Kind string
	Ref  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.Ref)
}

// ParseError reports malformed data handed to an import.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed import data: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
