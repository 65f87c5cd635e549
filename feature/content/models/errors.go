package models

import "fmt"

// ValidationError reports a structural invariant violation on a single entity.
// It aborts processing of that entity's subtree only; siblings in other
// collections are unaffected.
type ValidationError struct {
	// Entity is the entity type, e.g. "question" or "bundle".
	Entity string
	// Key identifies the offending entity (key or id).
	Key string
	// Reason is a human-readable description of the violated invariant.
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %s: %s", e.Entity, e.Key, e.Reason)
}

// MalformedInputError reports raw input that cannot be parsed into the
// expected shape. It is surfaced before canonicalization begins.
type MalformedInputError struct {
	// Source describes where the input came from (file name, request).
	Source string
	Err    error
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input %s: %v", e.Source, e.Err)
}

func (e *MalformedInputError) Unwrap() error { return e.Err }
