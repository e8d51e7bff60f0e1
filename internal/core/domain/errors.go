package domain

import (
	"errors"
	"fmt"
)

// Store-level sentinels. Repositories wrap these; the service turns them into
// the typed errors below.
var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateKey     = errors.New("duplicate key")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Resource names the kind of record a lookup failed on.
type Resource string

const (
	ResourceUser Resource = "user"
	ResourceRole Resource = "role"
)

// NotFoundError reports that no record matched a lookup.
type NotFoundError struct {
	Resource Resource
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: '%v'", e.Resource, e.Field, e.Value)
}

// Is lets callers match any not-found failure with errors.Is(err, ErrRecordNotFound).
func (e *NotFoundError) Is(target error) bool {
	return target == ErrRecordNotFound
}

// ConflictField identifies which unique field a conflict occurred on.
type ConflictField int

const (
	ConflictGeneric ConflictField = iota
	ConflictEmail
	ConflictUsername
)

func (f ConflictField) String() string {
	switch f {
	case ConflictEmail:
		return "email"
	case ConflictUsername:
		return "username"
	default:
		return "generic"
	}
}

// ConflictError is a uniqueness violation, either pre-checked by the service
// or surfaced by the store after a race.
type ConflictError struct {
	Field ConflictField
	Value string
	Err   error
}

func (e *ConflictError) Error() string {
	switch e.Field {
	case ConflictEmail:
		return "email already in use: " + e.Value
	case ConflictUsername:
		return "username already in use: " + e.Value
	default:
		return "data conflict on user record"
	}
}

func (e *ConflictError) Unwrap() error { return e.Err }

// DuplicateKeyError is returned by repositories when a unique index rejects a write.
// Field is ConflictGeneric when the store does not say which index fired.
type DuplicateKeyError struct {
	Field ConflictField
	Err   error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on %s: %v", e.Field, e.Err)
}

func (e *DuplicateKeyError) Unwrap() error { return e.Err }

func (e *DuplicateKeyError) Is(target error) bool {
	return target == ErrDuplicateKey
}

// ConfigurationError signals missing seed data or another deployment defect.
// It is never the client's fault.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Msg
}

// InvalidArgumentError is raised for arguments the service refuses outright
// (blank lookup keys, non-positive ids).
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }
