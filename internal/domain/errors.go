package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling.
type HTTPError interface {
	error
	StatusCode() int
}

// Domain error types implementing HTTPError interface
type (
	// NotFoundError indicates a resource was not found
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnavailableError indicates the persistence layer or an upstream
	// service is temporarily unreachable; callers may retry
	UnavailableError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string    { return e.Message }
func (e *ValidationError) Error() string  { return e.Message }
func (e *UnavailableError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int    { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int  { return http.StatusBadRequest }
func (e *UnavailableError) StatusCode() int { return http.StatusServiceUnavailable }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("already exists")
	ErrValidation  = errors.New("validation failed")
	ErrCyclicMove  = errors.New("cyclic move")
	ErrUnavailable = errors.New("temporarily unavailable")
)

// CyclicMoveError rejects a folder move that would make a folder an
// ancestor of itself. It carries both ends of the illegal edge so the
// caller (e.g. a drag-and-drop UI) can report which drop was refused.
type CyclicMoveError struct {
	FolderID string // folder being moved
	ParentID string // requested new parent
}

func (e *CyclicMoveError) Error() string {
	return "cannot move folder " + e.FolderID + " under " + e.ParentID + ": would create a cycle"
}

// StatusCode implements the HTTPError interface
func (e *CyclicMoveError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrCyclicMove
func (e *CyclicMoveError) Is(target error) bool {
	return target == ErrCyclicMove
}

// ConflictError represents a resource conflict with details about the existing resource
type ConflictError struct {
	Message      string // Human-readable error message
	ResourceType string // Type of resource (folder, tag, conversation)
	ResourceID   string // ID of the existing/conflicting resource
}

func (e *ConflictError) Error() string {
	return e.Message
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int {
	return http.StatusConflict
}

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
