// Package server provides the HTTP REST API for the content enhancement pipeline.
package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
)

// ErrInvalidToken indicates the presented access token is wrong
type ErrInvalidToken struct{}

func (e *ErrInvalidToken) Error() string {
	return "invalid access token"
}

// ErrRunNotFound indicates an enhancement run was not found
type ErrRunNotFound struct {
	RunID uuid.UUID
}

func (e *ErrRunNotFound) Error() string {
	return fmt.Sprintf("run not found: %s", e.RunID)
}

// ErrItemNotFound indicates a run item was not found
type ErrItemNotFound struct {
	ItemID string
}

func (e *ErrItemNotFound) Error() string {
	return fmt.Sprintf("item not found: %s", e.ItemID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidToken:
		return http.StatusUnauthorized
	case *ErrRunNotFound, *ErrItemNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
