package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus_MapsKnownErrors(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(&ErrInvalidToken{}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrRunNotFound{RunID: uuid.New()}))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(&ErrItemNotFound{ItemID: "item-1"}))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(&ErrValidation{Field: "items", Message: "required"}))
}

func TestHTTPStatus_UnknownErrorIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestErrValidation_MessageIncludesField(t *testing.T) {
	err := &ErrValidation{Field: "items", Message: "must not be empty"}

	assert.Contains(t, err.Error(), "items")
	assert.Contains(t, err.Error(), "must not be empty")
}
