package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperror "gostore/internal/errors"
)

func TestMapToHTTPStatus_TypedErrors(t *testing.T) {
	cases := []struct {
		err      error
		status   int
		category string
	}{
		{apperror.NewValidationError("x"), http.StatusBadRequest, apperror.CategoryValidation},
		{apperror.NewUnauthorizedError("x"), http.StatusUnauthorized, apperror.CategoryUnauthenticated},
		{apperror.NewExpiredTokenError("x"), http.StatusUnauthorized, apperror.CategoryTokenExpired},
		{apperror.NewInvalidTokenError("x"), http.StatusUnauthorized, apperror.CategoryTokenInvalid},
		{apperror.NewInvalidRefreshTokenError("x"), http.StatusUnauthorized, apperror.CategoryInvalidRefreshToken},
		{apperror.NewForbiddenError("x"), http.StatusForbidden, apperror.CategoryForbidden},
		{apperror.NewNotFoundError("x"), http.StatusNotFound, apperror.CategoryNotFound},
		{apperror.NewConflictError("x"), http.StatusConflict, apperror.CategoryConflict},
		{apperror.NewInvitationInvalidError(), http.StatusBadRequest, apperror.CategoryInvitationInvalid},
		{apperror.NewRateLimitError("x"), http.StatusTooManyRequests, apperror.CategoryRateLimited},
	}

	for _, c := range cases {
		status, category, _ := apperror.MapToHTTPStatus(c.err)
		assert.Equal(t, c.status, status, c.category)
		assert.Equal(t, c.category, category)
	}
}

func TestMapToHTTPStatus_WrappedError(t *testing.T) {
	err := fmt.Errorf("falha no serviço: %w", apperror.NewNotFoundError("loja"))

	status, category, _ := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, apperror.CategoryNotFound, category)
}

func TestMapToHTTPStatus_InternalErrorHidesDetails(t *testing.T) {
	err := apperror.NewDBError("falha ao buscar loja", errors.New("pq: connection refused on 10.0.0.3"))

	status, category, message := apperror.MapToHTTPStatus(err)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, apperror.CategoryInternal, category)
	assert.NotContains(t, message, "10.0.0.3")
}

func TestMapToHTTPStatus_UntypedError(t *testing.T) {
	status, category, message := apperror.MapToHTTPStatus(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "UNKNOWN_ERROR", category)
	assert.NotContains(t, message, "boom")
}

func TestInternalError_Unwrap(t *testing.T) {
	root := errors.New("raiz")
	err := apperror.NewInternalError("falhou", root)

	assert.ErrorIs(t, err, root)
}

func TestInvitationInvalid_SingleMessage(t *testing.T) {
	assert.Equal(t, apperror.InvitationInvalidMessage, apperror.NewInvitationInvalidError().Error())
}
