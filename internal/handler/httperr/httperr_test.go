//go:build unit

package httperr_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"book-rental/internal/handler/httperr"
	"book-rental/internal/infra"
	"book-rental/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	testCases := []struct {
		name   string
		err    error
		status int
	}{
		{"unauthenticated", errs.ErrUnauthenticated, http.StatusUnauthorized},
		{"item not found", errs.ErrItemNotFound, http.StatusNotFound},
		{"rental not found", errs.ErrNotFound, http.StatusNotFound},
		{"out of stock", errs.ErrOutOfStock, http.StatusConflict},
		{"item not rentable", errs.ErrItemNotRentable, http.StatusConflict},
		{"duplicate", errs.ErrDuplicateActiveReservation, http.StatusConflict},
		{"invalid transition", errs.ErrInvalidTransition, http.StatusConflict},
		{"already finalized", errs.ErrAlreadyFinalized, http.StatusConflict},
		{"conflict", errs.ErrConflict, http.StatusConflict},
		{"invalid duration", errs.ErrInvalidDuration, http.StatusBadRequest},
		{"store unavailable", errs.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{
			name:   "marked repository error",
			err:    errs.Mark(infra.WrapRepoErr("failed to insert", errors.New("broken pipe")), errs.ErrStoreUnavailable),
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "wrapped kind",
			err:    errs.Wrap(errs.ErrOutOfStock, "create rental"),
			status: http.StatusConflict,
		},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := httperr.Status(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestAbortWithKind(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	httperr.AbortWithKind(c, errs.ErrOutOfStock)

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":{"message":"This book is currently out of stock"}}`, rec.Body.String())
	assert.Len(t, c.Errors, 1)
}

func TestAbortWithError_NilErrorPanics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Panics(t, func() {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "bad", nil)
	})
}
