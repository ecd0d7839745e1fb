//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if target != nil {
		assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), target), "failed to decode response JSON: %s", w.Body.String())
	}
}

// AssertErrorResponse checks the status and that the error message contains expectedMsg.
// An empty expectedMsg only checks that the body has the error envelope.
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedMsg string) {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if !assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &envelope), "failed to decode error JSON: %s", w.Body.String()) {
		return
	}
	assert.NotEmpty(t, envelope.Error.Message, "error message should be set")
	if expectedMsg != "" {
		assert.Contains(t, envelope.Error.Message, expectedMsg)
	}
}

// AssertRentalLocation checks the Location header returned by rental creation.
func AssertRentalLocation(t *testing.T, w *httptest.ResponseRecorder, id uuid.UUID) {
	t.Helper()
	assert.Equal(t, "/api/rentals/"+id.String(), w.Header().Get("Location"))
}
