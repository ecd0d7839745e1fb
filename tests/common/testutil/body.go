//go:build unit || e2e

package testutil

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// BodyEdit changes one field of a decoded JSON request body.
type BodyEdit func(map[string]any)

// Set replaces key with value. A nil value removes the key.
func Set(key string, value any) BodyEdit {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
			return
		}
		m[key] = value
	}
}

// BodyMap round-trips v through JSON so tests can send bodies the typed DTO cannot express.
func BodyMap(t *testing.T, v any, edits ...BodyEdit) map[string]any {
	t.Helper()

	b, err := json.Marshal(v)
	require.NoError(t, err)
	m := make(map[string]any)
	require.NoError(t, json.Unmarshal(b, &m))
	for _, edit := range edits {
		edit(m)
	}
	return m
}
