package httpx

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOKEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	OK(rec, "All good!", map[string]int{"count": 3})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `null`, string(body["errors"]))
	assert.JSONEq(t, `"All good!"`, string(body["message"]))
	assert.JSONEq(t, `{"count":3}`, string(body["data"]))
}

func TestFailEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Fail(rec, http.StatusBadRequest, "Invalid request.", "name is required")

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, []string{"name is required"}, env.Errors)
	assert.Equal(t, "Invalid request.", env.Message)
	assert.Nil(t, env.Data)
}

func TestDecode(t *testing.T) {
	type payload struct {
		Name string `json:"name"`
	}

	t.Run("valid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Scarf"}`))
		var p payload
		require.NoError(t, Decode(req, &p))
		assert.Equal(t, "Scarf", p.Name)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
		var p payload
		assert.ErrorIs(t, Decode(req, &p), ErrBadBody)
	})

	t.Run("trailing garbage", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Scarf"}{"again":true}`))
		var p payload
		assert.ErrorIs(t, Decode(req, &p), ErrBadBody)
	})

	t.Run("empty body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
		var p payload
		assert.ErrorIs(t, Decode(req, &p), ErrBadBody)
	})
}
