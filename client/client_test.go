package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irsalhamdi/realty-training/apperr"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	log := logrus.New()
	log.SetOutput(io.Discard)

	c, err := New(srv.URL, time.Second, log)
	require.NoError(t, err)
	return c
}

func TestClient_Post_Success(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/categories", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "Marketing", in["name"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": "42"})
	})

	var out struct {
		ID string `json:"id"`
	}
	err := c.Post(context.Background(), "/categories", map[string]string{"name": "Marketing"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "42", out.ID)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   error
	}{
		{http.StatusUnauthorized, apperr.ErrUnauthenticated},
		{http.StatusForbidden, apperr.ErrForbidden},
		{http.StatusNotFound, apperr.ErrNotFound},
		{http.StatusBadRequest, apperr.ErrValidation},
		{http.StatusConflict, apperr.ErrBackend},
		{http.StatusInternalServerError, apperr.ErrBackend},
	}

	for _, tt := range tests {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
		})

		err := c.Delete(context.Background(), "/videos/1", nil)
		assert.ErrorIs(t, err, tt.kind, "status %d", tt.status)
		assert.True(t, IsStatus(err, tt.status))
		assert.Contains(t, err.Error(), "nope")
	}
}

func TestClient_Unreachable(t *testing.T) {
	c, err := New("http://127.0.0.1:1", time.Second, logrus.New())
	require.NoError(t, err)

	err = c.Get(context.Background(), "/settings", nil)
	assert.ErrorIs(t, err, apperr.ErrNetwork)
}

func TestNew_InvalidURL(t *testing.T) {
	_, err := New("not a url", time.Second, logrus.New())
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/video-progress/a@b.mx/v%2F1", Path("video-progress", "a@b.mx", "v/1"))
}
