package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/irsalhamdi/realty-training/api/web"
	"github.com/irsalhamdi/realty-training/api/weberr"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h web.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	mw := []web.Middleware{RequestID(), Logger(log), Errors(log), Panics(), Cors("http://localhost:3000")}
	h = web.WrapMiddleware(mw, h)

	w := httptest.NewRecorder()
	require.NoError(t, h(req.Context(), w, req))
	return w
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var er weberr.ErrorResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&er))
	return er.Error
}

func TestErrorsUsesAttachedResponse(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return weberr.Conflict(errors.New("email already registered"))
	}

	w := serve(t, h, httptest.NewRequest(http.MethodPost, "/api/users", nil))
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email already registered", errorBody(t, w))
}

func TestErrorsHidesUndecoratedErrors(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		return errors.New("repository exploded")
	}

	w := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Internal Server Error", errorBody(t, w))
}

func TestPanicsBecomeInternalErrors(t *testing.T) {
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		var m map[string]int
		m["boom"]++
		return nil
	}

	w := serve(t, h, httptest.NewRequest(http.MethodGet, "/api/videos", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestIDAndCors(t *testing.T) {
	var seen string
	h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		seen = ContextRequestID(ctx)
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	req.Header.Set(RequestIDHeader, "abc-1")
	w := serve(t, h, req)

	assert.Equal(t, "abc-1", seen)
	assert.Equal(t, "abc-1", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = serve(t, h, httptest.NewRequest(http.MethodGet, "/api/settings", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}
