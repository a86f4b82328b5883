package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hypotest/internal/config"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Port: "0", GinMode: gin.TestMode},
		Stats:  config.StatsConfig{SyntheticSeed: 42},
	}
	return NewServer(zerolog.Nop(), cfg)
}

func postJSON(t *testing.T, s *Server, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &body)
	return body.Error
}

func TestServer_UnknownRoute(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/hypothesis/api/chi-square", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_RequestIDHeader(t *testing.T) {
	s := newTestServer(t)
	rec := postJSON(t, s, "/hypothesis/api/z-test",
		`{"Data": [[40, 0.3], [160, 0.7]]}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_MalformedJSON(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/hypothesis/api/z-test",
		"/hypothesis/api/two-sample-ztest",
		"/hypothesis/api/one-sample-t-test",
		"/hypothesis/api/two-sample-t-test",
		"/hypothesis/api/paired-t-test",
	} {
		rec := postJSON(t, s, path, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.Equal(t, "Invalid input. Please provide JSON data.", errorMessage(t, rec), path)
	}
}
