package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/MyungSeo-Kim/DatabaseDesignBackend/internal/config"
)

func newTestServer() *Server {
	router := chi.NewRouter()
	router.Get("/api/groups", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Request-Id", middleware.GetReqID(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
	router.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})

	return NewServer(
		config.ServerConfig{Address: ":0", RequestTimeout: time.Second},
		config.CORSConfig{AllowedOrigins: []string{"https://app.example"}, AllowedMethods: []string{"GET", "POST"}},
		router,
		zerolog.Nop(),
	)
}

func TestServerStripsTrailingSlash(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/groups/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestServerRecoversPanics(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer().Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Internal server error")
}

func TestServerCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/groups", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()

	newTestServer().Handler().ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example", rec.Header().Get("Access-Control-Allow-Origin"))
}
