package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchWildcard(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"/api/v1/analyses/abc", "/api/v1/analyses/*", true},
		{"/api/v1/analyses/abc/grid", "/api/v1/analyses/*/grid", true},
		{"/api/v1/analyses/abc/grid", "/api/v1/analyses/*", true}, // trailing star spans segments
		{"/api/v1/analyses/abc/stats", "/api/v1/analyses/*/grid", false},
		{"/api/v1/download/abc/grid.csv", "/api/v1/download/*", true},
		{"/swagger/index.html", "/swagger/*", true},
		{"/swagger/ui/assets/app.js", "/swagger/*", true},
		{"/other", "/api/v1/analyses/*", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, matchWildcard(tt.path, tt.pattern), "%s vs %s", tt.path, tt.pattern)
	}
}

func serve(r *Router, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	r.mux.ServeHTTP(rec, req)
	return rec
}

func TestRouterDispatch(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("list"))
	})
	r.GET("/api/v1/analyses/*/grid", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("grid"))
	})
	r.GET("/api/v1/analyses/*", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte("one"))
	})

	rec := serve(r, http.MethodGet, "/api/v1/analyses")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "list", rec.Body.String())

	rec = serve(r, http.MethodGet, "/api/v1/analyses/abc/grid")
	assert.Equal(t, "grid", rec.Body.String())

	rec = serve(r, http.MethodGet, "/api/v1/analyses/abc")
	assert.Equal(t, "one", rec.Body.String())
}

func TestRouterMethodNotAllowed(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {})

	rec := serve(r, http.MethodPost, "/api/v1/analyses")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterNotFound(t *testing.T) {
	r := New()
	r.GET("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {})

	rec := serve(r, http.MethodGet, "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoutesTable(t *testing.T) {
	r := New()
	r.POST("/api/v1/analyses", func(w http.ResponseWriter, req *http.Request) {})
	r.DELETE("/api/v1/analyses/*", func(w http.ResponseWriter, req *http.Request) {})

	assert.Contains(t, r.Routes(), "POST:/api/v1/analyses")
	assert.Contains(t, r.Routes(), "DELETE:/api/v1/analyses/*")
}
