package frontend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gojek/heimdall/v7/httpclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuneworks/fortune/pkg/config"
	"github.com/fortuneworks/fortune/pkg/fortune"
)

// stubBackend mimics the fortune backend: list, random and create, with a
// record of everything created.
type stubBackend struct {
	mu       sync.Mutex
	fortunes []fortune.Fortune
	created  []fortune.Fortune
	fail     bool
}

func (b *stubBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /fortunes", func(w http.ResponseWriter, r *http.Request) {
		if b.fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(b.fortunes)
	})
	mux.HandleFunc("GET /fortunes/random", func(w http.ResponseWriter, r *http.Request) {
		if b.fail || len(b.fortunes) == 0 {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_ = json.NewEncoder(w).Encode(b.fortunes[0])
	})
	mux.HandleFunc("POST /fortunes", func(w http.ResponseWriter, r *http.Request) {
		if b.fail {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		var f fortune.Fortune
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		b.mu.Lock()
		b.created = append(b.created, f)
		b.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f)
	})
	return mux
}

func newTestFrontend(t *testing.T, backend *stubBackend) (*Server, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := httptest.NewServer(backend.handler())
	t.Cleanup(ts.Close)

	client := &BackendClient{
		baseURL: ts.URL,
		client:  httpclient.NewClient(httpclient.WithHTTPTimeout(2 * time.Second)),
	}
	cfg := &config.FrontendConfig{
		Environment: "test",
		Port:        0,
		StaticDir:   t.TempDir(),
	}
	return NewServer(cfg, client), ts
}

func get(srv *Server, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestFrontend(t, &stubBackend{})

	w := get(srv, "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}

func TestAPIRandom(t *testing.T) {
	backend := &stubBackend{fortunes: []fortune.Fortune{{ID: "1", Message: "lucky you"}}}
	srv, _ := newTestFrontend(t, backend)

	w := get(srv, "/api/random")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "lucky you", w.Body.String())
}

func TestAPIRandom_BackendDown(t *testing.T) {
	srv, _ := newTestFrontend(t, &stubBackend{fail: true})

	w := get(srv, "/api/random")
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAPIAll_RendersHTML(t *testing.T) {
	backend := &stubBackend{fortunes: []fortune.Fortune{
		{ID: "1", Message: "first"},
		{ID: "2", Message: "second"},
	}}
	srv, _ := newTestFrontend(t, backend)

	w := get(srv, "/api/all")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<p>1: first</p>")
}

func TestAPIAdd(t *testing.T) {
	backend := &stubBackend{}
	srv, _ := newTestFrontend(t, backend)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/add", strings.NewReader(`{"message":"new cookie"}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Cookie added!", w.Body.String())

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Len(t, backend.created, 1)
	assert.Equal(t, "new cookie", backend.created[0].Message)

	// Assigned id is numeric and below 10000.
	id, err := strconv.Atoi(backend.created[0].ID)
	require.NoError(t, err)
	assert.Less(t, id, 10000)
	assert.GreaterOrEqual(t, id, 0)
}

func TestAPIAdd_BadBody(t *testing.T) {
	srv, _ := newTestFrontend(t, &stubBackend{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/add", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
