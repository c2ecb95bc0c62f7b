package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"padaria/internal/domain"
	"padaria/internal/metrics"
	productsvc "padaria/internal/service/product"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type stubProductService struct {
	products  []domain.Product
	created   *domain.Product
	nome      string
	err       error
	pingErr   error
	lastInput productsvc.CreateInput
	lastID    int64
	panicWith any
}

func (s *stubProductService) List(_ context.Context) ([]domain.Product, error) {
	if s.panicWith != nil {
		panic(s.panicWith)
	}
	return s.products, s.err
}

func (s *stubProductService) Create(_ context.Context, in productsvc.CreateInput) (*domain.Product, error) {
	s.lastInput = in
	if _, err := in.Validate(); err != nil {
		return nil, err
	}
	return s.created, s.err
}

func (s *stubProductService) Delete(_ context.Context, id int64) (string, error) {
	s.lastID = id
	return s.nome, s.err
}

func (s *stubProductService) Ping(_ context.Context) error {
	return s.pingErr
}

func logDiscard() zerolog.Logger {
	return zerolog.Nop()
}

var fixedNow = time.Date(2024, 3, 9, 14, 5, 7, 123000000, time.UTC)

func newTestRouter(t *testing.T, svc ProductService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), Deps{
		ProductSvc: svc,
		Metrics:    metrics.New(),
		Now:        func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func doRequest(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal body %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestBuildRouter_RequiresService(t *testing.T) {
	if _, err := buildRouter(logDiscard(), Deps{}); err == nil {
		t.Fatalf("expected error without product service")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, &stubProductService{})

	rec := doRequest(router, http.MethodGet, "/healthz", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter(t, &stubProductService{})
	if rec := doRequest(router, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	router = newTestRouter(t, &stubProductService{pingErr: errors.New("down")})
	if rec := doRequest(router, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rec.Code)
	}
}

func TestNoRoute_ListsAvailableRoutes(t *testing.T) {
	router := newTestRouter(t, &stubProductService{})

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/api/nada"},
		{http.MethodPut, "/api/produtos/1"},
		{http.MethodGet, "/"},
	} {
		rec := doRequest(router, tc.method, tc.path, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("%s %s: expected 404, got %d", tc.method, tc.path, rec.Code)
		}
		body := decodeBody(t, rec)
		if body["success"] != false || body["message"] != msgRouteNotFound {
			t.Fatalf("unexpected body %v", body)
		}
		routes, ok := body["availableRoutes"].([]any)
		if !ok || len(routes) != 4 {
			t.Fatalf("expected 4 routes, got %v", body["availableRoutes"])
		}
	}
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	router := newTestRouter(t, &stubProductService{})

	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %q", got)
	}

	rec = doRequest(router, http.MethodGet, "/api/test", "")
	if got := rec.Header().Get(requestIDHeader); len(got) != 36 {
		t.Fatalf("expected generated uuid, got %q", got)
	}
}

func TestRecoverer_PanicBecomes500(t *testing.T) {
	router := newTestRouter(t, &stubProductService{panicWith: "boom"})

	rec := doRequest(router, http.MethodGet, "/api/produtos", "")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["message"] != msgInternal || body["error"] != "boom" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestCORS_Preflight(t *testing.T) {
	router := newTestRouter(t, &stubProductService{})

	req := httptest.NewRequest(http.MethodOptions, "/api/produtos", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard origin, got %q", got)
	}
}

func TestCORSConfig_ExplicitOrigins(t *testing.T) {
	cfg := corsConfig([]string{"http://a.test"})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
		t.Fatalf("unexpected cors config %+v", cfg)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, &stubProductService{})
	doRequest(router, http.MethodGet, "/api/test", "")

	rec := doRequest(router, http.MethodGet, "/metrics", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `padaria_http_requests_total{method="GET",route="/api/test",status="200"} 1`) {
		t.Fatalf("expected request counter for /api/test, got:\n%s", body)
	}
}
