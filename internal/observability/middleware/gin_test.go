package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestGinPropagatesRequestID(t *testing.T) {
	const requestID = "0b6a3a0e-8d4f-4d7a-9b2c-1f5e6a7b8c9d"

	var seen string
	r := gin.New()
	r.Use(Gin(GinConfig{Module: logging.Module("test"), TracerName: "test"}))
	r.GET("/ping", func(c *gin.Context) {
		seen = logging.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(logging.RequestIDHeader, requestID)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if seen != requestID {
		t.Errorf("expected request id %q in context, got %q", requestID, seen)
	}
	if got := rec.Header().Get(logging.RequestIDHeader); got != requestID {
		t.Errorf("expected response header %q, got %q", requestID, got)
	}
}

func TestGinGeneratesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(Gin(GinConfig{TracerName: "test"}))
	r.GET("/ping", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))

	if rec.Header().Get(logging.RequestIDHeader) == "" {
		t.Error("expected a generated request id")
	}
}

func TestGinSkipPaths(t *testing.T) {
	r := gin.New()
	r.Use(Gin(GinConfig{SkipPaths: []string{"/health"}, TracerName: "test"}))
	r.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Header().Get(logging.RequestIDHeader) != "" {
		t.Error("expected skipped path to bypass the middleware")
	}
}

func TestPanicRecoveryGin(t *testing.T) {
	r := gin.New()
	r.Use(PanicRecoveryGin())
	r.GET("/boom", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}
