package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
)

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func TestCheckDatabase(t *testing.T) {
	tests := []struct {
		name       string
		pinger     Pinger
		wantStatus Status
	}{
		{name: "healthy database", pinger: fakePinger{}, wantStatus: StatusHealthy},
		{name: "unreachable database", pinger: fakePinger{err: errors.New("connection refused")}, wantStatus: StatusUnhealthy},
		{name: "no dependencies", pinger: nil, wantStatus: StatusHealthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(nil, tt.pinger, "test")
			got := checker.Check(context.Background())
			if got.Status != tt.wantStatus {
				t.Errorf("expected %q, got %q", tt.wantStatus, got.Status)
			}
			if tt.pinger != nil && got.Checks["database"].Status != tt.wantStatus {
				t.Errorf("expected database check %q, got %+v", tt.wantStatus, got.Checks["database"])
			}
		})
	}
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health/ready", NewChecker(nil, fakePinger{err: errors.New("down")}, "v1").ReadyHandler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	var body HealthStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Version != "v1" {
		t.Errorf("expected version v1, got %q", body.Version)
	}
}

func TestGRPCChecker(t *testing.T) {
	healthy := grpcChecker{checker: NewChecker(nil, fakePinger{}, "v1")}
	resp, err := healthy.Check(context.Background(), &grpchealth.CheckRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != grpchealth.StatusServing {
		t.Errorf("expected serving, got %v", resp.Status)
	}

	unhealthy := grpcChecker{checker: NewChecker(nil, fakePinger{err: errors.New("down")}, "v1")}
	resp, err = unhealthy.Check(context.Background(), &grpchealth.CheckRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Status != grpchealth.StatusNotServing {
		t.Errorf("expected not serving, got %v", resp.Status)
	}
}
