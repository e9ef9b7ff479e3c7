package devicegateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/KasumiMercury/primind-timetable-reminder/internal/domain"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/logging"
	"github.com/KasumiMercury/primind-timetable-reminder/internal/observability/tracing"
)

const requestTimeout = 10 * time.Second

// Client delivers notifications through the device gateway, which owns the
// notification channels and the interruption policy on the device.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: newHTTPClient(baseURL),
	}
}

var _ domain.NotificationSink = (*Client)(nil)

type interruptionFilterRequest struct {
	Mode domain.InterruptionFilter `json:"mode"`
}

type permissionResponse struct {
	Permission domain.Permission `json:"permission"`
	Granted    bool              `json:"granted"`
}

func (c *Client) Post(ctx context.Context, notificationID string, payload domain.Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}

	_, err = c.do(ctx, http.MethodPut, "/api/v1/notifications/"+url.PathEscape(notificationID), body, http.StatusOK, http.StatusCreated, http.StatusNoContent)
	return err
}

// Cancel removes a posted notification. Unknown notifications count as
// already cancelled.
func (c *Client) Cancel(ctx context.Context, notificationID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/notifications/"+url.PathEscape(notificationID), nil, http.StatusOK, http.StatusNoContent, http.StatusNotFound)
	return err
}

func (c *Client) SetInterruptionFilter(ctx context.Context, mode domain.InterruptionFilter) error {
	body, err := json.Marshal(interruptionFilterRequest{Mode: mode})
	if err != nil {
		return fmt.Errorf("failed to marshal interruption filter: %w", err)
	}

	_, err = c.do(ctx, http.MethodPut, "/api/v1/interruption-filter", body, http.StatusOK, http.StatusNoContent)
	return err
}

func (c *Client) HasPermission(ctx context.Context, permission domain.Permission) (bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/v1/permissions/"+url.PathEscape(string(permission)), nil, http.StatusOK)
	if err != nil {
		return false, err
	}

	var resp permissionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("failed to decode permission response: %w", err)
	}
	return resp.Granted, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, accepted ...int) ([]byte, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath(path)

	ctx, span := tracing.StartExternalAPISpan(ctx, method+" "+path, u.String())
	defer span.End()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	requestID := logging.ValidateAndExtractRequestID(logging.RequestIDFromContext(ctx))
	req.Header.Set("x-request-id", requestID)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to device gateway",
			slog.String("method", method),
			slog.String("url", u.String()),
			slog.String("error", err.Error()),
		)
		tracing.RecordError(span, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	for _, code := range accepted {
		if resp.StatusCode == code {
			return respBody, nil
		}
	}

	slog.ErrorContext(ctx, "unexpected status code from device gateway",
		slog.String("method", method),
		slog.String("url", u.String()),
		slog.Int("status_code", resp.StatusCode),
		slog.String("response_body", string(respBody)),
	)
	err = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	tracing.RecordError(span, err)
	return nil, err
}
