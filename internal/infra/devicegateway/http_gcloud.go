//go:build gcloud

package devicegateway

import (
	"context"
	"log/slog"
	"net/http"

	"google.golang.org/api/idtoken"
)

// newHTTPClient authenticates gateway calls with an ID token whose audience
// is the gateway itself.
func newHTTPClient(audience string) *http.Client {
	httpClient, err := idtoken.NewClient(context.Background(), audience)
	if err != nil {
		slog.Error("failed to create idtoken client for device gateway, falling back to unauthenticated client",
			slog.String("audience", audience),
			slog.String("error", err.Error()),
		)
		return &http.Client{Timeout: requestTimeout}
	}
	httpClient.Timeout = requestTimeout
	return httpClient
}
