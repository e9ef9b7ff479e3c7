//go:build !gcloud

package devicegateway

import "net/http"

func newHTTPClient(_ string) *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
