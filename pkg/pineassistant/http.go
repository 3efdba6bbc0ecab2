package pineassistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// httpClient handles HTTP communication with the Pine AI API.
type httpClient struct {
	client      *http.Client
	baseURL     string
	accessToken string
	userID      string
	maxRetries  int
}

// newHTTPClient creates a new HTTP client.
func newHTTPClient(cfg *clientConfig) *httpClient {
	return &httpClient{
		client:      cfg.httpClient,
		baseURL:     cfg.baseURL,
		accessToken: cfg.accessToken,
		userID:      cfg.userID,
		maxRetries:  cfg.maxRetries,
	}
}

// request makes an HTTP request to the API with retry support.
func (h *httpClient) request(ctx context.Context, method, path string, body any, result any) error {
	var bodyData []byte
	if body != nil {
		var err error
		bodyData, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= h.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s, ...
			backoff := time.Duration(1<<uint(attempt-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		err := h.doRequest(ctx, method, path, bodyData, result)
		if err == nil {
			return nil
		}

		lastErr = err

		if apiErr, ok := AsError(err); ok {
			if !apiErr.Retryable() {
				return err
			}
		} else if ctx.Err() != nil {
			return err
		}
		// Network errors are retryable.
	}

	return lastErr
}

// doRequest performs a single HTTP request.
func (h *httpClient) doRequest(ctx context.Context, method, path string, bodyData []byte, result any) error {
	url := h.baseURL + path

	var bodyReader io.Reader
	if bodyData != nil {
		bodyReader = bytes.NewReader(bodyData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	h.setHeaders(req)
	if bodyData != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	return h.handleResponse(resp, result)
}

// setHeaders sets common headers for API requests.
// Auth headers are omitted for unauthenticated clients (login flow).
func (h *httpClient) setHeaders(req *http.Request) {
	if h.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+h.accessToken)
	}
	if h.userID != "" {
		req.Header.Set("X-User-ID", h.userID)
	}
	req.Header.Set("User-Agent", "pine-cli-assistant-go/1.0")
}

// handleResponse handles the API response.
func (h *httpClient) handleResponse(resp *http.Response, result any) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(body, resp.StatusCode)
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}

// parseError parses an error response body.
func parseError(body []byte, httpStatus int) error {
	var apiResp struct {
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &apiResp); err == nil && apiResp.Error != nil {
		return &Error{
			Code:       apiResp.Error.Code,
			Message:    apiResp.Error.Message,
			HTTPStatus: httpStatus,
		}
	}

	return &Error{
		Code:       httpStatus,
		Message:    string(body),
		HTTPStatus: httpStatus,
	}
}
