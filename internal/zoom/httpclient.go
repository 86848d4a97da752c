// Package zoom provides HTTP client with retry logic for Zoom API interactions
package zoom

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/recsweep/recsweep/internal/config"
)

// HTTPClientConfig holds configuration for the retry HTTP client
type HTTPClientConfig struct {
	Timeout         time.Duration // Request timeout
	MaxRetries      int           // Maximum number of retries
	RetryWaitMin    time.Duration // Minimum wait time between retries
	RetryWaitMax    time.Duration // Maximum wait time between retries
	RetryableStatus []int         // HTTP status codes that should trigger retries
}

// HTTPClientConfigFromFetchConfig creates HTTPClientConfig from FetchConfig
func HTTPClientConfigFromFetchConfig(cfg config.FetchConfig) HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:         cfg.TimeoutDuration(),
		MaxRetries:      cfg.RetryAttempts,
		RetryWaitMin:    500 * time.Millisecond,
		RetryWaitMax:    5 * time.Second,
		RetryableStatus: []int{429, 500, 502, 503, 504},
	}
}

// RetryHTTPClient is an HTTP client with retry logic and exponential backoff
type RetryHTTPClient struct {
	client *http.Client
	config HTTPClientConfig
}

// NewRetryHTTPClient creates a new HTTP client with retry logic
func NewRetryHTTPClient(config HTTPClientConfig) *RetryHTTPClient {
	if config.RetryWaitMin == 0 {
		config.RetryWaitMin = 500 * time.Millisecond
	}
	if config.RetryWaitMax == 0 {
		config.RetryWaitMax = 5 * time.Second
	}
	if len(config.RetryableStatus) == 0 {
		config.RetryableStatus = []int{429, 500, 502, 503, 504}
	}

	return &RetryHTTPClient{
		client: &http.Client{
			Timeout: config.Timeout,
		},
		config: config,
	}
}

// ZoomAPIError represents a Zoom API error response
type ZoomAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
}

func (e *ZoomAPIError) Error() string {
	return fmt.Sprintf("zoom API error %d: %s", e.Code, e.Message)
}

// HTTPError represents a general HTTP transport error, carrying the upstream
// status and raw body for diagnostics
type HTTPError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error %d: %s", e.StatusCode, e.Status)
}

// MalformedResponseError indicates a response body that was not valid JSON
// when JSON was expected. The raw text is preserved for diagnostics.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response body: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Do executes an HTTP request with retry logic
func (c *RetryHTTPClient) Do(req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		reqClone := req.Clone(req.Context())

		resp, err = c.client.Do(reqClone)
		if err != nil {
			// Network errors should be retried
			if attempt < c.config.MaxRetries {
				c.waitForRetry(attempt, 0)
				continue
			}
			return nil, fmt.Errorf("request failed after %d attempts: %w", attempt+1, err)
		}

		if c.shouldRetry(resp.StatusCode) {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if attempt < c.config.MaxRetries {
				c.waitForRetry(attempt, c.parseRetryAfter(resp))
				continue
			}

			if zoomErr := parseZoomError(resp.StatusCode, body); zoomErr != nil {
				return nil, zoomErr
			}
			return nil, &HTTPError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       string(body),
			}
		}

		if resp.StatusCode >= 400 {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()

			if zoomErr := parseZoomError(resp.StatusCode, body); zoomErr != nil {
				return nil, zoomErr
			}
			return nil, &HTTPError{
				StatusCode: resp.StatusCode,
				Status:     resp.Status,
				Body:       string(body),
			}
		}

		return resp, nil
	}

	return resp, err
}

// shouldRetry determines if a request should be retried based on status code
func (c *RetryHTTPClient) shouldRetry(statusCode int) bool {
	for _, retryableStatus := range c.config.RetryableStatus {
		if statusCode == retryableStatus {
			return true
		}
	}
	return false
}

// parseZoomError attempts to parse a Zoom API error response
func parseZoomError(statusCode int, body []byte) *ZoomAPIError {
	if len(body) == 0 {
		return nil
	}

	var zoomErr ZoomAPIError
	if err := json.Unmarshal(body, &zoomErr); err != nil {
		return nil
	}
	if zoomErr.Code == 0 && zoomErr.Message == "" {
		return nil
	}

	zoomErr.Status = statusCode
	return &zoomErr
}

// parseRetryAfter parses the Retry-After header and returns the wait duration
func (c *RetryHTTPClient) parseRetryAfter(resp *http.Response) time.Duration {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return 0
	}

	if seconds, err := strconv.Atoi(retryAfter); err == nil {
		return time.Duration(seconds) * time.Second
	}

	if t, err := http.ParseTime(retryAfter); err == nil {
		if duration := time.Until(t); duration > 0 {
			return duration
		}
	}

	return 0
}

// waitForRetry implements exponential backoff with jitter
func (c *RetryHTTPClient) waitForRetry(attempt int, retryAfter time.Duration) {
	var waitTime time.Duration

	if retryAfter > 0 {
		waitTime = retryAfter
		if waitTime > c.config.RetryWaitMax {
			waitTime = c.config.RetryWaitMax
		}
	} else {
		base := float64(c.config.RetryWaitMin)
		exponential := base * math.Pow(2, float64(attempt))

		// Jitter of up to ±25% of the calculated time
		jitter := exponential * 0.25 * (rand.Float64()*2 - 1)
		waitTime = time.Duration(exponential + jitter)

		if waitTime > c.config.RetryWaitMax {
			waitTime = c.config.RetryWaitMax
		}
		if waitTime < c.config.RetryWaitMin {
			waitTime = c.config.RetryWaitMin
		}
	}

	time.Sleep(waitTime)
}

// Client returns the underlying HTTP client
func (c *RetryHTTPClient) Client() *http.Client {
	return c.client
}

// AuthenticatedRetryClient combines retry logic with authentication
type AuthenticatedRetryClient struct {
	retryClient *RetryHTTPClient
	auth        Authenticator
}

// NewAuthenticatedRetryClient creates a client with both retry logic and authentication
func NewAuthenticatedRetryClient(retryClient *RetryHTTPClient, auth Authenticator) *AuthenticatedRetryClient {
	return &AuthenticatedRetryClient{
		retryClient: retryClient,
		auth:        auth,
	}
}

// Do executes an HTTP request with both authentication and retry logic
func (c *AuthenticatedRetryClient) Do(req *http.Request) (*http.Response, error) {
	token, err := c.auth.GetAccessToken(req.Context())
	if err != nil {
		return nil, fmt.Errorf("failed to get access token for request: %w", err)
	}

	req.Header.Set("Authorization", token.TokenType+" "+token.AccessToken)

	return c.retryClient.Do(req)
}
