// Package zoom provides Zoom API authentication and client functionality
package zoom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/recsweep/recsweep/internal/config"
)

// refreshMargin is how long before actual expiry a cached token is treated
// as expired, so callers never hand out a credential about to lapse mid-request.
const refreshMargin = 5 * time.Minute

// AccessToken represents an OAuth access token with metadata
type AccessToken struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int       `json:"expires_in"`
	Scopes      []string  `json:"-"` // Parsed from scope string
	ExpiresAt   time.Time `json:"-"` // Calculated expiration time
}

// IsExpired returns true if the token is expired or will expire within the buffer time
func (t *AccessToken) IsExpired(buffer time.Duration) bool {
	return time.Now().Add(buffer).After(t.ExpiresAt)
}

// TokenResponse represents the response from the OAuth token endpoint
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
	Error       string `json:"error,omitempty"`
	Reason      string `json:"reason,omitempty"`
}

// AuthError represents authentication-related errors
type AuthError struct {
	Type   string
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth error %s: %s (%v)", e.Type, e.Reason, e.Err)
	}
	return fmt.Sprintf("auth error %s: %s", e.Type, e.Reason)
}

// Authenticator defines the interface for Zoom API authentication
type Authenticator interface {
	GetAccessToken(ctx context.Context) (*AccessToken, error)
}

// ServerToServerAuth implements Server-to-Server OAuth authentication for
// Zoom. The token cache is a single process-wide cell; concurrent callers
// needing a refresh share one in-flight token request through the
// single-flight group rather than each hitting the OAuth endpoint.
type ServerToServerAuth struct {
	config config.ZoomConfig
	client *http.Client

	mu          sync.RWMutex
	cachedToken *AccessToken
	refresh     singleflight.Group
}

// NewServerToServerAuth creates a new Server-to-Server OAuth authenticator
func NewServerToServerAuth(cfg config.ZoomConfig) *ServerToServerAuth {
	return &ServerToServerAuth{
		config: cfg,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GetAccessToken obtains or refreshes an access token using Server-to-Server OAuth
func (s *ServerToServerAuth) GetAccessToken(ctx context.Context) (*AccessToken, error) {
	s.mu.RLock()
	cached := s.cachedToken
	s.mu.RUnlock()
	if cached != nil && !cached.IsExpired(refreshMargin) {
		return cached, nil
	}

	v, err, _ := s.refresh.Do("token", func() (interface{}, error) {
		// A concurrent caller may have refreshed while we waited
		s.mu.RLock()
		cached := s.cachedToken
		s.mu.RUnlock()
		if cached != nil && !cached.IsExpired(refreshMargin) {
			return cached, nil
		}

		token, err := s.fetchToken(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.cachedToken = token
		s.mu.Unlock()
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*AccessToken), nil
}

// fetchToken performs the OAuth token request
func (s *ServerToServerAuth) fetchToken(ctx context.Context) (*AccessToken, error) {
	jwtToken, err := s.generateJWT()
	if err != nil {
		return nil, &AuthError{
			Type:   "jwt_generation",
			Reason: "failed to generate JWT token",
			Err:    err,
		}
	}

	tokenURL := s.config.TokenURL
	if tokenURL == "" {
		tokenURL = "https://zoom.us/oauth/token"
	}
	data := url.Values{}
	data.Set("grant_type", "account_credentials")
	data.Set("account_id", s.config.AccountID)

	req, err := http.NewRequestWithContext(ctx, "POST", tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, &AuthError{
			Type:   "request_creation",
			Reason: "failed to create OAuth request",
			Err:    err,
		}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+jwtToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &AuthError{
			Type:   "request_failed",
			Reason: "failed to get access token",
			Err:    err,
		}
	}
	defer resp.Body.Close()

	var tokenResponse TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResponse); err != nil {
		return nil, &AuthError{
			Type:   "response_parsing",
			Reason: "failed to parse token response",
			Err:    err,
		}
	}

	if tokenResponse.Error != "" {
		return nil, &AuthError{
			Type:   tokenResponse.Error,
			Reason: tokenResponse.Reason,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AuthError{
			Type:   "http_error",
			Reason: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, tokenResponse.Reason),
		}
	}

	token := &AccessToken{
		AccessToken: tokenResponse.AccessToken,
		TokenType:   tokenResponse.TokenType,
		ExpiresIn:   tokenResponse.ExpiresIn,
		ExpiresAt:   time.Now().Add(time.Duration(tokenResponse.ExpiresIn) * time.Second),
	}

	if tokenResponse.Scope != "" {
		token.Scopes = strings.Fields(tokenResponse.Scope)
	}

	return token, nil
}

// generateJWT generates a JWT token for Server-to-Server OAuth
func (s *ServerToServerAuth) generateJWT() (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"iss":      s.config.ClientID,
		"exp":      now.Add(time.Hour).Unix(),
		"iat":      now.Unix(),
		"aud":      "zoom",
		"appKey":   s.config.ClientID,
		"tokenExp": now.Add(time.Hour).Unix(),
		"alg":      "HS256",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.ClientSecret))
}

// Invalidate drops the cached token so the next call fetches a fresh one
func (s *ServerToServerAuth) Invalidate() {
	s.mu.Lock()
	s.cachedToken = nil
	s.mu.Unlock()
}
