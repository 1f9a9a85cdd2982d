// Package gateway is the HTTP client of the backend's user endpoints.
//
// Every call is a single attempt: there are no retries and no client-side
// timeouts beyond what the caller's context imposes.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/netx"
	"github.com/google/uuid"
)

// SignUpRequest is the body of POST /users/signup.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignInRequest is the body of POST /users/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	Token string `json:"token"`
}

// Client issues sign-up and sign-in requests against a base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        logging.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger used for request diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New returns a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        logging.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SignUp registers a new account. It does not authenticate.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	_, err := c.post(ctx, "/users/signup", req)
	return err
}

// SignIn exchanges credentials for a token.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (string, error) {
	resp, err := c.post(ctx, "/users/signin", req)
	if err != nil {
		return "", err
	}

	var out signInResponse
	if err := resp.DecodeJSON(&out); err != nil {
		return "", fmt.Errorf("sign in: %w", err)
	}
	if out.Token == "" {
		return "", ErrMissingToken
	}
	return out.Token, nil
}

// Do sends an arbitrary JSON request relative to the base URL. Non-2xx
// responses become *RequestError, transport failures wrap ErrNetwork.
func (c *Client) Do(ctx context.Context, method, path string, header http.Header, in any) (*netx.Response, error) {
	if header == nil {
		header = http.Header{}
	}
	requestID := uuid.NewString()
	header.Set(common.RequestIDHeaderName, requestID)

	log := c.log.With("method", method, "path", path, "request_id", requestID)

	resp, err := netx.DoJSON(ctx, c.httpClient, method, c.baseURL+path, header, in)
	if err != nil {
		if errors.Is(err, netx.ErrTransport) {
			log.Warn(ctx, "gateway unreachable", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
		}
		return nil, err
	}

	if !resp.OK() {
		reqErr := NewRequestError(resp.StatusCode, resp.Body)
		log.Debug(ctx, "gateway rejected request", "status", resp.StatusCode, "message", reqErr.Message)
		return nil, reqErr
	}

	log.Debug(ctx, "gateway request done", "status", resp.StatusCode)
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, in any) (*netx.Response, error) {
	return c.Do(ctx, http.MethodPost, path, nil, in)
}
