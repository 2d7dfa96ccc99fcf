// Package authgw implements the HTTP client for the external
// authentication gateway. The gateway is the only component that verifies
// credentials; this client sends a single form-encoded request per user
// action with no retry or rate limiting.
package authgw

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/refhub/order-management-backend/api"
	"github.com/refhub/order-management-backend/interfaces"
)

var _ interfaces.AuthProvider = (*Client)(nil)

// Client calls the auth gateway over HTTP.
type Client struct {
	// GatewayURL is the base URL of the auth gateway.
	GatewayURL string

	// HTTPClient is used for outbound requests; http.DefaultClient when nil.
	HTTPClient *http.Client
}

// NewClient creates a gateway client for the given base URL.
func NewClient(gatewayURL string) *Client {
	return &Client{GatewayURL: strings.TrimRight(gatewayURL, "/")}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GatewayURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not reach auth gateway: %w", err)
	}
	return resp, nil
}

// gatewayFailure turns a non-success gateway response into a GatewayError,
// falling back to the generic message when the body carries no detail.
func gatewayFailure(resp *http.Response) *interfaces.GatewayError {
	var body api.ErrorResponse
	detail := interfaces.GenericGatewayError().Detail
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		detail = body.Detail
	}
	return &interfaces.GatewayError{StatusCode: resp.StatusCode, Detail: detail}
}

// Login posts form-encoded credentials to the gateway. A 200 response
// yields the user identifier from the body's user field; any other status
// yields a *interfaces.GatewayError with the body's detail and the status
// code.
func (c *Client) Login(ctx context.Context, email, password string) (interfaces.UserID, error) {
	form := url.Values{}
	form.Set(api.FieldEmail, email)
	form.Set(api.FieldPassword, password)

	resp, err := c.postForm(ctx, api.LoginPath, form)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", gatewayFailure(resp)
	}

	var parsed api.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("could not parse login response: %w", err)
	}
	if parsed.User == "" {
		return "", fmt.Errorf("login response carries no user identifier")
	}
	return interfaces.UserID(parsed.User), nil
}

// Signup registers a new account with the gateway. Success is a 201; any
// other status yields a *interfaces.GatewayError.
func (c *Client) Signup(ctx context.Context, username, email, password string) error {
	form := url.Values{}
	form.Set(api.FieldUsername, username)
	form.Set(api.FieldEmail, email)
	form.Set(api.FieldPassword, password)

	resp, err := c.postForm(ctx, api.SignupPath, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return gatewayFailure(resp)
	}
	return nil
}
