// Package client is a typed HTTP client for the project API.
//
// A Client is immutable: WithToken returns a derived client that signs every
// request with "Authorization: Token <token>", leaving the original
// unauthenticated. Front ends pass the derived client to the views that need
// it instead of mutating shared default headers.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kidandcat/projectview/internal/model"
)

type Client struct {
	origin     string
	httpClient *http.Client
	timeout    time.Duration
	token      string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client, typically to point
// tests at an httptest server transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every request. No timeout is applied by default. It
// applies to the HTTP client in effect after all options have run.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a client for the API at origin, e.g. "http://localhost:8000".
func New(origin string, opts ...Option) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parse origin: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("origin %q is not an absolute URL", origin)
	}
	c := &Client{
		origin:     strings.TrimRight(origin, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c, nil
}

// WithToken returns a copy of the client that authenticates with token.
func (c *Client) WithToken(token string) *Client {
	derived := *c
	derived.token = token
	return &derived
}

func (c *Client) Authenticated() bool {
	return c.token != ""
}

func (c *Client) Origin() string {
	return c.origin
}

// Login exchanges credentials for an API token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	var result struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, "login", http.MethodPost, "/api/auth/token/", body, &result); err != nil {
		return "", err
	}
	if result.Token == "" {
		return "", errors.New("login: response contains no token")
	}
	return result.Token, nil
}

// Project fetches one project with its tasks and participants.
func (c *Client) Project(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	path := "/api/projects/" + strconv.FormatInt(id, 10) + "/"
	if err := c.do(ctx, "project", http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	p.Normalize()
	return &p, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.origin+path, reader)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%s: %w", op, ctxErr)
		}
		return &Error{Op: op, Message: NetworkErrorMessage, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(op, resp.StatusCode, errorBody(resp.Body))
	}
	if err := decodeResponse(resp.Body, out); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
