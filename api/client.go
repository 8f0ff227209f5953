// Package api implements the HTTP client for the remote CMS API. It owns
// the transport concerns only: authentication, the response envelope, error
// mapping, and request logging. All validation and value cleanup happens
// before payloads reach this package.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/plumeworks/plume"
)

// Client talks to the CMS API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	token      string
	userAgent  string
	httpClient *http.Client
}

// NewClient builds a client from API configuration. Zero-valued settings
// fall back to the package defaults.
func NewClient(cfg plume.APIConfig) *Client {
	defaults := plume.DefaultConfig().API
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaults.Timeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.Token,
		userAgent:  cfg.UserAgent,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Collection returns a client bound to one collection scope. The scoped
// client satisfies the narrow reader/writer interfaces the form engine
// consumes.
func (c *Client) Collection(org, workspace, collection string) *CollectionClient {
	return &CollectionClient{
		client: c,
		base: fmt.Sprintf("/v1/organizations/%s/workspaces/%s/collections/%s",
			url.PathEscape(org), url.PathEscape(workspace), url.PathEscape(collection)),
	}
}

// envelope is the wire shape of every API response.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *plume.ListMeta `json:"meta,omitempty"`
	Error *wireError      `json:"error,omitempty"`
}

type wireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// do executes one API request and decodes the data payload into out. out
// and the returned meta may be nil for endpoints without a body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (*plume.ListMeta, error) {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, plume.NewInternalError("encoding request body", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, plume.NewInternalError("building request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isTimeout(err) {
			zap.S().Warnw("request timed out", "method", method, "path", path)
			return nil, plume.NewTimeoutError("request timed out", err)
		}
		zap.S().Warnw("request failed", "method", method, "path", path, "error", err)
		return nil, plume.NewTransportError(plume.ErrCodeRequestFailed, "request failed", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, plume.NewTransportError(plume.ErrCodeDecodeFailed, "reading response body", err)
	}

	zap.S().Debugw("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	var env envelope
	if len(raw) > 0 {
		// Non-JSON bodies on error statuses still map to a typed error below.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode >= 400 {
		return nil, statusError(resp.StatusCode, env.Error)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, plume.NewTransportError(plume.ErrCodeDecodeFailed, "decoding response data", err)
		}
	}
	return env.Meta, nil
}

func isTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// statusError maps an HTTP status plus an optional server error payload to
// the module's error taxonomy.
func statusError(status int, we *wireError) *plume.Error {
	msg := http.StatusText(status)
	code := ""
	if we != nil {
		if we.Message != "" {
			msg = we.Message
		}
		code = we.Code
	}

	var err *plume.Error
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		err = plume.NewUnauthorizedError(msg)
	case status == http.StatusNotFound:
		err = plume.NewNotFoundError(msg)
	case status == http.StatusConflict:
		err = plume.NewError(plume.ErrorTypeConflict, plume.ErrCodeConflict, msg)
	case status == http.StatusUnprocessableEntity || status == http.StatusBadRequest:
		err = plume.NewError(plume.ErrorTypeValidation, plume.ErrCodeValidationFailed, msg)
	case status >= 500:
		err = plume.NewTransportError(plume.ErrCodeServerError, msg, nil)
	default:
		err = plume.NewTransportError(plume.ErrCodeRequestFailed, msg, nil)
	}
	err.WithDetail("status", status)
	if code != "" {
		err.WithDetail("serverCode", code)
	}
	return err
}

// ============================================================================
// Organizations and workspaces
// ============================================================================

// ListOrganizations returns the organizations visible to the caller.
func (c *Client) ListOrganizations(ctx context.Context) ([]plume.Organization, error) {
	var out []plume.Organization
	_, err := c.do(ctx, http.MethodGet, "/v1/organizations", nil, &out)
	return out, err
}

// ListWorkspaces returns the workspaces of an organization.
func (c *Client) ListWorkspaces(ctx context.Context, org string) ([]plume.Workspace, error) {
	var out []plume.Workspace
	path := fmt.Sprintf("/v1/organizations/%s/workspaces", url.PathEscape(org))
	_, err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// ============================================================================
// Collections
// ============================================================================

func collectionsPath(org, workspace string) string {
	return fmt.Sprintf("/v1/organizations/%s/workspaces/%s/collections",
		url.PathEscape(org), url.PathEscape(workspace))
}

// ListCollections returns the collections of a workspace.
func (c *Client) ListCollections(ctx context.Context, org, workspace string) ([]plume.Collection, error) {
	var out []plume.Collection
	_, err := c.do(ctx, http.MethodGet, collectionsPath(org, workspace), nil, &out)
	return out, err
}

// GetCollection returns one collection with its field definitions.
func (c *Client) GetCollection(ctx context.Context, org, workspace, collection string) (*plume.Collection, error) {
	var out plume.Collection
	path := collectionsPath(org, workspace) + "/" + url.PathEscape(collection)
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateCollection creates a collection in a workspace.
func (c *Client) CreateCollection(ctx context.Context, org, workspace string, req *plume.CreateCollectionRequest) (*plume.Collection, error) {
	var out plume.Collection
	if _, err := c.do(ctx, http.MethodPost, collectionsPath(org, workspace), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCollection edits a collection's metadata.
func (c *Client) UpdateCollection(ctx context.Context, org, workspace, collection string, req *plume.UpdateCollectionRequest) (*plume.Collection, error) {
	var out plume.Collection
	path := collectionsPath(org, workspace) + "/" + url.PathEscape(collection)
	if _, err := c.do(ctx, http.MethodPatch, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCollection deletes a collection and its entries.
func (c *Client) DeleteCollection(ctx context.Context, org, workspace, collection string) error {
	path := collectionsPath(org, workspace) + "/" + url.PathEscape(collection)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}
