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

	"github.com/google/uuid"

	"github.com/aswin-roy/ladybird-desk/pkg/auth/session"
	"github.com/aswin-roy/ladybird-desk/pkg/config"
	pkgerrors "github.com/aswin-roy/ladybird-desk/pkg/errors"
	"github.com/aswin-roy/ladybird-desk/pkg/logger"
	"github.com/aswin-roy/ladybird-desk/pkg/types"
)

var (
	errBaseURLRequired = errors.New("backend base url is required")
	errSessionRequired = errors.New("session manager is required")
	errLoggerRequired  = errors.New("api logger is required")
)

// Client talks to the boutique REST backend. Every request carries the
// bearer token owned by the session manager; rejected responses are decoded
// into typed errors with the backend's message kept verbatim.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Manager
	logger  *logger.Logger
}

// NewClient validates the wiring and returns a ready client.
func NewClient(cfg config.BackendConfig, sess *session.Manager, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if sess == nil {
		return nil, errSessionRequired
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}

	return &Client{
		baseURL: base,
		http:    &http.Client{Timeout: cfg.Timeout},
		session: sess,
		logger:  logg,
	}, nil
}

// Session exposes the session manager the client was built with.
func (c *Client) Session() *session.Manager {
	if c == nil {
		return nil
	}
	return c.session
}

// do executes one JSON request. out may be nil for calls whose body is
// irrelevant. skipAuth is set only by the login call.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any, skipAuth bool) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	if !skipAuth {
		token, err := c.session.Token()
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "no usable session")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	ctx = c.logger.WithRequestID(ctx, requestID)
	c.log(ctx, "request", method, path, map[string]any{"query": query.Encode()})

	resp, err := c.http.Do(req)
	if err != nil {
		c.log(ctx, "error", method, path, map[string]any{"error": err.Error()})
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "backend unreachable")
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rejection := c.decodeRejection(resp)
		c.log(ctx, "error", method, path, map[string]any{
			"status": resp.StatusCode,
			"error":  rejection.Message(),
		})
		return rejection
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			c.log(ctx, "error", method, path, map[string]any{"error": err.Error()})
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode response body")
		}
	}

	c.log(ctx, "response", method, path, map[string]any{"status": resp.StatusCode})
	return nil
}

// decodeRejection turns a non-2xx response into a typed error carrying the
// backend's own message when it supplied one.
func (c *Client) decodeRejection(resp *http.Response) *pkgerrors.Error {
	code := pkgerrors.CodeFromStatus(resp.StatusCode)

	var body types.ErrorBody
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil && len(raw) > 0 {
		_ = json.Unmarshal(raw, &body)
	}
	message := strings.TrimSpace(body.Text())
	if message == "" {
		message = pkgerrors.MetadataFor(code).PublicMessage
	}
	return pkgerrors.New(code, message).WithDetails(map[string]any{
		"status": resp.StatusCode,
	})
}

func (c *Client) log(ctx context.Context, stage, method, path string, fields map[string]any) {
	if c.logger == nil {
		return
	}
	entry := map[string]any{
		"stage":  stage,
		"method": method,
		"path":   path,
	}
	for k, v := range fields {
		if v == "" {
			continue
		}
		entry[k] = v
	}
	ctx = c.logger.WithFields(ctx, entry)
	if stage == "error" {
		c.logger.Warn(ctx, "backend call failed")
		return
	}
	c.logger.Debug(ctx, fmt.Sprintf("backend %s", stage))
}
