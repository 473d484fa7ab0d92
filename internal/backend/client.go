package backend

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

	"github.com/angelmondragon/laundrypro-storefront/pkg/config"
	pkgerrors "github.com/angelmondragon/laundrypro-storefront/pkg/errors"
	"github.com/angelmondragon/laundrypro-storefront/pkg/logger"
	"github.com/angelmondragon/laundrypro-storefront/pkg/metrics"
	"github.com/angelmondragon/laundrypro-storefront/pkg/validation"
)

const maxBodyBytes = 1 << 20

// Client is the typed JSON client for the external laundry backend. It never
// retries; every failure is mapped onto the storefront error codes.
type Client struct {
	baseURL      *url.URL
	http         *http.Client
	servicesPath string
	ordersPath   string
	logg         *logger.Logger
	metrics      *metrics.BackendMetrics
}

// New builds a client for cfg. httpClient carries the timeout and transport.
func New(cfg config.BackendConfig, httpClient *http.Client, logg *logger.Logger, m *metrics.BackendMetrics) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base url %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base url %q must be absolute", cfg.BaseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Client{
		baseURL:      base,
		http:         httpClient,
		servicesPath: pathOrDefault(cfg.ServicesPath, "/api/services"),
		ordersPath:   pathOrDefault(cfg.OrdersPath, "/api/orders"),
		logg:         logg,
		metrics:      m,
	}, nil
}

func pathOrDefault(p, fallback string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		p = fallback
	}
	return "/" + strings.Trim(p, "/")
}

// call describes one backend round trip.
type call struct {
	operation string
	method    string
	path      string
	body      any
	notFound  string
}

// resolve joins the escaped path p onto the base url.
func (c *Client) resolve(p string) string {
	u := *c.baseURL
	raw := strings.TrimRight(c.baseURL.EscapedPath(), "/") + p
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		unescaped = raw
	}
	u.Path = unescaped
	u.RawPath = raw
	u.RawQuery = ""
	u.Fragment = ""
	return u.String()
}

// do performs the call and returns the raw success body.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	start := time.Now()
	body, err := c.roundTrip(ctx, cl)
	c.metrics.ObserveDuration(cl.operation, time.Since(start))

	logCtx := c.logg.WithFields(ctx, map[string]any{
		"backend_operation": cl.operation,
		"backend_path":      cl.path,
		"duration_ms":       time.Since(start).Milliseconds(),
	})
	if err != nil {
		c.metrics.IncFailure(cl.operation, string(pkgerrors.CodeOf(err)))
		c.logg.Warn(c.logg.WithField(logCtx, "error", err.Error()), "backend request failed")
		return nil, err
	}
	c.metrics.IncSuccess(cl.operation)
	c.logg.Debug(logCtx, "backend request completed")
	return body, nil
}

func (c *Client) roundTrip(ctx context.Context, cl call) ([]byte, error) {
	var reader io.Reader
	if cl.body != nil {
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode backend request")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.resolve(cl.path), reader)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build backend request")
	}
	req.Header.Set("Accept", "application/json")
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := BearerTokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := requestIDFrom(ctx); id != "" {
		req.Header.Set(headerRequestID, id)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, networkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, networkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp.StatusCode, cl, body)
	}
	return body, nil
}

func networkError(err error) error {
	msg := "backend unreachable"
	if errors.Is(err, context.DeadlineExceeded) {
		msg = "backend request timed out"
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		msg = "backend request timed out"
	}
	return pkgerrors.Wrap(pkgerrors.CodeNetwork, err, msg)
}

func statusError(status int, cl call, body []byte) error {
	details := pkgerrors.UpstreamDetails{Status: status, Path: cl.path}

	var parsed errorBodyDTO
	text := ""
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &parsed) == nil {
		text = parsed.text()
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		if text == "" {
			text = "authentication required"
		}
		return pkgerrors.New(pkgerrors.CodeUnauthorized, text).WithDetails(details)
	case http.StatusNotFound:
		msg := cl.notFound
		if msg == "" {
			msg = "resource not found"
		}
		return pkgerrors.New(pkgerrors.CodeNotFound, msg).WithDetails(details)
	}

	if text == "" {
		text = fmt.Sprintf("backend request failed with status %d", status)
	}
	return pkgerrors.New(pkgerrors.CodeUpstream, text).WithDetails(details)
}

// decode unmarshals a success body and validates it.
func decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "decode backend response")
	}
	return validateResponse(dest)
}

func validateResponse(v any) error {
	if err := validation.Raw(v); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformedResponse, err, "backend response failed validation")
	}
	return nil
}
