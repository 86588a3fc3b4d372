package epdapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/mamadbah2/epd-dashboard/internal/config"
)

// RequestOptions describes one backend call. Method defaults to GET.
type RequestOptions struct {
	Method  string
	Body    any
	Headers map[string]string
	Query   map[string]string
}

// FilePart is a multipart file payload. When used as a request body the
// content type is left to the multipart writer so it carries the boundary.
type FilePart struct {
	Field    string
	Filename string
	Reader   io.Reader
}

// Client issues requests against the EPD backend. It holds no session state of
// its own; credentials travel on the request context.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	logger     *zap.Logger
}

// NewClient builds an EPD API client from configuration. An empty base URL is
// accepted here and reported by every call instead.
func NewClient(cfg config.APIConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	base := strings.TrimSuffix(cfg.BaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		// cookies belong to the browser that sent them, never to the process
		SetCookieJar(nil)

	return &Client{
		httpClient: restyClient,
		baseURL:    base,
		logger:     logger,
	}
}

// BaseURL returns the configured backend base URL without trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Request performs the call and decodes a JSON body into a T. A nil result
// with a nil error means the backend answered with no content.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (*T, error) {
	out := new(T)
	present, err := c.Execute(ctx, endpoint, opts, out)
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	return out, nil
}

// Execute performs the call and decodes the body into out when there is one.
// It reports whether a body was present.
func (c *Client) Execute(ctx context.Context, endpoint string, opts RequestOptions, out any) (bool, error) {
	if c == nil || c.baseURL == "" {
		return false, ErrMissingBaseURL
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = http.MethodGet
	}

	req := c.httpClient.R().SetContext(ctx)
	if creds := CredentialsFrom(ctx); creds != nil {
		req.SetCookies(creds.Cookies())
	}
	if len(opts.Query) > 0 {
		req.SetQueryParams(opts.Query)
	}

	body := opts.Body
	if method == http.MethodGet || method == http.MethodHead {
		body = nil
	}

	headers := map[string]string{}
	switch b := body.(type) {
	case nil:
		headers["Content-Type"] = "application/json"
	case FilePart:
		req.SetFileReader(b.Field, b.Filename, b.Reader)
	case *FilePart:
		req.SetFileReader(b.Field, b.Filename, b.Reader)
	case string:
		headers["Content-Type"] = "application/json"
		req.SetBody(b)
	case []byte:
		headers["Content-Type"] = "application/json"
		req.SetBody(b)
	case io.Reader:
		headers["Content-Type"] = "application/json"
		req.SetBody(b)
	default:
		encoded, err := json.Marshal(b)
		if err != nil {
			return false, fmt.Errorf("encode %s %s body: %w", method, endpoint, err)
		}
		headers["Content-Type"] = "application/json"
		req.SetBody(encoded)
	}
	for key, value := range opts.Headers {
		headers[key] = value
	}
	req.SetHeaders(headers)

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		c.logger.Debug("epd api request failed", zap.String("method", method), zap.String("path", endpoint), zap.Error(err))
		return false, &TransportError{Method: method, Path: endpoint, Err: err}
	}

	if creds := CredentialsFrom(ctx); creds != nil {
		creds.Absorb(resp.Cookies())
	}

	status := resp.StatusCode()
	c.logger.Debug("epd api request completed",
		zap.String("method", method),
		zap.String("path", endpoint),
		zap.Int("status", status),
		zap.Duration("duration", resp.Time()))

	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return false, parseHTTPError(status, resp.Body())
	}

	if status == http.StatusNoContent || declaresEmpty(resp) {
		return false, nil
	}

	if out == nil {
		return true, nil
	}

	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return false, &DecodeError{Path: endpoint, Status: status, Err: err}
	}

	return true, nil
}

// Get issues a GET and decodes the result.
func Get[T any](ctx context.Context, c *Client, endpoint string, query map[string]string) (*T, error) {
	return Request[T](ctx, c, endpoint, RequestOptions{Method: http.MethodGet, Query: query})
}

// Post issues a POST with a JSON body.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	return Request[T](ctx, c, endpoint, RequestOptions{Method: http.MethodPost, Body: body})
}

// Put issues a PUT with a JSON body.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any) (*T, error) {
	return Request[T](ctx, c, endpoint, RequestOptions{Method: http.MethodPut, Body: body})
}

// Delete issues a DELETE and ignores any response body.
func (c *Client) Delete(ctx context.Context, endpoint string) error {
	_, err := c.Execute(ctx, endpoint, RequestOptions{Method: http.MethodDelete}, nil)
	return err
}

// Upload posts a single file as multipart form data.
func Upload[T any](ctx context.Context, c *Client, endpoint string, file FilePart) (*T, error) {
	return Request[T](ctx, c, endpoint, RequestOptions{Method: http.MethodPost, Body: file})
}

func declaresEmpty(resp *resty.Response) bool {
	if resp.Header().Get("Content-Length") == "0" {
		return true
	}
	return resp.RawResponse != nil && resp.RawResponse.ContentLength == 0
}
