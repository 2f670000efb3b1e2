package marketplace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/BonMercato/wunder/internal/domain/integration"
)

// maxResponseSize is the maximum allowed response size from the marketplace API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// ErrResponseTooLarge is returned when a response body exceeds maxResponseSize
var ErrResponseTooLarge = errors.New("marketplace: response too large")

// errRequestDone unblocks a multipart writer whose request has already returned
var errRequestDone = errors.New("marketplace: request finished")

// Client implements integration.MarketplaceAPI over HTTP.
// Every request carries the raw API key and the tool's User-Agent. Nothing is retried.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

var _ integration.MarketplaceAPI = (*Client)(nil)

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the instrumented default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request logging
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a marketplace client with the given configuration
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		config: config,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get fetches target. Relative targets are appended to the base URL, absolute ones
// (continuation links) are used verbatim. query, when non-empty, is appended to the target's own query.
func (c *Client) Get(ctx context.Context, target string, query url.Values) (*integration.APIResponse, error) {
	u, err := c.resolve(target)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		if u.RawQuery != "" {
			u.RawQuery += "&" + query.Encode()
		} else {
			u.RawQuery = query.Encode()
		}
	}
	return c.do(ctx, http.MethodGet, u, nil, "")
}

// Put sends a body-less PUT to path
func (c *Client) Put(ctx context.Context, path string) (*integration.APIResponse, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	return c.do(ctx, http.MethodPut, u, nil, "")
}

// Post sends body encoded as JSON to path
func (c *Client) Post(ctx context.Context, path string, body any) (*integration.APIResponse, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marketplace: failed to encode request body: %w", err)
	}
	return c.do(ctx, http.MethodPost, u, bytes.NewReader(payload), "application/json")
}

// PostMultipart streams parts as multipart/form-data to path.
// File contents are copied straight from their readers, never buffered whole.
func (c *Client) PostMultipart(ctx context.Context, path string, parts []integration.MultipartPart) (*integration.APIResponse, error) {
	u, err := c.resolve(path)
	if err != nil {
		return nil, err
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	writeErr := make(chan error, 1)
	go func() {
		err := writeParts(mw, parts)
		pw.CloseWithError(err)
		writeErr <- err
	}()

	resp, err := c.do(ctx, http.MethodPost, u, pr, mw.FormDataContentType())
	pr.CloseWithError(errRequestDone)
	werr := <-writeErr
	if err != nil {
		return nil, err
	}
	if werr != nil && !errors.Is(werr, errRequestDone) {
		return nil, fmt.Errorf("marketplace: failed to write multipart body: %w", werr)
	}
	return resp, nil
}

func writeParts(mw *multipart.Writer, parts []integration.MultipartPart) error {
	for _, part := range parts {
		header := make(textproto.MIMEHeader)
		disposition := fmt.Sprintf(`form-data; name="%s"`, escapeQuotes(part.FieldName))
		if part.FileName != "" {
			disposition += fmt.Sprintf(`; filename="%s"`, escapeQuotes(part.FileName))
		}
		header.Set("Content-Disposition", disposition)

		contentType := part.ContentType
		if contentType == "" && part.FileName != "" {
			contentType = "application/octet-stream"
		}
		if contentType != "" {
			header.Set("Content-Type", contentType)
		}

		w, err := mw.CreatePart(header)
		if err != nil {
			return err
		}
		if part.Content != nil {
			if _, err := io.Copy(w, part.Content); err != nil {
				return fmt.Errorf("part %s: %w", part.FieldName, err)
			}
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// resolve turns a path or continuation link into a request URL
func (c *Client) resolve(target string) (*url.URL, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("marketplace: invalid target %q: %w", target, err)
	}
	if u.IsAbs() {
		return u, nil
	}
	if !strings.HasPrefix(target, "/") {
		target = "/" + target
	}
	u, err = url.Parse(c.config.BaseURL + target)
	if err != nil {
		return nil, fmt.Errorf("marketplace: invalid target %q: %w", target, err)
	}
	return u, nil
}

func (c *Client) do(ctx context.Context, method string, u *url.URL, body io.Reader, contentType string) (*integration.APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("marketplace: failed to create request: %w", err)
	}

	req.Header.Set("Authorization", c.config.APIKey)
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", integration.ErrTransport, method, redact(u), err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: failed to read response: %w", integration.ErrTransport, method, redact(u), err)
	}
	if len(respBody) > maxResponseSize {
		return nil, fmt.Errorf("%w: %s %s: %w: limit is %d bytes", integration.ErrTransport, method, redact(u), ErrResponseTooLarge, maxResponseSize)
	}

	c.logger.Debug("Marketplace request",
		zap.String("method", method),
		zap.String("url", redact(u)),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.Int("response_bytes", len(respBody)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &integration.HTTPStatusError{
			Method:     method,
			URL:        redact(u),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	return &integration.APIResponse{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

// redact drops userinfo from URLs before they reach logs or errors
func redact(u *url.URL) string {
	return u.Redacted()
}
