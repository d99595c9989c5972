// Package apiclient is the HTTP JSON client for the remote shop API.
// Every call is a single request/response round trip: no retries, no caching.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/target/shop-admin/internal/ports"
)

const defaultTimeout = 15 * time.Second

// Options configures a Client.
type Options struct {
	BaseURL     string
	HTTPClient  *http.Client
	TokenSource oauth2.TokenSource
	Timeout     time.Duration
	Logger      *slog.Logger
}

// Client issues requests against the shop API base URL, attaching the bearer
// token from its TokenSource when one is configured.
type Client struct {
	baseURL *url.URL
	base    *http.Client
	hc      *http.Client
	logger  *slog.Logger
}

// New builds a Client. BaseURL must be absolute.
func New(opts Options) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("api base url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse api base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("api base url must be absolute: %q", raw)
	}

	base := opts.HTTPClient
	if base == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		base = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{baseURL: u, base: base, logger: logger.With("component", "apiclient")}
	c.hc = c.clientFor(opts.TokenSource)
	return c, nil
}

// WithTokenSource returns a copy of c that authenticates with ts.
func (c *Client) WithTokenSource(ts oauth2.TokenSource) *Client {
	cp := *c
	cp.hc = c.clientFor(ts)
	return &cp
}

// WithToken returns a copy of c that authenticates with a fixed bearer token.
func (c *Client) WithToken(token string) *Client {
	return c.WithTokenSource(oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}))
}

func (c *Client) clientFor(ts oauth2.TokenSource) *http.Client {
	if ts == nil {
		return c.base
	}
	transport := c.base.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Transport:     &oauth2.Transport{Source: ts, Base: transport},
		Timeout:       c.base.Timeout,
		CheckRedirect: c.base.CheckRedirect,
		Jar:           c.base.Jar,
	}
}

// request describes one round trip.
type request struct {
	method string
	path   string
	query  url.Values
	body   any
	files  []ports.Upload
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs the request and returns the raw response body of a 2xx reply.
// Non-2xx replies become *APIError.
func (c *Client) do(ctx context.Context, in request) ([]byte, error) {
	body, contentType, err := encodeBody(in.body, in.files)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, in.method, c.endpoint(in.path, in.query), body)
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", in.method, in.path, err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", in.method, in.path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.DebugContext(ctx, "close response body", "error", closeErr)
		}
	}()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", in.method, in.path, err)
	}

	c.logger.DebugContext(ctx, "api call",
		"method", in.method,
		"path", in.path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(in.method, in.path, resp.StatusCode, raw)
	}
	return raw, nil
}

// doJSON performs the request and decodes the reply into out when out is non-nil.
func (c *Client) doJSON(ctx context.Context, in request, out any) error {
	raw, err := c.do(ctx, in)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", in.method, in.path, err)
	}
	return nil
}

func encodeBody(payload any, files []ports.Upload) (io.Reader, string, error) {
	if len(files) > 0 {
		return encodeMultipart(payload, files)
	}
	if payload == nil {
		return nil, "", nil
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, "", fmt.Errorf("encode payload: %w", err)
	}
	return bytes.NewReader(b), "application/json", nil
}

// encodeMultipart sends the draft as a "payload" JSON part and each file
// under its own field name, matching what the shop API's upload middleware reads.
func encodeMultipart(payload any, files []ports.Upload) (io.Reader, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, "", fmt.Errorf("encode payload: %w", err)
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="payload"`)
		h.Set("Content-Type", "application/json")
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("create payload part: %w", err)
		}
		if _, err := part.Write(b); err != nil {
			return nil, "", fmt.Errorf("write payload part: %w", err)
		}
	}

	for _, f := range files {
		if err := writeFilePart(mw, f); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return &buf, mw.FormDataContentType(), nil
}

func writeFilePart(mw *multipart.Writer, f ports.Upload) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open upload %s: %w", f.Field, err)
	}
	defer src.Close()

	name := f.Filename
	if name == "" {
		name = filepath.Base(f.Path)
	}
	ct := f.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, f.Field, name))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create file part %s: %w", f.Field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("copy upload %s: %w", f.Field, err)
	}
	return nil
}
