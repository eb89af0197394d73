package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/aseeltahaa/smartspace/errors"
)

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 64 << 10

// Client is the single HTTP accessor for the SmartSpace REST API. It does not
// retry and applies no timeout unless one is configured.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Option customises a Client
type Option func(*Client)

// WithTimeout sets a whole-request timeout. Zero keeps requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// WithLogger sets the logger used for request tracing
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithBaseTransport replaces the underlying round tripper
func WithBaseTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		if bt, ok := c.http.Transport.(*bearerTransport); ok {
			bt.base = rt
		}
	}
}

// New creates a client for baseURL that reads the bearer token from tokens
func New(baseURL string, tokens TokenProvider, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &bearerTransport{tokens: tokens, base: http.DefaultTransport},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON answer into out (if non-nil)
func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	if len(query) > 0 {
		path = path + "?" + query.Encode()
	}
	return c.DoJSON(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.DoJSON(ctx, http.MethodPost, path, body, out)
}

// Put sends body as JSON
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.DoJSON(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.DoJSON(ctx, http.MethodDelete, path, nil, nil)
}

// DoJSON performs a request with an optional JSON body and decodes a JSON answer
func (c *Client) DoJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperrors.ErrInvalidArgument(fmt.Sprintf("cannot encode request body: %v", err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := c.newRequest(ctx, method, path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	return c.send(req, path, out)
}

// FilePart is one file of a multipart upload
type FilePart struct {
	Field       string
	Name        string
	ContentType string
	Content     io.Reader
}

// PostMultipart sends fields and files with POST
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out interface{}) error {
	return c.SendMultipart(ctx, http.MethodPost, path, fields, files, out)
}

// PutMultipart sends fields and files with PUT
func (c *Client) PutMultipart(ctx context.Context, path string, fields map[string]string, files []FilePart, out interface{}) error {
	return c.SendMultipart(ctx, http.MethodPut, path, fields, files, out)
}

// SendMultipart sends form fields and files as multipart/form-data
func (c *Client) SendMultipart(ctx context.Context, method, path string, fields map[string]string, files []FilePart, out interface{}) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := w.WriteField(k, fields[k]); err != nil {
			return apperrors.ErrInvalidArgument(fmt.Sprintf("cannot encode field %s: %v", k, err))
		}
	}

	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, escapeQuotes(f.Field), escapeQuotes(f.Name)))
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		part, err := w.CreatePart(h)
		if err != nil {
			return apperrors.ErrInvalidArgument(fmt.Sprintf("cannot encode file %s: %v", f.Name, err))
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return apperrors.ErrInvalidArgument(fmt.Sprintf("cannot read file %s: %v", f.Name, err))
		}
	}
	if err := w.Close(); err != nil {
		return apperrors.ErrInvalidArgument(fmt.Sprintf("cannot finish multipart body: %v", err))
	}

	req, err := c.newRequest(ctx, method, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	return c.send(req, path, out)
}

// Download streams a binary response into w and returns its content type
func (c *Client) Download(ctx context.Context, path string, w io.Writer) (string, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.ErrNetwork(req.Method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", c.statusError(req, path, resp)
	}
	if _, err := io.Copy(w, resp.Body); err != nil {
		return "", apperrors.ErrNetwork(req.Method, path, err)
	}
	return resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument(fmt.Sprintf("invalid request %s %s: %v", method, path, err))
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) send(req *http.Request, path string, out interface{}) error {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("api.request.failed",
				zap.String("method", req.Method),
				zap.String("path", path),
				zap.String("request_id", req.Header.Get("X-Request-ID")),
				zap.Error(err),
			)
		}
		return apperrors.ErrNetwork(req.Method, path, err)
	}
	defer resp.Body.Close()

	if c.logger != nil {
		c.logger.Debug("api.request",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", req.Header.Get("X-Request-ID")),
		)
	}

	if resp.StatusCode >= 400 {
		return c.statusError(req, path, resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.ErrNetwork(req.Method, path, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.ErrDecodeFailed(path, err)
	}
	return nil
}

func (c *Client) statusError(req *http.Request, path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	appErr := apperrors.ErrHTTPStatus(req.Method, path, resp.StatusCode, body)
	if c.logger != nil {
		c.logger.Info("api.request.rejected",
			zap.String("method", req.Method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", appErr.Message),
		)
	}
	return appErr
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}

// PathEscape joins escaped segments into an API path
func PathEscape(segments ...string) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
