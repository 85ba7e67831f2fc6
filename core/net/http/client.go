package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"maps"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	// Buffer pool constants
	defaultBufferSize = 4096
	maxBufferSize     = 1024 * 1024 // 1MB
)

// Client represents an HTTP client with connection pooling and request optimization
type Client struct {
	client         *http.Client
	baseURL        string
	requestOptPool sync.Pool
	bufferPool     sync.Pool
}

// Option configures the HTTP client
type Option func(*Client)

// WithClient sets a custom HTTP client
func WithClient(client *http.Client) Option {
	return func(h *Client) {
		h.client = client
	}
}

// WithBaseURL sets a base URL prepended to relative request paths
func WithBaseURL(baseURL string) Option {
	return func(h *Client) {
		h.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeout sets the per-request timeout on the underlying client
func WithTimeout(timeout time.Duration) Option {
	return func(h *Client) {
		h.client.Timeout = timeout
	}
}

// New creates a new optimized HTTP client with object pooling
func New(opts ...Option) *Client {
	h := &Client{
		client: &http.Client{},
		requestOptPool: sync.Pool{
			New: func() any {
				return &RequestOption{
					header: make(map[string]string, 8),
				}
			},
		},
		bufferPool: sync.Pool{
			New: func() any {
				return bytes.NewBuffer(make([]byte, 0, defaultBufferSize))
			},
		},
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// RequestOption holds options for individual HTTP requests
type RequestOption struct {
	ctx      context.Context
	header   map[string]string
	response any
}

// WithContext sets a custom context for the request
func WithContext(ctx context.Context) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.ctx = ctx
	}
}

// WithHeader sets multiple headers for the request
func WithHeader(header map[string]string) func(*RequestOption) {
	return func(opt *RequestOption) {
		maps.Copy(opt.header, header)
	}
}

// WithResponse sets the response target object for automatic unmarshaling
// of successful responses
func WithResponse(response any) func(*RequestOption) {
	return func(opt *RequestOption) {
		opt.response = response
	}
}

// reset efficiently resets the RequestOption for reuse
func (opt *RequestOption) reset() {
	opt.ctx = nil
	for k := range opt.header {
		delete(opt.header, k)
	}
	// Set default content type
	opt.header["Content-Type"] = ContentTypeJSON
	opt.response = nil
}

// Response is a fully drained HTTP response. The body is read and closed
// before Request returns, so callers never manage the connection.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the status code is in the 2xx range
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the response body into dest
func (r *Response) Decode(dest any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, dest)
}

// Request sends an HTTP request with the specified method, URL, and body.
// A url without scheme is resolved against the client's base URL.
func (cli *Client) Request(method, url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	opt := cli.getRequestOption()
	defer cli.putRequestOption(opt)

	for _, o := range opts {
		o(opt)
	}

	req, err := cli.createRequest(method, cli.resolveURL(url), body)
	if err != nil {
		return nil, err
	}

	cli.setRequestHeaders(req, opt.header)
	if opt.ctx != nil {
		req = req.WithContext(opt.ctx)
	}

	resp, err := cli.client.Do(req)
	if err != nil {
		return nil, err
	}

	return cli.processResponse(resp, opt.response)
}

// resolveURL joins a relative path with the base URL
func (cli *Client) resolveURL(url string) string {
	if cli.baseURL == "" || strings.Contains(url, "://") {
		return url
	}
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	return cli.baseURL + url
}

// getRequestOption retrieves a RequestOption from the pool
func (cli *Client) getRequestOption() *RequestOption {
	opt := cli.requestOptPool.Get().(*RequestOption)
	opt.reset()
	return opt
}

// putRequestOption returns a RequestOption to the pool
func (cli *Client) putRequestOption(opt *RequestOption) {
	cli.requestOptPool.Put(opt)
}

// createRequest creates an HTTP request with the appropriate body
func (cli *Client) createRequest(method, url string, body any) (*http.Request, error) {
	switch v := body.(type) {
	case nil:
		return http.NewRequest(method, url, nil)
	case io.Reader:
		return http.NewRequest(method, url, v)
	default:
		return cli.createJSONRequest(method, url, v)
	}
}

// createJSONRequest creates an HTTP request with JSON body
func (cli *Client) createJSONRequest(method, url string, body any) (*http.Request, error) {
	buf := cli.getBuffer()
	defer cli.putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, err
	}

	return http.NewRequest(method, url, bytes.NewReader(buf.Bytes()))
}

// setRequestHeaders sets headers on the HTTP request
func (cli *Client) setRequestHeaders(req *http.Request, headers map[string]string) {
	for k, v := range headers {
		req.Header.Set(k, v)
	}
}

// getBuffer retrieves a buffer from the pool
func (cli *Client) getBuffer() *bytes.Buffer {
	buf := cli.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

// putBuffer returns a buffer to the pool, with size check to prevent memory leaks
func (cli *Client) putBuffer(buf *bytes.Buffer) {
	if buf.Cap() <= maxBufferSize {
		cli.bufferPool.Put(buf)
	}
}

// processResponse drains the response body and unmarshals successful
// responses into dest. Error status bodies are kept raw so callers can
// inspect the server's error payload.
func (cli *Client) processResponse(resp *http.Response, dest any) (*Response, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	out := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}

	if dest != nil && out.IsSuccess() {
		if err := out.Decode(dest); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// Convenience methods for common HTTP operations

// Get performs a GET request
func (cli *Client) Get(url string, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodGet, url, nil, opts...)
}

// Post performs a POST request with JSON body
func (cli *Client) Post(url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodPost, url, body, opts...)
}

// Put performs a PUT request with JSON body
func (cli *Client) Put(url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodPut, url, body, opts...)
}

// Delete performs a DELETE request
func (cli *Client) Delete(url string, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodDelete, url, nil, opts...)
}

// Patch performs a PATCH request with JSON body
func (cli *Client) Patch(url string, body any, opts ...func(*RequestOption)) (*Response, error) {
	return cli.Request(MethodPatch, url, body, opts...)
}
