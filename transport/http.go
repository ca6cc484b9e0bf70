package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// HTTP is the default Transport backed by net/http
type HTTP struct {
	base   string
	client *http.Client
}

// Opt configures the HTTP transport
type Opt func(*HTTP)

// WithClient overrides the underlying http client
func WithClient(client *http.Client) Opt {
	return func(h *HTTP) {
		h.client = client
	}
}

// NewHTTP returns an HTTP transport rooted at baseURL
func NewHTTP(baseURL string, opts ...Opt) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("transport: invalid base url: %q", baseURL)
	}
	h := &HTTP{
		base:   strings.TrimSuffix(u.String(), "/"),
		client: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

func (h *HTTP) Do(ctx context.Context, req *Request) (*Response, error) {
	target := h.base + req.Path
	if len(req.Params) > 0 {
		values := url.Values{}
		for k, v := range req.Params {
			values.Set(k, v)
		}
		target += "?" + values.Encode()
	}
	var body io.Reader
	switch {
	case req.Stream != nil:
		body = req.Stream
	case len(req.Body) > 0:
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, Permanent(err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	bits, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &Response{
		Status: resp.StatusCode,
		Body:   bits,
	}, nil
}
