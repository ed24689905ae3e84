package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 8 << 20

// HTTPGateway sends requests to the backend with net/http.
type HTTPGateway struct {
	baseURL    string
	authToken  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPGateway creates a gateway for cfg.BaseURL.
func NewHTTPGateway(cfg Config) (*HTTPGateway, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &HTTPGateway{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		authToken:  cfg.AuthToken,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return g, nil
}

func (g *HTTPGateway) Endpoint() string {
	return g.baseURL
}

func (g *HTTPGateway) Do(ctx context.Context, req Request) (*Response, error) {
	op := OperationFrom(ctx)

	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, networkError(op, err)
		}
	}

	var body io.Reader
	if req.Body != nil {
		b, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Op: op, Message: fmt.Sprintf("encode request: %v", err), Err: err}
		}
		body = bytes.NewReader(b)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, g.baseURL+req.Path, body)
	if err != nil {
		return nil, &Error{Op: op, Message: fmt.Sprintf("build request: %v", err), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if g.authToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+g.authToken)
	}

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, networkError(op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, &Error{Op: op, Status: resp.StatusCode, Message: fmt.Sprintf("read response: %v", err), Err: err}
	}
	if len(raw) > maxBodySize {
		return nil, &Error{Op: op, Status: resp.StatusCode, Message: fmt.Sprintf("response body exceeds %d bytes", maxBodySize), Err: ErrBodyTooLarge}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp.StatusCode, raw)
	}

	return &Response{Status: resp.StatusCode, Body: raw}, nil
}

// errorDetail pulls a readable reason out of an error body, if it has one.
func errorDetail(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	r := gjson.ParseBytes(body)
	for _, key := range []string{"detail", "message", "error"} {
		v := r.Get(key)
		if v.Type == gjson.String && v.Str != "" {
			return v.Str
		}
	}
	return ""
}

var _ Gateway = (*HTTPGateway)(nil)
