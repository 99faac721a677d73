// Package fetcher retrieves feed documents over HTTP with conditional
// requests and per-host rate limiting.
package fetcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	defaultTimeout = 15 * time.Second
	maxRedirects   = 5
	maxBodyBytes   = 10 << 20
)

var ErrTooLarge = errors.New("feed body exceeds size limit")

// StatusError reports a non-success HTTP status from the origin.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

type Status int

const (
	// StatusFetched means the body was retrieved and differs from the
	// previously seen document.
	StatusFetched Status = iota
	// StatusUnchanged means the origin answered 304 or the body hashed
	// identically to the last fetch.
	StatusUnchanged
)

// Validator carries the conditional-request state between fetches.
type Validator struct {
	ETag         string
	LastModified string
	ContentHash  string
}

type Result struct {
	Status    Status
	Body      []byte
	Validator Validator
}

type Client interface {
	Fetch(ctx context.Context, url string, prev Validator) (Result, error)
}

type httpClient struct {
	client    *http.Client
	userAgent string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	perHost  rate.Limit
	burst    int
}

type Option func(*httpClient)

// WithHTTPClient swaps the underlying transport, mainly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(f *httpClient) {
		f.client = c
	}
}

// WithPerHostRate overrides the per-host request rate.
func WithPerHostRate(limit rate.Limit, burst int) Option {
	return func(f *httpClient) {
		f.perHost = limit
		f.burst = burst
	}
}

func New(userAgent string, opts ...Option) Client {
	f := &httpClient{
		client: &http.Client{
			Timeout: defaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
		limiters:  make(map[string]*rate.Limiter),
		perHost:   rate.Every(time.Second),
		burst:     3,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *httpClient) Fetch(ctx context.Context, url string, prev Validator) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")
	if prev.ETag != "" {
		req.Header.Set("If-None-Match", prev.ETag)
	}
	if prev.LastModified != "" {
		req.Header.Set("If-Modified-Since", prev.LastModified)
	}

	if err := f.limiter(req.URL.Host).Wait(ctx); err != nil {
		return Result{}, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		return Result{Status: StatusUnchanged, Validator: prev}, nil
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Result{}, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return Result{}, fmt.Errorf("read body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return Result{}, ErrTooLarge
	}

	sum := sha256.Sum256(body)
	validator := Validator{
		ETag:         strings.TrimSpace(resp.Header.Get("ETag")),
		LastModified: strings.TrimSpace(resp.Header.Get("Last-Modified")),
		ContentHash:  hex.EncodeToString(sum[:]),
	}

	// Some origins ignore conditional headers; the hash catches those.
	if prev.ContentHash != "" && prev.ContentHash == validator.ContentHash {
		return Result{Status: StatusUnchanged, Validator: validator}, nil
	}

	return Result{Status: StatusFetched, Body: body, Validator: validator}, nil
}

func (f *httpClient) limiter(host string) *rate.Limiter {
	f.mu.Lock()
	defer f.mu.Unlock()
	limiter, ok := f.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(f.perHost, f.burst)
		f.limiters[host] = limiter
	}
	return limiter
}
