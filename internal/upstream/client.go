// Package upstream fetches candidate financing requests from the remote import source.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"loan-scorer/internal/apperrors"
	"loan-scorer/internal/features"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
	maxIdleConns   = 10
	userAgent      = "loan-scorer/1.0"

	// DefaultMaxBodyBytes caps the import payload read into memory.
	DefaultMaxBodyBytes int64 = 32 << 20
)

// Client reads the import source. It never retries: a failed fetch fails the whole import.
type Client struct {
	url          string
	maxBodyBytes int64
	http         *http.Client
	logger       *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithMaxBodyBytes overrides the response size cap. n <= 0 keeps the default.
func WithMaxBodyBytes(n int64) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxBodyBytes = n
		}
	}
}

func NewClient(url string, timeout time.Duration, logger *zap.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	c := &Client{
		url:          url,
		maxBodyBytes: DefaultMaxBodyBytes,
		http: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:          maxIdleConns,
				IdleConnTimeout:       timeout,
				ResponseHeaderTimeout: timeout,
			},
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns the raw records published by the source, in source order.
func (c *Client) Fetch(ctx context.Context) ([]features.Record, error) {
	if c.url == "" {
		return nil, fmt.Errorf("import source URL not configured: %w", apperrors.ErrUpstream)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request for %s: %w: %w", c.url, err, apperrors.ErrUpstream)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s: %w: %w", c.url, err, apperrors.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error fetching records (status: %d - %s): %w", resp.StatusCode, resp.Status, apperrors.ErrUpstream)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w: %w", err, apperrors.ErrUpstream)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return nil, fmt.Errorf("response exceeds %d bytes: %w", c.maxBodyBytes, apperrors.ErrUpstream)
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var records []features.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("error decoding records: %w: %w", err, apperrors.ErrUpstream)
	}

	c.logger.Info("Fetched import records",
		zap.String("url", c.url),
		zap.Int("records", len(records)),
	)
	return records, nil
}
