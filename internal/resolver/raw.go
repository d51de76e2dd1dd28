package resolver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const rawContentBase = "https://raw.githubusercontent.com"

// RawClient fetches file content from the raw-content host. Fetches are
// paced by a client-side limiter so a message stuffed with blob links
// cannot burst the host.
type RawClient struct {
	base    string
	client  *http.Client
	limiter *rate.Limiter
}

// NewRawClient builds a fetcher against raw.githubusercontent.com.
func NewRawClient() *RawClient {
	return &RawClient{
		base:    rawContentBase,
		client:  &http.Client{Timeout: 10 * time.Second},
		limiter: rate.NewLimiter(rate.Every(1*time.Second), 5), // 5 requests per second
	}
}

// NewRawClientWithBase is NewRawClient against a different host, used by
// tests.
func NewRawClientWithBase(base string) *RawClient {
	c := NewRawClient()
	c.base = base
	return c
}

// Fetch downloads the file at owner/repo/ref/path. It makes exactly one
// attempt: any failure is logged and reported as "no content", never
// retried.
func (c *RawClient) Fetch(ctx context.Context, owner, repo, ref, path string) (string, bool) {
	url := fmt.Sprintf("%s/%s/%s/%s/%s", c.base, owner, repo, ref, path)

	if err := c.limiter.Wait(ctx); err != nil {
		return "", false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to build raw content request")
		return "", false
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to fetch raw content")
		return "", false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Debug().Int("status", resp.StatusCode).Str("url", url).Msg("raw content fetch rejected")
		return "", false
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn().Err(err).Str("url", url).Msg("failed to read raw content body")
		return "", false
	}
	return string(body), true
}
