package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kapu/meal-browser-go/internal/constants"
	"github.com/kapu/meal-browser-go/internal/util"
	"github.com/kapu/meal-browser-go/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ResponseCache stores raw response bodies keyed by request URL.
type ResponseCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, bool, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Options struct {
	BaseURL          string
	HTTPClient       *http.Client
	Timeout          time.Duration
	RateLimit        float64 // requests per second, 0 = unlimited
	RateBurst        int
	BreakerThreshold int // 0 disables the breaker
	BreakerReset     time.Duration
	Cache            ResponseCache
	CacheTTL         time.Duration
}

// Client talks to TheMealDB. Every lookup is a single GET; any failure is
// logged and reported as an absent result, never as an error.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *util.CircuitBreaker
	cache      ResponseCache
	cacheTTL   time.Duration
	logger     *zap.Logger
}

func NewClient(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = constants.APIConfig.MealDBBaseURL
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}

	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.RateBurst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		limiter:    limiter,
		breaker:    util.NewCircuitBreaker(opts.BreakerThreshold, opts.BreakerReset, logger),
		cache:      opts.Cache,
		cacheTTL:   opts.CacheTTL,
		logger:     logger,
	}
}

// FetchJSON GETs rawURL and decodes the body into dest. It reports false on
// transport errors, non-2xx statuses and undecodable bodies.
func (c *Client) FetchJSON(ctx context.Context, rawURL string, dest any) bool {
	endpoint := endpointLabel(rawURL)

	if body, ok := c.cached(ctx, rawURL); ok {
		if err := json.Unmarshal(body, dest); err == nil {
			upstreamRequestsTotal.WithLabelValues(endpoint, outcomeCacheHit).Inc()
			return true
		}
		c.logger.Warn("Discarding undecodable cached response", zap.String("url", rawURL))
		c.evict(ctx, rawURL)
	}

	if !c.breaker.Allow() {
		upstreamRequestsTotal.WithLabelValues(endpoint, outcomeCircuitOpen).Inc()
		c.logger.Warn("MealDB circuit open, skipping request", zap.String("url", rawURL))
		return false
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.breaker.Release()
			upstreamRequestsTotal.WithLabelValues(endpoint, outcomeRateLimited).Inc()
			c.logger.Warn("MealDB request not sent", zap.String("url", rawURL), zap.Error(err))
			return false
		}
	}

	start := time.Now()
	body, outcome, err := c.get(ctx, rawURL)
	upstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

	if err == nil {
		if decodeErr := json.Unmarshal(body, dest); decodeErr != nil {
			outcome = outcomeDecodeErr
			err = errors.NewAPIError("failed to decode response", http.StatusBadGateway, map[string]any{
				"url": rawURL,
			}).WithCause(decodeErr)
		}
	}
	upstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()

	if err != nil {
		c.logger.Error("Error fetching data", zap.String("url", rawURL), zap.String("outcome", outcome), zap.Error(err))
		return false
	}

	c.store(ctx, rawURL, body)
	return true
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		c.breaker.Release()
		return nil, outcomeTransportErr, errors.NewAPIError("failed to create request", 500, map[string]any{
			"url": rawURL,
		}).WithCause(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// a cancelled session is not an upstream failure
		if ctx.Err() != nil {
			c.breaker.Release()
		} else {
			c.breaker.RecordFailure()
		}
		return nil, outcomeTransportErr, errors.NewAPIError("request failed", 502, map[string]any{
			"url": rawURL,
		}).WithCause(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.breaker.RecordFailure()
		return nil, outcomeTransportErr, errors.NewAPIError("failed to read response", 502, map[string]any{
			"url": rawURL,
		}).WithCause(err)
	}

	if resp.StatusCode >= 500 {
		c.breaker.RecordFailure()
	} else {
		c.breaker.RecordSuccess()
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, outcomeStatusErr, errors.NewAPIError(
			fmt.Sprintf("MealDB API error: %s", resp.Status),
			resp.StatusCode,
			map[string]any{
				"url":  rawURL,
				"body": truncateBody(body),
			},
		)
	}

	return body, outcomeOK, nil
}

func (c *Client) cached(ctx context.Context, key string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	body, ok, err := c.cache.GetBytes(ctx, key)
	if err != nil {
		c.logger.Warn("Response cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return body, ok
}

func (c *Client) store(ctx context.Context, key string, body []byte) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	if err := c.cache.SetBytes(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("Response cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Client) evict(ctx context.Context, key string) {
	if err := c.cache.Del(ctx, key); err != nil {
		c.logger.Warn("Response cache delete failed", zap.String("key", key), zap.Error(err))
	}
}

// URL builds an absolute endpoint URL with optional query parameters given as
// key/value pairs.
func (c *Client) URL(path string, kv ...string) string {
	u := c.baseURL + path
	if len(kv) < 2 {
		return u
	}
	params := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		params.Set(kv[i], kv[i+1])
	}
	return u + "?" + params.Encode()
}

func endpointLabel(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "unknown"
	}
	idx := strings.LastIndex(u.Path, "/")
	return u.Path[idx+1:]
}

func truncateBody(body []byte) string {
	s := string(body)
	if len(s) > 200 {
		s = s[:200]
	}
	return s
}
