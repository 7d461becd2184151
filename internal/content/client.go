package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noorskin/storefront/internal/config"
)

// Entry is one CMS document rendered at a URL path.
type Entry struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	ModelName string         `json:"modelName"`
	Published string         `json:"published,omitempty"`
	Data      map[string]any `json:"data"`
}

// QueryOptions are the request query parameters forwarded to the CMS.
type QueryOptions map[string]string

// Fetcher is the content collaborator consumed by storefront pages.
type Fetcher interface {
	FetchEntry(ctx context.Context, modelName, path string, opts QueryOptions) (*Entry, error)
}

// Client reads entries from the CMS content API.
type Client struct {
	baseURL  string
	apiKey   string
	http     *http.Client
	cache    redis.UniversalClient
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewClient builds a content client. cache may be nil.
func NewClient(cfg config.CMSConfig, cache redis.UniversalClient, logger *zap.Logger) *Client {
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: timeout},
		cache:    cache,
		cacheTTL: cfg.CacheTTL(),
		logger:   logger,
	}
}

type resultsResponse struct {
	Results []Entry `json:"results"`
}

// FetchEntry returns the entry of modelName targeting path, or nil when none matches.
// Preview and edit requests include unpublished content and skip the cache.
func (c *Client) FetchEntry(ctx context.Context, modelName, path string, opts QueryOptions) (*Entry, error) {
	if modelName == "" {
		return nil, errors.New("model name required")
	}
	if path == "" {
		path = "/"
	}
	draft := IsPreviewing(opts) || IsEditing(opts)

	if !draft {
		if entry, ok := c.cached(ctx, modelName, path); ok {
			return entry, nil
		}
	}

	query := url.Values{}
	query.Set("apiKey", c.apiKey)
	query.Set("userAttributes.urlPath", path)
	query.Set("limit", "1")
	if draft {
		query.Set("includeUnpublished", "true")
		query.Set("cachebust", "true")
	}
	endpoint := fmt.Sprintf("%s/%s?%s", c.baseURL, url.PathEscape(modelName), query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("content api %s: status %d: %s", modelName, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var decoded resultsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode content: %w", err)
	}
	if len(decoded.Results) == 0 {
		return nil, nil
	}
	entry := decoded.Results[0]
	if entry.ModelName == "" {
		entry.ModelName = modelName
	}
	if !draft {
		c.store(ctx, modelName, path, &entry)
	}
	return &entry, nil
}

func cacheKey(modelName, path string) string {
	return "content:" + modelName + ":" + path
}

func (c *Client) cached(ctx context.Context, modelName, path string) (*Entry, bool) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return nil, false
	}
	data, err := c.cache.Get(ctx, cacheKey(modelName, path)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("content cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}
	return &entry, true
}

func (c *Client) store(ctx context.Context, modelName, path string, entry *Entry) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, cacheKey(modelName, path), data, c.cacheTTL).Err(); err != nil {
		c.logger.Warn("content cache write failed", zap.Error(err))
	}
}
