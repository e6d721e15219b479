// Package search provides a categorized web search tool backed by the
// Brave Search API. Each category (web, image, video, news) queries its
// own endpoint and parses its own response shape.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/im-vedant/llm4s/schema"
	"github.com/im-vedant/llm4s/tool"
)

const defaultBaseURL = "https://api.search.brave.com"

// Category selects which search vertical to query.
type Category string

const (
	CategoryWeb   Category = "web"
	CategoryImage Category = "image"
	CategoryVideo Category = "video"
	CategoryNews  Category = "news"
)

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWeb, CategoryImage, CategoryVideo, CategoryNews:
		return Category(s), nil
	}
	return "", fmt.Errorf("search: unknown category %q", s)
}

// path returns the API endpoint for the category.
func (c Category) path() string {
	switch c {
	case CategoryImage:
		return "/res/v1/images/search"
	case CategoryVideo:
		return "/res/v1/videos/search"
	case CategoryNews:
		return "/res/v1/news/search"
	default:
		return "/res/v1/web/search"
	}
}

// safeSearch maps the requested safe-search level to what the category's
// endpoint accepts. Image search only supports off and strict, so moderate
// is promoted to strict there.
func (c Category) safeSearch(level string) string {
	if c == CategoryImage && level == "moderate" {
		return "strict"
	}
	return level
}

// Option configures the search tool.
type Option func(*config)

type config struct {
	client          *http.Client
	baseURL         string
	apiKey          string
	maxResponseSize int64
	timeout         time.Duration
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *config) {
		cfg.client = c
	}
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(cfg *config) {
		cfg.baseURL = u
	}
}

// WithMaxResponseSize sets the maximum response body size.
// Default is 1MB.
func WithMaxResponseSize(bytes int64) Option {
	return func(cfg *config) {
		cfg.maxResponseSize = bytes
	}
}

// WithTimeout sets the request timeout.
// Default is 30 seconds.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

func applyOpts(apiKey string, opts []Option) *config {
	cfg := &config{
		baseURL:         defaultBaseURL,
		apiKey:          apiKey,
		maxResponseSize: 1024 * 1024, // 1MB default
		timeout:         30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.client == nil {
		cfg.client = &http.Client{
			Timeout: cfg.timeout,
		}
	}
	return cfg
}

// Result is a single search hit, normalized across categories.
type Result struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Age         string `json:"age,omitempty"`
}

// New creates the categorized search tool.
func New(apiKey string, opts ...Option) (*tool.Function, error) {
	cfg := applyOpts(apiKey, opts)

	params, err := schema.Object("Web search parameters").
		Property("query", schema.String("Search query")).
		OptionalProperty("category", schema.String("Search vertical", "web", "image", "video", "news")).
		OptionalProperty("count", schema.Number("Number of results to return (1-20)")).
		OptionalProperty("safe_search", schema.String("Safe search level", "off", "moderate", "strict")).
		Build()
	if err != nil {
		return nil, err
	}

	return tool.NewBuilder().
		Name("search").
		Description("Search the web for current information. Supports web, image, video, and news results.").
		Schema(params).
		Handler(func(ctx context.Context, args *tool.Extractor) (string, error) {
			query, err := args.String("query")
			if err != nil {
				return "", err
			}
			catStr, err := args.StringOr("category", string(CategoryWeb))
			if err != nil {
				return "", err
			}
			category, err := ParseCategory(catStr)
			if err != nil {
				return "", err
			}
			count, err := args.NumberOr("count", 10)
			if err != nil {
				return "", err
			}
			safe, err := args.StringOr("safe_search", "moderate")
			if err != nil {
				return "", err
			}

			results, err := cfg.search(ctx, category, query, int(count), safe)
			if err != nil {
				return "", err
			}

			out, err := json.Marshal(struct {
				Category Category `json:"category"`
				Query    string   `json:"query"`
				Count    int      `json:"count"`
				Results  []Result `json:"results"`
			}{
				Category: category,
				Query:    query,
				Count:    len(results),
				Results:  results,
			})
			if err != nil {
				return "", err
			}
			return string(out), nil
		}).
		Build()
}

// MustNew is like New but panics on error.
func MustNew(apiKey string, opts ...Option) *tool.Function {
	fn, err := New(apiKey, opts...)
	if err != nil {
		panic(err)
	}
	return fn
}

func (c *config) search(ctx context.Context, category Category, query string, count int, safe string) ([]Result, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("count", strconv.Itoa(count))
	q.Set("safesearch", category.safeSearch(safe))

	reqURL := c.baseURL + category.path() + "?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxResponseSize))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: %s returned %d: %s", category, resp.StatusCode, string(body))
	}

	return parseResults(category, body)
}

// parseResults decodes the category-specific response shape into the
// normalized Result form. Web search nests results under a "web" key;
// the other verticals return a top-level results list.
func parseResults(category Category, body []byte) ([]Result, error) {
	switch category {
	case CategoryWeb:
		var payload struct {
			Web struct {
				Results []struct {
					Title       string `json:"title"`
					URL         string `json:"url"`
					Description string `json:"description"`
					Age         string `json:"age"`
				} `json:"results"`
			} `json:"web"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("search: parsing web results: %w", err)
		}
		results := make([]Result, 0, len(payload.Web.Results))
		for _, r := range payload.Web.Results {
			results = append(results, Result{Title: r.Title, URL: r.URL, Description: r.Description, Age: r.Age})
		}
		return results, nil

	case CategoryImage:
		var payload struct {
			Results []struct {
				Title      string `json:"title"`
				URL        string `json:"url"`
				Properties struct {
					URL string `json:"url"`
				} `json:"properties"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("search: parsing image results: %w", err)
		}
		results := make([]Result, 0, len(payload.Results))
		for _, r := range payload.Results {
			// The properties URL points at the image itself; fall back to
			// the page URL when absent.
			imageURL := r.Properties.URL
			if imageURL == "" {
				imageURL = r.URL
			}
			results = append(results, Result{Title: r.Title, URL: imageURL})
		}
		return results, nil

	case CategoryVideo:
		var payload struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				Age         string `json:"age"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("search: parsing video results: %w", err)
		}
		results := make([]Result, 0, len(payload.Results))
		for _, r := range payload.Results {
			results = append(results, Result{Title: r.Title, URL: r.URL, Description: r.Description, Age: r.Age})
		}
		return results, nil

	case CategoryNews:
		var payload struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
				Age         string `json:"age"`
			} `json:"results"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			return nil, fmt.Errorf("search: parsing news results: %w", err)
		}
		results := make([]Result, 0, len(payload.Results))
		for _, r := range payload.Results {
			results = append(results, Result{Title: r.Title, URL: r.URL, Description: r.Description, Age: r.Age})
		}
		return results, nil
	}
	return nil, fmt.Errorf("search: unknown category %q", category)
}
