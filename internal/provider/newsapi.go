package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/i18n"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/session"
)

// DefaultNewsAPIBaseURL is the NewsAPI "everything" endpoint.
const DefaultNewsAPIBaseURL = "https://newsapi.org/v2/everything"

// maxResponseSize bounds provider response bodies (1 MB is far above
// a 10-article page).
const maxResponseSize = 1 << 20

// NewsAPI is the primary news search provider (newsapi.org).
type NewsAPI struct {
	apiKey   string
	baseURL  string
	pageSize int
	client   *http.Client
	logger   log.Logger
}

// NewNewsAPI creates the NewsAPI provider. An empty apiKey makes the
// provider unavailable (skipped by the chain, never attempted).
// baseURL overrides the endpoint for tests; empty means production.
func NewNewsAPI(apiKey, baseURL string, client *http.Client, logger log.Logger) *NewsAPI {
	if baseURL == "" {
		baseURL = DefaultNewsAPIBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &NewsAPI{
		apiKey:   apiKey,
		baseURL:  baseURL,
		pageSize: MaxPageSize,
		client:   client,
		logger:   logger,
	}
}

// Name implements Provider.
func (n *NewsAPI) Name() string { return "newsapi" }

// Available implements Provider: news-mode keys only, credential
// required.
func (n *NewsAPI) Available(key session.QueryKey) bool {
	return key.Mode == session.ModeNews && n.apiKey != ""
}

// newsAPIResponse mirrors the vendor payload shape.
type newsAPIResponse struct {
	Status   string           `json:"status"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Source      struct {
		Name string `json:"name"`
	} `json:"source"`
}

// Fetch implements Provider. Records come back in the vendor's
// publishedAt ordering, newest first.
func (n *NewsAPI) Fetch(ctx context.Context, key session.QueryKey) ([]grounding.Record, error) {
	params := url.Values{}
	params.Set("q", key.Keyword)
	params.Set("language", apiLanguage(key.Locale))
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(n.pageSize))
	params.Set("apiKey", n.apiKey)

	body, err := fetchJSON(ctx, n.client, n.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp newsAPIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrFetch, err)
	}

	records := make([]grounding.Record, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		records = append(records, grounding.Record{
			Title:       a.Title,
			Summary:     a.Description,
			SourceName:  a.Source.Name,
			URL:         a.URL,
			ImageURL:    a.URLToImage,
			PublishedAt: parseTimestamp(a.PublishedAt),
		})
		if len(records) == n.pageSize {
			break
		}
	}
	return records, nil
}

// apiLanguage maps a locale to the two-letter language code the news
// APIs expect.
func apiLanguage(loc i18n.Locale) string {
	if loc == i18n.LocaleKO {
		return "ko"
	}
	return "en"
}

// parseTimestamp parses a vendor timestamp, returning the zero time
// when absent or malformed; a bad date never fails the record.
func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// fetchJSON performs a GET and returns the body, converting transport
// errors and non-2xx statuses to wrapped ErrFetch. The body read is
// size-limited to keep a misbehaving endpoint from exhausting memory.
func fetchJSON(ctx context.Context, client *http.Client, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %w", ErrFetch, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %w", ErrFetch, err)
	}
	return body, nil
}
