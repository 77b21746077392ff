package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hojin-dev/newschat/internal/grounding"
	"github.com/hojin-dev/newschat/internal/log"
	"github.com/hojin-dev/newschat/internal/session"
)

// DefaultGuardianBaseURL is the Guardian content search endpoint.
const DefaultGuardianBaseURL = "https://content.guardianapis.com/search"

// guardianSourceName is the fixed source attribution for Guardian
// records; the vendor payload does not carry one per item.
const guardianSourceName = "The Guardian"

// Guardian is the secondary news search provider.
type Guardian struct {
	apiKey   string
	baseURL  string
	pageSize int
	client   *http.Client
	logger   log.Logger
}

// NewGuardian creates the Guardian provider. An empty apiKey makes the
// provider unavailable. baseURL overrides the endpoint for tests.
func NewGuardian(apiKey, baseURL string, client *http.Client, logger log.Logger) *Guardian {
	if baseURL == "" {
		baseURL = DefaultGuardianBaseURL
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Guardian{
		apiKey:   apiKey,
		baseURL:  baseURL,
		pageSize: MaxPageSize,
		client:   client,
		logger:   logger,
	}
}

// Name implements Provider.
func (g *Guardian) Name() string { return "guardian" }

// Available implements Provider: news-mode keys only, credential
// required.
func (g *Guardian) Available(key session.QueryKey) bool {
	return key.Mode == session.ModeNews && g.apiKey != ""
}

// guardianResponse mirrors the vendor payload shape.
type guardianResponse struct {
	Response struct {
		Results []guardianResult `json:"results"`
	} `json:"response"`
}

type guardianResult struct {
	WebTitle           string `json:"webTitle"`
	WebURL             string `json:"webUrl"`
	WebPublicationDate string `json:"webPublicationDate"`
	Fields             struct {
		TrailText string `json:"trailText"`
		Thumbnail string `json:"thumbnail"`
	} `json:"fields"`
}

// Fetch implements Provider.
func (g *Guardian) Fetch(ctx context.Context, key session.QueryKey) ([]grounding.Record, error) {
	params := url.Values{}
	params.Set("q", key.Keyword)
	params.Set("page-size", strconv.Itoa(g.pageSize))
	params.Set("show-fields", "thumbnail,trailText,headline")
	params.Set("api-key", g.apiKey)

	body, err := fetchJSON(ctx, g.client, g.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp guardianResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding response: %w", ErrFetch, err)
	}

	records := make([]grounding.Record, 0, len(resp.Response.Results))
	for _, item := range resp.Response.Results {
		records = append(records, grounding.Record{
			Title:       item.WebTitle,
			Summary:     item.Fields.TrailText,
			SourceName:  guardianSourceName,
			URL:         item.WebURL,
			ImageURL:    item.Fields.Thumbnail,
			PublishedAt: parseTimestamp(item.WebPublicationDate),
		})
		if len(records) == g.pageSize {
			break
		}
	}
	return records, nil
}
