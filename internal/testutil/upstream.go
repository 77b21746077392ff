package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

// NewsAPIPayload is a minimal valid NewsAPI everything response with n
// articles.
func NewsAPIPayload(n int) string {
	articles := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			articles += ","
		}
		articles += fmt.Sprintf(`{
			"title": "Article %d",
			"description": "Description %d",
			"url": "https://news.example.com/%d",
			"urlToImage": "https://news.example.com/%d.jpg",
			"publishedAt": "2024-01-15T1%d:00:00Z",
			"source": {"name": "Example Wire"}
		}`, i, i, i, i, i%10)
	}
	return fmt.Sprintf(`{"status":"ok","totalResults":%d,"articles":[%s]}`, n, articles)
}

// GuardianPayload is a minimal valid Guardian search response with n
// results.
func GuardianPayload(n int) string {
	results := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			results += ","
		}
		results += fmt.Sprintf(`{
			"webTitle": "Guardian Story %d",
			"webUrl": "https://www.theguardian.com/story-%d",
			"webPublicationDate": "2024-01-15T1%d:00:00Z",
			"fields": {"trailText": "Trail %d", "thumbnail": "https://media.guim.co.uk/%d.jpg"}
		}`, i, i, i%10, i, i)
	}
	return fmt.Sprintf(`{"response":{"status":"ok","results":[%s]}}`, results)
}

// UpstreamServer starts an httptest server that answers every request
// with the given status and body, and records the last request URL.
// The server is closed automatically when the test ends.
func UpstreamServer(t *testing.T, status int, body string) (*httptest.Server, *string) {
	t.Helper()
	var lastURL string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastURL = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &lastURL
}
