// ABOUTME: Tests for the X API client using httptest servers.
// ABOUTME: Covers query construction, error kind mapping, and rate-limit headers.
package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/chirpsearch/chirp/internal/models"
)

const searchBody = `{
  "data": [
    {
      "id": "1001",
      "text": "hello world",
      "author_id": "7",
      "created_at": "2026-08-20T09:30:00Z",
      "public_metrics": {"like_count": 42, "retweet_count": 7, "reply_count": 3, "impression_count": 1900}
    }
  ],
  "includes": {
    "users": [
      {"id": "7", "name": "Alice A.", "username": "alice", "verified": true, "public_metrics": {"followers_count": 1200}}
    ]
  },
  "meta": {"result_count": 1}
}`

func TestSearchRecent(t *testing.T) {
	var receivedPath string
	var receivedQuery map[string][]string
	var receivedAuth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedQuery = r.URL.Query()
		receivedAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("x-rate-limit-limit", "450")
		w.Header().Set("x-rate-limit-remaining", "449")
		w.Header().Set("x-rate-limit-reset", "1790000000")
		_, _ = w.Write([]byte(searchBody))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	tweets, limits, err := client.SearchRecent(context.Background(), "golang lang:en", 3)
	if err != nil {
		t.Fatalf("SearchRecent error: %v", err)
	}

	if receivedPath != "/tweets/search/recent" {
		t.Errorf("unexpected path %s", receivedPath)
	}
	if receivedAuth != "Bearer test-token" {
		t.Errorf("unexpected auth header %q", receivedAuth)
	}
	if got := receivedQuery["query"]; len(got) != 1 || got[0] != "golang lang:en" {
		t.Errorf("unexpected query param %v", got)
	}
	// Requested 3, clamped up to the API's minimum of 10 on the wire
	if got := receivedQuery["max_results"]; len(got) != 1 || got[0] != "10" {
		t.Errorf("expected max_results=10, got %v", got)
	}

	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(tweets))
	}
	tw := tweets[0]
	if tw.ID != "1001" || tw.Text != "hello world" {
		t.Errorf("unexpected tweet %+v", tw)
	}
	if tw.Author.Username != "alice" || !tw.Author.Verified || tw.Author.Followers != 1200 {
		t.Errorf("author not joined from includes: %+v", tw.Author)
	}
	if tw.Metrics.Likes != 42 || tw.Metrics.Views != 1900 {
		t.Errorf("metrics not mapped: %+v", tw.Metrics)
	}
	if !tw.CreatedAt.Equal(time.Date(2026, 8, 20, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("createdAt not rehydrated: %v", tw.CreatedAt)
	}

	if limits == nil {
		t.Fatal("expected rate-limit metadata")
	}
	if limits.Limit != 450 || limits.Remaining != 449 {
		t.Errorf("unexpected limits %+v", limits)
	}
	if limits.ResetAt.Unix() != 1790000000 {
		t.Errorf("unexpected reset %v", limits.ResetAt)
	}
}

func TestSearchRecentClampsHighLimit(t *testing.T) {
	var maxResults string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		maxResults = r.URL.Query().Get("max_results")
		_, _ = w.Write([]byte(`{"data": [], "meta": {"result_count": 0}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	if _, _, err := client.SearchRecent(context.Background(), "q", 500); err != nil {
		t.Fatalf("SearchRecent error: %v", err)
	}
	if maxResults != "100" {
		t.Errorf("expected clamp to 100, got %s", maxResults)
	}
}

func TestStatusErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		kind   Kind
	}{
		{http.StatusUnauthorized, KindUnauthorized},
		{http.StatusForbidden, KindForbidden},
		{http.StatusNotFound, KindNotFound},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindNetworkFailure},
		{http.StatusBadGateway, KindNetworkFailure},
	}

	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status == http.StatusTooManyRequests {
					w.Header().Set("x-rate-limit-reset", "1790000000")
				}
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			client := NewClient(server.URL, "tok")
			_, _, err := client.SearchRecent(context.Background(), "q", 10)

			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", apiErr.Kind, tt.kind)
			}
			if tt.status == http.StatusTooManyRequests && apiErr.ResetAt.Unix() != 1790000000 {
				t.Errorf("rate-limited error missing reset time: %v", apiErr.ResetAt)
			}
		})
	}
}

func TestConnectionFailure(t *testing.T) {
	client := NewClient("http://localhost:1", "tok")
	_, _, err := client.SearchRecent(context.Background(), "q", 10)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetworkFailure {
		t.Fatalf("expected NetworkFailure, got %v", err)
	}
}

func TestMalformedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": "definitely not an array"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, _, err := client.SearchRecent(context.Background(), "q", 10)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindMalformedResponse {
		t.Fatalf("expected MalformedResponse, got %v", err)
	}
}

func TestMissingRequiredFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": [{"id": "", "text": "", "author_id": "7"}],
			"includes": {"users": [{"id": "7", "username": "alice"}]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, _, err := client.SearchRecent(context.Background(), "q", 10)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindMalformedResponse {
		t.Fatalf("expected MalformedResponse for empty id/text, got %v", err)
	}
}

func TestMissingCreatedAt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": [{"id": "1001", "text": "hello", "author_id": "7"}],
			"includes": {"users": [{"id": "7", "username": "alice"}]}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, _, err := client.SearchRecent(context.Background(), "q", 10)

	// A record without a timestamp cannot be sorted or displayed; it is
	// malformed, not a zero time.
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindMalformedResponse {
		t.Fatalf("expected MalformedResponse for missing created_at, got %v", err)
	}
}

func TestUnknownAuthorFailsLoudly(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": [{"id": "1", "text": "t", "author_id": "999"}],
			"includes": {"users": []}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, _, err := client.SearchRecent(context.Background(), "q", 10)

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindMalformedResponse {
		t.Fatalf("expected MalformedResponse for unresolvable author, got %v", err)
	}
}

func TestLookupUser(t *testing.T) {
	var receivedPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		_, _ = w.Write([]byte(`{"data": {"id": "42", "name": "Alice A.", "username": "alice", "verified": true, "public_metrics": {"followers_count": 1200}}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	author, err := client.LookupUser(context.Background(), "alice")
	if err != nil {
		t.Fatalf("LookupUser error: %v", err)
	}
	if receivedPath != "/users/by/username/alice" {
		t.Errorf("unexpected path %s", receivedPath)
	}
	if author.ID != "42" || author.Username != "alice" || !author.Verified {
		t.Errorf("unexpected author %+v", author)
	}
}

func TestLookupUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// The v2 user lookup reports a missing user as 200 with an errors array
		_, _ = w.Write([]byte(`{"errors": [{"title": "Not Found Error", "detail": "Could not find user"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	_, err := client.LookupUser(context.Background(), "ghost")

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestUserTweets(t *testing.T) {
	var receivedPath string
	var receivedQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedPath = r.URL.Path
		receivedQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"data": [{"id": "2001", "text": "mine", "created_at": "2026-08-21T10:00:00Z",
				"public_metrics": {"like_count": 5, "retweet_count": 1, "reply_count": 0, "impression_count": 80}}],
			"meta": {"result_count": 1}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "tok")
	author := models.Author{ID: "42", Username: "alice", DisplayName: "Alice A."}
	tweets, _, err := client.UserTweets(context.Background(), author, 7)
	if err != nil {
		t.Fatalf("UserTweets error: %v", err)
	}

	if receivedPath != "/users/42/tweets" {
		t.Errorf("unexpected path %s", receivedPath)
	}
	if got := receivedQuery["max_results"]; len(got) != 1 || got[0] != "7" {
		t.Errorf("expected max_results=7 within bounds, got %v", got)
	}
	if len(tweets) != 1 {
		t.Fatalf("expected 1 tweet, got %d", len(tweets))
	}
	if tweets[0].Author.Username != "alice" {
		t.Errorf("resolved author not stamped: %+v", tweets[0].Author)
	}
}
