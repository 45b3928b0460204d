// ABOUTME: HTTP client for the X API v2 search and user endpoints.
// ABOUTME: Normalizes raw responses into canonical records with typed failures.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chirpsearch/chirp/internal/models"
)

// DefaultBaseURL is the X API v2 endpoint prefix.
const DefaultBaseURL = "https://api.x.com/2"

// Bounds the API enforces on max_results per endpoint.
const (
	searchMinResults   = 10
	searchMaxResults   = 100
	timelineMinResults = 5
	timelineMaxResults = 100
)

const requestTimeout = 15 * time.Second

// Client issues bearer-token requests against the X API v2.
type Client struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewClient creates an API client with the given bearer token.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: requestTimeout},
	}
}

// tweetFields and userFields select the response fields every request needs.
const (
	tweetFields = "created_at,public_metrics,author_id,conversation_id"
	userFields  = "name,username,verified,public_metrics"
)

// rawTweet is the wire shape of a single tweet in a v2 response.
type rawTweet struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	AuthorID       string    `json:"author_id"`
	ConversationID string    `json:"conversation_id"`
	CreatedAt      time.Time `json:"created_at"`
	PublicMetrics  struct {
		LikeCount       int `json:"like_count"`
		RetweetCount    int `json:"retweet_count"`
		ReplyCount      int `json:"reply_count"`
		ImpressionCount int `json:"impression_count"`
	} `json:"public_metrics"`
}

// rawUser is the wire shape of a user object in a v2 response.
type rawUser struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Verified      bool   `json:"verified"`
	PublicMetrics struct {
		FollowersCount int `json:"followers_count"`
	} `json:"public_metrics"`
}

// searchResponse is the envelope returned by the search and timeline endpoints.
type searchResponse struct {
	Data     []rawTweet `json:"data"`
	Includes struct {
		Users []rawUser `json:"users"`
	} `json:"includes"`
	Meta struct {
		ResultCount int `json:"result_count"`
	} `json:"meta"`
}

// userResponse is the envelope returned by the username lookup endpoint.
type userResponse struct {
	Data   *rawUser `json:"data"`
	Errors []struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	} `json:"errors"`
}

// SearchRecent runs one recent-search request. maxResults is clamped
// to the API's [10,100] bounds before the request is sent; truncation
// to the caller's original limit is the orchestrator's job.
func (c *Client) SearchRecent(ctx context.Context, query string, maxResults int) ([]models.Tweet, *models.RateLimit, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("max_results", strconv.Itoa(clamp(maxResults, searchMinResults, searchMaxResults)))
	q.Set("tweet.fields", tweetFields)
	q.Set("expansions", "author_id")
	q.Set("user.fields", userFields)

	body, limits, err := c.get(ctx, "/tweets/search/recent", q)
	if err != nil {
		return nil, nil, err
	}
	tweets, err := decodeTweets(body)
	if err != nil {
		return nil, nil, err
	}
	return tweets, limits, nil
}

// LookupUser resolves a username to its user record. A missing user is
// a terminal not-found failure, never silently empty.
func (c *Client) LookupUser(ctx context.Context, username string) (models.Author, error) {
	q := url.Values{}
	q.Set("user.fields", userFields)

	body, _, err := c.get(ctx, "/users/by/username/"+url.PathEscape(username), q)
	if err != nil {
		return models.Author{}, err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return models.Author{}, &Error{Kind: KindMalformedResponse, Msg: "failed to decode user lookup response", Err: err}
	}
	if resp.Data == nil || resp.Data.ID == "" {
		return models.Author{}, Errorf(KindNotFound, "user %q does not exist", username)
	}
	return toAuthor(*resp.Data), nil
}

// UserTweets fetches a user's recent original tweets. The resolved
// author is stamped onto every record since the timeline endpoint does
// not echo author objects back.
func (c *Client) UserTweets(ctx context.Context, author models.Author, maxResults int) ([]models.Tweet, *models.RateLimit, error) {
	q := url.Values{}
	q.Set("max_results", strconv.Itoa(clamp(maxResults, timelineMinResults, timelineMaxResults)))
	q.Set("tweet.fields", tweetFields)
	q.Set("exclude", "retweets")

	body, limits, err := c.get(ctx, "/users/"+url.PathEscape(author.ID)+"/tweets", q)
	if err != nil {
		return nil, nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, nil, &Error{Kind: KindMalformedResponse, Msg: "failed to decode timeline response", Err: err}
	}

	tweets := make([]models.Tweet, 0, len(resp.Data))
	for _, rt := range resp.Data {
		tw, err := toTweet(rt, author)
		if err != nil {
			return nil, nil, err
		}
		tweets = append(tweets, tw)
	}
	return tweets, limits, nil
}

// get performs one GET and maps failures to typed errors. The response
// body is fully read so rate-limit headers are always captured.
func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, *models.RateLimit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, nil, &Error{Kind: KindNetworkFailure, Msg: "failed to create request", Err: err}
	}
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, &Error{Kind: KindNetworkFailure, Msg: "request failed", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	limits := parseRateLimit(resp.Header)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<22))
	if err != nil {
		return nil, nil, &Error{Kind: KindNetworkFailure, Msg: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, limits, statusError(resp.StatusCode, body, limits)
	}
	return body, limits, nil
}

// statusError maps a non-2xx status to its error kind.
func statusError(status int, body []byte, limits *models.RateLimit) *Error {
	e := &Error{Status: status, Msg: fmt.Sprintf("API returned %d: %s", status, strings.TrimSpace(string(body)))}
	switch status {
	case http.StatusUnauthorized:
		e.Kind = KindUnauthorized
	case http.StatusForbidden:
		e.Kind = KindForbidden
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		if limits != nil {
			e.ResetAt = limits.ResetAt
		}
	default:
		e.Kind = KindNetworkFailure
	}
	return e
}

// parseRateLimit extracts quota metadata from response headers, when present.
func parseRateLimit(h http.Header) *models.RateLimit {
	remaining := h.Get("x-rate-limit-remaining")
	limit := h.Get("x-rate-limit-limit")
	reset := h.Get("x-rate-limit-reset")
	if remaining == "" && limit == "" && reset == "" {
		return nil
	}

	rl := &models.RateLimit{}
	if n, err := strconv.Atoi(limit); err == nil {
		rl.Limit = n
	}
	if n, err := strconv.Atoi(remaining); err == nil {
		rl.Remaining = n
	}
	if secs, err := strconv.ParseInt(reset, 10, 64); err == nil {
		rl.ResetAt = time.Unix(secs, 0)
	}
	return rl
}

// decodeTweets parses a search envelope and joins each tweet with its
// expanded author.
func decodeTweets(body []byte) ([]models.Tweet, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &Error{Kind: KindMalformedResponse, Msg: "failed to decode search response", Err: err}
	}

	users := make(map[string]models.Author, len(resp.Includes.Users))
	for _, u := range resp.Includes.Users {
		users[u.ID] = toAuthor(u)
	}

	tweets := make([]models.Tweet, 0, len(resp.Data))
	for _, rt := range resp.Data {
		author, ok := users[rt.AuthorID]
		if !ok {
			return nil, Errorf(KindMalformedResponse, "tweet %s references unknown author %q", rt.ID, rt.AuthorID)
		}
		tw, err := toTweet(rt, author)
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, tw)
	}
	return tweets, nil
}

// toTweet converts one raw tweet, failing loudly on missing required fields.
func toTweet(rt rawTweet, author models.Author) (models.Tweet, error) {
	if rt.ID == "" || rt.Text == "" {
		return models.Tweet{}, Errorf(KindMalformedResponse, "tweet missing required id or text")
	}
	if rt.CreatedAt.IsZero() {
		return models.Tweet{}, Errorf(KindMalformedResponse, "tweet %s missing created_at", rt.ID)
	}
	return models.Tweet{
		ID:        rt.ID,
		Text:      rt.Text,
		Author:    author,
		CreatedAt: rt.CreatedAt,
		Metrics: models.Metrics{
			Likes:    rt.PublicMetrics.LikeCount,
			Retweets: rt.PublicMetrics.RetweetCount,
			Replies:  rt.PublicMetrics.ReplyCount,
			Views:    rt.PublicMetrics.ImpressionCount,
		},
	}, nil
}

func toAuthor(u rawUser) models.Author {
	return models.Author{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.Name,
		Verified:    u.Verified,
		Followers:   u.PublicMetrics.FollowersCount,
	}
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
