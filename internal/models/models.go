// ABOUTME: Canonical data types for tweets, authors, metrics, and query results.
// ABOUTME: Provides URL derivation and the shared popularity sort used everywhere.
package models

import (
	"sort"
	"time"
)

// BaseURL is the platform prefix used to derive tweet permalinks.
const BaseURL = "https://x.com"

// Author is a denormalized snapshot of a tweet's author.
type Author struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	Verified    bool   `json:"verified"`
	Followers   int    `json:"followerCount,omitempty"`
}

// Metrics holds per-tweet engagement counts. All values are >= 0.
type Metrics struct {
	Likes    int `json:"likes"`
	Retweets int `json:"retweets"`
	Replies  int `json:"replies"`
	Views    int `json:"views"`
}

// Tweet is the canonical record for a single result item, independent
// of whether it came from the remote API or the demo synthesizer.
// IDs are numeric-looking but always treated as text.
type Tweet struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    Author    `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	Metrics   Metrics   `json:"metrics"`
	ReplyToID string    `json:"replyToId,omitempty"`
}

// URL derives the tweet permalink. It is never stored, so it can never
// go stale when the id or username changes.
func (t Tweet) URL() string {
	return BaseURL + "/" + t.Author.Username + "/status/" + t.ID
}

// RateLimit carries quota metadata extracted from API response headers.
type RateLimit struct {
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Result is the orchestrator's output for one logical operation.
type Result struct {
	Tweets    []Tweet
	FromCache bool
	RateLimit *RateLimit
}

// SortByLikes stable-sorts tweets by descending like count. Records
// with equal likes keep their source order ("popular" policy).
func SortByLikes(tweets []Tweet) {
	sort.SliceStable(tweets, func(i, j int) bool {
		return tweets[i].Metrics.Likes > tweets[j].Metrics.Likes
	})
}

// SortByRecency stable-sorts tweets newest first.
func SortByRecency(tweets []Tweet) {
	sort.SliceStable(tweets, func(i, j int) bool {
		return tweets[i].CreatedAt.After(tweets[j].CreatedAt)
	})
}
