// ABOUTME: Result orchestrator deciding cache-hit vs demo-mode vs remote fetch.
// ABOUTME: Normalizes all sources into canonical records and writes back the cache.
package engine

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/chirpsearch/chirp/internal/api"
	"github.com/chirpsearch/chirp/internal/cache"
	"github.com/chirpsearch/chirp/internal/config"
	"github.com/chirpsearch/chirp/internal/mock"
	"github.com/chirpsearch/chirp/internal/models"
)

// Sort modes accepted by search.
const (
	SortPopular = "popular"
	SortRecent  = "recent"
)

// SearchOptions carries every search parameter that affects the result.
// All fields participate in the cache fingerprint.
type SearchOptions struct {
	Limit        int
	VerifiedOnly bool
	MinLikes     int
	MinRetweets  int
	Lang         string
	Sort         string
}

// Fetcher is the remote API surface the engine consumes; *api.Client
// implements it.
type Fetcher interface {
	SearchRecent(ctx context.Context, query string, maxResults int) ([]models.Tweet, *models.RateLimit, error)
	LookupUser(ctx context.Context, username string) (models.Author, error)
	UserTweets(ctx context.Context, author models.Author, maxResults int) ([]models.Tweet, *models.RateLimit, error)
}

// Engine routes each logical operation to the cache, the demo
// synthesizer, or the remote API. Built fresh per command invocation;
// it holds no global state.
type Engine struct {
	cfg    *config.Config
	cache  *cache.Store
	client Fetcher
	synth  *mock.Synthesizer
	demo   bool
}

// New wires an engine from resolved configuration. demo must be true
// when no credential is resolvable; demo operations never touch the
// network and are never cached.
func New(cfg *config.Config, store *cache.Store, client Fetcher, demo bool) (*Engine, error) {
	synth, err := mock.New()
	if err != nil {
		return nil, err
	}
	return &Engine{
		cfg:    cfg,
		cache:  store,
		client: client,
		synth:  synth,
		demo:   demo,
	}, nil
}

// DemoMode reports whether results are synthesized locally.
func (e *Engine) DemoMode() bool {
	return e.demo
}

var (
	tweetIDPattern  = regexp.MustCompile(`^[0-9]+$`)
	usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]{1,15}$`)
)

// Search executes a search operation. The returned limit semantics:
// zero and negative limits pass through unvalidated (documented
// boundary behavior, not a contract).
func (e *Engine) Search(ctx context.Context, query string, opts SearchOptions) (models.Result, error) {
	if opts.Sort == "" {
		opts.Sort = SortPopular
	}

	key := cache.Fingerprint("search", map[string]any{
		"q":           query,
		"limit":       opts.Limit,
		"verified":    opts.VerifiedOnly,
		"minLikes":    opts.MinLikes,
		"minRetweets": opts.MinRetweets,
		"lang":        opts.Lang,
		"sort":        opts.Sort,
	})

	if res, ok := e.fromCache(key); ok {
		return res, nil
	}

	if e.demo {
		return models.Result{Tweets: e.synth.Synthesize(query, opts.Limit, mock.DefaultWindow)}, nil
	}

	raw, limits, err := e.client.SearchRecent(ctx, buildQuery(query, opts), opts.Limit)
	if err != nil {
		return models.Result{}, err
	}

	tweets := postFilter(raw, opts)
	sortTweets(tweets, opts.Sort)
	tweets = truncate(tweets, opts.Limit)

	// The cache is an optimization; a failed write never discards a
	// result already in hand.
	_ = e.cache.Set(key, tweets, e.cfg.CacheTTL())
	return models.Result{Tweets: tweets, RateLimit: limits}, nil
}

// Replies fetches replies to a tweet via a conversation-filtered search.
func (e *Engine) Replies(ctx context.Context, parentID string, limit int) (models.Result, error) {
	if !tweetIDPattern.MatchString(parentID) {
		return models.Result{}, api.Errorf(api.KindInvalidInput, "tweet id must be numeric, got %q", parentID)
	}

	key := cache.Fingerprint("replies", map[string]any{
		"parent": parentID,
		"limit":  limit,
	})

	if res, ok := e.fromCache(key); ok {
		return res, nil
	}

	if e.demo {
		return models.Result{Tweets: e.synth.SynthesizeReplies(parentID, limit, mock.DefaultWindow)}, nil
	}

	query := fmt.Sprintf("conversation_id:%s is:reply", parentID)
	raw, limits, err := e.client.SearchRecent(ctx, query, limit)
	if err != nil {
		return models.Result{}, err
	}

	tweets := make([]models.Tweet, len(raw))
	for i, tw := range raw {
		tw.ReplyToID = parentID
		tweets[i] = tw
	}
	models.SortByLikes(tweets)
	tweets = truncate(tweets, limit)

	_ = e.cache.Set(key, tweets, e.cfg.CacheTTL())
	return models.Result{Tweets: tweets, RateLimit: limits}, nil
}

// UserTimeline fetches a user's recent tweets, resolving the username
// to an id first. A missing user is a terminal not-found failure.
func (e *Engine) UserTimeline(ctx context.Context, username string, limit int) (models.Result, error) {
	username = strings.TrimPrefix(username, "@")
	if !usernamePattern.MatchString(username) {
		return models.Result{}, api.Errorf(api.KindInvalidInput, "invalid username %q", username)
	}

	key := cache.Fingerprint("timeline", map[string]any{
		"username": strings.ToLower(username),
		"limit":    limit,
	})

	if res, ok := e.fromCache(key); ok {
		return res, nil
	}

	if e.demo {
		return models.Result{Tweets: e.synth.SynthesizeTimeline(username, limit, 7*mock.DefaultWindow)}, nil
	}

	author, err := e.client.LookupUser(ctx, username)
	if err != nil {
		return models.Result{}, err
	}

	raw, limits, err := e.client.UserTweets(ctx, author, limit)
	if err != nil {
		return models.Result{}, err
	}

	models.SortByLikes(raw)
	tweets := truncate(raw, limit)

	_ = e.cache.Set(key, tweets, e.cfg.CacheTTL())
	return models.Result{Tweets: tweets, RateLimit: limits}, nil
}

// fromCache attempts the strict cache short-circuit: on a hit no
// network or mock path is taken.
func (e *Engine) fromCache(key string) (models.Result, bool) {
	var tweets []models.Tweet
	if !e.cache.Get(key, &tweets) {
		return models.Result{}, false
	}
	return models.Result{Tweets: tweets, FromCache: true}, true
}

// buildQuery appends filter clauses as search operators to the query text.
func buildQuery(query string, opts SearchOptions) string {
	parts := []string{query}
	if opts.VerifiedOnly {
		parts = append(parts, "is:verified")
	}
	if opts.MinLikes > 0 {
		parts = append(parts, fmt.Sprintf("min_faves:%d", opts.MinLikes))
	}
	if opts.MinRetweets > 0 {
		parts = append(parts, fmt.Sprintf("min_retweets:%d", opts.MinRetweets))
	}
	if opts.Lang != "" {
		parts = append(parts, "lang:"+opts.Lang)
	}
	return strings.Join(parts, " ")
}

// postFilter re-applies filters client-side; the standard search tier
// does not honor every operator natively.
func postFilter(tweets []models.Tweet, opts SearchOptions) []models.Tweet {
	out := tweets[:0:0]
	for _, tw := range tweets {
		if opts.VerifiedOnly && !tw.Author.Verified {
			continue
		}
		if tw.Metrics.Likes < opts.MinLikes {
			continue
		}
		if tw.Metrics.Retweets < opts.MinRetweets {
			continue
		}
		out = append(out, tw)
	}
	return out
}

func sortTweets(tweets []models.Tweet, mode string) {
	switch mode {
	case SortRecent:
		models.SortByRecency(tweets)
	default:
		models.SortByLikes(tweets)
	}
}

// truncate cuts to the originally requested limit after the network
// path's clamped fetch. Non-positive limits pass through untouched.
func truncate(tweets []models.Tweet, limit int) []models.Tweet {
	if limit > 0 && len(tweets) > limit {
		return tweets[:limit]
	}
	return tweets
}
