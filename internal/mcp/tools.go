// ABOUTME: MCP tool implementations for tweet search operations.
// ABOUTME: Registers search_tweets, get_replies, and get_user_timeline tools.
package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/chirpsearch/chirp/internal/engine"
	"github.com/chirpsearch/chirp/internal/format"
	"github.com/chirpsearch/chirp/internal/models"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_tweets",
		Description: "Search recent tweets by query text with optional filters.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Search query text.", "minLength": 1},
				"limit": {"type": "number", "description": "Maximum number of results (default 10)"},
				"verified_only": {"type": "boolean", "description": "Only tweets from verified accounts"},
				"min_likes": {"type": "number", "description": "Minimum like count"},
				"min_retweets": {"type": "number", "description": "Minimum retweet count"},
				"lang": {"type": "string", "description": "BCP-47 language filter, e.g. en"},
				"sort": {"type": "string", "enum": ["popular", "recent"], "description": "Sort order (default popular)"}
			},
			"required": ["query"]
		}`),
	}, s.handleSearch)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_replies",
		Description: "Retrieve replies to a tweet by its id.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"tweet_id": {"type": "string", "description": "Numeric id of the parent tweet.", "minLength": 1},
				"limit": {"type": "number", "description": "Maximum number of replies (default 10)"}
			},
			"required": ["tweet_id"]
		}`),
	}, s.handleReplies)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "get_user_timeline",
		Description: "Retrieve a user's recent tweets by username.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"username": {"type": "string", "description": "Handle without the @ prefix.", "minLength": 1},
				"limit": {"type": "number", "description": "Maximum number of tweets (default 10)"}
			},
			"required": ["username"]
		}`),
	}, s.handleTimeline)
}

func (s *Server) handleSearch(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query        string `json:"query"`
		Limit        int    `json:"limit"`
		VerifiedOnly bool   `json:"verified_only"`
		MinLikes     int    `json:"min_likes"`
		MinRetweets  int    `json:"min_retweets"`
		Lang         string `json:"lang"`
		Sort         string `json:"sort"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Query == "" {
		return toolError("query is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	res, err := s.engine.Search(ctx, args.Query, engine.SearchOptions{
		Limit:        args.Limit,
		VerifiedOnly: args.VerifiedOnly,
		MinLikes:     args.MinLikes,
		MinRetweets:  args.MinRetweets,
		Lang:         args.Lang,
		Sort:         args.Sort,
	})
	if err != nil {
		return toolError("search failed: %v", err), nil
	}

	return resultText(res, s.engine.DemoMode())
}

func (s *Server) handleReplies(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		TweetID string `json:"tweet_id"`
		Limit   int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.TweetID == "" {
		return toolError("tweet_id is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	res, err := s.engine.Replies(ctx, args.TweetID, args.Limit)
	if err != nil {
		return toolError("replies lookup failed: %v", err), nil
	}

	return resultText(res, s.engine.DemoMode())
}

func (s *Server) handleTimeline(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Username string `json:"username"`
		Limit    int    `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Username == "" {
		return toolError("username is required"), nil
	}
	if args.Limit <= 0 {
		args.Limit = 10
	}

	res, err := s.engine.UserTimeline(ctx, args.Username, args.Limit)
	if err != nil {
		return toolError("timeline lookup failed: %v", err), nil
	}

	return resultText(res, s.engine.DemoMode())
}

// resultText renders tweets in compact mode for the tool response.
func resultText(res models.Result, demo bool) (*gomcp.CallToolResult, error) {
	if len(res.Tweets) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No tweets found."}},
		}, nil
	}

	var buf bytes.Buffer
	if demo {
		buf.WriteString("(demo data - no credential configured)\n")
	}
	if res.FromCache {
		buf.WriteString("(served from cache)\n")
	}
	if err := format.Render(&buf, res, format.Options{Mode: format.ModeCompact}); err != nil {
		return toolError("failed to render results: %v", err), nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: buf.String()}},
	}, nil
}

func toolError(formatStr string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(formatStr, args...)}},
		IsError: true,
	}
}
