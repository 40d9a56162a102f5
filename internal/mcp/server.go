package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"callouts/internal/callouts"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server with tools for browsing and submitting callouts.
// Likes are not exposed: a like lives in a browser session's liked set and an
// MCP client has none.
func NewServer(svc *callouts.Service) *server.MCPServer {
	s := server.NewMCPServer(
		"Character-Callouts",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("list_callouts",
			mcp.WithDescription("List character callouts. Use view to order them by recency or popularity, or word to find callouts whose traits contain a word."),
			mcp.WithString("view",
				mcp.Description("Ordering: 'recent', 'popular' or 'all' (default: all, store order)"),
			),
			mcp.WithString("word",
				mcp.Description("Optional: only callouts with a trait containing this word (case-insensitive). Overrides view."),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of callouts to return (default: all)"),
			),
		),
		handleListCallouts(svc),
	)

	s.AddTool(
		mcp.NewTool("get_callout",
			mcp.WithDescription("Get a single callout by its ID."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The callout ID"),
			),
		),
		handleGetCallout(svc),
	)

	s.AddTool(
		mcp.NewTool("word_cloud",
			mcp.WithDescription("Get the most used trait words across all callouts with their counts, most frequent first (top 20)."),
		),
		handleWordCloud(svc),
	)

	s.AddTool(
		mcp.NewTool("submit_callout",
			mcp.WithDescription("Submit a new callout praising a person for one to three character traits."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Short display title")),
			mcp.WithString("person", mcp.Required(), mcp.Description("Name of the person being called out")),
			mcp.WithString("reason", mcp.Required(), mcp.Description("Why they deserve it")),
			mcp.WithString("categories", mcp.Required(), mcp.Description("One to three traits, comma separated (e.g. 'Kind, Helpful')")),
			mcp.WithString("submitter", mcp.Required(), mcp.Description("Name of the person submitting")),
		),
		handleSubmitCallout(svc),
	)

	s.AddTool(
		mcp.NewTool("record_view",
			mcp.WithDescription("Count a view of a callout and return the new view count."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("The callout ID"),
			),
		),
		handleRecordView(svc),
	)

	return s
}

// CalloutResult represents a callout in tool responses
type CalloutResult struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Person     string    `json:"person"`
	Reason     string    `json:"reason"`
	Categories []string  `json:"categories"`
	Submitter  string    `json:"submitter"`
	Date       time.Time `json:"date"`
	Views      int       `json:"views"`
	Likes      int       `json:"likes"`
}

func handleListCallouts(svc *callouts.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		view, err := callouts.ParseView(req.GetString("view", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		list, err := svc.List(ctx, callouts.ListQuery{
			View:  view,
			Word:  req.GetString("word", ""),
			Limit: req.GetInt("limit", 0),
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to list callouts: %v", err)), nil
		}

		return jsonResult(calloutsToResults(list))
	}
}

func handleGetCallout(svc *callouts.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		c, err := svc.GetByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to get callout: %v", err)), nil
		}

		return jsonResult(calloutToResult(*c))
	}
}

func handleWordCloud(svc *callouts.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cloud, err := svc.WordCloud(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to build word cloud: %v", err)), nil
		}
		return jsonResult(cloud)
	}
}

func handleSubmitCallout(svc *callouts.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input := callouts.SubmitInput{
			Title:      req.GetString("title", ""),
			Person:     req.GetString("person", ""),
			Reason:     req.GetString("reason", ""),
			Categories: strings.Split(req.GetString("categories", ""), ","),
			Submitter:  req.GetString("submitter", ""),
		}

		c, err := svc.Submit(ctx, input)
		if errors.Is(err, callouts.ErrValidation) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to save callout: %v", err)), nil
		}

		return jsonResult(calloutToResult(*c))
	}
}

func handleRecordView(svc *callouts.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError("id is required"), nil
		}

		views, err := svc.RecordView(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to record view: %v", err)), nil
		}

		return jsonResult(map[string]any{"id": id, "views": views})
	}
}

// Helper functions

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func calloutToResult(c callouts.Callout) CalloutResult {
	return CalloutResult{
		ID:         c.ID,
		Title:      c.Title,
		Person:     c.Person,
		Reason:     c.Reason,
		Categories: c.Categories,
		Submitter:  c.Submitter,
		Date:       c.Date,
		Views:      c.Views,
		Likes:      c.Likes,
	}
}

func calloutsToResults(list []callouts.Callout) []CalloutResult {
	results := make([]CalloutResult, len(list))
	for i, c := range list {
		results[i] = calloutToResult(c)
	}
	return results
}
