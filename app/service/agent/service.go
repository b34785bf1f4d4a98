// Package agent exposes the assistant over MCP stdio so external agent
// tooling can drive it: one tool per surface (chat, book search, analytics).
package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"bookswap/app/service/analytics"
	"bookswap/app/service/engine"
	"bookswap/app/service/responder"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/samber/do"
)

type Service struct {
	engineSvc    *engine.Service
	analyticsSvc *analytics.Service
	books        responder.BookSearch
}

func New(di *do.Injector) (*Service, error) {
	return &Service{
		engineSvc:    do.MustInvoke[*engine.Service](di),
		analyticsSvc: do.MustInvoke[*analytics.Service](di),
		books:        do.MustInvoke[responder.BookSearch](di),
	}, nil
}

// Run serves the MCP tools over stdio until the peer disconnects.
func (s *Service) Run(_ context.Context) error {
	srv := server.NewMCPServer("bookswap-assistant", "1.0.0")

	chatTool := mcp.NewTool("chat",
		mcp.WithDescription("Send a message to the BookSwap assistant and get its reply"),
		mcp.WithString("message",
			mcp.Required(),
			mcp.Description("Free-text user message"),
		),
		mcp.WithString("user_id",
			mcp.Description("Opaque user identifier, defaults to anonymous"),
		),
	)
	srv.AddTool(chatTool, s.handleChat)

	searchTool := mcp.NewTool("search_books",
		mcp.WithDescription("Search the book catalogue"),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text"),
		),
		mcp.WithString("field",
			mcp.Description("Field to match against"),
			mcp.Enum("title", "author", "genre"),
		),
	)
	srv.AddTool(searchTool, s.handleSearch)

	analyticsTool := mcp.NewTool("get_analytics",
		mcp.WithDescription("Aggregate interaction metrics of the assistant"),
	)
	srv.AddTool(analyticsTool, s.handleAnalytics)

	return server.ServeStdio(srv)
}

func (s *Service) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	userID := request.GetString("user_id", "anonymous")

	response := s.engineSvc.ProcessMessage(ctx, userID, message)

	data, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *Service) handleSearch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var books []responder.Book
	switch request.GetString("field", "title") {
	case "author":
		books, err = s.books.ByAuthor(ctx, query)
	case "genre":
		books, err = s.books.ByGenre(ctx, query)
	default:
		books, err = s.books.ByTitle(ctx, query)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	data, err := json.Marshal(books)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal books: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}

func (s *Service) handleAnalytics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(s.analyticsSvc.Summarize())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analytics: %w", err)
	}

	return mcp.NewToolResultText(string(data)), nil
}
