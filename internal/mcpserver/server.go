// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes the work journal to LLM clients via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/tag/internal/apperr"
	"github.com/starford/tag/internal/editor"
	"github.com/starford/tag/internal/index"
	"github.com/starford/tag/internal/journal"
	"github.com/starford/tag/internal/storage"
	"github.com/starford/tag/internal/worklog"
)

const formatURI = "tag://journal-format"

// Server wraps the MCP server with journal tools.
type Server struct {
	mcp    *server.MCPServer
	svc    *worklog.Service
	store  storage.Provider
	db     *index.DB
	logger *slog.Logger
}

// New creates a new MCP server with all journal tools registered.
// store and db back search; writes go through svc.
func New(svc *worklog.Service, store storage.Provider, db *index.DB, logger *slog.Logger) *Server {
	s := &Server{svc: svc, store: store, db: db, logger: logger}

	s.mcp = server.NewMCPServer(
		"tag",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("read_today",
		mcp.WithDescription("Read today's day section: raw text, sub-sections and the journal checksum."),
	), s.readToday)

	s.mcp.AddTool(mcp.NewTool("read_day",
		mcp.WithDescription("Read the day section for a date."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Date in YYYY-MM-DD form")),
	), s.readDay)

	s.mcp.AddTool(mcp.NewTool("set_todo",
		mcp.WithDescription("Replace the body of today's TODO list, creating it if needed. "+
			"Read the format first via get_journal_format or the "+formatURI+" resource."),
		mcp.WithString("content", mcp.Required(), mcp.Description("New TODO body, one bullet per line")),
		mcp.WithString("if_match", mcp.Description("Journal checksum from a previous read")),
	), s.setTodo)

	s.mcp.AddTool(mcp.NewTool("add_done",
		mcp.WithDescription("Append a finished-work entry headed by the current time to today."),
		mcp.WithString("content", mcp.Required(), mcp.Description("What was done")),
		mcp.WithString("if_match", mcp.Description("Journal checksum from a previous read")),
	), s.addDone)

	s.mcp.AddTool(mcp.NewTool("add_note",
		mcp.WithDescription("Append a note to today, headed by #tag or by the default note header."),
		mcp.WithString("content", mcp.Required(), mcp.Description("Note text")),
		mcp.WithString("tag", mcp.Description("Optional tag without the leading #")),
		mcp.WithString("if_match", mcp.Description("Journal checksum from a previous read")),
	), s.addNote)

	s.mcp.AddTool(mcp.NewTool("search_journal",
		mcp.WithDescription("Full-text search through every day's sub-sections."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
		mcp.WithNumber("limit", mcp.Description("Maximum results (default 20)")),
	), s.searchJournal)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List the tags used in notes with how many sub-sections carry each."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_journal_format",
		mcp.WithDescription("Returns the journal format. "+
			"Call this before writing entries to ensure correct structure."),
	), s.getJournalFormat)

	// Resource: journal format.
	s.mcp.AddResource(
		mcp.NewResource(formatURI, "Journal Format",
			mcp.WithResourceDescription("Plain-text layout of the work journal."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readJournalFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) readToday(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	day, err := s.svc.TodayView(ctx)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no entry for today (%s)", s.svc.Today())), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(day)
}

func (s *Server) readDay(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if !journal.IsDateLine(date) {
		return mcp.NewToolResultError(fmt.Sprintf("invalid date: %q", date)), nil
	}
	day, err := s.svc.Day(ctx, date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("not found: %s", date)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(day)
}

func (s *Server) setTodo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.EditTodo(ctx, editor.Static(content), req.GetString("if_match", ""))
	return writeResult(res, err)
}

func (s *Server) addDone(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.AddDone(ctx, editor.Static(content), req.GetString("if_match", ""))
	return writeResult(res, err)
}

func (s *Server) addNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.AddNote(ctx, req.GetString("tag", ""), editor.Static(content), req.GetString("if_match", ""))
	return writeResult(res, err)
}

func (s *Server) searchJournal(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	s.sync()
	results, err := s.db.Search(query, req.GetInt("limit", 20))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no results"), nil
	}
	return jsonResult(results)
}

func (s *Server) listTags(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.sync()
	tags, err := s.db.Tags()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(tags) == 0 {
		return mcp.NewToolResultText("no tags"), nil
	}
	return jsonResult(tags)
}

// sync refreshes the index before a read; the journal may have been edited
// by hand since the last tool call.
func (s *Server) sync() {
	if _, err := index.Sync(s.db, s.store, s.svc.Name(), s.logger); err != nil {
		s.logger.Warn("mcp: index sync failed", slog.String("error", err.Error()))
	}
}

func (s *Server) getJournalFormat(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(JournalFormatContract), nil
}

func (s *Server) readJournalFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      formatURI,
			MIMEType: "text/markdown",
			Text:     JournalFormatContract,
		},
	}, nil
}

func writeResult(res *worklog.Result, err error) (*mcp.CallToolResult, error) {
	switch {
	case err == nil:
		return jsonResult(res)
	case errors.Is(err, apperr.ErrEmptyEntry):
		return mcp.NewToolResultError("content is empty"), nil
	case errors.Is(err, apperr.ErrInvalidTag):
		return mcp.NewToolResultError("tag must be a single line"), nil
	case errors.Is(err, apperr.ErrConflict):
		return mcp.NewToolResultError("journal changed since it was read; read it again"), nil
	default:
		return mcp.NewToolResultError(err.Error()), nil
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(out)), nil
}
