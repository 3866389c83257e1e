package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/tag/internal/checksum"
	"github.com/starford/tag/internal/clock"
	"github.com/starford/tag/internal/testutil"
	"github.com/starford/tag/internal/worklog"
)

const existing = "2026-02-01\n==========\n\nTODO\n- ship\n\n#TIL\n- sqlite\n"

func testServer(t *testing.T, content string) (*Server, string) {
	t.Helper()
	dir, store := testutil.TestJournal(t, content)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	at := time.Date(2026, 2, 1, 9, 15, 0, 0, time.Local)
	svc := worklog.NewService(store, testutil.JournalName, worklog.WithClock(clock.Fixed(at)), worklog.WithLogger(logger))
	return New(svc, store, db, logger), dir
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handlers are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "read_today":
		result, err = srv.readToday(ctx, req)
	case "read_day":
		result, err = srv.readDay(ctx, req)
	case "set_todo":
		result, err = srv.setTodo(ctx, req)
	case "add_done":
		result, err = srv.addDone(ctx, req)
	case "add_note":
		result, err = srv.addNote(ctx, req)
	case "search_journal":
		result, err = srv.searchJournal(ctx, req)
	case "list_tags":
		result, err = srv.listTags(ctx, req)
	case "get_journal_format":
		result, err = srv.getJournalFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadToday(t *testing.T) {
	srv, _ := testServer(t, existing)

	r := callTool(t, srv, "read_today", nil)
	if r.IsError {
		t.Fatalf("read_today error: %s", resultText(r))
	}
	var day worklog.DayView
	if err := json.Unmarshal([]byte(resultText(r)), &day); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if day.Date != "2026-02-01" || len(day.Sections) != 2 || day.Checksum != checksum.Sum([]byte(existing)) {
		t.Errorf("day = %+v", day)
	}
}

func TestReadToday_Missing(t *testing.T) {
	srv, _ := testServer(t, "")
	r := callTool(t, srv, "read_today", nil)
	if !r.IsError || !strings.Contains(resultText(r), "2026-02-01") {
		t.Errorf("result = %+v", r)
	}
}

func TestReadDay(t *testing.T) {
	srv, _ := testServer(t, existing)

	if r := callTool(t, srv, "read_day", map[string]interface{}{"date": "2026-02-01"}); r.IsError {
		t.Errorf("read_day error: %s", resultText(r))
	}
	if r := callTool(t, srv, "read_day", map[string]interface{}{"date": "2026-01-01"}); !r.IsError {
		t.Error("expected error for missing day")
	}
	if r := callTool(t, srv, "read_day", map[string]interface{}{"date": "soon"}); !r.IsError {
		t.Error("expected error for invalid date")
	}
	if r := callTool(t, srv, "read_day", map[string]interface{}{}); !r.IsError {
		t.Error("expected error without date")
	}
}

func TestSetTodo(t *testing.T) {
	srv, dir := testServer(t, existing)

	r := callTool(t, srv, "set_todo", map[string]interface{}{"content": "- ship\n * docs"})
	if r.IsError {
		t.Fatalf("set_todo error: %s", resultText(r))
	}
	got := testutil.ReadJournal(t, dir)
	if !strings.Contains(got, "TODO\n- ship\n . docs\n\n#TIL") {
		t.Errorf("journal = %q", got)
	}
}

func TestSetTodo_Conflict(t *testing.T) {
	srv, dir := testServer(t, existing)

	r := callTool(t, srv, "set_todo", map[string]interface{}{"content": "- x", "if_match": "stale"})
	if !r.IsError {
		t.Fatal("expected conflict error")
	}
	if got := testutil.ReadJournal(t, dir); got != existing {
		t.Errorf("journal changed on conflict")
	}
}

func TestAddDoneAndNote(t *testing.T) {
	srv, dir := testServer(t, existing)

	r := callTool(t, srv, "add_done", map[string]interface{}{"content": "- merged"})
	if r.IsError {
		t.Fatalf("add_done error: %s", resultText(r))
	}
	var res worklog.Result
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatal(err)
	}
	if res.Header != "[오전 09:15]" {
		t.Errorf("header = %q", res.Header)
	}

	if r := callTool(t, srv, "add_note", map[string]interface{}{"content": "- chi", "tag": "TIL"}); r.IsError {
		t.Fatalf("add_note error: %s", resultText(r))
	}
	got := testutil.ReadJournal(t, dir)
	if !strings.HasSuffix(got, "[오전 09:15]\n- merged\n\n#TIL\n- chi\n") {
		t.Errorf("journal = %q", got)
	}
}

func TestAddNote_Empty(t *testing.T) {
	srv, dir := testServer(t, existing)
	r := callTool(t, srv, "add_note", map[string]interface{}{"content": "   "})
	if !r.IsError {
		t.Error("expected error for empty note")
	}
	if got := testutil.ReadJournal(t, dir); got != existing {
		t.Errorf("journal changed")
	}
}

func TestAddNote_MultiLineTag(t *testing.T) {
	srv, dir := testServer(t, existing)
	r := callTool(t, srv, "add_note", map[string]interface{}{"content": "secret", "tag": "til\n2020-01-01"})
	if !r.IsError || !strings.Contains(resultText(r), "single line") {
		t.Errorf("result = %q, want single-line tag error", resultText(r))
	}
	if got := testutil.ReadJournal(t, dir); got != existing {
		t.Errorf("journal changed: %q", got)
	}
}

func TestSearchJournal(t *testing.T) {
	srv, _ := testServer(t, existing)

	r := callTool(t, srv, "search_journal", map[string]interface{}{"query": "sqlite"})
	if r.IsError {
		t.Fatalf("search error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), `"header": "#TIL"`) {
		t.Errorf("search result = %q", resultText(r))
	}

	r = callTool(t, srv, "search_journal", map[string]interface{}{"query": "zzzunmatched"})
	if resultText(r) != "no results" {
		t.Errorf("empty search = %q", resultText(r))
	}
}

func TestSearchJournal_SeesNewWrites(t *testing.T) {
	srv, _ := testServer(t, existing)
	callTool(t, srv, "add_note", map[string]interface{}{"content": "- debounce timers", "tag": "idea"})

	r := callTool(t, srv, "search_journal", map[string]interface{}{"query": "debounce", "limit": 5})
	if !strings.Contains(resultText(r), "#idea") {
		t.Errorf("search result = %q", resultText(r))
	}
}

func TestListTags(t *testing.T) {
	srv, _ := testServer(t, existing)
	callTool(t, srv, "add_note", map[string]interface{}{"content": "- chi", "tag": "TIL"})

	r := callTool(t, srv, "list_tags", nil)
	var tags []struct {
		Tag   string `json:"tag"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal([]byte(resultText(r)), &tags); err != nil {
		t.Fatalf("decode %q: %v", resultText(r), err)
	}
	if len(tags) != 1 || tags[0].Tag != "TIL" || tags[0].Count != 2 {
		t.Errorf("tags = %+v", tags)
	}

	empty, _ := testServer(t, "")
	if r := callTool(t, empty, "list_tags", nil); resultText(r) != "no tags" {
		t.Errorf("empty = %q", resultText(r))
	}
}

func TestGetJournalFormat(t *testing.T) {
	srv, _ := testServer(t, "")
	r := callTool(t, srv, "get_journal_format", nil)
	text := resultText(r)
	for _, want := range []string{"==========", "TODO", "노트:", "#tag"} {
		if !strings.Contains(text, want) {
			t.Errorf("format missing %q", want)
		}
	}
}

func TestJournalFormatResource(t *testing.T) {
	srv, _ := testServer(t, "")
	contents, err := srv.readJournalFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != formatURI || tc.Text != JournalFormatContract {
		t.Errorf("resource = %+v", contents[0])
	}
}
