package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/starford/tag/internal/index"
	"github.com/starford/tag/internal/worklog"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *worklog.Service, idx index.JournalIndex, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc, idx)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Raw journal.
	r.Get("/journal", h.Journal)

	// Days, read from the index for listing and from the file for content.
	r.Get("/days", h.ListDays)
	r.Get("/days/{date}", h.GetDay)
	r.Get("/days/{date}/entries", h.DayEntries)

	// Today's writes.
	r.Get("/today", h.GetToday)
	r.Put("/today/todo", h.PutTodo)
	r.Post("/today/done", h.PostDone)
	r.Post("/today/notes", h.PostNote)

	// Search.
	r.Get("/search", h.Search)
	r.Get("/tags", h.Tags)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
