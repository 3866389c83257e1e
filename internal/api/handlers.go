package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/starford/tag/internal/checksum"
	"github.com/starford/tag/internal/editor"
	"github.com/starford/tag/internal/index"
	"github.com/starford/tag/internal/journal"
	"github.com/starford/tag/internal/worklog"
)

// Handler holds API route handlers.
type Handler struct {
	svc *worklog.Service
	idx index.JournalIndex
}

// NewHandler creates a new Handler.
func NewHandler(svc *worklog.Service, idx index.JournalIndex) *Handler {
	return &Handler{svc: svc, idx: idx}
}

// Journal handles GET /api/journal.
//
//	@Summary		Download the raw journal
//	@Tags			journal
//	@Produce		plain
//	@Success		200	{string}	string
//	@Security		BearerAuth
//	@Router			/journal [get]
func (h *Handler) Journal(w http.ResponseWriter, r *http.Request) {
	text, sum, err := h.svc.Content(r.Context())
	if err != nil {
		slog.Error("read journal failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.Header().Set("ETag", checksum.ETag(sum))
	if match := r.Header.Get("If-None-Match"); match != "" && checksum.FromETag(match) == sum {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	writeText(w, http.StatusOK, text)
}

// ListDays handles GET /api/days.
//
//	@Summary		List indexed days, newest first
//	@Tags			days
//	@Produce		json
//	@Param			limit	query		int	false	"Page size"
//	@Param			offset	query		int	false	"Page offset"
//	@Success		200		{object}	DayListResponse
//	@Security		BearerAuth
//	@Router			/days [get]
func (h *Handler) ListDays(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	days, total, err := h.idx.ListDays(limit, offset)
	if err != nil {
		slog.Error("list days failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, DayListResponse{Days: nonNil(days), Total: total})
}

// GetDay handles GET /api/days/{date}.
//
//	@Summary		Get a day section by date
//	@Tags			days
//	@Produce		json
//	@Param			date	path		string	true	"Date (YYYY-MM-DD)"
//	@Success		200		{object}	DayResponse
//	@Failure		400		{object}	errResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/days/{date} [get]
func (h *Handler) GetDay(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !journal.IsDateLine(date) {
		writeJSON(w, http.StatusBadRequest, errorBody("date must look like YYYY-MM-DD"))
		return
	}
	day, err := h.svc.Day(r.Context(), date)
	if err != nil {
		writeError(w, "get day failed", err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// DayEntries handles GET /api/days/{date}/entries.
//
//	@Summary		List the indexed sub-sections of a day
//	@Tags			days
//	@Produce		json
//	@Param			date	path		string	true	"Date (YYYY-MM-DD)"
//	@Success		200		{object}	EntriesResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/days/{date}/entries [get]
func (h *Handler) DayEntries(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !journal.IsDateLine(date) {
		writeJSON(w, http.StatusBadRequest, errorBody("date must look like YYYY-MM-DD"))
		return
	}
	entries, err := h.idx.Entries(date)
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, EntriesResponse{Date: date, Entries: nonNil(entries)})
}

// GetToday handles GET /api/today.
//
//	@Summary		Get today's day section
//	@Tags			today
//	@Produce		json
//	@Success		200	{object}	DayResponse
//	@Failure		404	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/today [get]
func (h *Handler) GetToday(w http.ResponseWriter, r *http.Request) {
	day, err := h.svc.TodayView(r.Context())
	if err != nil {
		writeError(w, "get today failed", err)
		return
	}
	writeJSON(w, http.StatusOK, day)
}

// PutTodo handles PUT /api/today/todo.
//
//	@Summary		Replace today's TODO body
//	@Tags			today
//	@Accept			json
//	@Produce		json
//	@Param			If-Match	header		string			false	"SHA-256 checksum of the journal for optimistic concurrency"
//	@Param			body		body		EntryRequest	true	"New TODO body"
//	@Success		200			{object}	WriteResponse
//	@Failure		400			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/today/todo [put]
func (h *Handler) PutTodo(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.EditTodo(r.Context(), editor.Static(req.Content), r.Header.Get("If-Match"))
	if err != nil {
		writeError(w, "edit todo failed", err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// PostDone handles POST /api/today/done.
//
//	@Summary		Add a timestamped done entry
//	@Tags			today
//	@Accept			json
//	@Produce		json
//	@Param			If-Match	header		string			false	"SHA-256 checksum of the journal"
//	@Param			body		body		EntryRequest	true	"Done entry"
//	@Success		201			{object}	WriteResponse
//	@Failure		400			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/today/done [post]
func (h *Handler) PostDone(w http.ResponseWriter, r *http.Request) {
	var req EntryRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.AddDone(r.Context(), editor.Static(req.Content), r.Header.Get("If-Match"))
	if err != nil {
		writeError(w, "add done failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// PostNote handles POST /api/today/notes.
//
//	@Summary		Add a tagged note
//	@Tags			today
//	@Accept			json
//	@Produce		json
//	@Param			If-Match	header		string		false	"SHA-256 checksum of the journal"
//	@Param			body		body		NoteRequest	true	"Note"
//	@Success		201			{object}	WriteResponse
//	@Failure		400			{object}	errResponse
//	@Failure		409			{object}	errResponse
//	@Security		BearerAuth
//	@Router			/today/notes [post]
func (h *Handler) PostNote(w http.ResponseWriter, r *http.Request) {
	var req NoteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := h.svc.AddNote(r.Context(), req.Tag, editor.Static(req.Content), r.Header.Get("If-Match"))
	if err != nil {
		writeError(w, "add note failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across journal entries
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.idx.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: nonNil(results)})
}

// Tags handles GET /api/tags.
//
//	@Summary		List note tags with counts
//	@Tags			search
//	@Produce		json
//	@Success		200	{object}	TagsResponse
//	@Security		BearerAuth
//	@Router			/tags [get]
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.idx.Tags()
	if err != nil {
		slog.Error("tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: nonNil(tags)})
}
