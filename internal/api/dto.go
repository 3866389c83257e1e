package api

import (
	"github.com/starford/tag/internal/models"
	"github.com/starford/tag/internal/worklog"
)

// EntryRequest is the request body for the TODO and done endpoints.
type EntryRequest struct {
	Content string `json:"content" example:"- review PR\n  . add tests"`
}

// NoteRequest is the request body for adding a note.
type NoteRequest struct {
	Tag     string `json:"tag,omitempty" example:"TIL"`
	Content string `json:"content" example:"- sqlite WAL mode" validate:"required"`
}

// WriteResponse is returned after a successful write (aliased from the domain layer).
type WriteResponse = worklog.Result

// DayResponse is a day section read from the journal (aliased from the domain layer).
type DayResponse = worklog.DayView

// DayListResponse wraps paginated day listings.
type DayListResponse struct {
	Days  []models.DaySummary `json:"days" validate:"required"`
	Total int                 `json:"total" example:"42" validate:"required"`
}

// EntriesResponse lists one day's indexed sub-sections in file order.
type EntriesResponse struct {
	Date    string         `json:"date" example:"2026-02-01" validate:"required"`
	Entries []models.Entry `json:"entries" validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []models.SearchHit `json:"results" validate:"required"`
}

// TagsResponse wraps tag counts.
type TagsResponse struct {
	Tags []models.TagCount `json:"tags" validate:"required"`
}
