// Package models defines the indexed journal rows shared by the index and its readers.
package models

// DaySummary is one indexed day section.
type DaySummary struct {
	Date string `json:"date"`
	// Position is the day's order in the file, 0 for the newest.
	Position int `json:"position"`
	Line     int `json:"line"`
	Entries  int `json:"entries"`
}

// Entry is one indexed sub-section.
type Entry struct {
	Date     string `json:"date"`
	Position int    `json:"position"`
	Header   string `json:"header"`
	Kind     string `json:"kind"`
	Tag      string `json:"tag,omitempty"`
	Body     string `json:"body"`
}

// SearchHit is one search result.
type SearchHit struct {
	Date    string `json:"date"`
	Header  string `json:"header"`
	Kind    string `json:"kind"`
	Snippet string `json:"snippet"`
}

// TagCount is a tag and how many sub-sections carry it.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}
