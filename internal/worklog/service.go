// Package worklog reads the journal, edits one sub-section of today's day
// section, and writes the whole file back.
package worklog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/starford/tag/internal/apperr"
	"github.com/starford/tag/internal/checksum"
	"github.com/starford/tag/internal/clock"
	"github.com/starford/tag/internal/editor"
	"github.com/starford/tag/internal/journal"
	"github.com/starford/tag/internal/storage"
)

// Indexer receives the journal after every successful write.
type Indexer interface {
	Rebuild(data []byte) error
}

// Result describes a completed write.
type Result struct {
	Date     string `json:"date"`
	Header   string `json:"header"`
	Checksum string `json:"checksum"`
}

// DayView is one day section read straight from the file.
type DayView struct {
	Date     string            `json:"date"`
	Text     string            `json:"text"`
	Checksum string            `json:"checksum"`
	Sections []journal.Section `json:"sections"`
}

// Service coordinates the journal file, the clock and the editor.
type Service struct {
	store   storage.Provider
	name    string
	clock   clock.Clock
	stamper clock.Stamper
	indexer Indexer
	logger  *slog.Logger

	mu sync.Mutex
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the system clock.
func WithClock(c clock.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithStamper overrides the default "오전"/"오후" labels.
func WithStamper(st clock.Stamper) Option {
	return func(s *Service) { s.stamper = st }
}

// WithIndexer rebuilds idx after each write.
func WithIndexer(idx Indexer) Option {
	return func(s *Service) { s.indexer = idx }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a service for the journal file name inside store.
func NewService(store storage.Provider, name string, opts ...Option) *Service {
	s := &Service{
		store:   store,
		name:    name,
		clock:   clock.System{},
		stamper: clock.NewStamper("오전", "오후"),
		logger:  slog.Default(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Name returns the journal file name relative to the store.
func (s *Service) Name() string { return s.name }

// Today returns today's date line.
func (s *Service) Today() string {
	return s.stamper.Date(s.clock.Now())
}

// EditTodo opens today's TODO body in ed and writes the result back,
// replacing the existing body or appending a TODO sub-section.
func (s *Service) EditTodo(ctx context.Context, ed editor.Editor, ifMatch string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, sum, err := s.load(ifMatch)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	text = journal.EnsureTodaySection(text, today)

	current, found := journal.ExtractSection(text, today, journal.TodoHeader)
	edited, err := ed.Edit(ctx, current)
	if err != nil {
		return nil, err
	}
	formatted := journal.FormatBullets(edited)

	if found {
		text = journal.ReplaceSection(text, today, journal.TodoHeader, formatted)
	} else {
		text = journal.InsertSection(text, today, journal.TodoHeader, formatted)
	}
	s.logger.Debug("worklog: todo edited", slog.String("date", today), slog.Bool("replaced", found), slog.String("prev", sum))
	return s.save(text, today, journal.TodoHeader)
}

// AddDone appends a sub-section headed by the current timestamp. A blank
// edit writes nothing and returns apperr.ErrEmptyEntry.
func (s *Service) AddDone(ctx context.Context, ed editor.Editor, ifMatch string) (*Result, error) {
	now := s.clock.Now()
	return s.insert(ctx, ed, ifMatch, s.stamper.Timestamp(now))
}

// AddNote appends a "#tag" sub-section, or the default note header when
// tag is empty. A blank edit writes nothing and returns apperr.ErrEmptyEntry.
// A tag containing a line break returns apperr.ErrInvalidTag before the
// editor is opened.
func (s *Service) AddNote(ctx context.Context, tag string, ed editor.Editor, ifMatch string) (*Result, error) {
	if strings.ContainsAny(tag, "\r\n") {
		return nil, apperr.ErrInvalidTag
	}
	return s.insert(ctx, ed, ifMatch, journal.TagHeader(tag))
}

func (s *Service) insert(ctx context.Context, ed editor.Editor, ifMatch, header string) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text, _, err := s.load(ifMatch)
	if err != nil {
		return nil, err
	}
	today := s.Today()
	text = journal.EnsureTodaySection(text, today)

	edited, err := ed.Edit(ctx, "")
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(edited) == "" {
		return nil, apperr.ErrEmptyEntry
	}
	text = journal.InsertSection(text, today, header, journal.FormatBullets(edited))
	return s.save(text, today, header)
}

// Day returns the first day section for date.
func (s *Service) Day(_ context.Context, date string) (*DayView, error) {
	data, err := s.read()
	if err != nil {
		return nil, err
	}
	text := string(data)
	day, ok := journal.FindDay(text, date)
	if !ok {
		return nil, apperr.ErrNotFound
	}
	raw, _ := journal.DayText(text, date)
	return &DayView{
		Date:     day.Date,
		Text:     raw,
		Checksum: checksum.Sum(data),
		Sections: nonNilSlice(day.Sections),
	}, nil
}

// TodayView returns today's day section.
func (s *Service) TodayView(ctx context.Context) (*DayView, error) {
	return s.Day(ctx, s.Today())
}

// Content returns the whole journal and its checksum.
func (s *Service) Content(_ context.Context) (string, string, error) {
	data, err := s.read()
	if err != nil {
		return "", "", err
	}
	return string(data), checksum.Sum(data), nil
}

// read returns the journal bytes; a missing file reads as empty.
func (s *Service) read() ([]byte, error) {
	data, err := s.store.Read(s.name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

func (s *Service) load(ifMatch string) (string, string, error) {
	data, err := s.read()
	if err != nil {
		return "", "", err
	}
	sum := checksum.Sum(data)
	if !checksum.Matches(ifMatch, sum) {
		return "", "", apperr.ErrConflict
	}
	return string(data), sum, nil
}

func (s *Service) save(text, date, header string) (*Result, error) {
	data := []byte(text)
	if err := s.store.Write(s.name, data); err != nil {
		return nil, fmt.Errorf("worklog: write journal: %w", err)
	}
	if s.indexer != nil {
		if err := s.indexer.Rebuild(data); err != nil {
			s.logger.Warn("worklog: index rebuild failed", slog.String("error", err.Error()))
		}
	}
	s.logger.Info("worklog: journal written", slog.String("date", date), slog.String("header", header))
	return &Result{Date: date, Header: header, Checksum: checksum.Sum(data)}, nil
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
