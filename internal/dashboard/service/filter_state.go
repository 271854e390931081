package service

import (
	"strings"
	"sync"

	"airline-sentiment-dashboard/internal/entity"
)

// SelectionListener observes every filter transition. It runs while the filter lock is
// held, so it must not block or call back into the FilterState.
type SelectionListener func(prev, next entity.FilterSelection)

// FilterState is the single owner of the current FilterSelection. Each operation replaces
// the whole value, so concurrent setters never clobber each other's field.
type FilterState struct {
	mu        sync.Mutex
	selection entity.FilterSelection
	listener  SelectionListener
}

func NewFilterState() *FilterState {
	return &FilterState{}
}

// OnChange registers the listener notified after each operation.
func (f *FilterState) OnChange(listener SelectionListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = listener
}

// Selection returns the current selection.
func (f *FilterState) Selection() entity.FilterSelection {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.selection
}

// SetAirline selects an airline. An empty name clears the airline filter.
func (f *FilterState) SetAirline(name string) {
	name = strings.TrimSpace(name)
	f.apply(func(s entity.FilterSelection) entity.FilterSelection {
		s.Airline = name
		return s
	})
}

// SetSentiment selects a sentiment. An empty value clears the sentiment filter.
func (f *FilterState) SetSentiment(raw string) error {
	kind, err := entity.ParseSentiment(raw)
	if err != nil {
		return err
	}
	f.apply(func(s entity.FilterSelection) entity.FilterSelection {
		s.Sentiment = kind
		return s
	})
	return nil
}

// Clear resets both filters.
func (f *FilterState) Clear() {
	f.apply(func(entity.FilterSelection) entity.FilterSelection {
		return entity.FilterSelection{}
	})
}

// view runs fn with the current selection while holding the lock, ordering fn against
// concurrent transitions.
func (f *FilterState) view(fn func(entity.FilterSelection)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f.selection)
}

func (f *FilterState) apply(update func(entity.FilterSelection) entity.FilterSelection) {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev := f.selection
	f.selection = update(prev)
	if f.listener != nil {
		f.listener(prev, f.selection)
	}
}
