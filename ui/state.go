package ui

import (
	"sync"
	"time"
)

// noticeTTL is how long a notification stays visible before it is dropped.
const noticeTTL = 3 * time.Second

// Notice is a transient operator notification.
type Notice struct {
	Text    string
	IsError bool
	Until   time.Time
}

// State holds the operator's transient selection set and the current
// notification. It is the explicit replacement for the source's page-level
// globals; persisted data never lives here.
type State struct {
	mu       sync.Mutex
	selected map[string]bool
	notice   *Notice
}

func NewState() *State {
	return &State{selected: make(map[string]bool)}
}

// Toggle marks or unmarks an item in the selection set.
func (s *State) Toggle(item string, checked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if checked {
		s.selected[item] = true
	} else {
		delete(s.selected, item)
	}
}

// Selected reports whether an item is currently selected.
func (s *State) Selected(item string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[item]
}

// SelectedItems returns the currently selected items.
func (s *State) SelectedItems() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]string, 0, len(s.selected))
	for item := range s.selected {
		items = append(items, item)
	}
	return items
}

// AnySelected reports whether at least one item is selected; the save action
// is enabled only then.
func (s *State) AnySelected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected) > 0
}

// ClearSelection empties the selection set. Called only after the service
// confirms a save; on failure the selection is kept so the operator can
// retry without re-selecting.
func (s *State) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = make(map[string]bool)
}

// SetNotice replaces the current notification.
func (s *State) SetNotice(text string, isError bool, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notice = &Notice{Text: text, IsError: isError, Until: now.Add(noticeTTL)}
}

// ActiveNotice returns the notification if it has not expired yet.
func (s *State) ActiveNotice(now time.Time) *Notice {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notice == nil || now.After(s.notice.Until) {
		return nil
	}
	n := *s.notice
	return &n
}
