// Package browser holds the UI state of one repository browser and the pure
// transitions applied to it. Nothing here performs I/O.
package browser

import (
	"repobrowser/internal/domain/repo"
)

// State is the complete UI state of one mounted browser.
// Repositories reflects the most recently completed successful fetch.
// SearchTopicRevision is the newest keystroke revision applied to SearchTopic.
type State struct {
	Repositories        []repo.Summary
	SearchTopic         string
	SearchTopicRevision uint64
	IsLoading           bool
	IsDarkMode          bool
}

// Clone returns a copy that shares no slice memory with s
func (s State) Clone() State {
	s.Repositories = repo.CloneSummaries(s.Repositories)
	return s
}

// Topic returns the search text as a Topic
func (s State) Topic() repo.Topic {
	return repo.NewTopic(s.SearchTopic)
}

// WithSearchTopic records a keystroke in the search field
func (s State) WithSearchTopic(topic string) State {
	s.SearchTopic = topic
	return s
}

// WithSearchTopicRevision records the search text typed at keystroke rev.
// Revisions at or below the one already applied are ignored, so updates
// delivered out of order cannot overwrite newer text.
func (s State) WithSearchTopicRevision(topic string, rev uint64) (State, bool) {
	if rev <= s.SearchTopicRevision {
		return s, false
	}
	s.SearchTopic = topic
	s.SearchTopicRevision = rev
	return s, true
}

// BeginLoad marks a request as outstanding
func (s State) BeginLoad() State {
	s.IsLoading = true
	return s
}

// Settle applies the outcome of a request. A failed outcome leaves the
// repository list untouched; either way the loading flag is cleared.
func (s State) Settle(o Outcome) State {
	s.IsLoading = false
	if o.Succeeded() {
		s.Repositories = repo.CloneSummaries(o.Repositories)
		if s.Repositories == nil {
			s.Repositories = []repo.Summary{}
		}
	}
	return s
}

// ToggleTheme flips dark mode
func (s State) ToggleTheme() State {
	s.IsDarkMode = !s.IsDarkMode
	return s
}
