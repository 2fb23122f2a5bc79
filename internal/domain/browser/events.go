package browser

import (
	"repobrowser/internal/domain/events"
)

// Event types
const (
	EventTypeLoadingStarted     = "browser.loading_started"
	EventTypeRepositoriesLoaded = "browser.repositories_loaded"
	EventTypeFetchFailed        = "browser.fetch_failed"
	EventTypeThemeToggled       = "browser.theme_toggled"
	EventTypeTopicChanged       = "browser.topic_changed"

	// EventTypeSnapshot carries the current state to a newly connected subscriber
	EventTypeSnapshot = "browser.state"
)

// EventTypes lists every event a browser publishes
var EventTypes = []string{
	EventTypeLoadingStarted,
	EventTypeRepositoriesLoaded,
	EventTypeFetchFailed,
	EventTypeThemeToggled,
	EventTypeTopicChanged,
}

// StatePayload is the summary of a state change sent to subscribers
type StatePayload struct {
	Sequence        uint64 `json:"sequence,omitempty"`
	Topic           string `json:"topic,omitempty"`
	IsLoading       bool   `json:"is_loading"`
	IsDarkMode      bool   `json:"is_dark_mode"`
	RepositoryCount int    `json:"repository_count"`
	Error           string `json:"error,omitempty"`
}

// StateChangedEvent is raised on every state transition of a browser
type StateChangedEvent struct {
	events.BaseEvent
	payload StatePayload
}

func (e *StateChangedEvent) Payload() any {
	return e.payload
}

// NewStateChangedEvent creates an event of the given type for a session
func NewStateChangedEvent(eventType, sessionID string, s State, o *Outcome) *StateChangedEvent {
	p := StatePayload{
		Topic:           s.SearchTopic,
		IsLoading:       s.IsLoading,
		IsDarkMode:      s.IsDarkMode,
		RepositoryCount: len(s.Repositories),
	}
	if o != nil {
		p.Sequence = o.Sequence
		if o.Err != nil {
			p.Error = o.Err.Error()
		}
	}
	return &StateChangedEvent{
		BaseEvent: events.NewBaseEvent(eventType, sessionID),
		payload:   p,
	}
}
