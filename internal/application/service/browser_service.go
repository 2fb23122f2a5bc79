package service

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"

	"repobrowser/internal/domain/browser"
	"repobrowser/internal/domain/events"
	"repobrowser/internal/domain/repo"
)

// errRequestInterrupted marks a request that never returned normally
var errRequestInterrupted = errors.New("request did not complete")

// RepositoryBrowser owns the UI state of one browser session and runs the
// fetch, search and theme use cases against it.
//
// State transitions happen under mu; network I/O never does. Overlapping
// requests are neither cancelled nor ordered: the last one to settle wins.
type RepositoryBrowser struct {
	sessionID  string
	source     repo.Source
	dispatcher *events.Dispatcher
	logger     zerolog.Logger

	mu    sync.Mutex
	state browser.State
	seq   uint64

	mountOnce sync.Once
}

// NewRepositoryBrowser creates a new repository browser for a session
func NewRepositoryBrowser(sessionID string, source repo.Source, dispatcher *events.Dispatcher, logger zerolog.Logger) *RepositoryBrowser {
	return &RepositoryBrowser{
		sessionID:  sessionID,
		source:     source,
		dispatcher: dispatcher,
		logger:     logger.With().Str("session_id", sessionID).Logger(),
		state:      browser.State{Repositories: []repo.Summary{}},
	}
}

// SessionID returns the session the browser belongs to
func (b *RepositoryBrowser) SessionID() string {
	return b.sessionID
}

// State returns a snapshot of the current state
func (b *RepositoryBrowser) State() browser.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// Mount starts the initial default load in the background, marking the
// browser as loading before it returns. Only the first call loads; the
// boolean reports whether this call was that one, and only then is the
// channel non-nil.
func (b *RepositoryBrowser) Mount(ctx context.Context) (<-chan browser.Outcome, bool) {
	var done <-chan browser.Outcome
	b.mountOnce.Do(func() {
		done = b.start(ctx, browser.DefaultQuery())
	})
	return done, done != nil
}

// LoadDefaultRepositories fetches the unfiltered repository list
func (b *RepositoryBrowser) LoadDefaultRepositories(ctx context.Context) browser.Outcome {
	return b.load(ctx, browser.DefaultQuery())
}

// LoadRepositoriesByTopic fetches the repositories for a topic
func (b *RepositoryBrowser) LoadRepositoriesByTopic(ctx context.Context, topic string) browser.Outcome {
	return b.load(ctx, browser.TopicQuery(repo.NewTopic(topic)))
}

// Search loads by topic when the search text has content, otherwise the default list
func (b *RepositoryBrowser) Search(ctx context.Context) browser.Outcome {
	return b.load(ctx, b.searchQuery())
}

// StartSearch marks the browser as loading before returning and runs the
// search in the background. The channel receives the outcome once.
func (b *RepositoryBrowser) StartSearch(ctx context.Context) <-chan browser.Outcome {
	return b.start(ctx, b.searchQuery())
}

func (b *RepositoryBrowser) start(ctx context.Context, query browser.Query) <-chan browser.Outcome {
	seq := b.begin()

	done := make(chan browser.Outcome, 1)
	go func() {
		done <- b.run(ctx, query, seq)
	}()
	return done
}

func (b *RepositoryBrowser) searchQuery() browser.Query {
	b.mu.Lock()
	topic := b.state.Topic()
	b.mu.Unlock()

	if topic.IsEmpty() {
		return browser.DefaultQuery()
	}
	return browser.TopicQuery(topic)
}

// SetSearchTopic records the current text of the search field
func (b *RepositoryBrowser) SetSearchTopic(topic string) {
	b.mu.Lock()
	b.state = b.state.WithSearchTopic(topic)
	snapshot := b.state
	b.mu.Unlock()

	b.publish(browser.EventTypeTopicChanged, snapshot, nil)
}

// SetSearchTopicRevision records the search text typed at keystroke rev and
// reports whether it was applied. Stale revisions are dropped.
func (b *RepositoryBrowser) SetSearchTopicRevision(topic string, rev uint64) bool {
	b.mu.Lock()
	next, applied := b.state.WithSearchTopicRevision(topic, rev)
	b.state = next
	snapshot := b.state
	b.mu.Unlock()

	if !applied {
		b.logger.Debug().
			Uint64("revision", rev).
			Uint64("current_revision", snapshot.SearchTopicRevision).
			Msg("Ignored stale search text")
		return false
	}
	b.publish(browser.EventTypeTopicChanged, snapshot, nil)
	return true
}

// ToggleTheme flips dark mode and returns the new value
func (b *RepositoryBrowser) ToggleTheme() bool {
	b.mu.Lock()
	b.state = b.state.ToggleTheme()
	snapshot := b.state
	b.mu.Unlock()

	b.publish(browser.EventTypeThemeToggled, snapshot, nil)
	return snapshot.IsDarkMode
}

func (b *RepositoryBrowser) load(ctx context.Context, query browser.Query) browser.Outcome {
	return b.run(ctx, query, b.begin())
}

func (b *RepositoryBrowser) run(ctx context.Context, query browser.Query, seq uint64) (outcome browser.Outcome) {
	outcome = browser.Outcome{Query: query, Sequence: seq, Err: errRequestInterrupted}
	// The loading flag is cleared on every exit path.
	defer func() { b.settle(outcome) }()

	var (
		summaries []repo.Summary
		err       error
	)
	if query.HasTopic {
		summaries, err = b.source.ListRepositoriesByTopic(ctx, query.Topic)
	} else {
		summaries, err = b.source.ListRepositories(ctx)
	}

	if err != nil {
		outcome.Err = err
		event := b.logger.Error().Err(err).Uint64("sequence", outcome.Sequence)
		if query.HasTopic {
			event = event.Str("topic", query.Topic.String())
		}
		if ff, ok := repo.AsFetchFailure(err); ok {
			event = event.Str("kind", string(ff.Kind)).Str("endpoint", ff.Endpoint)
		}
		event.Msg("Error fetching repositories")
		return outcome
	}

	outcome.Repositories, outcome.Err = summaries, nil
	b.logger.Debug().
		Uint64("sequence", outcome.Sequence).
		Int("count", len(summaries)).
		Msg("Fetched repositories")
	return outcome
}

func (b *RepositoryBrowser) begin() uint64 {
	b.mu.Lock()
	b.seq++
	seq := b.seq
	b.state = b.state.BeginLoad()
	snapshot := b.state
	b.mu.Unlock()

	b.publish(browser.EventTypeLoadingStarted, snapshot, &browser.Outcome{Sequence: seq})
	return seq
}

func (b *RepositoryBrowser) settle(outcome browser.Outcome) {
	b.mu.Lock()
	b.state = b.state.Settle(outcome)
	snapshot := b.state
	b.mu.Unlock()

	eventType := browser.EventTypeRepositoriesLoaded
	if !outcome.Succeeded() {
		eventType = browser.EventTypeFetchFailed
	}
	b.publish(eventType, snapshot, &outcome)
}

func (b *RepositoryBrowser) publish(eventType string, snapshot browser.State, outcome *browser.Outcome) {
	if b.dispatcher == nil {
		return
	}
	event := browser.NewStateChangedEvent(eventType, b.sessionID, snapshot, outcome)
	// Subscribers must not be able to cancel or fail a state transition.
	if err := b.dispatcher.Dispatch(context.Background(), event); err != nil {
		b.logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to publish browser event")
	}
}
