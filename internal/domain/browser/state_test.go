package browser_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"repobrowser/internal/domain/browser"
	"repobrowser/internal/domain/repo"
)

var fixture = []repo.Summary{{
	RepositoryName: "x",
	Author:         "a",
	Language:       "Go",
	Description:    "d",
	URL:            "http://u",
	AvatarURL:      "http://v",
}}

func TestState_ToggleTheme(t *testing.T) {
	var s browser.State

	once := s.ToggleTheme()
	assert.True(t, once.IsDarkMode)

	twice := once.ToggleTheme()
	assert.Equal(t, s.IsDarkMode, twice.IsDarkMode)
	assert.False(t, s.IsDarkMode, "transitions must not mutate the receiver")
}

func TestState_SettleSuccessReplacesList(t *testing.T) {
	s := browser.State{Repositories: []repo.Summary{{RepositoryName: "old"}}}.BeginLoad()
	assert.True(t, s.IsLoading)

	incoming := repo.CloneSummaries(fixture)
	next := s.Settle(browser.Outcome{Repositories: incoming})

	assert.False(t, next.IsLoading)
	assert.Equal(t, fixture, next.Repositories)

	incoming[0].Author = "mutated"
	assert.Equal(t, "a", next.Repositories[0].Author, "state must not alias the outcome slice")
}

func TestState_SettleFailureKeepsList(t *testing.T) {
	previous := []repo.Summary{{RepositoryName: "kept"}}
	s := browser.State{Repositories: previous}.BeginLoad()

	next := s.Settle(browser.Outcome{Err: repo.ErrUnexpectedStatus("/api/github", 500, "")})

	assert.False(t, next.IsLoading)
	assert.Equal(t, previous, next.Repositories)
}

func TestState_SettleEmptySuccess(t *testing.T) {
	s := browser.State{Repositories: fixture}.BeginLoad()

	next := s.Settle(browser.Outcome{Repositories: []repo.Summary{}})

	assert.NotNil(t, next.Repositories)
	assert.Empty(t, next.Repositories)
}

func TestState_WithSearchTopic(t *testing.T) {
	s := browser.State{}.WithSearchTopic("  rust ")
	assert.Equal(t, "  rust ", s.SearchTopic)
	assert.False(t, s.Topic().IsEmpty())
	assert.True(t, s.WithSearchTopic("   ").Topic().IsEmpty())
}

func TestState_WithSearchTopicRevision(t *testing.T) {
	s, applied := browser.State{}.WithSearchTopicRevision("rus", 3)
	assert.True(t, applied)
	assert.Equal(t, "rus", s.SearchTopic)
	assert.Equal(t, uint64(3), s.SearchTopicRevision)

	tests := []struct {
		name    string
		topic   string
		rev     uint64
		applied bool
		want    string
	}{
		{name: "older keystroke", topic: "ru", rev: 2, want: "rus"},
		{name: "same keystroke", topic: "rux", rev: 3, want: "rus"},
		{name: "newer keystroke", topic: "rust", rev: 4, applied: true, want: "rust"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, applied := s.WithSearchTopicRevision(tt.topic, tt.rev)
			assert.Equal(t, tt.applied, applied)
			assert.Equal(t, tt.want, next.SearchTopic)
		})
	}
}

func TestState_Clone(t *testing.T) {
	s := browser.State{Repositories: []repo.Summary{{RepositoryName: "one"}}}
	c := s.Clone()
	c.Repositories[0].RepositoryName = "two"
	assert.Equal(t, "one", s.Repositories[0].RepositoryName)
}

func TestOutcome(t *testing.T) {
	ok := browser.Outcome{Query: browser.DefaultQuery(), Repositories: fixture}
	assert.True(t, ok.Succeeded())
	_, failed := ok.Failure()
	assert.False(t, failed)

	ff := repo.ErrNetwork("/api/github/topic", errors.New("refused"))
	bad := browser.Outcome{Query: browser.TopicQuery(repo.NewTopic("rust")), Err: ff}
	assert.False(t, bad.Succeeded())
	got, failed := bad.Failure()
	assert.True(t, failed)
	assert.Same(t, ff, got)
	assert.True(t, bad.Query.HasTopic)
	assert.Equal(t, "rust", bad.Query.Topic.String())
}

func TestNewStateChangedEvent(t *testing.T) {
	s := browser.State{Repositories: fixture, IsDarkMode: true, SearchTopic: "go"}
	o := &browser.Outcome{Sequence: 3, Err: errors.New("boom")}

	e := browser.NewStateChangedEvent(browser.EventTypeFetchFailed, "session-1", s, o)

	assert.Equal(t, browser.EventTypeFetchFailed, e.EventType())
	assert.Equal(t, "session-1", e.AggregateID())
	assert.Equal(t, browser.StatePayload{
		Sequence:        3,
		Topic:           "go",
		IsDarkMode:      true,
		RepositoryCount: 1,
		Error:           "boom",
	}, e.Payload())
}
