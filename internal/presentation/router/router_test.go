package router

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repobrowser/internal/application/dto"
	"repobrowser/internal/application/service"
	"repobrowser/internal/config"
	"repobrowser/internal/domain/browser"
	"repobrowser/internal/domain/events"
	"repobrowser/internal/domain/repo"
	"repobrowser/internal/middleware"
	"repobrowser/internal/presentation/handlers"
)

const (
	testTimeout = 2 * time.Second
	tick        = 10 * time.Millisecond
)

type fakeSource struct {
	mu           sync.Mutex
	defaultCalls int
	topicCalls   []string
	repos        []repo.Summary
	err          error
	gate         chan struct{}
}

func (f *fakeSource) ListRepositories(ctx context.Context) ([]repo.Summary, error) {
	f.mu.Lock()
	f.defaultCalls++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return repo.CloneSummaries(f.repos), f.err
}

// block holds default-list fetches until gate is closed
func (f *fakeSource) block(gate chan struct{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gate = gate
}

func (f *fakeSource) ListRepositoriesByTopic(ctx context.Context, topic repo.Topic) ([]repo.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topicCalls = append(f.topicCalls, topic.String())
	return repo.CloneSummaries(f.repos), f.err
}

func (f *fakeSource) set(repos []repo.Summary, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repos, f.err = repos, err
}

func (f *fakeSource) calls() (int, []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.defaultCalls, append([]string(nil), f.topicCalls...)
}

var fixture = []repo.Summary{{
	RepositoryName: "x",
	Author:         "a",
	Language:       "Go",
	Description:    "d",
	URL:            "http://u",
	AvatarURL:      "http://v",
}}

type testServer struct {
	engine   *gin.Engine
	source   *fakeSource
	sessions *service.SessionStore
	sse      *handlers.SSEManager
	cfg      *config.Config
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Server:  config.ServerConfig{CORSAllowedOrigins: []string{"*"}},
		API:     config.APIConfig{BaseURL: "http://api.test"},
		Session: config.SessionConfig{Secret: "test-secret", CookieName: "sid", IdleTimeout: 60},
		Log:     config.LogConfig{Level: "disabled", Format: "json"},
	}

	source := &fakeSource{repos: fixture}
	dispatcher := events.NewDispatcher(zerolog.Nop())
	sse := handlers.NewSSEManager(zerolog.Nop())
	dispatcher.RegisterAll(browser.EventTypes, sse.HandleEvent)

	sessions := service.NewSessionStore(func(id string) *service.RepositoryBrowser {
		return service.NewRepositoryBrowser(id, source, dispatcher, zerolog.Nop())
	})

	engine, err := New(Deps{Config: cfg, Sessions: sessions, SSE: sse, Logger: zerolog.Nop()})
	require.NoError(t, err)

	return &testServer{engine: engine, source: source, sessions: sessions, sse: sse, cfg: cfg}
}

func (s *testServer) do(t *testing.T, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

// mount opens the page for a new session and waits for the first load to settle
func (s *testServer) mount(t *testing.T) *http.Cookie {
	t.Helper()
	cookie := sessionCookie(t, s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil))
	require.Eventually(t, func() bool {
		state := decode[dto.StateResponse](t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil), cookie))
		return !state.IsLoading
	}, testTimeout, tick)
	return cookie
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth_NoSessionRequired(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Result().Cookies())
	resp := decode[handlers.HealthResponse](t, rec)
	assert.Equal(t, "healthy", resp.Status)
}

func TestIndex_MountsOncePerSession(t *testing.T) {
	s := newTestServer(t)

	release := make(chan struct{})
	s.source.block(release)

	// The first render does not wait for the API
	first := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, first.Code)
	body := first.Body.String()
	assert.Contains(t, body, "GitHub Repositories")
	assert.Contains(t, body, `id="loading"`)
	assert.NotContains(t, body, `class="card"`)

	cookie := sessionCookie(t, first)
	assert.True(t, cookie.HttpOnly)

	close(release)
	require.Eventually(t, func() bool {
		state := decode[dto.StateResponse](t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil), cookie))
		return !state.IsLoading && len(state.Repositories) == 1
	}, testTimeout, tick)

	second := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	require.Equal(t, http.StatusOK, second.Code)
	body = second.Body.String()
	assert.Equal(t, 1, strings.Count(body, `class="card"`))
	assert.Contains(t, body, "Author: a")
	assert.NotContains(t, body, `id="loading"`)

	defaults, topics := s.source.calls()
	assert.Equal(t, 1, defaults)
	assert.Empty(t, topics)

	// A browser without the cookie is a separate session
	s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, 2, s.sessions.Len())
	require.Eventually(t, func() bool {
		defaults, _ := s.source.calls()
		return defaults == 2
	}, testTimeout, tick)
}

func TestAPI_TypeThenSearch(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil), nil))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/state/topic", strings.NewReader(`{"topic":"rust"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := s.do(t, req, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "rust", decode[dto.StateResponse](t, rec).SearchTopic)

	rec = s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/search", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	outcome := decode[dto.OutcomeResponse](t, rec)

	assert.True(t, outcome.Succeeded)
	require.NotNil(t, outcome.Topic)
	assert.Equal(t, "rust", *outcome.Topic)
	require.Len(t, outcome.Repositories, 1)
	assert.Equal(t, "x", outcome.Repositories[0].RepositoryName)
	assert.False(t, outcome.State.IsLoading)

	defaults, topics := s.source.calls()
	assert.Equal(t, 0, defaults)
	assert.Equal(t, []string{"rust"}, topics)
}

func TestAPI_SearchWithBlankTopicLoadsDefault(t *testing.T) {
	s := newTestServer(t)
	cookie := sessionCookie(t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil), nil))

	req := httptest.NewRequest(http.MethodPut, "/api/v1/state/topic", strings.NewReader(`{"topic":"   "}`))
	req.Header.Set("Content-Type", "application/json")
	s.do(t, req, cookie)

	rec := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/search", nil), cookie)
	outcome := decode[dto.OutcomeResponse](t, rec)

	assert.True(t, outcome.Succeeded)
	assert.Nil(t, outcome.Topic)
	defaults, topics := s.source.calls()
	assert.Equal(t, 1, defaults)
	assert.Empty(t, topics)
}

func TestAPI_FetchFailureKeepsList(t *testing.T) {
	s := newTestServer(t)
	cookie := s.mount(t)

	s.source.set(nil, repo.ErrUnexpectedStatus("/api/github", http.StatusInternalServerError, "boom"))
	rec := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/repositories/default", nil), cookie)

	require.Equal(t, http.StatusOK, rec.Code)
	outcome := decode[dto.OutcomeResponse](t, rec)
	assert.False(t, outcome.Succeeded)
	assert.Equal(t, "status", outcome.FailureKind)
	assert.NotEmpty(t, outcome.Error)
	assert.Len(t, outcome.State.Repositories, 1)
	assert.False(t, outcome.State.IsLoading)
}

func TestAPI_LoadByTopic(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/repositories/topic", nil), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/repositories/topic?topic="+url.QueryEscape("machine learning"), nil), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.OutcomeResponse](t, rec).Succeeded)

	_, topics := s.source.calls()
	assert.Equal(t, []string{"machine learning"}, topics)
}

func TestSearchText_LateKeystrokeAfterSubmit(t *testing.T) {
	s := newTestServer(t)
	cookie := s.mount(t)

	putTopic := func(body string) dto.StateResponse {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/state/topic", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := s.do(t, req, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[dto.StateResponse](t, rec)
	}

	state := putTopic(`{"topic":"ru","revision":2}`)
	assert.Equal(t, "ru", state.SearchTopic)
	assert.Equal(t, uint64(2), state.SearchTopicRevision)

	// The form carries the newest keystroke; the PUT for an earlier one lands afterwards.
	form := url.Values{"topic": {"rust"}, "topic_revision": {"4"}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusSeeOther, s.do(t, req, cookie).Code)

	state = putTopic(`{"topic":"rus","revision":3}`)
	assert.Equal(t, "rust", state.SearchTopic)
	assert.Equal(t, uint64(4), state.SearchTopicRevision)

	require.Eventually(t, func() bool {
		_, topics := s.source.calls()
		return len(topics) == 1 && topics[0] == "rust"
	}, testTimeout, tick)

	page := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	assert.Contains(t, page.Body.String(), `value="rust"`)
	assert.Contains(t, page.Body.String(), `id="topic-revision" value="4"`)
}

func TestAPI_SetTopicRejectsBadBody(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{`not json`, `{}`, `{"topic": 3}`} {
		req := httptest.NewRequest(http.MethodPut, "/api/v1/state/topic", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := s.do(t, req, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "invalid_request", decode[handlers.ErrorResponse](t, rec).Error)
	}
}

func TestThemeToggle(t *testing.T) {
	s := newTestServer(t)
	cookie := s.mount(t)

	rec := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/theme/toggle", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[dto.ThemeResponse](t, rec).DarkMode)

	page := s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	assert.Contains(t, page.Body.String(), `<html lang="en" class="dark">`)
	assert.Contains(t, page.Body.String(), "Light Mode")

	rec = s.do(t, httptest.NewRequest(http.MethodPost, "/theme", nil), cookie)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	page = s.do(t, httptest.NewRequest(http.MethodGet, "/", nil), cookie)
	assert.Contains(t, page.Body.String(), `<html lang="en" class="light">`)
}

func TestSubmitSearchForm(t *testing.T) {
	s := newTestServer(t)
	cookie := s.mount(t)

	form := url.Values{"topic": {"go"}}
	req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := s.do(t, req, cookie)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	require.Eventually(t, func() bool {
		_, topics := s.source.calls()
		return len(topics) == 1 && topics[0] == "go"
	}, testTimeout, tick)

	require.Eventually(t, func() bool {
		state := decode[dto.StateResponse](t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil), cookie))
		return !state.IsLoading && state.SearchTopic == "go"
	}, testTimeout, tick)
}

func TestEventsStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	cookie := sessionCookie(t, s.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/state", nil), nil))

	sessions, err := middleware.NewSessionMiddleware(s.cfg)
	require.NoError(t, err)
	sessionID, err := sessions.Parse(cookie.Value)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/v1/events", nil)
	require.NoError(t, err)
	req.AddCookie(cookie)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := bufio.NewScanner(resp.Body)
	next := func() string {
		for lines.Scan() {
			if name, ok := strings.CutPrefix(lines.Text(), "event:"); ok {
				return name
			}
		}
		t.Fatalf("event stream ended: %v", lines.Err())
		return ""
	}

	assert.Equal(t, browser.EventTypeSnapshot, next())
	require.Equal(t, 1, s.sse.GetClientCount(sessionID))

	loaded := s.do(t, httptest.NewRequest(http.MethodPost, "/api/v1/repositories/default", nil), cookie)
	require.Equal(t, http.StatusOK, loaded.Code)

	assert.Equal(t, browser.EventTypeLoadingStarted, next())
	assert.Equal(t, browser.EventTypeRepositoriesLoaded, next())

	cancel()
	require.Eventually(t, func() bool {
		return s.sse.GetClientCount(sessionID) == 0
	}, testTimeout, tick)
}
