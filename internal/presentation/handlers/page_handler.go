package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"repobrowser/internal/application/service"
	"repobrowser/internal/middleware"
	"repobrowser/internal/presentation/views"
)

// PageHandler serves the server-rendered repository browser
type PageHandler struct {
	sessions *service.SessionStore
	logger   zerolog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(sessions *service.SessionStore, logger zerolog.Logger) *PageHandler {
	return &PageHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// Index handles GET /
// The first visit of a session starts the initial default load and renders
// the loading page; the event stream reports when it settles.
func (h *PageHandler) Index(c *gin.Context) {
	b, _ := h.sessions.Get(middleware.SessionID(c))

	// Detached so the load outlives this request.
	if _, started := b.Mount(context.WithoutCancel(c.Request.Context())); started {
		h.logger.Debug().
			Str("session_id", b.SessionID()).
			Msg("Browser mounted")
	}

	c.HTML(http.StatusOK, views.IndexTemplate, views.NewPage(b.State()))
}

// SubmitSearch handles POST /search
// The search runs in the background; the page shows the loading indicator
// until the session's event stream reports that it settled.
func (h *PageHandler) SubmitSearch(c *gin.Context) {
	b, _ := h.sessions.Get(middleware.SessionID(c))

	if topic, ok := c.GetPostForm("topic"); ok {
		if rev, err := strconv.ParseUint(c.PostForm("topic_revision"), 10, 64); err == nil {
			b.SetSearchTopicRevision(topic, rev)
		} else {
			b.SetSearchTopic(topic)
		}
	}
	b.StartSearch(context.WithoutCancel(c.Request.Context()))

	c.Redirect(http.StatusSeeOther, "/")
}

// ToggleTheme handles POST /theme
func (h *PageHandler) ToggleTheme(c *gin.Context) {
	b, _ := h.sessions.Get(middleware.SessionID(c))
	b.ToggleTheme()

	c.Redirect(http.StatusSeeOther, "/")
}
