package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"repobrowser/internal/application/dto"
	"repobrowser/internal/application/service"
	"repobrowser/internal/domain/browser"
	"repobrowser/internal/middleware"
)

// RepositoryHandler exposes the repository browser as a JSON API
type RepositoryHandler struct {
	sessions *service.SessionStore
}

// NewRepositoryHandler creates a new repository handler
func NewRepositoryHandler(sessions *service.SessionStore) *RepositoryHandler {
	return &RepositoryHandler{sessions: sessions}
}

func (h *RepositoryHandler) browser(c *gin.Context) *service.RepositoryBrowser {
	b, _ := h.sessions.Get(middleware.SessionID(c))
	return b
}

func (h *RepositoryHandler) respondOutcome(c *gin.Context, b *service.RepositoryBrowser, outcome browser.Outcome) {
	c.JSON(http.StatusOK, service.OutcomeToDTO(outcome, b.State()))
}

// GetState handles GET /state
// @Summary Get browser state
// @Description Returns the session's repository list, search text, loading flag and theme
// @Tags Browser
// @Produce json
// @Success 200 {object} dto.StateResponse
// @Router /state [get]
func (h *RepositoryHandler) GetState(c *gin.Context) {
	c.JSON(http.StatusOK, service.StateToDTO(h.browser(c).State()))
}

// SetTopic handles PUT /state/topic
// @Summary Update search text
// @Description Records the current text of the search field. With a revision, updates older than the applied one are ignored and the current state is returned.
// @Tags Browser
// @Accept json
// @Produce json
// @Param request body dto.SetTopicRequest true "Search text"
// @Success 200 {object} dto.StateResponse
// @Failure 400 {object} ErrorResponse
// @Router /state/topic [put]
func (h *RepositoryHandler) SetTopic(c *gin.Context) {
	var req dto.SetTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "Request body must be {\"topic\": string}",
			Details: err.Error(),
		})
		return
	}

	b := h.browser(c)
	if req.Revision != nil {
		b.SetSearchTopicRevision(*req.Topic, *req.Revision)
	} else {
		b.SetSearchTopic(*req.Topic)
	}
	c.JSON(http.StatusOK, service.StateToDTO(b.State()))
}

// Search handles POST /search
// @Summary Run the search action
// @Description Loads by topic when the search text is non-blank, otherwise the default list. Fetch failures are reported in the body, not the status.
// @Tags Browser
// @Produce json
// @Success 200 {object} dto.OutcomeResponse
// @Router /search [post]
func (h *RepositoryHandler) Search(c *gin.Context) {
	b := h.browser(c)
	h.respondOutcome(c, b, b.Search(c.Request.Context()))
}

// LoadDefault handles POST /repositories/default
// @Summary Load the default repository list
// @Tags Browser
// @Produce json
// @Success 200 {object} dto.OutcomeResponse
// @Router /repositories/default [post]
func (h *RepositoryHandler) LoadDefault(c *gin.Context) {
	b := h.browser(c)
	h.respondOutcome(c, b, b.LoadDefaultRepositories(c.Request.Context()))
}

// LoadByTopic handles POST /repositories/topic
// @Summary Load repositories for a topic
// @Tags Browser
// @Produce json
// @Param topic query string true "Topic"
// @Success 200 {object} dto.OutcomeResponse
// @Failure 400 {object} ErrorResponse
// @Router /repositories/topic [post]
func (h *RepositoryHandler) LoadByTopic(c *gin.Context) {
	topic, ok := c.GetQuery("topic")
	if !ok {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_request",
			Message: "topic query parameter is required",
		})
		return
	}

	b := h.browser(c)
	h.respondOutcome(c, b, b.LoadRepositoriesByTopic(c.Request.Context(), topic))
}

// ToggleTheme handles POST /theme/toggle
// @Summary Toggle dark mode
// @Tags Browser
// @Produce json
// @Success 200 {object} dto.ThemeResponse
// @Router /theme/toggle [post]
func (h *RepositoryHandler) ToggleTheme(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ThemeResponse{DarkMode: h.browser(c).ToggleTheme()})
}
