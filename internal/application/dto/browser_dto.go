package dto

// SetTopicRequest represents a keystroke update of the search field.
// Revision orders keystrokes; revisions older than the applied one are ignored.
type SetTopicRequest struct {
	Topic    *string `json:"topic" binding:"required"`
	Revision *uint64 `json:"revision,omitempty"`
}

// StateResponse represents the UI state of a browser session
type StateResponse struct {
	Repositories        []*RepositoryResponse `json:"repositories"`
	SearchTopic         string                `json:"search_topic"`
	SearchTopicRevision uint64                `json:"search_topic_revision"`
	IsLoading           bool                  `json:"is_loading"`
	IsDarkMode          bool                  `json:"is_dark_mode"`
}

// OutcomeResponse represents the result of one repository API request.
// Fetch failures are reported here rather than as HTTP errors.
type OutcomeResponse struct {
	Succeeded    bool                  `json:"succeeded"`
	Sequence     uint64                `json:"sequence"`
	Topic        *string               `json:"topic,omitempty"`
	Repositories []*RepositoryResponse `json:"repositories"`
	Error        string                `json:"error,omitempty"`
	FailureKind  string                `json:"failure_kind,omitempty"`
	State        StateResponse         `json:"state"`
}

// ThemeResponse represents the theme after a toggle
type ThemeResponse struct {
	DarkMode bool `json:"dark_mode"`
}
