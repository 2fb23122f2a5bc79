package repoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultListPath = "/api/github"
	TopicListPath   = "/api/github/topic"

	// maxErrorBody caps how much of a failed response is kept for diagnostics
	maxErrorBody = 512
)

// Config holds what the client needs to reach the repository API
type Config struct {
	APIBaseURL string
	// Timeout of zero means requests never time out
	Timeout time.Duration
}

// Client handles repository API interactions
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

// NewClient creates a new repository API client
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		userAgent: "repobrowser/1.0",
	}
}

// Repository represents one entry of the API's JSON array
type Repository struct {
	RepositoryName string `json:"repository_name"`
	Author         string `json:"author"`
	Language       string `json:"language"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	AvatarURL      string `json:"avatar_url"`
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("repository API returned status %d: %s", e.StatusCode, e.Body)
}

// DecodeError is returned when the body is not a JSON array of repositories
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode repositories: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

var (
	errNotArray     = errors.New("response body is not a JSON array")
	errTrailingData = errors.New("response body has data after the JSON array")
)

// GetRepositories fetches the unfiltered repository list
func (c *Client) GetRepositories(ctx context.Context) ([]Repository, error) {
	return c.get(ctx, DefaultListPath, nil)
}

// GetRepositoriesByTopic fetches the repositories for a topic
func (c *Client) GetRepositoriesByTopic(ctx context.Context, topic string) ([]Repository, error) {
	return c.get(ctx, TopicListPath, url.Values{"topic": []string{topic}})
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]Repository, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repositories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var repos []Repository
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&repos); err != nil {
		return nil, &DecodeError{Err: err}
	}
	// The array must be the whole body
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, &DecodeError{Err: errTrailingData}
	}
	// "null" decodes without error but is not an array
	if repos == nil {
		return nil, &DecodeError{Err: errNotArray}
	}

	return repos, nil
}
