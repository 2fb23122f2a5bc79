package repoapi

import (
	"context"
	"errors"

	"repobrowser/internal/domain/repo"
	"repobrowser/internal/repoapi"
)

// SourceImpl implements the domain repo.Source interface
type SourceImpl struct {
	client *repoapi.Client
}

// NewSource creates a new repository source backed by the API client
func NewSource(client *repoapi.Client) repo.Source {
	return &SourceImpl{client: client}
}

// ListRepositories fetches the unfiltered repository list
func (s *SourceImpl) ListRepositories(ctx context.Context) ([]repo.Summary, error) {
	apiRepos, err := s.client.GetRepositories(ctx)
	if err != nil {
		return nil, toFetchFailure(repoapi.DefaultListPath, err)
	}
	return toSummaries(apiRepos), nil
}

// ListRepositoriesByTopic fetches the repositories matching a topic
func (s *SourceImpl) ListRepositoriesByTopic(ctx context.Context, topic repo.Topic) ([]repo.Summary, error) {
	apiRepos, err := s.client.GetRepositoriesByTopic(ctx, topic.String())
	if err != nil {
		return nil, toFetchFailure(repoapi.TopicListPath, err)
	}
	return toSummaries(apiRepos), nil
}

// toFetchFailure classifies a client error as a domain FetchFailure
func toFetchFailure(endpoint string, err error) *repo.FetchFailure {
	var statusErr *repoapi.StatusError
	if errors.As(err, &statusErr) {
		return repo.ErrUnexpectedStatus(endpoint, statusErr.StatusCode, statusErr.Body)
	}

	var decodeErr *repoapi.DecodeError
	if errors.As(err, &decodeErr) {
		return repo.ErrMalformedBody(endpoint, decodeErr.Err)
	}

	return repo.ErrNetwork(endpoint, err)
}

// toSummaries converts API repositories to domain summaries
func toSummaries(apiRepos []repoapi.Repository) []repo.Summary {
	summaries := make([]repo.Summary, len(apiRepos))
	for i, r := range apiRepos {
		summaries[i] = repo.Summary{
			RepositoryName: r.RepositoryName,
			Author:         r.Author,
			Language:       r.Language,
			Description:    r.Description,
			URL:            r.URL,
			AvatarURL:      r.AvatarURL,
		}
	}
	return summaries
}
