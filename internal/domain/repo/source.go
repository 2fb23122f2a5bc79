package repo

import (
	"context"
)

// Source is a domain service interface for reading repository summaries
// Implementation will be in infrastructure layer
type Source interface {
	// ListRepositories fetches the unfiltered repository list
	ListRepositories(ctx context.Context) ([]Summary, error)

	// ListRepositoriesByTopic fetches the repositories matching a topic
	ListRepositoriesByTopic(ctx context.Context, topic Topic) ([]Summary, error)
}
