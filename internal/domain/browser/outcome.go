package browser

import (
	"repobrowser/internal/domain/repo"
)

// Query identifies which endpoint a request targets.
// A query without a topic is the default list.
type Query struct {
	Topic    repo.Topic
	HasTopic bool
}

// DefaultQuery targets the unfiltered list
func DefaultQuery() Query {
	return Query{}
}

// TopicQuery targets the topic-filtered list
func TopicQuery(topic repo.Topic) Query {
	return Query{Topic: topic, HasTopic: true}
}

// Outcome is the result of one request against the repository API.
type Outcome struct {
	Query        Query
	Sequence     uint64
	Repositories []repo.Summary
	Err          error
}

// Succeeded reports whether the request replaced the repository list
func (o Outcome) Succeeded() bool {
	return o.Err == nil
}

// Failure returns the fetch failure carried by the outcome, if any
func (o Outcome) Failure() (*repo.FetchFailure, bool) {
	if o.Err == nil {
		return nil, false
	}
	return repo.AsFetchFailure(o.Err)
}
