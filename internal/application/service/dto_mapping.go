package service

import (
	"repobrowser/internal/application/dto"
	"repobrowser/internal/domain/browser"
	"repobrowser/internal/domain/repo"
)

// StateToDTO converts a browser state to its API representation
func StateToDTO(s browser.State) dto.StateResponse {
	return dto.StateResponse{
		Repositories:        summariesToDTO(s.Repositories),
		SearchTopic:         s.SearchTopic,
		SearchTopicRevision: s.SearchTopicRevision,
		IsLoading:           s.IsLoading,
		IsDarkMode:          s.IsDarkMode,
	}
}

// OutcomeToDTO converts a request outcome, plus the state it left behind
func OutcomeToDTO(o browser.Outcome, s browser.State) dto.OutcomeResponse {
	resp := dto.OutcomeResponse{
		Succeeded: o.Succeeded(),
		Sequence:  o.Sequence,
		State:     StateToDTO(s),
	}
	if o.Query.HasTopic {
		topic := o.Query.Topic.String()
		resp.Topic = &topic
	}
	if o.Succeeded() {
		resp.Repositories = summariesToDTO(o.Repositories)
		return resp
	}
	resp.Error = o.Err.Error()
	if ff, ok := o.Failure(); ok {
		resp.FailureKind = string(ff.Kind)
	}
	return resp
}

func summariesToDTO(summaries []repo.Summary) []*dto.RepositoryResponse {
	out := make([]*dto.RepositoryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = &dto.RepositoryResponse{
			RepositoryName: s.RepositoryName,
			Author:         s.Author,
			Language:       s.Language,
			Description:    s.Description,
			URL:            s.URL,
			AvatarURL:      s.AvatarURL,
		}
	}
	return out
}
