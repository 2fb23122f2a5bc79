package repo

// Summary is the repository API's representation of one GitHub repository.
// It is supplied by the remote API and never modified by this service.
type Summary struct {
	RepositoryName string `json:"repository_name"`
	Author         string `json:"author"`
	Language       string `json:"language"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	AvatarURL      string `json:"avatar_url"`
}

// Key returns the value used to identify the summary in a rendered list
func (s Summary) Key() string {
	return s.RepositoryName
}

// CloneSummaries returns a copy of the list so callers never share backing arrays.
// A nil list stays nil.
func CloneSummaries(in []Summary) []Summary {
	if in == nil {
		return nil
	}
	out := make([]Summary, len(in))
	copy(out, in)
	return out
}
