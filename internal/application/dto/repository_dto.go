package dto

// RepositoryResponse represents one repository summary in API responses
type RepositoryResponse struct {
	RepositoryName string `json:"repository_name"`
	Author         string `json:"author"`
	Language       string `json:"language"`
	Description    string `json:"description"`
	URL            string `json:"url"`
	AvatarURL      string `json:"avatar_url"`
}
