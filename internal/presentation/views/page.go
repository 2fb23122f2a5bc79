// Package views renders the repository browser page. NewPage is a pure
// projection of browser state; the templates only format it.
package views

import (
	"embed"
	"html/template"

	"repobrowser/internal/domain/browser"
)

//go:embed templates/*.html
var templateFS embed.FS

// IndexTemplate is the name of the page template
const IndexTemplate = "index.html"

// Card is one rendered repository
type Card struct {
	Key         string
	Name        string
	Author      string
	Language    string
	Description string
	URL         string
	AvatarURL   string
	AvatarAlt   string
}

// Page is everything the index template needs
type Page struct {
	Title            string
	Theme            string
	ThemeToggleLabel string
	SearchTopic      string
	TopicRevision    uint64
	IsLoading        bool
	Cards            []Card
}

// NewPage projects a browser state onto the page
func NewPage(s browser.State) Page {
	p := Page{
		Title:            "GitHub Repositories",
		Theme:            "light",
		ThemeToggleLabel: "Dark Mode",
		SearchTopic:      s.SearchTopic,
		TopicRevision:    s.SearchTopicRevision,
		IsLoading:        s.IsLoading,
		Cards:            make([]Card, len(s.Repositories)),
	}
	if s.IsDarkMode {
		p.Theme = "dark"
		p.ThemeToggleLabel = "Light Mode"
	}
	for i, r := range s.Repositories {
		p.Cards[i] = Card{
			Key:         r.Key(),
			Name:        r.RepositoryName,
			Author:      r.Author,
			Language:    r.Language,
			Description: r.Description,
			URL:         r.URL,
			AvatarURL:   r.AvatarURL,
			AvatarAlt:   r.Author + "'s avatar",
		}
	}
	return p
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
