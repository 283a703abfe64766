package domain

import "strings"

// Article is an inbound news article to classify. Source and URL are carried
// for logging only; the model consumes Title and Description.
type Article struct {
	Source      string `json:"source"`
	URL         string `json:"url"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DocumentText builds the document fed to the featurizer: title and
// description joined with a single space. Empty fields are skipped so an
// article with only a title does not pick up stray whitespace.
func (a Article) DocumentText() string {
	parts := make([]string, 0, 2)
	if a.Title != "" {
		parts = append(parts, a.Title)
	}
	if a.Description != "" {
		parts = append(parts, a.Description)
	}
	return strings.Join(parts, " ")
}
