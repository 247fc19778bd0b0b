// Package domain holds the entity projections and sentinel errors shared by
// the search pipeline. Entities are read-only views over the platform's
// document store; the search service never writes them.
package domain

// Story is the searchable projection of a published story.
type Story struct {
	ID             string
	Title          string
	Content        string
	Tags           []string
	AuthorUsername string
	AuthorName     string
	Anonymous      bool
	CreatedAt      int64 // unix milliseconds
	LikeCount      int
}

// Author is the searchable projection of a user profile.
type Author struct {
	ID        string
	Username  string
	Name      string
	CreatedAt int64
}

// Tag is one value from the distinct tag universe.
type Tag struct {
	Name string
}

// Collection is the searchable projection of a story collection.
type Collection struct {
	ID             string
	Title          string
	Description    string
	Tags           []string
	AuthorUsername string
	StoryCount     int
	CreatedAt      int64
	LikeCount      int
}
