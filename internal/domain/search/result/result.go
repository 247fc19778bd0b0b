package result

import "github.com/taleweave/storysearch/internal/domain/search/kind"

// StoryHit carries the display fields of a matched story.
type StoryHit struct {
	ID             string
	Title          string
	Excerpt        string
	Tags           []string
	AuthorUsername string
	Anonymous      bool
	CreatedAt      int64
	LikeCount      int
}

// AuthorHit carries the display fields of a matched author.
type AuthorHit struct {
	ID        string
	Username  string
	Name      string
	CreatedAt int64
}

// TagHit carries the display fields of a matched tag.
type TagHit struct {
	Name string
}

// CollectionHit carries the display fields of a matched collection.
type CollectionHit struct {
	ID             string
	Title          string
	Description    string
	Tags           []string
	AuthorUsername string
	StoryCount     int
	CreatedAt      int64
	LikeCount      int
}

// Result is a single scored search hit: a tagged union over the four entity
// kinds. Exactly one of the hit accessors returns non-nil, matching Kind().
type Result struct {
	kind       kind.Kind
	score      int
	story      *StoryHit
	author     *AuthorHit
	tag        *TagHit
	collection *CollectionHit
}

// NewStory creates a story result.
func NewStory(score int, hit StoryHit) Result {
	return Result{kind: kind.Story, score: score, story: &hit}
}

// NewAuthor creates an author result.
func NewAuthor(score int, hit AuthorHit) Result {
	return Result{kind: kind.Author, score: score, author: &hit}
}

// NewTag creates a tag result.
func NewTag(score int, hit TagHit) Result {
	return Result{kind: kind.Tag, score: score, tag: &hit}
}

// NewCollection creates a collection result.
func NewCollection(score int, hit CollectionHit) Result {
	return Result{kind: kind.Collection, score: score, collection: &hit}
}

// Kind returns the entity kind discriminator.
func (r *Result) Kind() kind.Kind { return r.kind }

// Score returns the relevance score.
func (r *Result) Score() int { return r.score }

// Story returns the story payload, nil for other kinds.
func (r *Result) Story() *StoryHit { return r.story }

// Author returns the author payload, nil for other kinds.
func (r *Result) Author() *AuthorHit { return r.author }

// Tag returns the tag payload, nil for other kinds.
func (r *Result) Tag() *TagHit { return r.tag }

// Collection returns the collection payload, nil for other kinds.
func (r *Result) Collection() *CollectionHit { return r.collection }

// CreatedAt returns the hit's creation timestamp; tags have none and report 0.
func (r *Result) CreatedAt() int64 {
	switch r.kind {
	case kind.Story:
		return r.story.CreatedAt
	case kind.Author:
		return r.author.CreatedAt
	case kind.Collection:
		return r.collection.CreatedAt
	default:
		return 0
	}
}

// LikeCount returns the hit's like count; only stories and collections carry likes.
func (r *Result) LikeCount() int {
	switch r.kind {
	case kind.Story:
		return r.story.LikeCount
	case kind.Collection:
		return r.collection.LikeCount
	default:
		return 0
	}
}

// Set groups results by kind for the response payload.
// TotalResults always equals the sum of the four list lengths.
type Set struct {
	Stories      []Result
	Authors      []Result
	Tags         []Result
	Collections  []Result
	TotalResults int
}

// Bucket returns the list for a kind.
func (s *Set) Bucket(k kind.Kind) []Result {
	switch k {
	case kind.Story:
		return s.Stories
	case kind.Author:
		return s.Authors
	case kind.Tag:
		return s.Tags
	case kind.Collection:
		return s.Collections
	default:
		return nil
	}
}

// Add appends a result to its kind's bucket and bumps TotalResults.
func (s *Set) Add(r Result) {
	switch r.Kind() {
	case kind.Story:
		s.Stories = append(s.Stories, r)
	case kind.Author:
		s.Authors = append(s.Authors, r)
	case kind.Tag:
		s.Tags = append(s.Tags, r)
	case kind.Collection:
		s.Collections = append(s.Collections, r)
	default:
		return
	}
	s.TotalResults++
}
