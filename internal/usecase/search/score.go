package search

import (
	"strings"

	"github.com/taleweave/storysearch/internal/domain"
)

// Relevance weights. Tiered bonuses reward precision (exact > prefix >
// substring), per-term bonuses reward coverage across multi-word queries;
// the two axes are additive.
const (
	storyTitlePhrase   = 10
	storyTitlePrefix   = 5 // on top of storyTitlePhrase
	storyContentPhrase = 3
	storyAuthorPhrase  = 6

	tagExact    = 15
	tagPrefix   = 12
	tagContains = 8

	tagTermExact    = 10
	tagTermPrefix   = 8
	tagTermContains = 4

	authorUsernamePhrase = 6
	authorNamePhrase     = 4

	collectionTitlePhrase       = 6
	collectionDescriptionPhrase = 4
	collectionTagPhrase         = 8

	termCoverage = 2
)

// scoreStory computes the relevance of a story candidate.
// All comparisons are case-insensitive; the fetch already lower-cases nothing,
// so fields are folded here.
func scoreStory(st *domain.Story, phrase string, terms []string) int {
	title := strings.ToLower(st.Title)
	content := strings.ToLower(st.Content)

	score := 0
	if strings.Contains(title, phrase) {
		score += storyTitlePhrase
		if strings.HasPrefix(title, phrase) {
			score += storyTitlePrefix
		}
	}

	for _, raw := range st.Tags {
		tag := strings.ToLower(raw)
		switch {
		case tag == phrase:
			score += tagExact
		case strings.HasPrefix(tag, phrase):
			score += tagPrefix
		case strings.Contains(tag, phrase):
			score += tagContains
		}
	}

	if strings.Contains(content, phrase) {
		score += storyContentPhrase
	}

	if !st.Anonymous && strings.Contains(strings.ToLower(st.AuthorUsername), phrase) {
		score += storyAuthorPhrase
	}

	for _, term := range terms {
		if strings.Contains(title, term) ||
			strings.Contains(content, term) ||
			anyTagContains(st.Tags, term) {
			score += termCoverage
		}
	}

	return score
}

// scoreAuthor computes the relevance of an author candidate.
func scoreAuthor(a *domain.Author, phrase string, terms []string) int {
	username := strings.ToLower(a.Username)
	name := strings.ToLower(a.Name)

	score := 0
	if strings.Contains(username, phrase) {
		score += authorUsernamePhrase
	}
	if strings.Contains(name, phrase) {
		score += authorNamePhrase
	}

	for _, term := range terms {
		if strings.Contains(username, term) || strings.Contains(name, term) {
			score += termCoverage
		}
	}

	return score
}

// scoreTag computes the relevance of a tag candidate. Phrase tiers and
// per-term tiers are mutually exclusive within themselves but additive with
// each other, so a multi-word exact-tag match dominates.
func scoreTag(t *domain.Tag, phrase string, terms []string) int {
	tag := strings.ToLower(t.Name)

	score := 0
	switch {
	case tag == phrase:
		score += tagExact
	case strings.HasPrefix(tag, phrase):
		score += tagPrefix
	case strings.Contains(tag, phrase):
		score += tagContains
	}

	for _, term := range terms {
		switch {
		case tag == term:
			score += tagTermExact
		case strings.HasPrefix(tag, term):
			score += tagTermPrefix
		case strings.Contains(tag, term):
			score += tagTermContains
		}
	}

	return score
}

// scoreCollection computes the relevance of a collection candidate.
func scoreCollection(c *domain.Collection, phrase string, terms []string) int {
	title := strings.ToLower(c.Title)
	description := strings.ToLower(c.Description)

	score := 0
	if strings.Contains(title, phrase) {
		score += collectionTitlePhrase
	}
	if strings.Contains(description, phrase) {
		score += collectionDescriptionPhrase
	}
	if anyTagContains(c.Tags, phrase) {
		score += collectionTagPhrase
	}

	for _, term := range terms {
		if strings.Contains(title, term) ||
			strings.Contains(description, term) ||
			anyTagContains(c.Tags, term) {
			score += termCoverage
		}
	}

	return score
}

func anyTagContains(tags []string, s string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), s) {
			return true
		}
	}
	return false
}
