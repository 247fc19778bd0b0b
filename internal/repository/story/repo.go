// Package story fetches story candidates for scoring. The index query is
// recall-oriented: prefix tokens over the query terms cast a wide net, and the
// scorers apply the precise substring rules in-process.
package story

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/taleweave/storysearch/internal/db"
	"github.com/taleweave/storysearch/internal/domain"
	"github.com/taleweave/storysearch/internal/domain/search/kind"
	"github.com/taleweave/storysearch/internal/domain/search/query"
)

// store is the consumer interface for story reads (ISP).
type store interface {
	Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.StoryFetcher.
type Repo struct {
	store store
}

// New creates a story repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

var returnFields = []string{
	"title", "content", "tags",
	"author_username", "author_name", "anonymous",
	"created_at", "like_count",
}

// Fetch returns up to limit stories loosely matching the query, newest first.
// In guest context the author name/username clauses are omitted entirely.
func (r *Repo) Fetch(ctx context.Context, q query.Query, guest bool, limit int) ([]domain.Story, error) {
	union := db.PrefixUnion(q.Terms())
	if union == "" {
		return nil, nil
	}

	clauses := []string{
		fmt.Sprintf("(@title:(%s))", union),
		fmt.Sprintf("(@content:(%s))", union),
		fmt.Sprintf("(@tags:{%s})", union),
	}
	if !guest {
		clauses = append(clauses,
			fmt.Sprintf("(@author_username:(%s))", union),
			fmt.Sprintf("(@author_name:(%s))", union),
		)
	}

	sr, err := r.store.Search(ctx, &db.TextQuery{
		Index:        domain.StoryIndex,
		Query:        strings.Join(clauses, " | "),
		SortBy:       "created_at",
		SortDesc:     true,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, domain.NewFetchError(kind.Story, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	stories := make([]domain.Story, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		stories = append(stories, parseStory(entry))
	}
	return stories, nil
}

func parseStory(entry db.SearchEntry) domain.Story {
	f := entry.Fields
	createdAt, _ := strconv.ParseInt(f["created_at"], 10, 64)
	likeCount, _ := strconv.Atoi(f["like_count"])
	return domain.Story{
		ID:             strings.TrimPrefix(entry.Key, domain.KeyPrefix+"story:"),
		Title:          f["title"],
		Content:        f["content"],
		Tags:           splitTags(f["tags"]),
		AuthorUsername: f["author_username"],
		AuthorName:     f["author_name"],
		Anonymous:      f["anonymous"] == "1",
		CreatedAt:      createdAt,
		LikeCount:      likeCount,
	}
}

// splitTags splits the comma-separated TAG field value.
func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
