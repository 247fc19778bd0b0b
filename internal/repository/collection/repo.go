// Package collection fetches collection candidates for scoring.
package collection

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

// store is the consumer interface for collection reads (ISP).
type store interface {
	Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.CollectionFetcher.
type Repo struct {
	store store
}

// New creates a collection repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

var returnFields = []string{
	"title", "description", "tags",
	"author_username", "story_count",
	"created_at", "like_count",
}

// Fetch returns up to limit collections whose title, description, or tags
// loosely match the query, newest first.
func (r *Repo) Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Collection, error) {
	union := db.PrefixUnion(q.Terms())
	if union == "" {
		return nil, nil
	}

	queryStr := fmt.Sprintf(
		"(@title:(%s)) | (@description:(%s)) | (@tags:{%s})",
		union, union, union,
	)

	sr, err := r.store.Search(ctx, &db.TextQuery{
		Index:        domain.CollectionIndex,
		Query:        queryStr,
		SortBy:       "created_at",
		SortDesc:     true,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, domain.NewFetchError(kind.Collection, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	cols := make([]domain.Collection, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		cols = append(cols, parseCollection(entry))
	}
	return cols, nil
}

func parseCollection(entry db.SearchEntry) domain.Collection {
	f := entry.Fields
	createdAt, _ := strconv.ParseInt(f["created_at"], 10, 64)
	storyCount, _ := strconv.Atoi(f["story_count"])
	likeCount, _ := strconv.Atoi(f["like_count"])
	return domain.Collection{
		ID:             strings.TrimPrefix(entry.Key, domain.KeyPrefix+"collection:"),
		Title:          f["title"],
		Description:    f["description"],
		Tags:           splitTags(f["tags"]),
		AuthorUsername: f["author_username"],
		StoryCount:     storyCount,
		CreatedAt:      createdAt,
		LikeCount:      likeCount,
	}
}

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
