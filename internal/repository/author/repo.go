// Package author fetches author candidates for scoring.
package author

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

// store is the consumer interface for author reads (ISP).
type store interface {
	Search(ctx context.Context, q *db.TextQuery) (*db.SearchResult, error)
}

// Repo implements usecase/search.AuthorFetcher.
type Repo struct {
	store store
}

// New creates an author repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

var returnFields = []string{"username", "name", "created_at"}

// Fetch returns up to limit authors whose username or name loosely matches
// the query, newest first.
func (r *Repo) Fetch(ctx context.Context, q query.Query, limit int) ([]domain.Author, error) {
	union := db.PrefixUnion(q.Terms())
	if union == "" {
		return nil, nil
	}

	queryStr := fmt.Sprintf("(@username:(%s)) | (@name:(%s))", union, union)

	sr, err := r.store.Search(ctx, &db.TextQuery{
		Index:        domain.AuthorIndex,
		Query:        queryStr,
		SortBy:       "created_at",
		SortDesc:     true,
		Limit:        limit,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, domain.NewFetchError(kind.Author, err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, nil
	}

	authors := make([]domain.Author, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		createdAt, _ := strconv.ParseInt(entry.Fields["created_at"], 10, 64)
		authors = append(authors, domain.Author{
			ID:        strings.TrimPrefix(entry.Key, domain.KeyPrefix+"author:"),
			Username:  entry.Fields["username"],
			Name:      entry.Fields["name"],
			CreatedAt: createdAt,
		})
	}
	return authors, nil
}
