// Package storysearch provides an embedded Go client for the taleweave
// relevance search engine, backed by a Redis entity store with the search
// module.
//
//	client, _ := storysearch.New(storysearch.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	resp, _ := client.Search(ctx, "cats",
//	    storysearch.WithType("stories"),
//	    storysearch.WithPage(1, 20),
//	)
package storysearch
