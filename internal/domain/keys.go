package domain

// KeyPrefix namespaces every entity key and index in the shared store.
const KeyPrefix = "taleweave:"

// Search index names, created by the platform's write path.
const (
	StoryIndex      = KeyPrefix + "story:idx"
	AuthorIndex     = KeyPrefix + "author:idx"
	CollectionIndex = KeyPrefix + "collection:idx"
)
