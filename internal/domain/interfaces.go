package domain

// ListItem is the polymorphic interface for items that can be displayed in result lists.
// Domain entities (Movie, Person) implement this interface directly.
type ListItem interface {
	// GetID returns the metadata source identifier, used for keying
	GetID() int

	// GetTitle returns the display title (movie title or person name)
	GetTitle() string

	// GetYear returns the release year (0 if not applicable)
	GetYear() int

	// GetDescription returns secondary info for display (e.g., "2024  ★ 7.1" for movies)
	GetDescription() string

	// GetMediaType returns the item kind
	GetMediaType() MediaType

	// GetItemType returns the type identifier: "movie" or "person"
	GetItemType() string
}
