package domain

import (
	"fmt"
	"strings"
)

// ModeKind enumerates the browse modes
type ModeKind int

const (
	ModePopular ModeKind = iota
	ModeMood
	ModeSearchTitle
	ModeSearchPerson
)

func (k ModeKind) String() string {
	switch k {
	case ModePopular:
		return "popular"
	case ModeMood:
		return "mood"
	case ModeSearchTitle:
		return "search-title"
	case ModeSearchPerson:
		return "search-person"
	default:
		return fmt.Sprintf("ModeKind(%d)", int(k))
	}
}

// BrowseMode selects which items are listed. It is a tagged variant:
// Mood is set only for ModeMood, Query only for the search kinds.
// BrowseMode is comparable; two modes are equal iff all fields match.
type BrowseMode struct {
	Kind  ModeKind
	Mood  MoodID
	Query string
}

// Popular returns the popular-movies mode
func Popular() BrowseMode { return BrowseMode{Kind: ModePopular} }

// Mood returns the mood-filtered mode
func Mood(id MoodID) BrowseMode { return BrowseMode{Kind: ModeMood, Mood: id} }

// SearchByTitle returns the movie title search mode
func SearchByTitle(query string) BrowseMode {
	return BrowseMode{Kind: ModeSearchTitle, Query: strings.TrimSpace(query)}
}

// SearchByPerson returns the person search mode
func SearchByPerson(query string) BrowseMode {
	return BrowseMode{Kind: ModeSearchPerson, Query: strings.TrimSpace(query)}
}

// Validate reports whether the mode is a well-formed variant
func (m BrowseMode) Validate() error {
	switch m.Kind {
	case ModePopular:
		return nil
	case ModeMood:
		if !m.Mood.Valid() {
			return fmt.Errorf("invalid mood %d", int(m.Mood))
		}
		return nil
	case ModeSearchTitle, ModeSearchPerson:
		return nil
	default:
		return fmt.Errorf("invalid browse mode kind %d", int(m.Kind))
	}
}

// IsSearch reports whether the mode is one of the search kinds
func (m BrowseMode) IsSearch() bool {
	return m.Kind == ModeSearchTitle || m.Kind == ModeSearchPerson
}

// Title returns the heading shown above the result list
func (m BrowseMode) Title() string {
	switch m.Kind {
	case ModeMood:
		return m.Mood.String() + " Movies"
	case ModeSearchTitle:
		return fmt.Sprintf("Search Results for %q", m.Query)
	case ModeSearchPerson:
		return fmt.Sprintf("People matching %q", m.Query)
	default:
		return "Popular Movies"
	}
}

func (m BrowseMode) String() string {
	switch m.Kind {
	case ModeMood:
		return "mood:" + m.Mood.Slug()
	case ModeSearchTitle, ModeSearchPerson:
		return m.Kind.String() + ":" + m.Query
	default:
		return m.Kind.String()
	}
}
