package domain

import "fmt"

// MoodID is one of the fixed mood presets
type MoodID int

const (
	MoodFeelGood MoodID = iota + 1
	MoodActionFix
	MoodMindBenders
)

// Moods lists every mood in display order
var Moods = []MoodID{MoodFeelGood, MoodActionFix, MoodMindBenders}

type moodInfo struct {
	name        string
	slug        string
	description string
}

var moods = map[MoodID]moodInfo{
	MoodFeelGood:    {"Feel Good", "feel-good", "Light-hearted and family-friendly movies"},
	MoodActionFix:   {"Action Fix", "action-fix", "Action-packed and adventurous movies"},
	MoodMindBenders: {"Mind Benders", "mind-benders", "Mind-bending mysteries and thrillers"},
}

// Valid reports whether m is one of the known moods
func (m MoodID) Valid() bool {
	_, ok := moods[m]
	return ok
}

// String returns the display name, e.g. "Feel Good"
func (m MoodID) String() string {
	if info, ok := moods[m]; ok {
		return info.name
	}
	return fmt.Sprintf("MoodID(%d)", int(m))
}

// Slug returns the URL/CLI form, e.g. "feel-good"
func (m MoodID) Slug() string {
	return moods[m].slug
}

// Description returns the one-line blurb shown next to the mood
func (m MoodID) Description() string {
	return moods[m].description
}

// ParseMood resolves a slug or display name to a mood
func ParseMood(s string) (MoodID, error) {
	for _, id := range Moods {
		info := moods[id]
		if s == info.slug || s == info.name {
			return id, nil
		}
	}
	// "mind-bending" was the route name for Mind Benders
	if s == "mind-bending" {
		return MoodMindBenders, nil
	}
	return 0, fmt.Errorf("unknown mood %q", s)
}
