package browse

import (
	"github.com/mmcdole/reel/internal/domain"
)

// Token tags a list fetch with the request it answers. A response is
// applied only while its token is still the manager's current one.
type Token struct {
	Seq  uint64
	Mode domain.BrowseMode
	Page int
}

// PageLoadedMsg carries a successful list fetch
type PageLoadedMsg struct {
	Token  Token
	Result domain.ResultPage
}

// PageFailedMsg carries a failed list fetch
type PageFailedMsg struct {
	Token Token
	Err   error
}

// DetailLoadedMsg carries a successful detail fetch
type DetailLoadedMsg struct {
	Seq    uint64
	Kind   domain.MediaType
	ID     int
	Detail *Detail
}

// DetailFailedMsg carries a failed detail fetch
type DetailFailedMsg struct {
	Seq  uint64
	Kind domain.MediaType
	ID   int
	Err  error
}

// WatchlistSavedMsg reports the outcome of a write-through
type WatchlistSavedMsg struct {
	Generation uint64
	Skipped    bool // a newer snapshot had already been written
	Err        error
}
