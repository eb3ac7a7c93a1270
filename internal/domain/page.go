package domain

// ResultPage is one page of list results plus pagination metadata
type ResultPage struct {
	Items        []ListItem
	Page         int
	TotalPages   int
	TotalResults int
}

// HasMore reports whether pages after this one exist
func (p ResultPage) HasMore() bool {
	return p.Page < p.TotalPages
}
