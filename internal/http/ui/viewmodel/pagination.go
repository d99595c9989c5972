package viewmodel

// SizeOption is one entry of the page size selector.
type SizeOption struct {
	Label  string
	URL    string
	Active bool
}

// Pagination contains pager metadata for table views. Page is one-based.
type Pagination struct {
	Page       int
	PageCount  int
	TotalCount int
	StartIndex int
	EndIndex   int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
	// CurrentURL reloads this view; RefreshURL does so bypassing the cache.
	CurrentURL string
	RefreshURL string
	Sizes      []SizeOption
}

// HeaderCell is a column header with the link that applies its next sort.
type HeaderCell struct {
	ID       string
	Label    string
	Align    string
	Sortable bool
	Active   bool
	Desc     bool
	URL      string
}

// Table is everything a list template needs besides the typed rows.
type Table struct {
	Headers      []HeaderCell
	Rows         any
	Empty        bool
	EmptyMessage string
	ColSpan      int
	Pager        Pagination
}
