package table

// DefaultEmptyMessage is rendered when a collection has no rows.
const DefaultEmptyMessage = "موردی یافت نشد"

// Header is the rendered state of one column header.
type Header struct {
	ID       string
	Label    string
	Align    Align
	Sortable bool
	Active   bool
	Order    Order
	// Next is the sort state a click on this header produces.
	Next SortState
}

// View is everything a template needs to render one table.
type View[T any] struct {
	Headers      []Header
	Rows         []T
	Empty        bool
	EmptyMessage string
	ColSpan      int
	Total        int
	Sort         SortState
	Page         PageState
	PageCount    int
	PageSizes    []int
}

// Options configures Build.
type Options struct {
	Sorter       Sorter
	EmptyMessage string
	// ExtraColumns counts non-data columns such as row actions, for ColSpan.
	ExtraColumns int
}

// Build sorts the full collection, then slices the requested page.
func Build[T any](items []T, cols []Column[T], sort SortState, page PageState, opts Options) View[T] {
	sorted := Sort(opts.Sorter, items, cols, sort)
	page = page.Clamp(len(sorted))

	headers := make([]Header, 0, len(cols))
	for _, c := range cols {
		h := Header{
			ID:       c.ID,
			Label:    c.Label,
			Align:    c.Align,
			Sortable: c.Sortable,
			Active:   c.Sortable && sort.OrderBy == c.ID,
		}
		if h.Active {
			h.Order = sort.Order
		}
		if c.Sortable {
			h.Next = sort.Toggle(c.ID)
		}
		headers = append(headers, h)
	}

	msg := opts.EmptyMessage
	if msg == "" {
		msg = DefaultEmptyMessage
	}

	return View[T]{
		Headers:      headers,
		Rows:         Paginate(sorted, page),
		Empty:        len(sorted) == 0,
		EmptyMessage: msg,
		ColSpan:      max(len(cols)+opts.ExtraColumns, 1),
		Total:        len(sorted),
		Sort:         sort,
		Page:         page,
		PageCount:    page.PageCount(len(sorted)),
		PageSizes:    PageSizes,
	}
}
