package table

import (
	"net/url"
	"strconv"
	"strings"
)

// Query parameter names carrying table view state.
const (
	ParamOrderBy = "orderBy"
	ParamOrder   = "order"
	ParamPage    = "page"
	ParamSize    = "size"
)

// SortFromQuery reads the sort state from q. Unknown or unsortable columns
// yield the zero state so stale links never break a page.
func SortFromQuery[T any](q url.Values, cols []Column[T]) SortState {
	id := strings.TrimSpace(q.Get(ParamOrderBy))
	if id == "" {
		return SortState{}
	}
	col, ok := Find(cols, id)
	if !ok || !col.Sortable {
		return SortState{}
	}
	order := Asc
	if strings.EqualFold(q.Get(ParamOrder), string(Desc)) {
		order = Desc
	}
	return SortState{OrderBy: id, Order: order}
}

// PageFromQuery reads the page state from q. page is one-based in URLs.
// size accepts "all".
func PageFromQuery(q url.Values) PageState {
	return PageFromQueryOr(q, DefaultPageSize)
}

// PageFromQueryOr is PageFromQuery for a table whose size falls back to def
// when q names none or one that is not offered.
func PageFromQueryOr(q url.Values, def int) PageState {
	if !ValidPageSize(def) {
		def = DefaultPageSize
	}
	p := PageState{Size: def}
	if n, err := strconv.Atoi(strings.TrimSpace(q.Get(ParamPage))); err == nil && n > 0 {
		p.Page = n - 1
	}
	p.Size = parseSizeOr(q.Get(ParamSize), def)
	return p
}

// ParseSize parses a page size. "all" maps to All; anything not offered maps to DefaultPageSize.
func ParseSize(raw string) int {
	return parseSizeOr(raw, DefaultPageSize)
}

func parseSizeOr(raw string, def int) int {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "all") {
		return All
	}
	n, err := strconv.Atoi(raw)
	if err != nil || !ValidPageSize(n) {
		return def
	}
	return n
}

// FormatSize renders a page size for URLs and selectors.
func FormatSize(size int) string {
	if size == All {
		return "all"
	}
	return strconv.Itoa(size)
}

// Encode writes the sort and page state into a copy of base.
func Encode(base url.Values, s SortState, p PageState) url.Values {
	out := url.Values{}
	for k, v := range base {
		out[k] = append([]string(nil), v...)
	}
	out.Del(ParamOrderBy)
	out.Del(ParamOrder)
	if s.Active() {
		out.Set(ParamOrderBy, s.OrderBy)
		out.Set(ParamOrder, string(s.Order))
	}
	out.Set(ParamPage, strconv.Itoa(p.Page+1))
	out.Set(ParamSize, FormatSize(p.Size))
	return out
}
