package table

// All is the page size that disables slicing.
const All = -1

// DefaultPageSize is used when no valid size is requested.
const DefaultPageSize = 10

// PageSizes are the sizes offered in the page-size selector.
var PageSizes = []int{5, 10, 25, All}

// ValidPageSize reports whether size is one of PageSizes.
func ValidPageSize(size int) bool {
	for _, s := range PageSizes {
		if s == size {
			return true
		}
	}
	return false
}

// PageState is the zero-based page index and page size of a table view.
type PageState struct {
	Page int
	Size int
}

// DefaultPage is the first page at the default size.
func DefaultPage() PageState { return PageState{Page: 0, Size: DefaultPageSize} }

// PageCount returns the number of pages needed for total items. It is at least 1.
func (p PageState) PageCount(total int) int {
	if p.Size == All || p.Size <= 0 || total == 0 {
		return 1
	}
	return (total + p.Size - 1) / p.Size
}

// Clamp moves Page into range for total items and replaces an unusable Size with the default.
func (p PageState) Clamp(total int) PageState {
	if p.Size != All && p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Page < 0 {
		p.Page = 0
	}
	if last := p.PageCount(total) - 1; p.Page > last {
		p.Page = last
	}
	return p
}

// Paginate returns the window of items for p. Size All returns every item.
func Paginate[T any](items []T, p PageState) []T {
	p = p.Clamp(len(items))
	if p.Size == All {
		return items
	}
	start := p.Page * p.Size
	if start >= len(items) {
		return items[:0]
	}
	end := min(start+p.Size, len(items))
	return items[start:end]
}
