// Package table sorts and paginates fetched collections for display.
//
// Sorting is view state only: it runs over the whole fetched collection, before
// pagination slices out the visible window, and is never sent to the API.
package table

// Kind selects how a column's values are compared.
type Kind int

const (
	// String columns compare with locale collation, ignoring case and diacritics.
	String Kind = iota
	// Number columns coerce values to float64; missing or malformed values count as 0.
	Number
)

// Align is the horizontal alignment of a column's cells.
type Align string

const (
	AlignStart  Align = "start"
	AlignCenter Align = "center"
	AlignEnd    Align = "end"
)

// Column describes one table column over records of type T.
type Column[T any] struct {
	ID       string
	Label    string
	Sortable bool
	Align    Align
	Kind     Kind
	// Accessor returns the sort value of a record. It may return nil.
	Accessor func(T) any
}

// Find returns the column with id, if any.
func Find[T any](cols []Column[T], id string) (Column[T], bool) {
	for _, c := range cols {
		if c.ID == id {
			return c, true
		}
	}
	return Column[T]{}, false
}

// Order is the sort direction.
type Order string

const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// SortState is the active sort of a table view.
type SortState struct {
	OrderBy string
	Order   Order
}

// Toggle flips the direction when col is already active, otherwise makes col
// active in ascending order.
func (s SortState) Toggle(col string) SortState {
	if s.OrderBy == col {
		if s.Order == Asc {
			return SortState{OrderBy: col, Order: Desc}
		}
		return SortState{OrderBy: col, Order: Asc}
	}
	return SortState{OrderBy: col, Order: Asc}
}

// Active reports whether the state sorts by anything.
func (s SortState) Active() bool { return s.OrderBy != "" }
