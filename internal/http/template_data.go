package httpx

import (
	"net/http"
	"net/url"

	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/http/ui/viewmodel"
	"github.com/target/shop-admin/internal/table"
	"github.com/target/shop-admin/internal/ui"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
	r    *http.Request
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{
		data: basePageData(r, meta),
		r:    r,
	}
}

// WithTable adds the table view under "Table" with header and pager links
// that keep the request's other query parameters.
func WithTable[T any](b *TemplateDataBuilder, basePath string, view table.View[T]) *TemplateDataBuilder {
	b.data["Table"] = buildTableData(basePath, b.r.URL.Query(), view)
	return b
}

// WithFilters exposes the active filter values so filter inputs keep them.
func (b *TemplateDataBuilder) WithFilters(f map[string]string) *TemplateDataBuilder {
	if f == nil {
		f = map[string]string{}
	}
	b.data["Filters"] = f
	return b
}

// WithError sets a general error message rendered as an inline alert.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs forms.FieldErrors) *TemplateDataBuilder {
	if errs == nil {
		errs = forms.FieldErrors{}
	}
	b.data["Errors"] = errs
	return b
}

// WithDialog opens a record dialog over the page.
func (b *TemplateDataBuilder) WithDialog(d DialogView) *TemplateDataBuilder {
	b.data["Dialog"] = d
	return b
}

// WithConfirm opens the confirmation prompt over the page.
func (b *TemplateDataBuilder) WithConfirm(c ConfirmView) *TemplateDataBuilder {
	b.data["Confirm"] = c
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// DialogView describes the record form rendered inside the modal.
type DialogView struct {
	// Template is the form body template, e.g. "product-form".
	Template string
	Title    string
	Action   string
	Mode     forms.Mode
	Draft    any
	Errors   forms.FieldErrors
	// Return is where the browser goes after a successful submit.
	Return string
	// Multipart switches the form encoding for image inputs.
	Multipart bool
	Extra     map[string]any
}

// ConfirmView describes the confirmation prompt guarding a delete.
type ConfirmView struct {
	Title   string
	Message string
	Action  string
	Return  string
	// Restock adds the "return items to stock" checkbox used by order deletes.
	Restock bool
}

// buildLayout constructs shared layout metadata from the request context.
func buildLayout(r *http.Request, meta PageMeta) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
	}
	if layout.PageTitle == "" {
		layout.PageTitle = meta.Title
	}

	if s := GetSessionFromContext(r.Context()); s != nil && s.IsAuthenticated() {
		layout.IsAuthenticated = true
		if s.User != nil {
			layout.User = &viewmodel.User{
				Name:  s.DisplayName(),
				Email: s.User.Email,
				Role:  string(s.User.Role),
			}
		}
		layout.Nav = make([]viewmodel.NavLink, 0, len(Navigation))
		for _, item := range Navigation {
			layout.Nav = append(layout.Nav, viewmodel.NavLink{
				Label:  item.Label,
				Path:   item.Path,
				Active: item.Page == meta.CurrentPage,
			})
		}
	}
	return layout
}

// basePageData constructs the common page data map with operator context.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	layout := buildLayout(r, meta)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
		"Errors":          forms.FieldErrors{},
		"Flash":           ui.Toast{},
	}
	if layout.CSRFToken != "" {
		data["CSRFToken"] = layout.CSRFToken
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

func buildTableData[T any](basePath string, q url.Values, view table.View[T]) viewmodel.Table {
	headers := make([]viewmodel.HeaderCell, 0, len(view.Headers))
	for _, h := range view.Headers {
		cell := viewmodel.HeaderCell{
			ID:       h.ID,
			Label:    h.Label,
			Align:    string(h.Align),
			Sortable: h.Sortable,
			Active:   h.Active,
			Desc:     h.Order == table.Desc,
		}
		if h.Sortable {
			// A new sort starts from the first page.
			cell.URL = tableURL(basePath, q, h.Next, table.PageState{Page: 0, Size: view.Page.Size})
		}
		headers = append(headers, cell)
	}
	return viewmodel.Table{
		Headers:      headers,
		Rows:         view.Rows,
		Empty:        view.Empty,
		EmptyMessage: view.EmptyMessage,
		ColSpan:      view.ColSpan,
		Pager:        buildPager(basePath, q, view),
	}
}

func buildPager[T any](basePath string, q url.Values, view table.View[T]) viewmodel.Pagination {
	p := viewmodel.Pagination{
		Page:       view.Page.Page + 1,
		PageCount:  view.PageCount,
		TotalCount: view.Total,
		HasPrev:    view.Page.Page > 0,
		HasNext:    view.Page.Page+1 < view.PageCount,
	}
	if n := len(view.Rows); n > 0 {
		offset := 0
		if view.Page.Size != table.All {
			offset = view.Page.Page * view.Page.Size
		}
		p.StartIndex = offset + 1
		p.EndIndex = offset + n
	}
	p.CurrentURL = tableURL(basePath, q, view.Sort, view.Page)
	p.RefreshURL = p.CurrentURL + "&" + paramRefresh + "=1"
	if p.HasPrev {
		p.PrevURL = tableURL(basePath, q, view.Sort, table.PageState{Page: view.Page.Page - 1, Size: view.Page.Size})
	}
	if p.HasNext {
		p.NextURL = tableURL(basePath, q, view.Sort, table.PageState{Page: view.Page.Page + 1, Size: view.Page.Size})
	}
	for _, size := range view.PageSizes {
		label := table.FormatSize(size)
		if size == table.All {
			label = "همه"
		}
		p.Sizes = append(p.Sizes, viewmodel.SizeOption{
			Label:  label,
			URL:    tableURL(basePath, q, view.Sort, table.PageState{Page: 0, Size: size}),
			Active: size == view.Page.Size,
		})
	}
	return p
}

// tableURL encodes sort and page state into basePath, dropping htmx bookkeeping params.
func tableURL(basePath string, q url.Values, s table.SortState, p table.PageState) string {
	base := cleanQuery(q)
	if enc := table.Encode(base, s, p).Encode(); enc != "" {
		return basePath + "?" + enc
	}
	return basePath
}
