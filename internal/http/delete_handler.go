package httpx

import (
	"context"
	"net/http"
	"net/url"

	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/ui"
)

// RemoveFunc deletes key. form carries extra confirm inputs such as restock.
type RemoveFunc func(ctx context.Context, ws *service.Workspace, key string, form url.Values) error

// DeleteOpts configures the confirm prompt and the delete it guards.
type DeleteOpts struct {
	Handler  *UIHandlers
	W        http.ResponseWriter
	R        *http.Request
	Key      string
	Resource string
	BasePath string
	PageMeta PageMeta
	Title    string
	Message  string
	// Restock shows the "return items to stock" checkbox.
	Restock bool
	Remove  RemoveFunc
	// Invalidates defaults to Resource.
	Invalidates    []string
	SuccessMessage string
	ErrorMessage   string
}

func (o DeleteOpts) confirmData(r *http.Request) map[string]any {
	return NewTemplateData(r, o.PageMeta).WithConfirm(ConfirmView{
		Title:   o.Title,
		Message: o.Message,
		Action:  o.BasePath + "/" + o.Key + "/delete",
		Return:  returnURL(r, o.BasePath),
		Restock: o.Restock,
	}).Build()
}

// ShowConfirm renders the delete confirmation. Cancelling it never reaches
// the server: the modal is cleared client-side.
func ShowConfirm(opts DeleteOpts) {
	if _, ok := opts.Handler.workspace(opts.W, opts.R); !ok {
		return
	}
	opts.Handler.renderOverlay(opts.W, opts.R, overlayParams{Data: opts.confirmData(opts.R)})
}

// HandleDelete performs a confirmed delete through the workspace mutator. A
// failure re-renders the prompt with an error toast so the operator can retry.
func HandleDelete(opts DeleteOpts) {
	h, w, r := opts.Handler, opts.W, opts.R
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if opts.Key == "" || opts.Remove == nil {
		http.NotFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	invalidates := opts.Invalidates
	if len(invalidates) == 0 {
		invalidates = []string{opts.Resource}
	}

	var prompt ui.Confirm[string]
	prompt.Request(opts.Key)
	err := prompt.Confirm(r.Context(), func(ctx context.Context, key string) error {
		return ws.Mutator.Run(ctx, func(ctx context.Context) error {
			return opts.Remove(ctx, ws, key, r.PostForm)
		}, invalidates...)
	})
	if err != nil {
		if isAuthFailure(err) {
			h.handleAuthFailure(w, r, ws)
			return
		}
		h.logger().WarnContext(r.Context(), "delete failed",
			"resource", opts.Resource,
			"key", opts.Key,
			"error", err,
		)
		h.renderOverlay(w, r, overlayParams{
			Data:   opts.confirmData(r),
			Status: http.StatusBadGateway,
			Toast:  ui.Error(errorMessage(err, opts.ErrorMessage)),
		})
		return
	}

	redirectWithToast(w, r, returnURL(r, opts.BasePath), ui.Success(opts.SuccessMessage))
}
