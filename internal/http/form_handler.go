package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/ui"
)

// FormSpec describes one record dialog: what it renders and where it posts.
type FormSpec struct {
	// Template is the form body template, e.g. "product-form".
	Template    string
	Resource    string
	BasePath    string
	PageMeta    PageMeta
	CreateTitle string
	EditTitle   string
	// Action overrides the post URL; by default BasePath or BasePath/{id}.
	Action    string
	Multipart bool
	// Extra loads select options and other side data the form needs; key is
	// the record being edited or "". Optional.
	Extra func(ctx context.Context, ws *service.Workspace, key string) map[string]any
	// Opened runs when the dialog is first shown with its initial draft. Optional.
	Opened func(ws *service.Workspace, key string, draft forms.Draft)
	// Saved runs after the shop API accepted the submitted draft. Optional.
	Saved func(ws *service.Workspace, key string)
}

func (s FormSpec) action(key string) string {
	switch {
	case s.Action != "":
		return s.Action
	case key == "":
		return s.BasePath
	default:
		return s.BasePath + "/" + key
	}
}

func (s FormSpec) title(mode forms.Mode) string {
	if mode == forms.ModeEdit && s.EditTitle != "" {
		return s.EditTitle
	}
	return s.CreateTitle
}

// dialogData assembles the template data for an open dialog.
func dialogData[D forms.Draft](r *http.Request, ws *service.Workspace, spec FormSpec, dlg *forms.Dialog[D]) map[string]any {
	errs := dlg.Errors()
	view := DialogView{
		Template:  spec.Template,
		Title:     spec.title(dlg.Mode),
		Action:    spec.action(dlg.TargetKey),
		Mode:      dlg.Mode,
		Draft:     dlg.Draft,
		Errors:    errs,
		Return:    returnURL(r, spec.BasePath),
		Multipart: spec.Multipart,
	}
	if spec.Extra != nil {
		view.Extra = spec.Extra(r.Context(), ws, dlg.TargetKey)
	}
	return NewTemplateData(r, spec.PageMeta).WithDialog(view).WithFieldErrors(errs).Build()
}

// DialogOpts configures ShowDialog.
type DialogOpts[T model.Keyed, D forms.Draft] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	Spec    FormSpec
	// Key is the record being edited, or "" when creating.
	Key string
	// Fetch loads the collection the record is looked up in. Required for edits.
	Fetch    ListFetcher[T]
	NewDraft func(rec *T) D
}

// ShowDialog opens the create or edit dialog. An edit of a record that is no
// longer in the collection sends the operator back to the list with an error toast.
func ShowDialog[T model.Keyed, D forms.Draft](opts DialogOpts[T, D]) {
	h, w, r := opts.Handler, opts.W, opts.R
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	var rec *T
	if opts.Key != "" {
		found, ok, err := findRecord(r.Context(), ws, opts.Spec.Resource, opts.Fetch, opts.Key)
		switch {
		case err != nil && isAuthFailure(err):
			h.handleAuthFailure(w, r, ws)
			return
		case err != nil:
			h.logger().WarnContext(r.Context(), "load record failed", "resource", opts.Spec.Resource, "error", err)
			redirectWithToast(w, r, opts.Spec.BasePath, ui.Error(errorMessage(err, msgLoadFailed)))
			return
		case !ok:
			redirectWithToast(w, r, opts.Spec.BasePath, ui.Error(msgRecordNotFound))
			return
		}
		rec = &found
	}

	var dlg forms.Dialog[D]
	dlg.Show(opts.Key, func() D { return opts.NewDraft(rec) })
	defer dlg.Draft.Release()
	if opts.Spec.Opened != nil {
		opts.Spec.Opened(ws, opts.Key, dlg.Draft)
	}

	h.renderOverlay(w, r, overlayParams{Data: dialogData(r, ws, opts.Spec, &dlg)})
}

// SubmitFunc sends a validated draft to the shop API.
type SubmitFunc[D forms.Draft] func(ctx context.Context, ws *service.Workspace, key string, draft D) error

// FormHandlerOpts contains all options needed to handle a dialog submission.
type FormHandlerOpts[D forms.Draft] struct {
	Handler *UIHandlers
	W       http.ResponseWriter
	R       *http.Request
	Spec    FormSpec
	// Key is the record being edited, or "" when creating.
	Key    string
	Parser forms.FormParser[D]
	Submit SubmitFunc[D]
	// Invalidates lists the collections marked stale on success; defaults to Spec.Resource.
	Invalidates    []string
	SuccessMessage string
	// ErrorMessage replaces the generic fallback when the API gives no message.
	ErrorMessage string
}

// HandleForm parses the submitted draft, re-renders the dialog with field
// errors when it does not validate, and otherwise submits it through the
// workspace mutator. A failed submit keeps the dialog open with an error
// toast; success redirects to the list with a success toast.
func HandleForm[D forms.Draft](opts FormHandlerOpts[D]) {
	if opts.Handler == nil || opts.Parser == nil || opts.Submit == nil {
		http.Error(opts.W, "misconfigured form handler", http.StatusInternalServerError)
		return
	}
	h, w, r := opts.Handler, opts.W, opts.R
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	draft, err := opts.Parser(r, opts.Key)
	if err != nil {
		h.logger().WarnContext(r.Context(), "parse form failed", "resource", opts.Spec.Resource, "error", err)
		if IsHTMX(r) {
			HTMX(w).Toast(ui.Error(errorMessage(err, msgFixBelow)))
		}
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	var dlg forms.Dialog[D]
	dlg.Show(opts.Key, func() D { return draft })
	// Release runs on every exit path; it is a no-op once Finish closed the dialog.
	defer draft.Release()

	if errs := dlg.Errors(); len(errs) > 0 {
		data := dialogData(r, ws, opts.Spec, &dlg)
		data["Error"] = true
		data["ErrorMessage"] = msgFixBelow
		h.renderOverlay(w, r, overlayParams{Data: data, Status: http.StatusUnprocessableEntity})
		return
	}

	invalidates := opts.Invalidates
	if len(invalidates) == 0 {
		invalidates = []string{opts.Spec.Resource}
	}
	err = ws.Mutator.Run(r.Context(), func(ctx context.Context) error {
		return dlg.Submit(ctx, func(ctx context.Context, d D) error {
			return opts.Submit(ctx, ws, opts.Key, d)
		})
	}, invalidates...)
	if err != nil {
		if isAuthFailure(err) {
			h.handleAuthFailure(w, r, ws)
			return
		}
		h.logger().WarnContext(r.Context(), "submit failed",
			"resource", opts.Spec.Resource,
			"key", opts.Key,
			"error", err,
		)
		status := http.StatusBadGateway
		if errors.Is(err, forms.ErrInvalidDraft) {
			status = http.StatusUnprocessableEntity
		}
		h.renderOverlay(w, r, overlayParams{
			Data:   dialogData(r, ws, opts.Spec, &dlg),
			Status: status,
			Toast:  ui.Error(errorMessage(err, opts.ErrorMessage)),
		})
		return
	}

	if opts.Spec.Saved != nil {
		opts.Spec.Saved(ws, opts.Key)
	}
	redirectWithToast(w, r, returnURL(r, opts.Spec.BasePath), ui.Success(opts.SuccessMessage))
}
