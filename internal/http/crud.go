package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/target/shop-admin/internal/domain/model"
	"github.com/target/shop-admin/internal/forms"
	"github.com/target/shop-admin/internal/service"
	"github.com/target/shop-admin/internal/table"
)

const msgDeletePrompt = "آیا از حذف این مورد اطمینان دارید؟ این عمل قابل بازگشت نیست."

// crudMessages is the operator-facing wording of one resource.
type crudMessages struct {
	Created      string
	Updated      string
	Deleted      string
	SaveFailed   string
	DeleteFailed string
	DeleteTitle  string
	// DeletePrompt builds the confirm question from the record label. Optional.
	DeletePrompt func(label string) string
}

// crudResource wires the generic list, dialog and delete handlers to one
// shop API collection.
type crudResource[T model.Keyed, D forms.Draft] struct {
	Resource     string
	BasePath     string
	Page         PageMeta
	Columns      []table.Column[T]
	Filters      []string
	EmptyMessage string
	Fetch        ListFetcher[T]

	Form     FormSpec
	NewDraft func(rec *T) D
	Parser   forms.FormParser[D]
	Create   func(ctx context.Context, ws *service.Workspace, d D) error
	Update   func(ctx context.Context, ws *service.Workspace, key string, d D) error
	Remove   func(ctx context.Context, ws *service.Workspace, key string) error

	// Invalidates lists the collections a mutation makes stale; defaults to Resource.
	Invalidates []string
	// Label names a record in the delete prompt. Optional.
	Label  func(rec T) string
	Msg    crudMessages
	Enrich DataEnricher[T]
}

func (c *crudResource[T, D]) spec() FormSpec {
	s := c.Form
	s.Resource = c.Resource
	s.BasePath = c.BasePath
	s.PageMeta = c.Page
	return s
}

// List serves GET {base}.
func (c *crudResource[T, D]) List(h *UIHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		HandleList(ListHandlerOpts[T]{
			Handler:      h,
			W:            w,
			R:            r,
			Resource:     c.Resource,
			Fetch:        c.Fetch,
			Filters:      c.Filters,
			Columns:      c.Columns,
			BasePath:     c.BasePath,
			PageMeta:     c.Page,
			EmptyMessage: c.EmptyMessage,
			ExtraColumns: 1,
			EnrichData:   c.Enrich,
		})
	}
}

// New serves GET {base}/new.
func (c *crudResource[T, D]) New(h *UIHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ShowDialog(DialogOpts[T, D]{Handler: h, W: w, R: r, Spec: c.spec(), NewDraft: c.NewDraft})
	}
}

// Edit serves GET {base}/{id}/edit.
func (c *crudResource[T, D]) Edit(h *UIHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ShowDialog(DialogOpts[T, D]{
			Handler:  h,
			W:        w,
			R:        r,
			Spec:     c.spec(),
			Key:      r.PathValue("id"),
			Fetch:    c.Fetch,
			NewDraft: c.NewDraft,
		})
	}
}

// Save serves POST {base} (create) and POST {base}/{id} (update).
func (c *crudResource[T, D]) Save(h *UIHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.PathValue("id")
		msg := c.Msg.Created
		submit := func(ctx context.Context, ws *service.Workspace, _ string, d D) error {
			return c.Create(ctx, ws, d)
		}
		if key != "" {
			msg = c.Msg.Updated
			submit = c.Update
		}
		HandleForm(FormHandlerOpts[D]{
			Handler:        h,
			W:              w,
			R:              r,
			Spec:           c.spec(),
			Key:            key,
			Parser:         c.Parser,
			Submit:         submit,
			Invalidates:    c.Invalidates,
			SuccessMessage: msg,
			ErrorMessage:   c.Msg.SaveFailed,
		})
	}
}

func (c *crudResource[T, D]) deleteOpts(h *UIHandlers, w http.ResponseWriter, r *http.Request) DeleteOpts {
	key := r.PathValue("id")
	return DeleteOpts{
		Handler:  h,
		W:        w,
		R:        r,
		Key:      key,
		Resource: c.Resource,
		BasePath: c.BasePath,
		PageMeta: c.Page,
		Title:    c.Msg.DeleteTitle,
		Message:  c.deletePrompt(r, key),
		Remove: func(ctx context.Context, ws *service.Workspace, key string, _ url.Values) error {
			return c.Remove(ctx, ws, key)
		},
		Invalidates:    c.Invalidates,
		SuccessMessage: c.Msg.Deleted,
		ErrorMessage:   c.Msg.DeleteFailed,
	}
}

// deletePrompt names the record when it is in the cached collection.
func (c *crudResource[T, D]) deletePrompt(r *http.Request, key string) string {
	if c.Label == nil || c.Msg.DeletePrompt == nil {
		return msgDeletePrompt
	}
	ws, ok := GetWorkspaceFromContext(r.Context())
	if !ok {
		return msgDeletePrompt
	}
	rec, found, err := findRecord(r.Context(), ws, c.Resource, c.Fetch, key)
	if err != nil || !found {
		return msgDeletePrompt
	}
	return c.Msg.DeletePrompt(c.Label(rec))
}

// ConfirmDelete serves GET {base}/{id}/delete.
func (c *crudResource[T, D]) ConfirmDelete(h *UIHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ShowConfirm(c.deleteOpts(h, w, r))
	}
}

// Delete serves POST {base}/{id}/delete.
func (c *crudResource[T, D]) Delete(h *UIHandlers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		HandleDelete(c.deleteOpts(h, w, r))
	}
}

// Register mounts the resource routes on mux, each wrapped by wrap.
func (c *crudResource[T, D]) Register(mux *http.ServeMux, h *UIHandlers, wrap func(http.Handler) http.Handler) {
	base := c.BasePath
	mux.Handle("GET "+base, wrap(c.List(h)))
	if c.NewDraft != nil {
		mux.Handle("GET "+base+"/{id}/edit", wrap(c.Edit(h)))
	}
	if c.Create != nil {
		mux.Handle("GET "+base+"/new", wrap(c.New(h)))
		mux.Handle("POST "+base, wrap(c.Save(h)))
	}
	if c.Update != nil {
		mux.Handle("POST "+base+"/{id}", wrap(c.Save(h)))
	}
	if c.Remove != nil {
		mux.Handle("GET "+base+"/{id}/delete", wrap(c.ConfirmDelete(h)))
		mux.Handle("POST "+base+"/{id}/delete", wrap(c.Delete(h)))
	}
}

// selectOptions loads a collection for a form's select inputs. A failure
// leaves the select empty; the operator can still type the value elsewhere.
func selectOptions[T any](ctx context.Context, ws *service.Workspace, logger *slog.Logger, resource string, fetch ListFetcher[T]) []T {
	items, err := cachedAll(ctx, ws, resource, fetch)
	if err != nil {
		logger.WarnContext(ctx, "load select options failed", "resource", resource, "error", err)
		return nil
	}
	return items
}
