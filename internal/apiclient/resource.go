package apiclient

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/target/shop-admin/internal/ports"
)

// Resource is the generic list/create/update/remove client for one entity family.
type Resource[T any] struct {
	client *Client
	name   string
	path   string
}

var _ ports.Collection[struct{}] = (*Resource[struct{}])(nil)

// NewResource builds a client for the resource mounted at path (e.g. "/products").
// name is the collection key used in list envelopes and cache keys.
func NewResource[T any](c *Client, name, path string) *Resource[T] {
	return &Resource[T]{client: c, name: name, path: "/" + strings.Trim(path, "/")}
}

// Name returns the resource name.
func (r *Resource[T]) Name() string { return r.name }

func (r *Resource[T]) itemPath(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", errors.New(r.name + ": id is required")
	}
	return r.path + "/" + url.PathEscape(id), nil
}

// List fetches the collection, passing non-empty filters as query parameters.
func (r *Resource[T]) List(ctx context.Context, filters ports.Filters) ([]T, error) {
	raw, err := r.client.do(ctx, request{method: http.MethodGet, path: r.path, query: filters.Values()})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return decodeList[T](raw, r.name)
}

// Create posts payload (and any staged files) and returns the persisted record.
func (r *Resource[T]) Create(ctx context.Context, payload any, files ...ports.Upload) (T, error) {
	var zero T
	raw, err := r.client.do(ctx, request{method: http.MethodPost, path: r.path, body: payload, files: files})
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", r.name, err)
	}
	return decodeRecord[T](raw, r.name)
}

// Update puts payload to the record addressed by id and returns the persisted record.
func (r *Resource[T]) Update(ctx context.Context, id string, payload any, files ...ports.Upload) (T, error) {
	var zero T
	p, err := r.itemPath(id)
	if err != nil {
		return zero, err
	}
	raw, err := r.client.do(ctx, request{method: http.MethodPut, path: p, body: payload, files: files})
	if err != nil {
		return zero, fmt.Errorf("update %s %s: %w", r.name, id, err)
	}
	return decodeRecord[T](raw, r.name)
}

// Remove deletes the record addressed by id.
func (r *Resource[T]) Remove(ctx context.Context, id string) error {
	return r.remove(ctx, id, nil)
}

func (r *Resource[T]) remove(ctx context.Context, id string, query url.Values) error {
	p, err := r.itemPath(id)
	if err != nil {
		return err
	}
	if _, err := r.client.do(ctx, request{method: http.MethodDelete, path: p, query: query}); err != nil {
		return fmt.Errorf("remove %s %s: %w", r.name, id, err)
	}
	return nil
}
