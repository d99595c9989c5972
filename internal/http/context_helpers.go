package httpx

import (
	"context"

	domainauth "github.com/target/shop-admin/internal/domain/auth"
	"github.com/target/shop-admin/internal/service"
)

// workspaceKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type workspaceKey struct{}

// SetWorkspaceInContext returns a child context that carries the operator's workspace.
// If ws is nil, the original ctx is returned unchanged.
func SetWorkspaceInContext(ctx context.Context, ws *service.Workspace) context.Context {
	if ws == nil {
		return ctx
	}
	return context.WithValue(ctx, workspaceKey{}, ws)
}

// GetWorkspaceFromContext returns the workspace and whether one was attached.
func GetWorkspaceFromContext(ctx context.Context) (*service.Workspace, bool) {
	if ws, ok := ctx.Value(workspaceKey{}).(*service.Workspace); ok && ws != nil {
		return ws, true
	}
	return nil, false
}

// GetSessionFromContext returns a copy of the operator session, or nil for
// requests that passed no auth middleware.
func GetSessionFromContext(ctx context.Context) *domainauth.Session {
	ws, ok := GetWorkspaceFromContext(ctx)
	if !ok || ws.Session == nil {
		return nil
	}
	s := ws.Session.Session()
	return &s
}
