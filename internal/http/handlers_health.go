package httpx

import (
	"encoding/json"
	"net/http"
)

// sessionCounter is implemented by providers that know how many operator
// workspaces are held in memory.
type sessionCounter interface {
	Len() int
}

type healthResponse struct {
	Status   string `json:"status"`
	Sessions *int   `json:"sessions,omitempty"`
}

// healthHandler answers readiness/liveness probes. It does not call the shop
// API; an unreachable backend shows up in the pages.
func healthHandler(workspaces WorkspaceProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		resp := healthResponse{Status: "ok"}
		if c, ok := workspaces.(sessionCounter); ok {
			n := c.Len()
			resp.Sessions = &n
		}
		// Nothing more to do if the client connection is gone.
		_ = json.NewEncoder(w).Encode(resp)
	}
}
