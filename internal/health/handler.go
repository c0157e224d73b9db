package health

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

const pingTimeout = 2 * time.Second

// Checker defines the interface for checking service health.
type Checker interface {
	Ping(ctx context.Context) error
}

// Handler handles health check operations.
type Handler struct {
	store   Checker
	backend string
}

// NewHandler creates a health handler reporting on the named store backend.
func NewHandler(store Checker, backend string) *Handler {
	return &Handler{store: store, backend: backend}
}

// Response is the response for health check endpoint.
type Response struct {
	Body struct {
		Status  string `doc:"ok or degraded"                      json:"status"`
		Store   string `doc:"healthy or unhealthy"                json:"store"`
		Backend string `doc:"Configured store backend"            json:"backend"`
		Checked int64  `doc:"Check time, Unix epoch milliseconds" json:"checkedAt"`
	}
}

// Check pings the store. An unhealthy store degrades the status but the
// endpoint itself still answers 200.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Store = "healthy"
	resp.Body.Backend = h.backend
	resp.Body.Checked = time.Now().UnixMilli()

	if err := h.store.Ping(ctx); err != nil {
		resp.Body.Status = "degraded"
		resp.Body.Store = "unhealthy"
	}

	return resp, nil
}

// RegisterRoutes registers health check routes.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Check)
}
