package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/nerdwave-nick/counterdex/internal/api/common"
)

type StatusBody struct {
	Body struct {
		Status string `json:"status" example:"healthy"`
	}
}

type Controller struct{}

func (c *Controller) RegisterRoutes(rctx common.RouteCreationContext) {
	common.AddHumaRoute(rctx, c.Health, huma.Operation{
		Method:  http.MethodGet,
		Path:    "/api/health",
		Summary: "Health check",
		Tags:    []string{"Health"},
	})
}

// Health reports that the server is up and serving requests.
func (c *Controller) Health(_ context.Context, _ *struct{}) (*StatusBody, huma.StatusError) {
	out := &StatusBody{}
	out.Body.Status = "healthy"
	return out, nil
}

func MakeController() *Controller {
	return &Controller{}
}
