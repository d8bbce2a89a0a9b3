// Package handlers provides HTTP request handlers for the gateway.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/telcobridge/capgate/internal/adapters/http/dto"
	"github.com/telcobridge/capgate/internal/app"
	"github.com/telcobridge/capgate/internal/capability"
)

// CapabilityHandler exposes operation discovery and invocation endpoints.
type CapabilityHandler struct {
	service *app.InvocationService
}

// NewCapabilityHandler creates a capability handler.
func NewCapabilityHandler(service *app.InvocationService) *CapabilityHandler {
	return &CapabilityHandler{service: service}
}

// List handles GET /capabilities. It returns every registered operation
// descriptor so an external orchestrator can discover what is callable.
func (h *CapabilityHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewCapabilitiesResponse(h.service.Capabilities()))
}

// Invoke handles POST /capabilities/:resource/:operation. The response
// result is always a single string; operation failures surface as
// "Error: ..." diagnoses inside a 200 response, not as HTTP errors.
func (h *CapabilityHandler) Invoke(c *gin.Context) {
	resource := c.Param("resource")
	operation := c.Param("operation")

	var req dto.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.ErrorCodeBadRequest,
			"request body must be JSON with an arguments object",
		))

		return
	}

	result, err := h.service.Invoke(c.Request.Context(), resource, operation,
		capability.Arguments(req.Arguments))
	if err != nil {
		if errors.Is(err, app.ErrOperationNotFound) {
			c.JSON(http.StatusNotFound, dto.NewErrorResponse(
				dto.ErrorCodeNotFound,
				err.Error(),
			))

			return
		}

		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrorCodeInternal,
			"an internal error occurred",
		))

		return
	}

	c.JSON(http.StatusOK, dto.InvokeResponse{
		Resource:  resource,
		Operation: operation,
		Result:    result,
	})
}

// RegisterRoutes registers the capability endpoints on a router group.
func (h *CapabilityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/capabilities", h.List)
	rg.POST("/capabilities/:resource/:operation", h.Invoke)
}
