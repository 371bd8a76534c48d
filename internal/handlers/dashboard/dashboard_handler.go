// internal/handlers/dashboard/dashboard_handler.go
package dashboard

import (
	"net/http"

	"fleetride-service/internal/pkg/response"
	service "fleetride-service/internal/service/dashboard"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	dashboardService *service.DashboardService
}

func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Overview returns the admin platform snapshot
func (h *DashboardHandler) Overview(c *gin.Context) {
	result, err := h.dashboardService.Overview(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "overview retrieved", result)
}
