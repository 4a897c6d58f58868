// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rm-entrenador/backend/internal/application/usecase/dashboard"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/dto"
)

// DashboardController handles dashboard endpoints.
type DashboardController struct {
	overviewUseCase *dashboard.GetOverviewUseCase
}

// NewDashboardController creates a new dashboard controller instance.
func NewDashboardController(overviewUseCase *dashboard.GetOverviewUseCase) *DashboardController {
	return &DashboardController{
		overviewUseCase: overviewUseCase,
	}
}

// GetOverview handles GET /dashboard/overview requests. The optional
// "today" query parameter overrides the reference date (DD/MM/YYYY or
// YYYY-MM-DD), mainly for inspecting past states.
func (c *DashboardController) GetOverview(ctx *gin.Context) {
	input := dashboard.GetOverviewInput{}

	if raw := ctx.Query("today"); raw != "" {
		today := valueobject.ParseFlexibleDate(raw)
		if today == nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid today parameter, expected DD/MM/YYYY or YYYY-MM-DD",
			})
			return
		}
		input.Today = today
	}

	output, err := c.overviewUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to compute dashboard overview",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToOverviewResponse(output.Overview))
}
