// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rm-entrenador/backend/internal/application/usecase/reminder"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/dto"
)

// ReminderController handles manual reminder runs.
type ReminderController struct {
	sendUseCase *reminder.SendDueRemindersUseCase
}

// NewReminderController creates a new reminder controller instance.
func NewReminderController(sendUseCase *reminder.SendDueRemindersUseCase) *ReminderController {
	return &ReminderController{
		sendUseCase: sendUseCase,
	}
}

// Send handles POST /reminders/send requests. The scheduled job runs the
// same use case daily; this endpoint exists so the trainer can trigger a
// run by hand after updating payments.
func (c *ReminderController) Send(ctx *gin.Context) {
	input := reminder.SendDueRemindersInput{}

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

	output, err := c.sendUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to run reminders",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ReminderRunResponse{
		Queued:  output.Queued,
		Skipped: output.Skipped,
		Failed:  output.Failed,
	})
}
