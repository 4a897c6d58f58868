// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rm-entrenador/backend/internal/application/usecase/ingest"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/dto"
)

// IngestController handles spreadsheet-export import endpoints.
type IngestController struct {
	importClientsUseCase  *ingest.ImportClientsUseCase
	importPaymentsUseCase *ingest.ImportPaymentsUseCase
}

// NewIngestController creates a new ingest controller instance.
func NewIngestController(
	importClientsUseCase *ingest.ImportClientsUseCase,
	importPaymentsUseCase *ingest.ImportPaymentsUseCase,
) *IngestController {
	return &IngestController{
		importClientsUseCase:  importClientsUseCase,
		importPaymentsUseCase: importPaymentsUseCase,
	}
}

// ImportClients handles POST /import/alumnos requests.
func (c *IngestController) ImportClients(ctx *gin.Context) {
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.importClientsUseCase.Execute(ctx.Request.Context(), ingest.ImportClientsInput{
		Rows: req.Rows,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to import clients",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ImportResponse{
		Created: output.Created,
		Updated: output.Updated,
		Skipped: output.Skipped,
	})
}

// ImportPayments handles POST /import/pagos requests.
func (c *IngestController) ImportPayments(ctx *gin.Context) {
	var req dto.ImportRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
		})
		return
	}

	output, err := c.importPaymentsUseCase.Execute(ctx.Request.Context(), ingest.ImportPaymentsInput{
		Rows: req.Rows,
	})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to import payments",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ImportResponse{
		Created: output.Created,
		Skipped: output.Skipped,
	})
}
