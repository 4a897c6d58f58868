// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/usecase/client"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/dto"
)

// ClientController handles client endpoints.
type ClientController struct {
	listUseCase   *client.ListClientsUseCase
	createUseCase *client.CreateClientUseCase
	updateUseCase *client.UpdateClientUseCase
	deleteUseCase *client.DeleteClientUseCase
}

// NewClientController creates a new client controller instance.
func NewClientController(
	listUseCase *client.ListClientsUseCase,
	createUseCase *client.CreateClientUseCase,
	updateUseCase *client.UpdateClientUseCase,
	deleteUseCase *client.DeleteClientUseCase,
) *ClientController {
	return &ClientController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /alumnos requests.
func (c *ClientController) List(ctx *gin.Context) {
	output, err := c.listUseCase.Execute(ctx.Request.Context(), client.ListClientsInput{})
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve clients",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientListResponse(output.Clients))
}

// Create handles POST /alumnos requests.
func (c *ClientController) Create(ctx *gin.Context) {
	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := client.CreateClientInput{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		PlanTier:          req.PlanTier,
		BirthDate:         valueobject.ParseFlexibleDate(req.BirthDate),
		Schedule:          req.Schedule,
		StartDate:         valueobject.ParseFlexibleDate(req.StartDate),
		LastAnthropometry: valueobject.ParseFlexibleDate(req.LastAnthropometry),
		PlanURL:           req.PlanURL,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToClientResponse(output.Client))
}

// Update handles PUT /alumnos/:id requests.
func (c *ClientController) Update(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid client ID format",
		})
		return
	}

	var req dto.ClientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingFields),
		})
		return
	}

	input := client.UpdateClientInput{
		ClientID:          clientID,
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		PlanTier:          req.PlanTier,
		BirthDate:         valueobject.ParseFlexibleDate(req.BirthDate),
		Schedule:          req.Schedule,
		StartDate:         valueobject.ParseFlexibleDate(req.StartDate),
		LastAnthropometry: valueobject.ParseFlexibleDate(req.LastAnthropometry),
		PlanURL:           req.PlanURL,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleClientError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToClientResponse(output.Client))
}

// Delete handles DELETE /alumnos/:id requests.
func (c *ClientController) Delete(ctx *gin.Context) {
	clientID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid client ID format",
		})
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), client.DeleteClientInput{ClientID: clientID}); err != nil {
		c.handleClientError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handleClientError handles client errors and returns appropriate HTTP responses.
func (c *ClientController) handleClientError(ctx *gin.Context, err error) {
	var clientErr *domainerror.ClientError
	if errors.As(err, &clientErr) {
		ctx.JSON(statusCodeForClientError(clientErr.Code), dto.ErrorResponse{
			Error: clientErr.Message,
			Code:  string(clientErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForClientError maps client error codes to HTTP status codes.
func statusCodeForClientError(code domainerror.ClientErrorCode) int {
	switch code {
	case domainerror.ErrCodeClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidPlanTier,
		domainerror.ErrCodeMissingClientName,
		domainerror.ErrCodeMissingFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
