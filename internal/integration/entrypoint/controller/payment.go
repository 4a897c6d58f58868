// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rm-entrenador/backend/internal/application/usecase/payment"
	domainerror "github.com/rm-entrenador/backend/internal/domain/error"
	"github.com/rm-entrenador/backend/internal/domain/valueobject"
	"github.com/rm-entrenador/backend/internal/integration/entrypoint/dto"
)

// PaymentController handles payment endpoints.
type PaymentController struct {
	listUseCase   *payment.ListPaymentsUseCase
	createUseCase *payment.CreatePaymentUseCase
	updateUseCase *payment.UpdatePaymentUseCase
	deleteUseCase *payment.DeletePaymentUseCase
}

// NewPaymentController creates a new payment controller instance.
func NewPaymentController(
	listUseCase *payment.ListPaymentsUseCase,
	createUseCase *payment.CreatePaymentUseCase,
	updateUseCase *payment.UpdatePaymentUseCase,
	deleteUseCase *payment.DeletePaymentUseCase,
) *PaymentController {
	return &PaymentController{
		listUseCase:   listUseCase,
		createUseCase: createUseCase,
		updateUseCase: updateUseCase,
		deleteUseCase: deleteUseCase,
	}
}

// List handles GET /pagos requests. An optional alumno_id query parameter
// filters by client; an optional today parameter overrides the reference
// date used to derive each row's status.
func (c *PaymentController) List(ctx *gin.Context) {
	input := payment.ListPaymentsInput{}

	if raw := ctx.Query("alumno_id"); raw != "" {
		clientID, err := uuid.Parse(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error: "Invalid alumno_id format",
			})
			return
		}
		input.ClientID = &clientID
	}

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

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error: "Failed to retrieve payments",
		})
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentListResponse(output.Payments))
}

// Create handles POST /pagos requests.
func (c *PaymentController) Create(ctx *gin.Context) {
	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid alumno_id format",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := payment.CreatePaymentInput{
		ClientID: clientID,
		Amount:   valueobject.ParseFlexibleAmount(req.Amount),
		PayDate:  valueobject.ParseFlexibleDate(req.PayDate),
		DueDate:  valueobject.ParseFlexibleDate(req.DueDate),
		PlanTier: req.PlanTier,
		Phone:    req.Phone,
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToPaymentResponse(output.Payment))
}

// Update handles PUT /pagos/:id requests.
func (c *PaymentController) Update(ctx *gin.Context) {
	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment ID format",
		})
		return
	}

	var req dto.PaymentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid alumno_id format",
			Code:  string(domainerror.ErrCodeMissingPaymentFields),
		})
		return
	}

	input := payment.UpdatePaymentInput{
		PaymentID: paymentID,
		ClientID:  clientID,
		Amount:    valueobject.ParseFlexibleAmount(req.Amount),
		PayDate:   valueobject.ParseFlexibleDate(req.PayDate),
		DueDate:   valueobject.ParseFlexibleDate(req.DueDate),
		PlanTier:  req.PlanTier,
		Phone:     req.Phone,
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPaymentResponse(output.Payment))
}

// Delete handles DELETE /pagos/:id requests.
func (c *PaymentController) Delete(ctx *gin.Context) {
	paymentID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid payment ID format",
		})
		return
	}

	if _, err := c.deleteUseCase.Execute(ctx.Request.Context(), payment.DeletePaymentInput{PaymentID: paymentID}); err != nil {
		c.handlePaymentError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// handlePaymentError handles payment errors and returns appropriate HTTP responses.
func (c *PaymentController) handlePaymentError(ctx *gin.Context, err error) {
	var paymentErr *domainerror.PaymentError
	if errors.As(err, &paymentErr) {
		ctx.JSON(statusCodeForPaymentError(paymentErr.Code), dto.ErrorResponse{
			Error: paymentErr.Message,
			Code:  string(paymentErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// statusCodeForPaymentError maps payment error codes to HTTP status codes.
func statusCodeForPaymentError(code domainerror.PaymentErrorCode) int {
	switch code {
	case domainerror.ErrCodePaymentNotFound, domainerror.ErrCodePaymentClientNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeNegativeAmount, domainerror.ErrCodeMissingPaymentFields:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
