package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/middleware"
)

// ReservationController handles reservation lifecycle requests
type ReservationController struct {
	reservationService services.ReservationService
}

// NewReservationController creates a new ReservationController
func NewReservationController(reservationService services.ReservationService) *ReservationController {
	return &ReservationController{
		reservationService: reservationService,
	}
}

// CreateReservation places a reservation for the caller
// @Summary Create a reservation
// @Description Places a pending reservation on a physical material. Repeating the request returns the existing reservation.
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateReservationRequest true "Material to reserve"
// @Success 200 {object} dto.APIResponse{data=models.Reservation} "Existing reservation returned"
// @Success 201 {object} dto.APIResponse{data=models.Reservation} "Reservation created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 422 {object} dto.ErrorResponse "Material cannot be reserved"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations [post]
func (c *ReservationController) CreateReservation(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	materialID, err := uuid.Parse(req.MaterialID)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid material ID").WithField("materialId")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reservation, created, err := c.reservationService.Create(ctx, userID, materialID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	respondData(ctx, status, reservation)
}

// ListReservations lists the caller's reservations
// @Summary List own reservations
// @Description Lists the authenticated user's reservations, most recent first
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Reservation} "Reservations"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations [get]
func (c *ReservationController) ListReservations(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reservations, err := c.reservationService.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, reservations)
}

// CancelReservation cancels a pending reservation
// @Summary Cancel a reservation
// @Description Cancels the caller's pending reservation. Staff may cancel any reservation.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Reservation cancelled"
// @Failure 400 {object} dto.ErrorResponse "Invalid reservation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Reservation not found"
// @Failure 409 {object} dto.ErrorResponse "Reservation is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations/{id} [delete]
func (c *ReservationController) CancelReservation(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	reservationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.reservationService.Cancel(ctx, reservationID, userID, middleware.IsStaff(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.SuccessResponse{Message: "Reservation cancelled"})
}

// CompleteReservation completes a pending reservation
// @Summary Complete a reservation
// @Description Marks a pending reservation as completed when the material is handed over. Staff only.
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} dto.APIResponse{data=models.Reservation} "Reservation completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid reservation ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Reservation not found"
// @Failure 409 {object} dto.ErrorResponse "Reservation is not pending"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reservations/{id}/complete [post]
func (c *ReservationController) CompleteReservation(ctx *gin.Context) {
	reservationID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	reservation, err := c.reservationService.Complete(ctx, reservationID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, reservation)
}
