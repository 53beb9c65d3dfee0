package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/app/services"
	"github.com/acortes/biblioteca/internal/middleware"
)

// LoanController handles loan lifecycle requests
type LoanController struct {
	loanService services.LoanService
}

// NewLoanController creates a new LoanController
func NewLoanController(loanService services.LoanService) *LoanController {
	return &LoanController{
		loanService: loanService,
	}
}

// RequestLoan borrows a material for the caller
// @Summary Request a loan
// @Description Borrows a physical material for the authenticated user
// @Tags loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RequestLoanRequest true "Material to borrow"
// @Success 201 {object} dto.APIResponse{data=models.Loan} "Loan created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Material not found"
// @Failure 409 {object} dto.ErrorResponse "No copies available or active loan exists"
// @Failure 422 {object} dto.ErrorResponse "Material is not loanable"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [post]
func (c *LoanController) RequestLoan(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.RequestLoanRequest
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

	loan, err := c.loanService.RequestLoan(ctx, userID, materialID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusCreated, loan)
}

// ListLoans lists the caller's loans
// @Summary List own loans
// @Description Lists the authenticated user's loans, most recent first
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Loan} "Loans"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans [get]
func (c *LoanController) ListLoans(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	loans, err := c.loanService.ListByUser(ctx, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, loans)
}

// RenewLoan extends the due date of an active loan
// @Summary Renew a loan
// @Description Extends the due date of the caller's active loan from its current due date
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.APIResponse{data=dto.RenewLoanResponse} "Loan renewed"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan not active or renewal limit reached"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{id}/renew [post]
func (c *LoanController) RenewLoan(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	loanID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	loan, err := c.loanService.RenewLoan(ctx, userID, loanID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.RenewLoanResponse{
		LoanID:   loan.ID.String(),
		DueDate:  loan.DueDate,
		Renewals: loan.Renewals,
	})
}

// ReturnLoan finishes an active loan
// @Summary Return a loan
// @Description Finishes an active loan and puts the copy back on the shelf. Staff may return any loan.
// @Tags loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Loan ID"
// @Success 200 {object} dto.APIResponse{data=dto.ReturnLoanResponse} "Loan returned"
// @Failure 400 {object} dto.ErrorResponse "Invalid loan ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Loan not found"
// @Failure 409 {object} dto.ErrorResponse "Loan is not active"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /loans/{id}/return [post]
func (c *LoanController) ReturnLoan(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	loanID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	loan, err := c.loanService.ReturnLoan(ctx, loanID, userID, middleware.IsStaff(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respondData(ctx, http.StatusOK, dto.ReturnLoanResponse{
		LoanID:     loan.ID.String(),
		Status:     loan.Status,
		ReturnDate: *loan.ReturnDate,
	})
}
