package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/acortes/biblioteca/internal/app/models/dto"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// HandleAPIError maps service errors to HTTP responses. Lifecycle conflicts
// are 409, domain rule violations are 422, lookups that miss are 404.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrMaterialNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Material not found")
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Category not found")
	case errors.Is(err, apperrors.ErrLoanNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Loan not found")
	case errors.Is(err, apperrors.ErrReservationNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Reservation not found")
	case errors.Is(err, apperrors.ErrUserNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respondError(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found")

	case errors.Is(err, apperrors.ErrMaterialNotLoanable):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodeMaterialNotLoanable, "Only physical materials can be loaned")
	case errors.Is(err, apperrors.ErrMaterialNotReservable):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodeMaterialNotReservable, "Only physical materials can be reserved")
	case errors.Is(err, apperrors.ErrMaterialNotDownloadable):
		respondError(c, http.StatusUnprocessableEntity, dto.ErrorCodeMaterialNotDownloadable, "Material has no downloadable file")

	case errors.Is(err, apperrors.ErrNoCopiesAvailable):
		respondError(c, http.StatusConflict, dto.ErrorCodeNoCopiesAvailable, "No copies available for loan")
	case errors.Is(err, apperrors.ErrActiveLoanExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeActiveLoanExists, "An active loan already exists for this material")
	case errors.Is(err, apperrors.ErrLoanNotActive):
		respondError(c, http.StatusConflict, dto.ErrorCodeLoanNotActive, "Loan is not active")
	case errors.Is(err, apperrors.ErrRenewalLimitReached):
		respondError(c, http.StatusConflict, dto.ErrorCodeRenewalLimitReached, "Maximum number of renewals reached")
	case errors.Is(err, apperrors.ErrReservationNotPending):
		respondError(c, http.StatusConflict, dto.ErrorCodeReservationNotPending, "Reservation is not pending")
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Email already exists")
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		respondError(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists")

	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials")
	case errors.Is(err, apperrors.ErrTokenExpired):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respondError(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, apperrors.ErrAccountDisabled):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Account is disabled")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respondError(c, http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied")

	case errors.Is(err, apperrors.ErrValidationFailed):
		respondError(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed")

	default:
		logger.Error().Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Unhandled API error")
		respondError(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respondError(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}
