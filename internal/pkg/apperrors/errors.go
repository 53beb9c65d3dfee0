package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
)

// Catalog errors
var (
	ErrMaterialNotFound = errors.New("material not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Loan lifecycle errors
var (
	ErrLoanNotFound        = errors.New("loan not found")
	ErrMaterialNotLoanable = errors.New("only physical materials can be loaned")
	ErrNoCopiesAvailable   = errors.New("no copies available for loan")
	ErrActiveLoanExists    = errors.New("an active loan already exists for this material")
	ErrLoanNotActive       = errors.New("loan is not active")
	ErrRenewalLimitReached = errors.New("maximum number of renewals reached")
)

// Reservation lifecycle errors
var (
	ErrReservationNotFound   = errors.New("reservation not found")
	ErrReservationNotPending = errors.New("reservation is not pending")
	ErrMaterialNotReservable = errors.New("only physical materials can be reserved")
)

// Digital library errors
var (
	ErrMaterialNotDownloadable = errors.New("material has no downloadable file")
)

// User administration errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Is returns whether target or any error in errList matches err
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}
