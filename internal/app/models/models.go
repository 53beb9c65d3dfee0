package models

// RoleType defines the user role type
type RoleType string

const (
	RoleAdmin     RoleType = "admin"
	RoleLibrarian RoleType = "librarian"
	RoleUser      RoleType = "user"
)

// IsValidRole reports whether the given role is one of the known roles.
func IsValidRole(role RoleType) bool {
	switch role {
	case RoleAdmin, RoleLibrarian, RoleUser:
		return true
	}
	return false
}

// MaterialType defines the kind of catalog material
type MaterialType string

const (
	MaterialPhysical MaterialType = "physical"
	MaterialDigital  MaterialType = "digital"
	MaterialThesis   MaterialType = "thesis"
)

// MaterialStatus is the display status of a material in the catalog
type MaterialStatus string

const (
	MaterialAvailable MaterialStatus = "available"
	MaterialLoaned    MaterialStatus = "loaned"
	MaterialReserved  MaterialStatus = "reserved"
)

// LoanStatus is the lifecycle state of a loan.
// A loan starts active and ends as returned or overdue; both end states are terminal.
type LoanStatus string

const (
	LoanActive   LoanStatus = "active"
	LoanReturned LoanStatus = "returned"
	LoanOverdue  LoanStatus = "overdue"
)

// ReservationStatus is the lifecycle state of a reservation.
// A reservation starts pending; completed, expired and cancelled are terminal.
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationCompleted ReservationStatus = "completed"
	ReservationExpired   ReservationStatus = "expired"
	ReservationCancelled ReservationStatus = "cancelled"
)
