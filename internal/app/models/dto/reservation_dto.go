package dto

// CreateReservationRequest is the payload for reserving a material
type CreateReservationRequest struct {
	MaterialID string `json:"materialId" binding:"required,uuid" example:"5d9b0f3e-0b5a-4a0e-9f36-3d41f8a2b6c1"`
}
