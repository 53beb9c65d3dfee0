package dto

import "github.com/acortes/biblioteca/internal/app/models"

// MaterialFilters carries the optional catalog listing filters
type MaterialFilters struct {
	Search   string `form:"search"`
	Category string `form:"category"` // category id or slug
	Type     string `form:"type" binding:"omitempty,oneof=physical digital thesis"`
	Status   string `form:"status" binding:"omitempty,oneof=available loaned reserved"`
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"pageSize,default=24"`
}

// CreateMaterialRequest is the payload for creating a catalog material
type CreateMaterialRequest struct {
	Title       string  `json:"title" binding:"required" example:"Cien años de soledad"`
	Author      string  `json:"author" binding:"required" example:"Gabriel García Márquez"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Year        *int    `json:"year,omitempty" example:"1967"`
	Type        string  `json:"type" binding:"required,oneof=physical digital thesis"`
	ISBN        *string `json:"isbn,omitempty"`
	Description *string `json:"description,omitempty"`
	CopiesTotal int     `json:"copiesTotal" binding:"omitempty,min=0" example:"3"`
	FilePath    *string `json:"filePath,omitempty"`
}

// UpdateMaterialRequest is the payload for updating a catalog material
type UpdateMaterialRequest struct {
	Title       string  `json:"title" binding:"required"`
	Author      string  `json:"author" binding:"required"`
	CategoryID  *string `json:"categoryId,omitempty"`
	Year        *int    `json:"year,omitempty"`
	ISBN        *string `json:"isbn,omitempty"`
	Description *string `json:"description,omitempty"`
	CopiesTotal int     `json:"copiesTotal" binding:"omitempty,min=0"`
}

// MaterialListResponse is the paginated catalog listing
type MaterialListResponse struct {
	Materials  []*models.Material `json:"materials"`
	Pagination PaginationInfo     `json:"pagination"`
}
