package models

import (
	"time"

	"github.com/google/uuid"
)

// Material represents a catalog item in the 'materials' table.
// CopiesAvailable is the effective gate for loanability of physical materials;
// Status is a derived display value maintained alongside it.
type Material struct {
	ID              uuid.UUID      `json:"id" db:"id"`
	Title           string         `json:"title" db:"title" example:"Cien años de soledad"`
	Author          string         `json:"author" db:"author" example:"Gabriel García Márquez"`
	CategoryID      *uuid.UUID     `json:"categoryId,omitempty" db:"category_id"`
	Year            *int           `json:"year,omitempty" db:"year" example:"1967"`
	Type            MaterialType   `json:"type" db:"type" example:"physical"`
	Status          MaterialStatus `json:"status" db:"status" example:"available"`
	ISBN            *string        `json:"isbn,omitempty" db:"isbn"`
	Description     *string        `json:"description,omitempty" db:"description"`
	CopiesTotal     int            `json:"copiesTotal" db:"copies_total" example:"3"`
	CopiesAvailable int            `json:"copiesAvailable" db:"copies_available" example:"2"`
	FileURL         *string        `json:"fileUrl,omitempty" db:"file_url"`
	CreatedAt       time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time      `json:"updatedAt" db:"updated_at"`
	// Relations, no db tag
	Category     *Category     `json:"category,omitempty"`
	DigitalAsset *DigitalAsset `json:"digitalAsset,omitempty"`
}

// Category represents a catalog category in the 'categories' table
type Category struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" example:"Novela"`
	Slug      *string   `json:"slug,omitempty" db:"slug" example:"novela"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// MaterialSummary is the reduced material projection attached to loan and
// reservation listings.
type MaterialSummary struct {
	ID     uuid.UUID `json:"id" db:"id"`
	Title  string    `json:"title" db:"title"`
	Author string    `json:"author" db:"author"`
}
