package seed

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acortes/biblioteca/internal/app/models"
	"github.com/acortes/biblioteca/internal/app/repositories"
	"github.com/acortes/biblioteca/internal/pkg/apperrors"
	"github.com/acortes/biblioteca/internal/pkg/auth"
	"github.com/acortes/biblioteca/internal/pkg/logger"
)

// CreateDefaultData creates the default staff accounts, categories and demo
// materials if they don't exist. Errors are collected so a partial seed never
// blocks startup.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool) error {
	userRepo := repositories.NewUserRepository(dbPool)
	categoryRepo := repositories.NewCategoryRepository(dbPool)
	materialRepo := repositories.NewMaterialRepository(dbPool)

	logger.Info().Msg("Checking/Creating default data...")
	var finalErr error

	defaultUsers := []struct {
		email    string
		name     string
		role     models.RoleType
		password string
	}{
		{"admin@biblioteca.app", "Administrador", models.RoleAdmin, "admin1234"},
		{"bibliotecario@biblioteca.app", "Bibliotecario", models.RoleLibrarian, "biblio1234"},
	}

	for _, u := range defaultUsers {
		hashed, err := auth.HashPassword(u.password)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}

		user := &models.User{
			Email:    u.email,
			Password: hashed,
			FullName: u.name,
			RoleType: u.role,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, user); err != nil && !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.Error().Err(err).Str("email", u.email).Msg("Error creating default user")
			finalErr = errors.Join(finalErr, err)
		}
	}

	defaultCategories := []struct {
		name string
		slug string
	}{
		{"Novela", "novela"},
		{"Cuento", "cuento"},
		{"Poesía", "poesia"},
		{"Historia", "historia"},
		{"Ciencia", "ciencia"},
		{"Tesis", "tesis"},
	}

	for _, c := range defaultCategories {
		slug := c.slug
		category := &models.Category{Name: c.name, Slug: &slug}
		if err := categoryRepo.Create(ctx, category); err != nil && !errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			logger.Error().Err(err).Str("category", c.name).Msg("Error creating default category")
			finalErr = errors.Join(finalErr, err)
		}
	}

	categoryBySlug := map[string]uuid.UUID{}
	if categories, err := categoryRepo.List(ctx); err != nil {
		finalErr = errors.Join(finalErr, err)
	} else {
		for _, c := range categories {
			if c.Slug != nil {
				categoryBySlug[*c.Slug] = c.ID
			}
		}
	}

	for _, m := range defaultMaterials() {
		_, total, err := materialRepo.List(ctx, repositories.MaterialFilter{Search: m.material.Title, Limit: 1})
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if total > 0 {
			continue
		}

		if id, ok := categoryBySlug[m.categorySlug]; ok {
			m.material.CategoryID = &id
		}
		if err := materialRepo.Create(ctx, m.material); err != nil {
			logger.Error().Err(err).Str("title", m.material.Title).Msg("Error creating demo material")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if m.asset != nil {
			m.asset.MaterialID = m.material.ID
			if err := materialRepo.CreateDigitalAsset(ctx, m.asset); err != nil {
				logger.Error().Err(err).Str("title", m.material.Title).Msg("Error creating demo digital asset")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		logger.Info().Msg("Default data in place")
	}

	return finalErr
}

type seedMaterial struct {
	material     *models.Material
	asset        *models.DigitalAsset
	categorySlug string
}

func defaultMaterials() []seedMaterial {
	intPtr := func(v int) *int { return &v }
	str := func(s string) *string { return &s }

	return []seedMaterial{
		{
			material: &models.Material{
				Title:           "Cien años de soledad",
				Author:          "Gabriel García Márquez",
				Year:            intPtr(1967),
				Type:            models.MaterialPhysical,
				Status:          models.MaterialAvailable,
				ISBN:            str("978-0307474728"),
				CopiesTotal:     3,
				CopiesAvailable: 3,
			},
			categorySlug: "novela",
		},
		{
			material: &models.Material{
				Title:           "El llano en llamas",
				Author:          "Juan Rulfo",
				Year:            intPtr(1953),
				Type:            models.MaterialPhysical,
				Status:          models.MaterialAvailable,
				CopiesTotal:     2,
				CopiesAvailable: 2,
			},
			categorySlug: "cuento",
		},
		{
			material: &models.Material{
				Title:       "Veinte poemas de amor y una canción desesperada",
				Author:      "Pablo Neruda",
				Year:        intPtr(1924),
				Type:        models.MaterialDigital,
				Status:      models.MaterialAvailable,
				Description: str("Edición digital de dominio público"),
				FileURL:     str("/uploads/veinte-poemas.pdf"),
			},
			asset:        &models.DigitalAsset{FilePath: "veinte-poemas.pdf", Pages: intPtr(72)},
			categorySlug: "poesia",
		},
	}
}
