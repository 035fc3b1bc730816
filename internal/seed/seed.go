package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/seojin/hakwonhub/internal/app/models"
	appRepos "github.com/seojin/hakwonhub/internal/app/repositories"
	"github.com/seojin/hakwonhub/internal/pkg/auth"
)

const (
	defaultTenantName = "Demo Academy"
	defaultTenantSlug = "demo-academy"
	defaultAdminEmail = "admin@demo-academy.kr"

	// Development-only credential, rotated on first login in real deployments
	defaultAdminPassword = "Admin123!"
)

// CreateDefaultData creates the demo tenant and its admin account when the
// database is empty. Errors are collected and returned but callers treat
// them as non-fatal.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data...")
	var finalErr error

	tenantID, err := ensureTenant(ctx, dbPool)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating default tenant")
		return errors.Join(finalErr, err)
	}

	_, err = userRepo.GetByEmail(ctx, defaultAdminEmail)
	switch {
	case err == nil:
		lgr.Info().Msg("Admin user already exists, skipping creation")
	case errors.Is(err, pgx.ErrNoRows):
		lgr.Info().Msg("Creating default admin user...")

		hashedPassword, err := auth.HashPassword(defaultAdminPassword)
		if err != nil {
			lgr.Error().Err(err).Msg("Error hashing admin password")
			finalErr = errors.Join(finalErr, err)
			break
		}

		admin := &appModels.User{
			TenantID: tenantID,
			Email:    defaultAdminEmail,
			Password: hashedPassword,
			Name:     "System Administrator",
			Role:     appModels.RoleAdmin,
			IsActive: true,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			lgr.Error().Err(err).Msg("Error creating admin user")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Str("adminID", admin.ID).Msg("Default admin user created successfully")
		}
	default:
		lgr.Error().Err(err).Msg("Error checking if admin user exists")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Default data check/creation finished.")
	return finalErr
}

// ensureTenant returns the demo tenant's id, creating it if missing
func ensureTenant(ctx context.Context, dbPool *pgxpool.Pool) (string, error) {
	var id string
	err := dbPool.QueryRow(ctx,
		`SELECT id FROM tenants WHERE slug = $1 AND deleted_at IS NULL`,
		defaultTenantSlug).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = dbPool.QueryRow(ctx,
		`INSERT INTO tenants (name, slug) VALUES ($1, $2) RETURNING id`,
		defaultTenantName, defaultTenantSlug).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}
