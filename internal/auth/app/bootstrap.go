package app

import (
	"context"
	"fmt"

	"github.com/dev-gonzo/system-rpg-backend-sub000/internal/auth/domain"
	"github.com/dev-gonzo/system-rpg-backend-sub000/pkg/cryptox"
	"github.com/google/uuid"
)

// bootstrapAdmin seeds the first admin account when the users table is
// empty. Without it a fresh deployment has nobody who can log in. Skipped
// when no bootstrap password is configured.
func (app *Application) bootstrapAdmin(ctx context.Context) error {
	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return fmt.Errorf("bootstrap check: %w", err)
	}
	if !empty {
		return nil
	}

	if app.cfg.BootstrapAdminPassword == "" {
		app.logger.Warn("users table is empty and no BOOTSTRAP_ADMIN_PASSWORD is set, skipping admin bootstrap")
		return nil
	}

	hash, err := cryptox.HashPassword(app.cfg.BootstrapAdminPassword)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	admin := domain.User{
		ID:              uuid.NewString(),
		Username:        app.cfg.BootstrapAdminUsername,
		Email:           app.cfg.BootstrapAdminEmail,
		PasswordHash:    hash,
		Roles:           []string{"ADMIN", "USER"},
		IsActive:        true,
		IsEmailVerified: true,
	}
	if err := app.db.Users().CreateUser(ctx, admin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	app.logger.Info("bootstrap admin created", "username", admin.Username)
	return nil
}
