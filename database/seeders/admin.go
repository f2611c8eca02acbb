package seeders

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/config"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/database"
	"github.com/vendora/vendora/pkg/logger"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin provisions the platform admin account from ADMIN_EMAIL,
// ADMIN_USERNAME and ADMIN_PASSWORD. It is a no-op when the config is
// incomplete or the account already exists, so it is safe to run on
// every startup.
func SeedAdmin(ctx context.Context, db *database.DB) error {
	email := config.AdminSeedEmail()
	username := config.AdminSeedUsername()
	password := config.AdminSeedPassword()
	if email == "" || username == "" || password == "" {
		logger.Debug("admin seed skipped", "reason", "config incomplete")
		return nil
	}

	users := repositories.New[models.User](db.Users())

	existing, err := users.Find(ctx, bson.M{"email": email})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         auth.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	logger.Info("admin account seeded", "email", email)
	return nil
}
