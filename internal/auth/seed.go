package auth

import (
	"context"
	"errors"

	"github.com/angelmondragon/freshcart/internal/users"
	"github.com/angelmondragon/freshcart/pkg/config"
	"github.com/angelmondragon/freshcart/pkg/security"
)

// SeedDemoUser registers the configured demo shopper. It is a no-op when the
// demo account is disabled or already present.
func SeedDemoUser(ctx context.Context, dir *users.Directory, demo config.DemoUserConfig, pwd config.PasswordConfig) error {
	if !demo.Enabled() {
		return nil
	}
	hash, err := security.HashPassword(demo.Password, pwd)
	if err != nil {
		return err
	}
	_, err = dir.Create(ctx, users.CreateUserDTO{
		Name:         demo.Name,
		Email:        demo.Email,
		PasswordHash: hash,
	})
	if errors.Is(err, users.ErrEmailTaken) {
		return nil
	}
	return err
}
