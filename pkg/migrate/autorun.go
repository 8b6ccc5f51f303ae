package migrate

import (
	"context"
	"fmt"

	"github.com/angelmondragon/ratewise-backend/pkg/config"
	"github.com/angelmondragon/ratewise-backend/pkg/db"
	"github.com/angelmondragon/ratewise-backend/pkg/logger"
)

// MaybeRunDev executes migrations automatically when the app is running in dev mode and
// the feature flag is enabled.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}

	meta := map[string]any{"env": cfg.App.Env, "dir": DefaultDir, "driver": cfg.DB.Driver}
	ctx = logg.WithFields(ctx, meta)
	logg.Info(ctx, "running migrations (dev auto-run)")

	if err := Up(ctx, client, cfg.DB.Driver, DefaultDir); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	logg.Info(ctx, "migrations completed")
	return nil
}
