package usermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

var userNameIndices = map[string]string{
	"idx_users_guild_name":  "guild_name",
	"idx_users_username":    "username",
	"idx_users_global_name": "global_name",
}

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Adding user name lookup indices...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for name, column := range userNameIndices {
				q := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON users (%s) WHERE NOT is_placeholder;`, name, column)
				if _, err := tx.ExecContext(ctx, q); err != nil {
					return fmt.Errorf("failed to add index %s: %w", name, err)
				}
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Rolling back user name lookup indices...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			for name := range userNameIndices {
				if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DROP INDEX IF EXISTS %s;`, name)); err != nil {
					return fmt.Errorf("failed to drop index %s: %w", name, err)
				}
			}
			return nil
		})
	})
}
