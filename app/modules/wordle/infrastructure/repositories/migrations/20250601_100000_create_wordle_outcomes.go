package wordlemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating wordle_outcomes table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS wordle_outcomes (
					id BIGSERIAL PRIMARY KEY,
					user_id TEXT NOT NULL,
					puzzle_date DATE NOT NULL,
					solved BOOLEAN NOT NULL,
					score SMALLINT,
					message_id TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CONSTRAINT uq_wordle_outcomes_user_date UNIQUE (user_id, puzzle_date),
					CONSTRAINT ck_wordle_outcomes_score CHECK (
						(solved AND score BETWEEN 1 AND 6) OR (NOT solved AND score IS NULL)
					)
				);
			`); err != nil {
				return fmt.Errorf("failed to create wordle_outcomes table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE INDEX IF NOT EXISTS idx_wordle_outcomes_puzzle_date ON wordle_outcomes (puzzle_date);
			`); err != nil {
				return fmt.Errorf("failed to index wordle_outcomes: %w", err)
			}

			fmt.Println("wordle_outcomes table created successfully!")
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping wordle_outcomes table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS wordle_outcomes;`); err != nil {
			return fmt.Errorf("failed to drop wordle_outcomes table: %w", err)
		}
		return nil
	})
}
