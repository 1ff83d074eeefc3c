package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"

	wordlequeue "github.com/Black-And-White-Club/wordle-bot/app/modules/wordle/infrastructure/queue"
	"github.com/Black-And-White-Club/wordle-bot/config"
	"github.com/Black-And-White-Club/wordle-bot/internal/db/bundb"
	"github.com/Black-And-White-Club/wordle-bot/internal/observability"
	"github.com/Black-And-White-Club/wordle-bot/pkg/jwt"
)

func main() {
	cliApp := &cli.App{
		Name:  "wordlectl",
		Usage: "wordle-bot operations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"WORDLE_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			newMigrateCommand(),
			newTokenCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// withMigrators opens the database and hands every module migrator, in run
// order, to fn.
func withMigrators(c *cli.Context, fn func(db *bun.DB, names []string, migrators map[string]*migrate.Migrator) error) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	db, err := bundb.Open(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	migrators := bundb.Migrators(db)
	return fn(db, bundb.ModuleNames(migrators), migrators)
}

func newMigrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *bun.DB, names []string, migrators map[string]*migrate.Migrator) error {
						for _, name := range names {
							fmt.Printf("Initializing migrations for module: %s\n", name)
							if err := migrators[name].Init(c.Context); err != nil {
								return fmt.Errorf("init %s: %w", name, err)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database, including the job queue schema",
				Action: func(c *cli.Context) error {
					err := withMigrators(c, func(_ *bun.DB, names []string, migrators map[string]*migrate.Migrator) error {
						for _, name := range names {
							group, err := migrators[name].Migrate(c.Context)
							if err != nil {
								return fmt.Errorf("migrate %s: %w", name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", name, group)
							}
						}
						return nil
					})
					if err != nil {
						return err
					}
					return migrateRiver(c, wordlequeue.Up, 0)
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group of every module",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "river", Usage: "also roll back one job queue schema version"},
				},
				Action: func(c *cli.Context) error {
					// Reverse order: outcomes reference users.
					err := withMigrators(c, func(_ *bun.DB, names []string, migrators map[string]*migrate.Migrator) error {
						for i := len(names) - 1; i >= 0; i-- {
							name := names[i]
							group, err := migrators[name].Rollback(c.Context)
							if err != nil {
								return fmt.Errorf("rollback %s: %w", name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", name, group)
							}
						}
						return nil
					})
					if err != nil || !c.Bool("river") {
						return err
					}
					return migrateRiver(c, wordlequeue.Down, 1)
				},
			},
			{
				Name:      "create_sql",
				Usage:     "create up and down SQL migrations",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *bun.DB, _ []string, migrators map[string]*migrate.Migrator) error {
						module := c.Args().First()
						migrator, ok := migrators[module]
						if !ok {
							return fmt.Errorf("invalid module name: %s", module)
						}
						files, err := migrator.CreateSQLMigrations(c.Context, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						for _, mf := range files {
							fmt.Printf("Created migration for module %s: %s (%s)\n", module, mf.Name, mf.Path)
						}
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					err := withMigrators(c, func(_ *bun.DB, names []string, migrators map[string]*migrate.Migrator) error {
						for _, name := range names {
							ms, err := migrators[name].MigrationsWithStatus(c.Context)
							if err != nil {
								return fmt.Errorf("status %s: %w", name, err)
							}
							fmt.Printf("Migrations for module: %s\n", name)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
					if err != nil {
						return err
					}

					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					ok, messages, err := wordlequeue.RiverStatus(c.Context, cfg.Postgres.DSN)
					if err != nil {
						return err
					}
					fmt.Printf("Job queue schema up to date: %t\n", ok)
					for _, m := range messages {
						fmt.Printf("  %s\n", m)
					}
					return nil
				},
			},
		},
	}
}

func migrateRiver(c *cli.Context, direction wordlequeue.Direction, maxSteps int) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	logger := observability.NewLogger("development", "info")
	versions, err := wordlequeue.MigrateRiver(c.Context, cfg.Postgres.DSN, direction, maxSteps, logger)
	if err != nil {
		return err
	}
	fmt.Printf("Job queue schema %s: versions %v\n", direction, versions)
	return nil
}

func newTokenCommand() *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "admin API tokens",
		Subcommands: []*cli.Command{
			{
				Name:  "issue",
				Usage: "mint a signed bearer token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "subject", Required: true, Usage: "who the token is for"},
					&cli.StringFlag{Name: "role", Value: string(jwt.RoleAdmin), Usage: "admin or viewer"},
					&cli.DurationFlag{Name: "ttl", Usage: "token lifetime (defaults to jwt.default_ttl)"},
				},
				Action: func(c *cli.Context) error {
					cfg, err := loadConfig(c)
					if err != nil {
						return err
					}
					role := jwt.Role(c.String("role"))
					if role != jwt.RoleAdmin && role != jwt.RoleViewer {
						return fmt.Errorf("unknown role %q", role)
					}

					tokens := jwt.NewService(cfg.JWT.Secret, cfg.JWT.DefaultTTL)
					token, err := tokens.GenerateToken(c.String("subject"), role, c.Duration("ttl"))
					if err != nil {
						return err
					}
					ttl := c.Duration("ttl")
					if ttl <= 0 {
						ttl = cfg.JWT.DefaultTTL
					}
					fmt.Fprintf(os.Stderr, "expires %s\n", time.Now().Add(ttl).Format(time.RFC3339))
					fmt.Println(token)
					return nil
				},
			},
		},
	}
}
