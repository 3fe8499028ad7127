// The admin tool runs database migrations and seeds the records the service
// needs before its first request: API application credentials and guild
// configurations.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	"github.com/polyladder/server/business/domain/appbus"
	"github.com/polyladder/server/business/domain/appbus/stores/appdb"
	"github.com/polyladder/server/business/domain/tenantbus"
	"github.com/polyladder/server/business/domain/tenantbus/stores/tenantdb"
	"github.com/polyladder/server/business/sdk/sqldb"
	"github.com/polyladder/server/business/sdk/sqldb/migrate"
	"github.com/polyladder/server/business/types/scope"
	"github.com/polyladder/server/foundation/logger"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"polyladder"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	appBus := appbus.NewCore(log, appdb.NewStore(log, db))
	tenantBus := tenantbus.NewCore(log, tenantdb.NewStore(log, db))

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: migrate, create-app, create-guild")
		return nil
	}

	switch os.Args[1] {
	case "migrate":
		return runMigrate(ctx, db)
	case "create-app":
		return runCreateApp(ctx, appBus, os.Args[2:])
	case "create-guild":
		return runCreateGuild(ctx, tenantBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runMigrate(ctx context.Context, db *sqlx.DB) error {
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := migrate.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	fmt.Println("migrations complete")
	return nil
}

func runCreateApp(ctx context.Context, ab *appbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-app", flag.ExitOnError)
	idStr := cmd.String("id", "", "Application id (Required)")
	secretStr := cmd.String("secret", "", "Application secret (Required)")
	scopesStr := cmd.String("scopes", "", "Space separated scopes, e.g. \"users:read games:read\"")
	cmd.Parse(args)

	if *idStr == "" || *secretStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	app, err := ab.Create(ctx, appbus.NewApp{
		ID:     *idStr,
		Secret: *secretStr,
		Scopes: scope.ParseSet(*scopesStr),
	})
	if err != nil {
		return fmt.Errorf("create app failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Application created!\nID: %s\nScopes: %s\n", app.ID, app.Scopes)
	return nil
}

func runCreateGuild(ctx context.Context, tb *tenantbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-guild", flag.ExitOnError)
	idFlag := cmd.Int64("guild-id", 0, "Guild id (Required)")
	nameStr := cmd.String("name", "", "Guild name (Required)")
	prefixStr := cmd.String("prefix", tenantbus.DefaultPrefix, "Command prefix")
	cmd.Parse(args)

	if *idFlag == 0 || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	g, err := tb.Create(ctx, tenantbus.NewGuild{
		ID:            *idFlag,
		Name:          *nameStr,
		CommandPrefix: *prefixStr,
	})
	if err != nil {
		return fmt.Errorf("create guild failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Guild created!\nID: %d\nPrefix: %s\n", g.ID, g.CommandPrefix)
	return nil
}

// go run api/tooling/admin/main.go migrate
// go run api/tooling/admin/main.go create-app -id app1 -secret secret1 -scopes "users:read games:read games:new"
// go run api/tooling/admin/main.go create-guild -guild-id 447883341463814144 -name "PolyChampions"
