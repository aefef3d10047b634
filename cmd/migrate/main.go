// Command migrate applies goose migrations against the configured database.
//
//	migrate up
//	migrate down
//	migrate status
package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/salesdeskhq/salesdesk-backend/pkg/config"
	"github.com/salesdeskhq/salesdesk-backend/pkg/logger"
	"github.com/salesdeskhq/salesdesk-backend/pkg/migrate"
)

func main() {
	_ = godotenv.Load()

	dir := flag.String("dir", migrate.DefaultDir, "directory with migration files")
	flag.Parse()

	args := flag.Args()
	command := "up"
	if len(args) > 0 {
		command = args[0]
		args = args[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logg := logger.New(logger.Options{
		ServiceName: "salesdesk-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("pgx", cfg.DB.DSN)
	if err != nil {
		logg.Error(ctx, "opening database", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := migrate.Run(ctx, db, *dir, command, args...); err != nil {
		logg.Error(ctx, "migration failed", err)
		os.Exit(1)
	}

	logg.Info(ctx, "migration complete: "+command)
}
