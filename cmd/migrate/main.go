package main

import (
	"errors"
	"flag"
	"log"

	"quizforge/internal/config"
	"quizforge/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"
)

func main() {
	var (
		dir  = flag.String("dir", "migrations", "directory holding the migration files")
		down = flag.Bool("down", false, "roll back all migrations instead of applying them")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	m, err := migrate.New("file://"+*dir, cfg.GetMigrateURL())
	if err != nil {
		l.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer m.Close()

	if *down {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			l.Info("Database schema already up to date")
			return
		}
		l.Fatal("Migration failed", zap.Error(err))
	}
	l.Info("Migrations completed successfully")
}
