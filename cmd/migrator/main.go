package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/database"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration")
	steps := flag.Int("steps", 0, "apply n migrations (negative rolls back)")
	flag.Parse()

	log, err := config.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to configure logger: %v\n", err)
		os.Exit(1)
	}

	url, err := config.DatabaseURL()
	if err != nil {
		log.WithError(err).Fatal("unable to read database config")
	}

	migrator, err := database.NewMigrator(url, database.Migrations)
	if err != nil {
		log.WithError(err).Fatal("unable to create migrator")
	}
	defer migrator.Close()

	switch {
	case *down:
		err = migrator.Down()
	case *steps != 0:
		err = migrator.Steps(*steps)
	default:
		err = migrator.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.WithError(err).Fatal("migration failed")
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		log.Info("database has no migrations applied")
		return
	}
	if err != nil {
		log.WithError(err).Fatal("unable to check migration version")
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
