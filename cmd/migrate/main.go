package main

import (
	"log"
	"strings"

	"scholarshub/internal/pkg/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

func main() {
	config.LoadConfig()
	cfg := config.GlobalConfig.Database
	dsn := "postgres://" + cfg.User + ":" + cfg.Password + "@" + cfg.Host + ":" + cfg.Port + "/" + cfg.DBName + "?sslmode=" + cfg.SSLMode

	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		// A crashed migration leaves the schema version dirty. Force back to
		// the recorded version and retry once.
		if strings.Contains(err.Error(), "Dirty database version") {
			version, _, verr := m.Version()
			if verr != nil {
				log.Fatal("failed to read schema version:", verr)
			}
			log.Printf("database is dirty, forcing version %d and retrying", version)
			if err := m.Force(int(version)); err != nil {
				log.Fatal("failed to force version:", err)
			}
			if err := m.Up(); err != nil && err != migrate.ErrNoChange {
				log.Fatal(err)
			}
		} else {
			log.Fatal(err)
		}
	}

	log.Println("migration successful")
}
