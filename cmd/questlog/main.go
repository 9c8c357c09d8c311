package main

import (
	"errors"
	"log"
	"net/http"

	adapthttp "questlog/internal/adapter/http"
	"questlog/internal/adapter/jsonfile"
	"questlog/internal/adapter/postgres"
	"questlog/internal/adapter/sqlite"
	"questlog/internal/app"
	"questlog/internal/config"
	"questlog/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	start, err := cfg.Start()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	repo, closeStore, err := openStore(cfg)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer closeStore()

	profiles := app.NewProfileService(repo, start)
	tasks := app.NewTaskService(repo, start)
	analytics := app.NewAnalyticsService(repo)

	h := adapthttp.New(profiles, tasks, analytics).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// openStore picks the persistence backend: PostgreSQL when DATABASE_URL is
// set, SQLite when SQLITE_PATH is set, otherwise the legacy JSON document.
func openStore(cfg *config.Config) (domain.UserRepository, func(), error) {
	switch {
	case cfg.DatabaseURL != "":
		db, err := postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		log.Print("using postgres store")
		return db, func() { _ = db.Close() }, nil
	case cfg.SQLitePath != "":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("using sqlite store at %s", cfg.SQLitePath)
		return db, func() { _ = db.Close() }, nil
	default:
		log.Printf("using json file store at %s", cfg.DataFile)
		return jsonfile.New(cfg.DataFile), func() {}, nil
	}
}
