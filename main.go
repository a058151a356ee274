package main

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/cozygrove/skill-issue/internal/catalog"
	"github.com/cozygrove/skill-issue/internal/httpserver"
	"github.com/cozygrove/skill-issue/internal/schedule"
	"github.com/cozygrove/skill-issue/internal/store"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cat, err := catalog.Load(cfg.CatalogFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load game catalog")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.Timezone).Msg("failed to load timezone")
	}
	sched, err := schedule.New(cfg.LaunchDate, loc, time.Now)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scheduler")
	}

	db, err := openDB(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	if err := migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	srv := httpserver.New(db, cat, sched, store.NewSQLite(db))
	log.Info().
		Str("port", cfg.Port).
		Str("launch", cfg.LaunchDate).
		Int("catalog", cat.Len()).
		Msg("starting skill-issue server")
	if err := srv.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
