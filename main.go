package main

import (
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

var (
	cfg Config
	DB  *gorm.DB
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	mustLoadEnv()
	cfg = loadConfig()

	var err error
	DB, err = openDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	log.Info().Msg("db connected")

	if err := autoMigrate(DB); err != nil {
		log.Fatal().Err(err).Msg("db migrate failed")
	}

	templates, err = loadTemplates(cfg.TemplateDir)
	if err != nil {
		log.Fatal().Err(err).Msg("template parse failed")
	}

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	log.Info().Str("addr", addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
