package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func mustLoadEnv() {
	_ = godotenv.Load() // load .env if present (ok if missing in prod)
	// minimal checks
	required := []string{"DATABASE_URL", "JWT_SECRET"}
	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatal().Msgf("missing required env %s", k)
		}
	}
}
