// migrate applies all SQL files under migrations/ in lexical order.
//
// Usage: go run ./cmd/migrate
package main

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/AhmedGad3/construction-erp/internal/db"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	files, err := filepath.Glob("migrations/*.sql")
	if err != nil {
		log.Fatal().Err(err).Msg("list migrations")
	}
	sort.Strings(files)

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("read migration")
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			log.Fatal().Err(err).Str("file", file).Msg("apply migration")
		}
		log.Info().Str("file", file).Msg("applied")
	}
}
