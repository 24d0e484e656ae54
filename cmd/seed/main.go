// Command seed loads the hotels CSV into MySQL so the API can run with
// HOTELS_DSN instead of a file path.
package main

import (
	"context"
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/shared"
	"hotel_qa/internal/storage/csvstore"
	"hotel_qa/internal/storage/mysqlstore"
)

const batchSize = 500

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.HotelsDSN == "" {
		log.Fatal().Msg("HOTELS_DSN must be set")
	}

	recs, err := csvstore.New(cfg.HotelsCSV).Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("csv load failed")
	}
	log.Info().Int("hotels", len(recs)).Str("path", cfg.HotelsCSV).Msg("csv loaded")

	db, err := sql.Open("mysql", cfg.HotelsDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}

	store := mysqlstore.New(db)
	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensure schema failed")
	}

	// batches insert sequentially so auto-increment ids keep the CSV order
	for i := 0; i < len(recs); i += batchSize {
		end := i + batchSize
		if end > len(recs) {
			end = len(recs)
		}
		if err := store.InsertHotels(ctx, recs[i:end]); err != nil {
			log.Fatal().Err(err).Int("offset", i).Msg("insert batch failed")
		}
		log.Info().Int("from", i).Int("to", end).Msg("batch inserted")
	}

	log.Info().Msg("seeding completed")
}
