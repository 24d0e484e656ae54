package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"

	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/adapters/openai"
	"hotel_qa/internal/app"
	"hotel_qa/internal/domain"
	"hotel_qa/internal/shared"
	"hotel_qa/internal/storage/csvstore"
	"hotel_qa/internal/storage/mysqlstore"
	"hotel_qa/internal/tools"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if cfg.OpenAIKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY must be set")
	}

	store := app.NewDatasetStore(newSource(cfg))
	// a broken dataset is fatal before any chat happens
	recs, err := store.Records(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	log.Info().Int("hotels", len(recs)).Msg("dataset ready")

	model, err := openai.New(cfg.OpenAIBase, cfg.OpenAIKey, cfg.ModelName, cfg.Temperature, cfg.ModelRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize model client")
	}

	search := app.NewSearchService(store)
	agent := app.NewAgent(model, app.NewMemoryHistory(), []*tools.Tool{app.NewSearchTool(search)}, cfg.MaxToolRounds)

	fmt.Println("Hotel QA Agent - ask about hotels, type 'exit' to quit.")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		reply, err := agent.Turn(ctx, "cli", line)
		if err != nil {
			log.Error().Err(err).Msg("turn failed")
			fmt.Println("Sorry, something went wrong talking to the model. Try again.")
			continue
		}
		fmt.Println(reply)
	}
	if err := sc.Err(); err != nil {
		log.Error().Err(err).Msg("stdin read failed")
	}
}

func newSource(cfg shared.Config) domain.Source {
	if cfg.HotelsDSN == "" {
		return csvstore.New(cfg.HotelsCSV)
	}
	db, err := sql.Open("mysql", cfg.HotelsDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("sql.Open failed")
	}
	if err := db.Ping(); err != nil {
		log.Fatal().Err(err).Msg("db.Ping failed")
	}
	log.Info().Msg("database connection ok")
	return mysqlstore.New(db)
}
