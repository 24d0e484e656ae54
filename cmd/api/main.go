package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	server "hotel_qa/internal/adapters/http_server"
	"hotel_qa/internal/adapters/observability"
	"hotel_qa/internal/adapters/openai"
	redisad "hotel_qa/internal/adapters/redis"
	"hotel_qa/internal/app"
	"hotel_qa/internal/domain"
	"hotel_qa/internal/shared"
	"hotel_qa/internal/storage/csvstore"
	"hotel_qa/internal/storage/mysqlstore"
	"hotel_qa/internal/tools"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	if cfg.OpenAIKey == "" {
		log.Fatal().Msg("OPENAI_API_KEY must be set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := app.NewDatasetStore(newSource(cfg))
	recs, err := store.Records(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("dataset load failed")
	}
	log.Info().Int("hotels", len(recs)).Msg("dataset ready")

	model, err := openai.New(cfg.OpenAIBase, cfg.OpenAIKey, cfg.ModelName, cfg.Temperature, cfg.ModelRPS)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize model client")
	}

	var history domain.HistoryStore
	if cfg.RedisAddr != "" {
		history = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.HistoryTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("session history in redis")
	} else {
		history = app.NewMemoryHistory()
	}

	search := app.NewSearchService(store)
	agent := app.NewAgent(model, history, []*tools.Tool{app.NewSearchTool(search)}, cfg.MaxToolRounds)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{Agent: agent, Search: search})

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutCtx)
	})
	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("http server failed")
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
