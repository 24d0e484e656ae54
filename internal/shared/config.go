package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	OpenAIKey   string
	OpenAIBase  string
	ModelName   string
	Temperature float64
	ModelRPS    int

	HotelsCSV string
	HotelsDSN string // when set, hotels load from MySQL instead of the CSV

	RedisAddr  string
	RedisPass  string
	RedisDB    int
	HistoryTTL time.Duration

	MaxToolRounds int
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	c := Config{
		AppEnv:        env("APP_ENV", "prod"),
		HTTPAddr:      env("HTTP_ADDR", ":8080"),
		MetricsAddr:   env("METRICS_ADDR", ""),
		OpenAIKey:     env("OPENAI_API_KEY", ""),
		OpenAIBase:    env("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		ModelName:     env("MODEL_NAME", "gpt-4o-mini"),
		Temperature:   atof("MODEL_TEMPERATURE", 0.6),
		ModelRPS:      atoi("MODEL_RPS", 5),
		HotelsCSV:     env("HOTELS_CSV", "hotels.csv"),
		HotelsDSN:     env("HOTELS_DSN", ""),
		RedisAddr:     env("REDIS_ADDR", ""),
		RedisPass:     env("REDIS_PASSWORD", ""),
		RedisDB:       atoi("REDIS_DB", 0),
		HistoryTTL:    time.Duration(atoi("HISTORY_TTL_SECONDS", 3600)) * time.Second,
		MaxToolRounds: atoi("MAX_TOOL_ROUNDS", 4),
	}
	if c.OpenAIKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
