package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App       App
	Server    Server
	Postgres  Postgres
	Redis     Redis
	Gemini    Gemini
	Geo       Geo
	Logistics Logistics
	Bot       Bot
}

type App struct {
	Name    string `env:"APP_NAME" envDefault:"eko-market"`
	Version string `env:"APP_VERSION" envDefault:"dev"`
}

type Bot struct {
	Token     string  `env:"BOT_TOKEN"`
	ChatID    int64   `env:"BOT_CHAT_ID"`
	MinProfit float64 `env:"BOT_MIN_PROFIT" envDefault:"5000"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var config Config

	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("env.Parse: %w", err)
	}

	return config, nil
}
