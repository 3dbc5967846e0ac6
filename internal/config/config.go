package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Quiz struct {
		// TTL is how long question lists stay cached.
		TTL        string   `yaml:"ttl"`
		Categories []string `yaml:"categories"`
		Counts     []int    `yaml:"counts"`
		TimedCount int      `yaml:"timed_count"`
		TimeLimit  string   `yaml:"time_limit"`
		Tick       string   `yaml:"tick"`
		SessionTTL string   `yaml:"session_ttl"`
		// CategoryAliases maps legacy CSV category names to current tracks.
		CategoryAliases map[string]string `yaml:"category_aliases"`
	} `yaml:"quiz"`
	Admin struct {
		PasswordHash string `yaml:"password_hash"`
		JWTSecret    string `yaml:"jwt_secret"`
		TokenTTL     string `yaml:"token_ttl"`
	} `yaml:"admin"`
	Rabbit struct {
		URL   string `yaml:"url"`
		Queue string `yaml:"queue"`
	} `yaml:"rabbit"`
	CORS struct {
		Origins []string `yaml:"origins"`
	} `yaml:"cors"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.Server.Port = "8080"
	cfg.Quiz.TTL = "10m"
	cfg.Quiz.Categories = []string{"Hundeführerschein", "Trainerprüfung"}
	cfg.Quiz.Counts = []int{5, 10, 20, 60}
	cfg.Quiz.TimedCount = 60
	cfg.Quiz.TimeLimit = "90m"
	cfg.Quiz.Tick = "1s"
	cfg.Quiz.SessionTTL = "6h"
	cfg.Quiz.CategoryAliases = map[string]string{
		"Koalatest":               "Hundeführerschein",
		"Hundetrainer Testfragen": "Trainerprüfung",
	}
	cfg.Admin.TokenTTL = "8h"
	cfg.Rabbit.Queue = "quiz.results"
	cfg.CORS.Origins = []string{"http://localhost:3000"}
	return cfg
}

// Load reads YAML config from path on top of Default. A missing file is not an error.
// Variables from a .env file in the working directory are exported first.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return applyEnv(cfg), nil
}

// applyEnv lets secrets come from the environment instead of the YAML file.
func applyEnv(cfg Config) Config {
	if v := os.Getenv("ADMIN_PASSWORD_HASH"); v != "" {
		cfg.Admin.PasswordHash = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Admin.JWTSecret = v
	}
	if v := os.Getenv("POSTGRES_URL"); v != "" {
		cfg.Postgres.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		cfg.Rabbit.URL = v
	}
	return cfg
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
