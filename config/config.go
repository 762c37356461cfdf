package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string
	DBPath string
}

var (
	cfg  *Config
	once sync.Once
)

// LoadConfig reads the .env file once and falls back to process environment
// variables when it is absent.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found. Relying on environment variables.")
		}
		cfg = &Config{
			AppEnv: os.Getenv("APP_ENV"),
			Port:   os.Getenv("PORT"),
			DBPath: os.Getenv("DB_PATH"),
		}
		if cfg.Port == "" {
			cfg.Port = "8080"
		}
		if cfg.DBPath == "" {
			cfg.DBPath = "db/patients/patients.db"
		}
	})
	return cfg
}
