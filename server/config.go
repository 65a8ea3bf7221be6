// Package server is the dashboard backend: a JSON API over one ledger
// file, with live price refresh and websocket push.
package server

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the dashboard settings, loaded from the environment and
// an optional .env file.
type Config struct {
	Addr             string        // listen address, e.g. :8080
	LedgerPath       string        // JSONL ledger file
	Currency         string        // overrides the ledger's reporting currency
	AllowedOrigins   []string      // CORS origins for the frontend
	RefreshInterval  time.Duration // price refresh period, 0 disables
	MetricsUser      string        // basic auth for /metrics, empty disables auth
	MetricsPassword  string
	BinanceAPIKey    string
	BinanceSecretKey string
}

// LoadConfig reads the configuration from the environment. A missing
// .env file is fine.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment only")
	}

	cfg := &Config{
		Addr:             getenv("PFD_ADDR", ":8080"),
		LedgerPath:       getenv("PFD_LEDGER", "portfolio.jsonl"),
		Currency:         os.Getenv("PFD_CURRENCY"),
		MetricsUser:      os.Getenv("PFD_METRICS_USER"),
		MetricsPassword:  os.Getenv("PFD_METRICS_PASSWORD"),
		BinanceAPIKey:    os.Getenv("BINANCE_API_KEY"),
		BinanceSecretKey: os.Getenv("BINANCE_SECRET_KEY"),
	}

	origins := getenv("PFD_ORIGINS", "http://localhost:3000,http://localhost:5173")
	for _, o := range strings.Split(origins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
		}
	}

	refresh := getenv("PFD_REFRESH", "15m")
	d, err := time.ParseDuration(refresh)
	if err != nil {
		log.Printf("invalid PFD_REFRESH %q, using 15m", refresh)
		d = 15 * time.Minute
	}
	cfg.RefreshInterval = d

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
