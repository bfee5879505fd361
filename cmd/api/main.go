package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"stock_analyzer/pkg/api/analysis"
	"stock_analyzer/pkg/core/fetch"
	"stock_analyzer/pkg/core/store"
)

// AppConfig is the optional config/app.yaml file. Missing file or fields
// fall back to the defaults below.
type AppConfig struct {
	Port    int    `yaml:"port"`
	DataDir string `yaml:"data_dir"`
}

func loadConfig() AppConfig {
	cfg := AppConfig{Port: 8080, DataDir: "data"}
	raw, err := os.ReadFile("config/app.yaml")
	if err != nil {
		return cfg
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		fmt.Printf("[WARNING] Bad config/app.yaml, using defaults: %v\n", err)
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}
	return cfg
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := loadConfig()

	// Postgres cache is optional; the file cache covers local runs.
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] DB cache unavailable, using file cache: %v\n", err)
		} else {
			fmt.Println("[STORE] Postgres snapshot cache connected")
			defer store.Close()
		}
	}

	fetcher := fetch.NewFetcher(fetch.NewFileQuoter(cfg.DataDir))
	analysis.InitHandler(fetcher)

	http.HandleFunc("/api/analysis/report", analysis.HandleAnalysisReport)
	http.HandleFunc("/api/analysis/search", analysis.HandleSearch)

	fmt.Printf("API server starting on :%d...\n", cfg.Port)
	fmt.Println("  - POST /api/analysis/report")
	fmt.Println("  - GET  /api/analysis/search?q=...")
	fmt.Printf("  data dir: %s\n", cfg.DataDir)

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.Port), nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
