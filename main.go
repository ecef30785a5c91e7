// pregame turns raw AI game-analysis payloads into stable, render-ready
// view models and serves them over HTTP.
package main

import (
	"log"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"pregame/adapters/postgres"
	"pregame/ai"
	"pregame/app"
	"pregame/internal"
	"pregame/internal/config"
	"pregame/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Printf("[Main] No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Main] Invalid configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("[Main] Failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(postgres.Schema); err != nil {
		log.Fatalf("[Main] Failed to apply schema: %v", err)
	}
	internal.DefaultLogger.Info("[Main] Database ready")

	repo := postgres.NewAnalysisRepository(db)

	var service *app.AnalysisService
	if cfg.AI.OpenAIKey != "" {
		service = app.NewAnalysisService(repo, ai.NewPayloadClient(cfg.AI))
	} else {
		internal.DefaultLogger.Warn("[Main] OPENAI_API_KEY not set, payload generation disabled")
		service = app.NewAnalysisService(repo, nil)
	}

	if cfg.Ops.Enabled {
		ops := ui.NewOpsServer(db, cfg.Ops)
		go func() {
			if err := ops.Run(); err != nil {
				log.Printf("[Main] Ops server stopped: %v", err)
			}
		}()
	}

	server := ui.NewServer(service, cfg.Server)
	if err := server.Run(); err != nil {
		log.Fatalf("[Main] Server stopped: %v", err)
	}
}
