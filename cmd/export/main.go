// Command export dumps stored analyses to an .xlsx workbook.
//
//	export -out analyses.xlsx [-sport nba]
package main

import (
	"context"
	"flag"
	"log"
	"sync"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"pregame/adapters/excel"
	"pregame/adapters/postgres"
	"pregame/internal/config"
	"pregame/models"
	"pregame/ports"
)

const pageSize = 100

func main() {
	out := flag.String("out", "analyses.xlsx", "output workbook path")
	sport := flag.String("sport", "", "optional sport filter")
	pages := flag.Int("pages", 10, "max pages to fetch")
	flag.Parse()

	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[Export] Invalid configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("[Export] Failed to connect to database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewAnalysisRepository(db)

	// Pages fetch concurrently; ordering inside the workbook follows page
	// order, not completion order.
	byPage := make([][]*models.AnalysisRecord, *pages)
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(4)
	for page := 0; page < *pages; page++ {
		page := page
		g.Go(func() error {
			records, err := repo.List(ctx, ports.AnalysisFilters{
				Sport:  *sport,
				Limit:  pageSize,
				Offset: page * pageSize,
			})
			if err != nil {
				return err
			}
			mu.Lock()
			byPage[page] = records
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatalf("[Export] Failed to fetch analyses: %v", err)
	}

	all := []*models.AnalysisRecord{}
	for _, records := range byPage {
		all = append(all, records...)
	}
	log.Printf("[Export] Fetched %d analyses", len(all))

	file, err := excel.NewWriter().BuildWorkbook(all)
	if err != nil {
		log.Fatalf("[Export] Failed to build workbook: %v", err)
	}
	if err := file.SaveAs(*out); err != nil {
		log.Fatalf("[Export] Failed to save workbook: %v", err)
	}
	log.Printf("[Export] Wrote %s", *out)
}
