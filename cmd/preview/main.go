// Command preview runs the pipeline over a directory of payload fixtures
// and writes the resulting view models next to them as *.viewmodel.json.
// Useful for eyeballing pipeline changes against a payload corpus without
// a database or an upstream model.
//
//	preview -dir fixtures [-sport nba]
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"pregame/domain/analysis"
	"pregame/models"
)

func main() {
	dir := flag.String("dir", "fixtures", "directory of payload JSON files")
	sport := flag.String("sport", "", "sport hint when the payload omits one")
	flag.Parse()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("[Preview] Failed to read %s: %v", *dir, err)
	}

	var g errgroup.Group
	g.SetLimit(8)
	processed := 0
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") || strings.HasSuffix(name, ".viewmodel.json") {
			continue
		}
		processed++
		path := filepath.Join(*dir, name)
		g.Go(func() error {
			return renderFixture(path, *sport)
		})
	}

	if err := g.Wait(); err != nil {
		log.Fatalf("[Preview] %v", err)
	}
	log.Printf("[Preview] Rendered %d payloads in %s", processed, *dir)
}

func renderFixture(path, sport string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	payload := make(models.RawPayload)
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Printf("[Preview] Skipping %s: invalid JSON: %v", path, err)
		return nil
	}

	viewModel := analysis.BuildViewModel(payload, sport)

	out, err := json.MarshalIndent(viewModel, "", "  ")
	if err != nil {
		return err
	}

	target := strings.TrimSuffix(path, ".json") + ".viewmodel.json"
	return os.WriteFile(target, out, 0o644)
}
