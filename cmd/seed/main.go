package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"prompt-template-store/internal/catalog"
	"prompt-template-store/internal/config"
	pg "prompt-template-store/internal/infra/db/postgres"
)

// Applies the SQL migrations in order and validates the built-in
// catalog. Safe to run repeatedly: the schema files are written to be
// idempotent.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	dir := flag.String("migrations", "migrations", "directory with .sql migration files")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	for _, name := range files {
		sql, err := os.ReadFile(filepath.Join(*dir, name))
		if err != nil {
			log.Fatalf("read %s: %v", name, err)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			log.Fatalf("apply %s: %v", name, err)
		}
		fmt.Printf("applied %s\n", name)
	}

	cat, err := catalog.Load()
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	fmt.Printf("catalog OK: %d templates\n", len(cat.List()))
	for _, t := range cat.List() {
		tag := "paid"
		if t.Free {
			tag = "free"
		}
		if t.Bundle {
			tag = "bundle"
		}
		fmt.Printf("  - %-6s %-7s %d %s\n", t.ID, tag, t.PriceCents, t.Currency)
	}
}
