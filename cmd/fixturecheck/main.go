package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/nextneighbor/discover/internal/adapters/memory"
	"github.com/nextneighbor/discover/internal/core/domain"
)

// fixturecheck lints a marker fixture file: it runs the same ingestion
// validation as the API server and prints per-category counts, so a broken
// fixture is caught before deploy instead of at startup.
func main() {
	path := ""
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	repo, err := memory.LoadFixture(path)
	if err != nil {
		log.Fatalf("fixture invalid: %v", err)
	}

	ctx := context.Background()
	total, err := repo.Count(ctx)
	if err != nil {
		log.Fatalf("count: %v", err)
	}

	name := path
	if name == "" {
		name = "(embedded default)"
	}
	fmt.Printf("OK  %s: %d markers\n", name, total)

	for _, cat := range domain.Categories() {
		markers, err := repo.Query(ctx, domain.MarkerFilter{Categories: []string{cat.ID}})
		if err != nil {
			log.Fatalf("query %s: %v", cat.ID, err)
		}
		fmt.Printf("    %-8s %d\n", cat.ID, len(markers))
		if len(markers) == 0 {
			fmt.Printf("warning: no markers in category %s\n", cat.ID)
		}
	}
}
