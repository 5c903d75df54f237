package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/ridgelinemoto/backend/pkg/config"
	"github.com/ridgelinemoto/backend/pkg/logger"
	"github.com/ridgelinemoto/backend/pkg/metrics"
	"github.com/ridgelinemoto/backend/pkg/wps"
)

// wpscheck is a diagnostic tool: it verifies credentials and connectivity
// against the live catalog API and prints a short report. Exit status is
// non-zero on any failure so it can gate deploys.
func main() {
	logg := logger.New(logger.Options{ServiceName: "wpscheck"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	client, err := wps.NewClient(cfg.WPS, logg, metrics.NewUpstreamMetrics(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "client: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	fmt.Printf("base url:   %s\n", cfg.WPS.BaseURL)
	fmt.Printf("page style: %s\n", cfg.WPS.PageStyle)

	if !client.TestConnection(ctx) {
		fmt.Println("connection: FAILED")
		os.Exit(1)
	}
	fmt.Println("connection: ok")

	makes, err := client.ListVehicleMakes(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vehicle makes: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("vehicle makes: %d\n", len(makes))

	page, err := client.ListProducts(ctx, wps.ProductFilters{PageSize: 5})
	if err != nil {
		fmt.Fprintf(os.Stderr, "products: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("products: %d on first page (hasNext=%v)\n", len(page.Items), page.Page.HasNext)
	for _, p := range page.Items {
		fmt.Printf("  %-20s %-40s $%.2f images=%d\n", p.SKU, truncate(p.Name, 40), p.Price, len(p.Images))
	}

	fmt.Println("all checks passed")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
