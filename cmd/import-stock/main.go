// Command import-stock pulls stock levels from the warehouse and writes
// the aggregated totals to the local variant catalog. Run it from cron
// or on demand after stock corrections.
package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	appsync "github.com/pickhero/commerce-sync/internal/application/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/config"
	"github.com/pickhero/commerce-sync/internal/infrastructure/logger"
	"github.com/pickhero/commerce-sync/internal/infrastructure/persistence"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

func main() {
	sku := flag.String("sku", "", "import stock for a single SKU instead of the full catalog")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	client := pickhero.NewClient(pickhero.Config{
		BaseURL: cfg.PickHero.APIBaseURL,
		Token:   cfg.PickHero.APIToken,
		Debug:   cfg.PickHero.Debug,
	}, log)

	service := appsync.NewProductSyncService(
		client.Products(),
		client.Stock(),
		persistence.NewGormVariantStore(db.DB),
		appsync.SettingsFromConfig(cfg.PickHero),
		log,
	)

	ctx := context.Background()
	if *sku != "" {
		if err := service.ImportStockForSKU(ctx, *sku); err != nil {
			log.Fatal("stock import failed", zap.String("sku", *sku), zap.Error(err))
		}
		log.Info("stock imported", zap.String("sku", *sku))
		return
	}

	updated, err := service.ImportStock(ctx)
	if err != nil {
		log.Fatal("stock import failed", zap.Error(err))
	}
	log.Info("stock import finished", zap.Int("variants_updated", updated))
}
