// Command export-products pushes the local variant catalog to the
// warehouse in batches. Intended for the initial setup of a shop and for
// catalog-wide refreshes.
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
	limit := flag.Int("limit", 0, "maximum number of variants to export (0 = all)")
	offset := flag.Int("offset", 0, "number of variants to skip")
	stopOnError := flag.Bool("stop-on-error", false, "abort the batch on the first failure")
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

	report, err := service.ExportAll(context.Background(), *limit, *offset, *stopOnError)
	log.Info("export finished",
		zap.Int("created", report.Created),
		zap.Int("updated", report.Updated),
		zap.Int("skipped", report.Skipped),
		zap.Int("errors", report.Errors),
	)
	if err != nil {
		log.Fatal("export aborted", zap.Error(err))
	}
}
