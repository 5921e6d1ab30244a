package sync

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/pickhero/commerce-sync/internal/domain/commerce"
	"github.com/pickhero/commerce-sync/internal/infrastructure/metrics"
	"github.com/pickhero/commerce-sync/internal/infrastructure/pickhero"
)

// ExportOutcome classifies the result of exporting one variant.
type ExportOutcome string

// Export outcomes.
const (
	ExportCreated ExportOutcome = "created"
	ExportUpdated ExportOutcome = "updated"
	ExportSkipped ExportOutcome = "skipped"
)

// ExportReport aggregates the outcomes of a batch export.
type ExportReport struct {
	Created int
	Updated int
	Skipped int
	Errors  int
}

// exportBatchSize is the page size used when walking the variant catalog.
const exportBatchSize = 100

// ProductSyncService moves catalog data between the local store and the
// warehouse: variants out, stock levels in.
type ProductSyncService struct {
	products ProductGateway
	stock    StockGateway
	variants commerce.VariantStore
	settings Settings
	logger   *zap.Logger
}

// NewProductSyncService creates the service.
func NewProductSyncService(
	products ProductGateway,
	stock StockGateway,
	variants commerce.VariantStore,
	settings Settings,
	logger *zap.Logger,
) *ProductSyncService {
	return &ProductSyncService{
		products: products,
		stock:    stock,
		variants: variants,
		settings: settings,
		logger:   logger,
	}
}

// ---------------------------------------------------------------------------
// Export (local -> warehouse)
// ---------------------------------------------------------------------------

// ExportVariant pushes one variant to the warehouse, creating or updating
// by external identifier. Variants without a SKU are skipped; the
// warehouse requires a product code.
func (s *ProductSyncService) ExportVariant(ctx context.Context, variant *commerce.Variant) (ExportOutcome, error) {
	if variant.SKU == "" {
		metrics.ProductsExportedTotal.WithLabelValues(string(ExportSkipped)).Inc()
		return ExportSkipped, nil
	}

	externalID := strconv.FormatInt(variant.ID, 10)
	existing, err := s.products.FindByExternalID(ctx, externalID)
	if err != nil {
		return "", err
	}

	if existing != nil {
		payload := productPayload(variant, "", s.settings.FieldMappings)
		if _, err := s.products.Update(ctx, strconv.FormatInt(existing.ID, 10), pickhero.IDInternal, payload); err != nil {
			return "", err
		}
		metrics.ProductsExportedTotal.WithLabelValues(string(ExportUpdated)).Inc()
		s.logger.Info("product updated in warehouse", zap.String("sku", variant.SKU))
		return ExportUpdated, nil
	}

	payload := productPayload(variant, externalID, s.settings.FieldMappings)
	if _, err := s.products.Create(ctx, payload); err != nil {
		return "", err
	}
	metrics.ProductsExportedTotal.WithLabelValues(string(ExportCreated)).Inc()
	s.logger.Info("product created in warehouse", zap.String("sku", variant.SKU))
	return ExportCreated, nil
}

// ExportAll walks the variant catalog and exports every variant. limit
// zero means no limit. Per-variant failures are logged and counted; the
// batch continues unless stopOnError is set.
func (s *ProductSyncService) ExportAll(ctx context.Context, limit, offset int, stopOnError bool) (ExportReport, error) {
	var report ExportReport
	exported := 0

	for {
		batch := exportBatchSize
		if limit > 0 && limit-exported < batch {
			batch = limit - exported
		}
		if batch <= 0 {
			return report, nil
		}

		variants, err := s.variants.List(ctx, batch, offset)
		if err != nil {
			return report, err
		}
		if len(variants) == 0 {
			return report, nil
		}

		for _, variant := range variants {
			outcome, err := s.ExportVariant(ctx, variant)
			if err != nil {
				report.Errors++
				s.logger.Error("export variant",
					zap.String("sku", variant.SKU),
					zap.Int64("variant_id", variant.ID),
					zap.Error(err),
				)
				if stopOnError {
					return report, err
				}
				continue
			}
			switch outcome {
			case ExportCreated:
				report.Created++
			case ExportUpdated:
				report.Updated++
			case ExportSkipped:
				report.Skipped++
			}
		}

		offset += len(variants)
		exported += len(variants)
	}
}

// ---------------------------------------------------------------------------
// Stock import (warehouse -> local)
// ---------------------------------------------------------------------------

// ImportStock pulls all stock records from the warehouse, aggregates
// quantities per product code across locations, and writes the totals to
// matching variants. Codes without a local variant are skipped. Returns
// the number of variants whose stock actually changed.
func (s *ProductSyncService) ImportStock(ctx context.Context) (int, error) {
	records, err := s.stock.List(ctx, pickhero.ListParams{
		Include: "product,location,location.warehouse",
	})
	if err != nil {
		return 0, err
	}

	updated := 0
	for sku, qty := range pickhero.AggregateByProductCode(records) {
		changed, err := s.applyStock(ctx, sku, qty)
		if err != nil {
			return updated, err
		}
		if changed {
			updated++
		}
	}
	return updated, nil
}

// ImportStockForSKU refreshes one variant's stock from the warehouse.
func (s *ProductSyncService) ImportStockForSKU(ctx context.Context, sku string) error {
	records, err := s.stock.GetByProductCode(ctx, sku)
	if err != nil {
		return err
	}
	_, err = s.applyStock(ctx, sku, pickhero.SumQuantities(records))
	return err
}

func (s *ProductSyncService) applyStock(ctx context.Context, sku string, qty int) (bool, error) {
	variant, err := s.variants.FindBySKU(ctx, sku)
	if err != nil {
		return false, err
	}
	if variant == nil {
		s.logger.Debug("no local variant for warehouse product code", zap.String("sku", sku))
		return false, nil
	}
	if variant.Stock == qty {
		return false, nil
	}

	if err := s.variants.UpdateStock(ctx, variant.ID, qty); err != nil {
		return false, err
	}
	s.logger.Info("variant stock updated",
		zap.String("sku", sku),
		zap.Int("stock", qty),
	)
	return true, nil
}
