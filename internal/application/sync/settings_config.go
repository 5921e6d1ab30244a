package sync

import (
	syncdomain "github.com/pickhero/commerce-sync/internal/domain/sync"
	"github.com/pickhero/commerce-sync/internal/infrastructure/config"
)

// SettingsFromConfig converts the warehouse section of the loaded
// configuration into runtime settings.
func SettingsFromConfig(cfg config.PickHeroConfig) Settings {
	mappings := make(syncdomain.StatusMappingTable, 0, len(cfg.StatusMappings))
	for _, m := range cfg.StatusMappings {
		mappings = append(mappings, syncdomain.StatusMapping{PickHero: m.PickHero, ChangeTo: m.ChangeTo})
	}

	fields := make([]FieldMapping, 0, len(cfg.FieldMappings))
	for _, m := range cfg.FieldMappings {
		fields = append(fields, FieldMapping{PickHeroField: m.PickHeroField, LocalField: m.LocalField})
	}

	return Settings{
		PushOrders:            cfg.PushOrders,
		OrderStatusToPush:     cfg.OrderStatusToPush,
		OrderStatusToProcess:  cfg.OrderStatusToProcess,
		PushPrices:            cfg.PushPrices,
		CreateMissingProducts: cfg.CreateMissingProducts,
		SyncOrderStatus:       cfg.SyncOrderStatus,
		StatusMappings:        mappings,
		FieldMappings:         fields,
	}
}
