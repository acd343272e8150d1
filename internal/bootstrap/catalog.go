package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/config"
)

// LoadCatalog returns the catalog at CATALOG_PATH, or the embedded one when no path is set
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogPath == "" {
		slog.Info(LogMsgCatalogEmbedded)
		return catalog.Default(), nil
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
	}
	slog.Info(LogMsgCatalogLoaded, "path", cfg.CatalogPath, "recipes", len(cat.Recipes()), "residents", len(cat.ResidentIDs()))
	return cat, nil
}
