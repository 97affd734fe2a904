package bootstrap

import (
	"fmt"

	"github.com/planny/planny-backend/config"
	"github.com/planny/planny-backend/internal/planning/catalog"
	"github.com/planny/planny-backend/internal/planning/timeline"
)

// NewPlanner builds the project-type catalog and the distributor from config.
func NewPlanner(cfg *config.PlannerConfig) (*catalog.Catalog, *timeline.Distributor, error) {
	mode, err := timeline.ParseMode(cfg.Mode)
	if err != nil {
		return nil, nil, err
	}
	span, err := timeline.ParseSpan(cfg.Span)
	if err != nil {
		return nil, nil, err
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load catalog: %w", err)
	}

	dist := timeline.New(timeline.Options{Mode: mode, Span: span, SprintDays: cfg.SprintDays})
	return cat, dist, nil
}
