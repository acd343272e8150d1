package world

import (
	"context"
	"fmt"
	"slices"

	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

// Known reports whether an area name exists
func Known(area string) bool {
	return slices.Contains(domain.AllAreas, area)
}

// InBounds reports whether a position lies inside an area
func InBounds(pos domain.Position) bool {
	return pos.X >= 0 && pos.X <= AreaWidth && pos.Y >= 0 && pos.Y <= AreaHeight
}

// CheckPlacement validates that something may be placed at pos in an area of doc
func CheckPlacement(doc *domain.SaveDocument, area string, pos domain.Position) error {
	a, ok := doc.World.Areas[area]
	if !ok || !Known(area) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownArea, area)
	}
	if !a.Unlocked {
		return fmt.Errorf("%w: %s", domain.ErrAreaLocked, area)
	}
	if !InBounds(pos) {
		return fmt.Errorf("%w: (%.0f, %.0f) in %s", domain.ErrPositionOutOfBound, pos.X, pos.Y, area)
	}
	return nil
}

// Unlock opens an area and reports whether it was locked before
func Unlock(ctx context.Context, doc *domain.SaveDocument, area string) (bool, error) {
	a, ok := doc.World.Areas[area]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrUnknownArea, area)
	}
	if a.Unlocked {
		return false, nil
	}
	a.Unlocked = true
	logger.FromContext(ctx).Info(LogMsgAreaUnlocked, "area", area)
	return true, nil
}

// Visit marks an unlocked area as visited and reports whether this was the first visit
func Visit(ctx context.Context, doc *domain.SaveDocument, area string) (bool, error) {
	a, ok := doc.World.Areas[area]
	if !ok {
		return false, fmt.Errorf("%w: %s", domain.ErrUnknownArea, area)
	}
	if !a.Unlocked {
		return false, fmt.Errorf("%w: %s", domain.ErrAreaLocked, area)
	}
	if a.Visited {
		return false, nil
	}
	a.Visited = true
	logger.FromContext(ctx).Info(LogMsgAreaVisited, "area", area)
	return true, nil
}
