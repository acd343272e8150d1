package discovery

import (
	"context"

	"github.com/osse101/MagicGarden_Go/internal/catalog"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/event"
	"github.com/osse101/MagicGarden_Go/internal/logger"
	"github.com/osse101/MagicGarden_Go/internal/world"
)

// Match is a recipe satisfied somewhere in an area
type Match struct {
	RecipeID  string
	Area      string
	EntityIDs []string
}

// Detector evaluates the catalog's proximity recipes against the world
type Detector struct {
	catalog *catalog.Catalog
	bus     event.Bus
}

// NewDetector creates a detector
func NewDetector(cat *catalog.Catalog, bus event.Bus) *Detector {
	return &Detector{catalog: cat, bus: bus}
}

// Check returns every recipe currently satisfied in an area, in catalog order.
// Only completed plants, built buildings and decorations take part.
func (d *Detector) Check(ix *world.Index, area string) []Match {
	objects := ix.InArea(area)
	var out []Match
	for _, r := range d.catalog.Recipes() {
		if ids, ok := d.checkRecipe(ix, area, objects, r); ok {
			out = append(out, Match{RecipeID: r.ID, Area: area, EntityIDs: ids})
		}
	}
	return out
}

// Record adds a discovery to the collection and reports whether it was new
func (d *Detector) Record(ctx context.Context, doc *domain.SaveDocument, id, area string) bool {
	if !doc.Collection.AddDiscovery(id) {
		return false
	}
	logger.FromContext(ctx).Info(LogMsgDiscoveryMade, "discovery", id, "area", area)
	event.Emit(ctx, d.bus, event.New(event.DiscoveryMade, event.DiscoveryMadePayloadV1{
		DiscoveryID: id,
		Area:        area,
	}))
	return true
}

// Matches reports whether an entity counts as a recipe tag
func (d *Detector) Matches(e domain.Entity, tag string) bool {
	switch v := e.(type) {
	case *domain.Plant:
		return v.IsComplete() && d.catalog.MatchesTag(v.Variety, tag)
	case *domain.Building:
		return v.Built && (tag == string(domain.EntityBuilding) || d.catalog.MatchesTag(v.Type, tag))
	case *domain.Decoration:
		return v.Type == tag
	}
	return false
}

// checkRecipe tries every matching entity as the anchor of the first ingredient.
// Later ingredients must lie within their distance of the anchor, or anywhere in the
// area when they have none. An entity fills at most one slot.
func (d *Detector) checkRecipe(ix *world.Index, area string, objects []domain.Entity, r catalog.Recipe) ([]string, bool) {
	first := r.Ingredients[0]
	for _, anchor := range objects {
		if !d.Matches(anchor, first.Tag) {
			continue
		}
		if ids, ok := d.fill(ix, area, objects, anchor, r); ok {
			return ids, true
		}
	}
	return nil, false
}

func (d *Detector) fill(ix *world.Index, area string, objects []domain.Entity, anchor domain.Entity, r catalog.Recipe) ([]string, bool) {
	used := map[string]bool{anchor.EntityID(): true}
	ids := []string{anchor.EntityID()}
	variety := varietyOf(anchor)

	for i, ing := range r.Ingredients {
		need := ing.Count
		if i == 0 {
			need--
		}
		if need <= 0 {
			continue
		}

		candidates := objects
		if ing.Distance > 0 {
			candidates = ix.QueryRadius(area, anchor.Pos(), ing.Distance)
		}
		for _, e := range candidates {
			if need == 0 {
				break
			}
			if used[e.EntityID()] || !d.Matches(e, ing.Tag) {
				continue
			}
			if ing.SameVariety && varietyOf(e) != variety {
				continue
			}
			used[e.EntityID()] = true
			ids = append(ids, e.EntityID())
			need--
		}
		if need > 0 {
			return nil, false
		}
	}
	return ids, true
}

func varietyOf(e domain.Entity) string {
	switch v := e.(type) {
	case *domain.Plant:
		return v.Variety
	case *domain.Building:
		return v.Type
	case *domain.Decoration:
		return v.Type
	}
	return ""
}
