package world

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/logger"
)

type cellKey struct {
	col, row int
}

func keyOf(p domain.Position) cellKey {
	return cellKey{col: int(math.Floor(p.X / CellSize)), row: int(math.Floor(p.Y / CellSize))}
}

type areaIndex struct {
	cells   map[cellKey][]domain.Entity
	objects []domain.Entity
}

type entry struct {
	entity domain.Entity
	area   string
}

// Index is a grid-bucketed spatial index of every placed entity, one grid per area.
// Radius queries only visit the buckets overlapping the query circle.
type Index struct {
	mu    sync.RWMutex
	areas map[string]*areaIndex
	byID  map[string]entry
}

// NewIndex creates an empty index over every known area
func NewIndex() *Index {
	ix := &Index{
		areas: make(map[string]*areaIndex, len(domain.AllAreas)),
		byID:  make(map[string]entry),
	}
	for _, name := range domain.AllAreas {
		ix.areas[name] = &areaIndex{cells: make(map[cellKey][]domain.Entity)}
	}
	return ix
}

// FromDocument indexes the plants, buildings and decorations of a document plus its
// residents. Residents without an area of their own live in the garden. Entries that
// cannot be indexed are logged and skipped.
func FromDocument(ctx context.Context, doc *domain.SaveDocument) *Index {
	log := logger.FromContext(ctx)
	ix := NewIndex()
	for _, obj := range doc.World.Objects {
		e, err := obj.Entity()
		if err == nil {
			err = ix.Add(obj.Area, e)
		}
		if err != nil {
			log.Debug(LogMsgSkippedObject, "kind", obj.Kind, "area", obj.Area, "error", err)
		}
	}
	for _, r := range doc.Residents {
		area := r.Area
		if _, ok := ix.areas[area]; !ok {
			area = domain.AreaGarden
		}
		if err := ix.Add(area, r); err != nil {
			log.Debug(LogMsgSkippedObject, "kind", domain.EntityResident, "id", r.ID, "error", err)
		}
	}
	return ix
}

// Add places an entity in an area
func (ix *Index) Add(area string, e domain.Entity) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	a, ok := ix.areas[area]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownArea, area)
	}
	id := e.EntityID()
	if id == "" {
		return fmt.Errorf("%w: entity without id", domain.ErrInvalidInput)
	}
	if _, dup := ix.byID[id]; dup {
		return fmt.Errorf("%w: duplicate entity id %s", domain.ErrInvalidInput, id)
	}

	k := keyOf(e.Pos())
	a.cells[k] = append(a.cells[k], e)
	a.objects = append(a.objects, e)
	ix.byID[id] = entry{entity: e, area: area}
	return nil
}

// Remove drops an entity and reports whether it was indexed
func (ix *Index) Remove(id string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	en, ok := ix.byID[id]
	if !ok {
		return false
	}
	a := ix.areas[en.area]
	a.unbucket(en.entity)
	a.objects = slices.DeleteFunc(a.objects, func(e domain.Entity) bool { return e.EntityID() == id })
	delete(ix.byID, id)
	return true
}

// Move repositions an entity, rebucketing it when it changes cell
func (ix *Index) Move(id string, pos domain.Position) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	en, ok := ix.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
	}
	a := ix.areas[en.area]
	if keyOf(en.entity.Pos()) == keyOf(pos) {
		en.entity.SetPos(pos)
		return nil
	}
	a.unbucket(en.entity)
	en.entity.SetPos(pos)
	k := keyOf(pos)
	a.cells[k] = append(a.cells[k], en.entity)
	return nil
}

func (a *areaIndex) unbucket(e domain.Entity) {
	k := keyOf(e.Pos())
	id := e.EntityID()
	a.cells[k] = slices.DeleteFunc(a.cells[k], func(o domain.Entity) bool { return o.EntityID() == id })
	if len(a.cells[k]) == 0 {
		delete(a.cells, k)
	}
}

// Get returns an entity and the area it lives in
func (ix *Index) Get(id string) (domain.Entity, string, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	en, ok := ix.byID[id]
	return en.entity, en.area, ok
}

// Len returns the number of indexed entities
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.byID)
}

// QueryRadius returns the entities of an area within radius of pos, nearest first
func (ix *Index) QueryRadius(area string, pos domain.Position, radius float64) []domain.Entity {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.query(area, pos, radius)
}

func (ix *Index) query(area string, pos domain.Position, radius float64) []domain.Entity {
	a, ok := ix.areas[area]
	if !ok || radius < 0 {
		return nil
	}
	lo := keyOf(domain.Position{X: pos.X - radius, Y: pos.Y - radius})
	hi := keyOf(domain.Position{X: pos.X + radius, Y: pos.Y + radius})

	var out []domain.Entity
	for col := lo.col; col <= hi.col; col++ {
		for row := lo.row; row <= hi.row; row++ {
			for _, e := range a.cells[cellKey{col, row}] {
				if e.Pos().DistanceTo(pos) <= radius {
					out = append(out, e)
				}
			}
		}
	}
	slices.SortStableFunc(out, func(x, y domain.Entity) int {
		dx, dy := x.Pos().DistanceTo(pos), y.Pos().DistanceTo(pos)
		switch {
		case dx < dy:
			return -1
		case dx > dy:
			return 1
		}
		return 0
	})
	return out
}

// At returns the entity nearest to pos within the tap radius
func (ix *Index) At(area string, pos domain.Position) (domain.Entity, bool) {
	hits := ix.QueryRadius(area, pos, HitRadius)
	if len(hits) == 0 {
		return nil, false
	}
	return hits[0], true
}

// Nearby returns the entities around another one in the same area, excluding itself.
// A radius of zero or less uses NearbyRadius.
func (ix *Index) Nearby(id string, radius float64) []domain.Entity {
	if radius <= 0 {
		radius = NearbyRadius
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	en, ok := ix.byID[id]
	if !ok {
		return nil
	}
	return slices.DeleteFunc(ix.query(en.area, en.entity.Pos(), radius), func(e domain.Entity) bool {
		return e.EntityID() == id
	})
}

// InArea returns an area's entities in placement order
func (ix *Index) InArea(area string) []domain.Entity {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	a, ok := ix.areas[area]
	if !ok {
		return nil
	}
	return slices.Clone(a.objects)
}

// OfKind returns an area's entities of one kind in placement order
func (ix *Index) OfKind(area string, kind domain.EntityKind) []domain.Entity {
	var out []domain.Entity
	for _, e := range ix.InArea(area) {
		if e.Kind() == kind {
			out = append(out, e)
		}
	}
	return out
}
