package world

import (
	"context"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

func plantAt(id string, x, y float64) *domain.Plant {
	return &domain.Plant{ID: id, Variety: "flower_red", Position: domain.Position{X: x, Y: y}}
}

func ids(es []domain.Entity) []string {
	out := make([]string, len(es))
	for i, e := range es {
		out[i] = e.EntityID()
	}
	return out
}

func TestIndex_AddGetRemove(t *testing.T) {
	ix := NewIndex()
	p := plantAt("p1", 10, 10)

	require.NoError(t, ix.Add(domain.AreaGarden, p))
	assert.ErrorIs(t, ix.Add(domain.AreaGarden, p), domain.ErrInvalidInput, "ids are unique")
	assert.ErrorIs(t, ix.Add("moon", plantAt("p2", 0, 0)), domain.ErrUnknownArea)

	e, area, ok := ix.Get("p1")
	require.True(t, ok)
	assert.Equal(t, domain.AreaGarden, area)
	assert.Same(t, p, e)

	assert.True(t, ix.Remove("p1"))
	assert.False(t, ix.Remove("p1"))
	_, _, ok = ix.Get("p1")
	assert.False(t, ok)
	assert.Empty(t, ix.QueryRadius(domain.AreaGarden, domain.Position{X: 10, Y: 10}, 5))
	assert.Zero(t, ix.Len())
}

func TestIndex_QueryRadius_EuclideanAcrossCells(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("center", 100, 100)))
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("edge", 160, 180)))   // distance 100
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("corner", 171, 171))) // same box, distance > 100
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("near", 40, 100)))
	require.NoError(t, ix.Add(domain.AreaForest, plantAt("elsewhere", 100, 100)))

	got := ix.QueryRadius(domain.AreaGarden, domain.Position{X: 100, Y: 100}, 100)

	assert.Equal(t, []string{"center", "near", "edge"}, ids(got), "nearest first, boundary inclusive")
}

func TestIndex_QueryRadius_MatchesBruteForce(t *testing.T) {
	ix := NewIndex()
	r := rand.New(rand.NewPCG(7, 11))
	var all []*domain.Plant
	for i := range 300 {
		p := plantAt(fmt.Sprintf("p%d", i), r.Float64()*AreaWidth, r.Float64()*AreaHeight)
		all = append(all, p)
		require.NoError(t, ix.Add(domain.AreaGarden, p))
	}

	for range 50 {
		center := domain.Position{X: r.Float64() * AreaWidth, Y: r.Float64() * AreaHeight}
		radius := r.Float64() * 200

		var want []string
		for _, p := range all {
			if p.Position.DistanceTo(center) <= radius {
				want = append(want, p.ID)
			}
		}
		assert.ElementsMatch(t, want, ids(ix.QueryRadius(domain.AreaGarden, center, radius)))
	}
}

func TestIndex_AtAndNearby(t *testing.T) {
	ix := NewIndex()
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("a", 200, 200)))
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("b", 220, 200)))
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("c", 290, 200)))
	require.NoError(t, ix.Add(domain.AreaGarden, plantAt("d", 320, 200)))

	hit, ok := ix.At(domain.AreaGarden, domain.Position{X: 215, Y: 205})
	require.True(t, ok)
	assert.Equal(t, "b", hit.EntityID())

	_, ok = ix.At(domain.AreaGarden, domain.Position{X: 500, Y: 500})
	assert.False(t, ok)

	assert.Equal(t, []string{"b", "c"}, ids(ix.Nearby("a", 0)), "default radius, self excluded")
	assert.Equal(t, []string{"b"}, ids(ix.Nearby("a", 50)))
	assert.Nil(t, ix.Nearby("ghost", 0))
}

func TestIndex_MoveRebuckets(t *testing.T) {
	ix := NewIndex()
	p := plantAt("p1", 10, 10)
	require.NoError(t, ix.Add(domain.AreaGarden, p))

	require.NoError(t, ix.Move("p1", domain.Position{X: 20, Y: 20}))
	require.NoError(t, ix.Move("p1", domain.Position{X: 700, Y: 600}))

	assert.Equal(t, domain.Position{X: 700, Y: 600}, p.Position)
	assert.Empty(t, ix.QueryRadius(domain.AreaGarden, domain.Position{X: 10, Y: 10}, 40))
	assert.Len(t, ix.QueryRadius(domain.AreaGarden, domain.Position{X: 700, Y: 600}, 1), 1)
	assert.ErrorIs(t, ix.Move("ghost", domain.Position{}), domain.ErrNotFound)
}

func TestFromDocument(t *testing.T) {
	doc := domain.NewSaveDocument(testNow)
	doc.World.Objects = append(doc.World.Objects,
		domain.NewPlantObject(domain.AreaGarden, plantAt("p1", 10, 10)),
		domain.NewBuildingObject(domain.AreaGarden, &domain.Building{ID: "b1", Type: "windmill", Position: domain.Position{X: 50, Y: 50}}),
		domain.NewDecorationObject(domain.AreaLake, &domain.Decoration{ID: "d1", Type: "lamp"}),
		domain.WorldObject{Kind: domain.EntityPlant, Area: domain.AreaGarden}, // payload missing
	)
	doc.Residents = append(doc.Residents,
		&domain.Resident{ID: "r1", Type: "frog", Area: domain.AreaLake},
		&domain.Resident{ID: "r2", Type: "cat_florist", Area: "town"},
	)

	ix := FromDocument(context.Background(), doc)

	assert.Equal(t, 5, ix.Len())
	assert.Equal(t, []string{"p1", "b1", "r2"}, ids(ix.InArea(domain.AreaGarden)))
	assert.Equal(t, []string{"b1"}, ids(ix.OfKind(domain.AreaGarden, domain.EntityBuilding)))
	assert.Equal(t, []string{"d1", "r1"}, ids(ix.InArea(domain.AreaLake)))
}
