package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSaveDocument_Defaults(t *testing.T) {
	now := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	doc := NewSaveDocument(now)

	assert.Equal(t, SaveVersion, doc.Version)
	assert.Equal(t, 5, doc.Inventory.Seeds[SeedGreen])
	assert.Equal(t, 3, doc.Inventory.Seeds[SeedBrown])
	assert.Equal(t, 0, doc.Inventory.Seeds[SeedGold])
	assert.True(t, doc.World.Areas[AreaGarden].Unlocked)
	assert.False(t, doc.World.Areas[AreaSecret].Unlocked)
	require.NotNil(t, doc.Daily.LastLogin)
	assert.Equal(t, now, *doc.Daily.LastLogin)
	assert.True(t, doc.Settings.SoundEnabled)
}

func TestWorldObject_Entity(t *testing.T) {
	tests := []struct {
		name     string
		obj      WorldObject
		wantKind EntityKind
		wantErr  bool
	}{
		{"plant", NewPlantObject(AreaGarden, &Plant{ID: "p1", Variety: "grass"}), EntityPlant, false},
		{"building", NewBuildingObject(AreaGarden, &Building{ID: "b1", Type: "house_small"}), EntityBuilding, false},
		{"decoration", NewDecorationObject(AreaGarden, &Decoration{ID: "d1", Type: "lantern"}), EntityDecoration, false},
		{"missing payload", WorldObject{Kind: EntityPlant, Area: AreaGarden}, "", true},
		{"unknown kind", WorldObject{Kind: "comet", Area: AreaGarden}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, err := tt.obj.Entity()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDocument)
				assert.Empty(t, tt.obj.ID())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, e.Kind())
		})
	}
}

func TestWorldObject_JSONKeepsVariant(t *testing.T) {
	obj := NewPlantObject(AreaForest, &Plant{ID: "p1", Variety: "tree_oak", Stage: 2, StageProgress: 40})

	data, err := json.Marshal(obj)
	require.NoError(t, err)

	var decoded WorldObject
	require.NoError(t, json.Unmarshal(data, &decoded))

	e, err := decoded.Entity()
	require.NoError(t, err)
	plant, ok := e.(*Plant)
	require.True(t, ok)
	assert.Equal(t, 2, plant.Stage)
	assert.Nil(t, decoded.Building)
}

func TestInventory_ItemCount(t *testing.T) {
	inv := Inventory{}
	inv.AddItem("vegetable_carrot", 2)
	inv.AddItem("honey", 1)

	assert.Equal(t, 2, inv.ItemCount("vegetable_carrot"))
	assert.Equal(t, 0, inv.ItemCount("fish"))
	assert.Equal(t, 3, inv.ItemCount(QuestTargetAny))
}

func TestInventory_TakeSeed(t *testing.T) {
	inv := Inventory{Seeds: map[string]int{SeedGreen: 1}}

	require.NoError(t, inv.TakeSeed(SeedGreen))
	assert.ErrorIs(t, inv.TakeSeed(SeedGreen), ErrInsufficientSeeds)
	assert.ErrorIs(t, inv.TakeSeed(SeedGold), ErrInsufficientSeeds)
}

func TestCollection_AddDiscoveryOnce(t *testing.T) {
	c := Collection{}
	assert.True(t, c.AddDiscovery("forest"))
	assert.False(t, c.AddDiscovery("forest"))
	assert.Len(t, c.Discoveries, 1)
}

func TestSaveDocument_ActiveQuestFor(t *testing.T) {
	doc := NewSaveDocument(time.Now())
	doc.Quests.Active = append(doc.Quests.Active, Quest{ID: "q1", ResidentID: "r1"})

	q, ok := doc.ActiveQuestFor("r1")
	require.True(t, ok)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, 0, doc.ActiveQuestIndex("q1"))
	assert.Equal(t, -1, doc.ActiveQuestIndex("missing"))

	_, ok = doc.ActiveQuestFor("r2")
	assert.False(t, ok)
}

func TestInventory_TakeItem(t *testing.T) {
	inv := Inventory{}
	inv.AddItem("honey", 1)

	assert.True(t, inv.TakeItem("honey"))
	assert.False(t, inv.TakeItem("honey"))
	assert.NotContains(t, inv.Items, "honey")
}

func TestSaveDocument_ResidentHomedAt(t *testing.T) {
	doc := NewSaveDocument(time.Now())
	doc.Residents = append(doc.Residents, &Resident{ID: "r1", Type: "rabbit", HomeID: "p1"})

	r, ok := doc.ResidentHomedAt("p1")
	require.True(t, ok)
	assert.Equal(t, "r1", r.ID)
	_, ok = doc.ResidentHomedAt("p2")
	assert.False(t, ok)

	assert.True(t, doc.Collection.AddResident("rabbit"))
	assert.False(t, doc.Collection.AddResident("rabbit"))
}
