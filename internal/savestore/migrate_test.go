package savestore

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

var migrateNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func parseRaw(t *testing.T, s string) Raw {
	t.Helper()
	var raw Raw
	require.NoError(t, json.Unmarshal([]byte(s), &raw))
	return raw
}

func TestMigrate_EmptyDocumentGetsEveryDefault(t *testing.T) {
	doc := Raw{}
	from, migrated := Migrate(doc, migrateNow)

	assert.Equal(t, 0, from)
	assert.True(t, migrated)
	assert.Equal(t, domain.SaveVersion, doc["version"])

	seeds := doc["inventory"].(Raw)["seeds"].(Raw)
	assert.Equal(t, float64(5), seeds["green"])
	assert.Equal(t, float64(3), seeds["brown"])
	assert.Equal(t, float64(0), seeds["gold"])

	garden := doc["world"].(Raw)["areas"].(Raw)["garden"].(Raw)
	assert.Equal(t, true, garden["unlocked"])
	assert.Equal(t, true, garden["visited"])

	assert.Equal(t, migrateNow.Format(time.RFC3339Nano), doc["daily"].(Raw)["lastLogin"])
	assert.Equal(t, Raw{}, doc["inventory"].(Raw)["items"])
}

func TestMigrateV0ToV1_NeverClobbersPresentValues(t *testing.T) {
	doc := parseRaw(t, `{
		"player": {"name": "Mika", "level": 7},
		"inventory": {"seeds": {"pink": 4, "green": 0}},
		"world": {"areas": {"forest": {"unlocked": true}}},
		"settings": {"soundEnabled": false}
	}`)

	migrateV0ToV1(doc, migrateNow)

	player := doc["player"].(Raw)
	assert.Equal(t, "Mika", player["name"])
	assert.Equal(t, float64(7), player["level"])

	seeds := doc["inventory"].(Raw)["seeds"].(Raw)
	assert.Equal(t, float64(4), seeds["pink"])
	assert.Equal(t, float64(0), seeds["green"], "present zero must survive")
	assert.Equal(t, float64(3), seeds["brown"])

	areas := doc["world"].(Raw)["areas"].(Raw)
	assert.Equal(t, true, areas["forest"].(Raw)["unlocked"])
	assert.Equal(t, []any{}, areas["forest"].(Raw)["items"])
	assert.Equal(t, true, areas["garden"].(Raw)["unlocked"])

	settings := doc["settings"].(Raw)
	assert.Equal(t, false, settings["soundEnabled"])
	assert.Equal(t, true, settings["hapticsEnabled"])
}

func TestMigrateV1ToV2_ConvertsLegacyShapes(t *testing.T) {
	planted := time.Date(2025, 12, 1, 8, 0, 0, 0, time.UTC)
	ms := planted.UnixMilli()

	doc := parseRaw(t, `{
		"version": 1,
		"savedAt": `+jsonInt(ms)+`,
		"world": {
			"areas": {"garden": {"unlocked": true, "items": []}, "lake": {"unlocked": false, "items": []}},
			"objects": [
				{"id": "p1", "type": "flower_rose", "seedType": "pink", "x": 120, "y": 80,
				 "plantedAt": `+jsonInt(ms)+`, "lastWatered": `+jsonInt(ms)+`, "stage": 2, "stageProgress": 40.5},
				{"id": "b1", "type": "house", "x": 10, "y": 20, "isBuilt": true, "builtAt": `+jsonInt(ms)+`},
				{"id": "d1", "type": "lamp", "x": 5, "y": 5, "color": "gold"}
			]
		},
		"residents": [{"id": "r1", "type": "rabbit", "x": 3, "y": 4, "friendship": 30, "arrivedAt": `+jsonInt(ms)+`, "lastInteraction": null}],
		"daily": {"lastLogin": `+jsonInt(ms)+`, "streak": 2, "todayVisitor": {"id": "wizard", "name": "W"}, "visitorDate": "Mon Dec 01 2025"},
		"quests": {"active": [{"id": "q1", "createdAt": `+jsonInt(ms)+`}], "completed": [{"id": "q0", "createdAt": `+jsonInt(ms)+`}]}
	}`)

	migrateV1ToV2(doc, migrateNow)

	stamp := planted.Format(time.RFC3339Nano)
	assert.Equal(t, stamp, doc["savedAt"])
	assert.Equal(t, stamp, doc["lastAccess"])

	objects := doc["world"].(Raw)["objects"].([]any)
	require.Len(t, objects, 3)

	plant := objects[0].(Raw)
	assert.Equal(t, "plant", plant["kind"])
	assert.Equal(t, "garden", plant["area"])
	payload := plant["plant"].(Raw)
	assert.Equal(t, "flower_rose", payload["variety"])
	assert.Equal(t, "pink", payload["seedKind"])
	assert.Equal(t, stamp, payload["lastWatered"])
	assert.Equal(t, Raw{"x": float64(120), "y": float64(80)}, payload["position"])

	building := objects[1].(Raw)
	assert.Equal(t, "building", building["kind"])
	assert.Equal(t, true, building["building"].(Raw)["built"])
	assert.Equal(t, stamp, building["building"].(Raw)["builtAt"])

	decoration := objects[2].(Raw)
	assert.Equal(t, "decoration", decoration["kind"])
	assert.Equal(t, "gold", decoration["decoration"].(Raw)["color"])

	resident := doc["residents"].([]any)[0].(Raw)
	assert.Equal(t, Raw{"x": float64(3), "y": float64(4)}, resident["position"])
	assert.Equal(t, stamp, resident["arrivedAt"])
	assert.Equal(t, float64(0), resident["todayPetCount"])

	daily := doc["daily"].(Raw)
	assert.Equal(t, "wizard", daily["todayVisitor"])
	assert.Equal(t, "2025-12-01", daily["visitorDate"])

	areas := doc["world"].(Raw)["areas"].(Raw)
	assert.Equal(t, false, areas["lake"].(Raw)["visited"])

	completed := doc["quests"].(Raw)["completed"].([]any)[0].(Raw)
	assert.Equal(t, stamp, completed["completedAt"])
}

func TestMigrate_V1DocumentFillsMissingDefaults(t *testing.T) {
	doc := parseRaw(t, `{"version": 1, "inventory": {"seeds": {"gold": 2}}, "settings": {"soundEnabled": false}}`)

	from, migrated := Migrate(doc, migrateNow)
	require.True(t, migrated)
	assert.Equal(t, 1, from)

	seeds := doc["inventory"].(Raw)["seeds"].(Raw)
	assert.Equal(t, float64(2), seeds["gold"])
	assert.Equal(t, float64(5), seeds["green"])
	assert.Equal(t, float64(3), seeds["brown"])

	settings := doc["settings"].(Raw)
	assert.Equal(t, false, settings["soundEnabled"])
	assert.Equal(t, true, settings["hapticsEnabled"])

	assert.Equal(t, float64(1), doc["player"].(Raw)["level"])
	assert.Equal(t, []any{}, doc["quests"].(Raw)["active"])
	assert.Contains(t, doc["world"].(Raw)["areas"].(Raw), domain.AreaSky)
}

func TestMigrate_Idempotent(t *testing.T) {
	inputs := map[string]string{
		"empty":   `{}`,
		"partial": `{"inventory": {"seeds": {"gold": 1}}, "residents": [{"id": "r", "type": "frog", "x": 1, "y": 2}]}`,
		"v1":      `{"version": 1, "daily": {"lastLogin": 1700000000000, "streak": 3}}`,
		"current": `{"version": 2, "player": {"level": 3}}`,
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			once := parseRaw(t, input)
			Migrate(once, migrateNow)

			twice := deepCopy(once).(Raw)
			_, migrated := Migrate(twice, migrateNow.Add(time.Hour))

			assert.False(t, migrated)
			assert.Equal(t, once, twice)
		})
	}
}

func TestMigrate_FutureVersionUntouched(t *testing.T) {
	doc := Raw{"version": float64(domain.SaveVersion + 1), "custom": "x"}
	from, migrated := Migrate(doc, migrateNow)

	assert.Equal(t, domain.SaveVersion+1, from)
	assert.False(t, migrated)
	assert.Equal(t, Raw{"version": float64(domain.SaveVersion + 1), "custom": "x"}, doc)
}

func TestMigrateVisitor_UnreadableDateDropsCache(t *testing.T) {
	daily := Raw{"todayVisitor": Raw{"id": "fairy_king"}, "visitorDate": "someday"}
	migrateVisitor(daily)

	assert.NotContains(t, daily, "todayVisitor")
	assert.NotContains(t, daily, "visitorDate")
}

func TestStepNames(t *testing.T) {
	assert.Len(t, stepNames(0), 2)
	assert.Len(t, stepNames(1), 1)
	assert.Empty(t, stepNames(domain.SaveVersion))
}

func jsonInt(v int64) string {
	data, _ := json.Marshal(v)
	return string(data)
}
