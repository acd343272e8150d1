package savestore

import (
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/MagicGarden_Go/internal/domain"
)

// Raw is a save document decoded without a schema, the shape migration steps work on
type Raw = map[string]any

// step upgrades a raw document from one schema version to the next. After apply, any
// field still missing is filled from defaults, the shape of the version the step
// produces.
type step struct {
	from     int
	name     string
	apply    func(doc Raw, now time.Time)
	defaults func(now time.Time) Raw
}

// steps are applied in order to every document whose version is at or below from
var steps = []step{
	{from: 0, name: "fill-defaults", apply: migrateV0ToV1, defaults: v1Defaults},
	{from: 1, name: "timestamps-and-tagged-objects", apply: migrateV1ToV2, defaults: v2Defaults},
}

// Migrate brings a raw document up to domain.SaveVersion in place. It returns the
// version the document started at and whether any step ran. Documents already at or
// beyond the current version are left untouched, which makes the chain idempotent.
func Migrate(doc Raw, now time.Time) (from int, migrated bool) {
	from = versionOf(doc)
	if from >= domain.SaveVersion {
		return from, false
	}
	for _, s := range steps {
		if from <= s.from {
			s.apply(doc, now)
			fillMissing(doc, s.defaults(now))
		}
	}
	doc[fieldVersion] = domain.SaveVersion
	return from, true
}

func versionOf(doc Raw) int {
	switch v := doc[fieldVersion].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

// v1Defaults mirrors the first persisted schema, where timestamps were epoch milliseconds
func v1Defaults(now time.Time) Raw {
	ms := float64(now.UnixMilli())
	areas := Raw{}
	for _, name := range domain.AllAreas {
		areas[name] = Raw{"unlocked": name == domain.AreaGarden, "items": []any{}}
	}
	seeds := Raw{}
	for _, kind := range domain.AllSeedKinds {
		seeds[kind] = float64(0)
	}
	seeds[domain.SeedGreen] = float64(5)
	seeds[domain.SeedBrown] = float64(3)

	return Raw{
		"player":    Raw{"name": "", "level": float64(1), "totalSeeds": float64(0), "createdAt": ms},
		"inventory": Raw{"seeds": seeds},
		"world":     Raw{"areas": areas, "objects": []any{}},
		"residents": []any{},
		"daily": Raw{
			"lastLogin":    ms,
			"streak":       float64(0),
			"todayWatered": false,
			"bonusClaimed": false,
		},
		"collection": Raw{
			"plants":      []any{},
			"residents":   []any{},
			"buildings":   []any{},
			"discoveries": []any{},
		},
		"quests":   Raw{"active": []any{}, "completed": []any{}},
		"settings": Raw{"soundEnabled": true, "hapticsEnabled": true},
	}
}

// v2Defaults is the current default document in its persisted shape
func v2Defaults(now time.Time) Raw {
	raw, err := toRaw(domain.NewSaveDocument(now))
	if err != nil {
		return Raw{}
	}
	delete(raw, fieldVersion)
	return raw
}

// migrateV0ToV1 fills every missing section and nested field from the v1 defaults
// without replacing anything the document already holds.
func migrateV0ToV1(doc Raw, now time.Time) {
	fillMissing(doc, v1Defaults(now))
}

// fillMissing copies keys from defaults into dst when dst lacks them (or holds null),
// recursing where both sides are objects.
func fillMissing(dst, defaults Raw) {
	for key, def := range defaults {
		cur, ok := dst[key]
		if !ok || cur == nil {
			dst[key] = deepCopy(def)
			continue
		}
		curMap, curIsMap := cur.(Raw)
		defMap, defIsMap := def.(Raw)
		if curIsMap && defIsMap {
			fillMissing(curMap, defMap)
		}
	}
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case Raw:
		out := make(Raw, len(t))
		for k, val := range t {
			out[k] = deepCopy(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = deepCopy(val)
		}
		return out
	default:
		return v
	}
}

// migrateV1ToV2 converts epoch-millisecond timestamps to RFC 3339, rewrites flat
// world objects into tagged variants and adds the fields introduced in v2.
func migrateV1ToV2(doc Raw, now time.Time) {
	convertTimes(doc, "savedAt", "lastAccess")
	if _, ok := doc["lastAccess"]; !ok {
		if saved, ok := doc["savedAt"].(string); ok {
			doc["lastAccess"] = saved
		}
	}

	if player, ok := doc["player"].(Raw); ok {
		convertTimes(player, "createdAt")
	}

	if inv, ok := doc["inventory"].(Raw); ok {
		setDefault(inv, "items", Raw{})
	}

	if world, ok := doc["world"].(Raw); ok {
		if areas, ok := world["areas"].(Raw); ok {
			for _, a := range areas {
				if area, ok := a.(Raw); ok {
					unlocked, _ := area["unlocked"].(bool)
					setDefault(area, "visited", unlocked)
					setDefault(area, "items", []any{})
				}
			}
		}
		if objects, ok := world["objects"].([]any); ok {
			for i, o := range objects {
				if obj, ok := o.(Raw); ok {
					objects[i] = tagObject(obj)
				}
			}
		}
	}

	if residents, ok := doc["residents"].([]any); ok {
		for _, r := range residents {
			res, ok := r.(Raw)
			if !ok {
				continue
			}
			liftPosition(res)
			convertTimes(res, "arrivedAt", "lastInteraction", "lastVisit")
			setDefault(res, "todayPetCount", float64(0))
			setDefault(res, "todayGiftReceived", false)
			setDefault(res, "visitStreak", float64(0))
		}
	}

	if daily, ok := doc["daily"].(Raw); ok {
		convertTimes(daily, "lastLogin", "lastClaimed")
		migrateVisitor(daily)
	}

	if quests, ok := doc["quests"].(Raw); ok {
		for _, list := range []string{"active", "completed"} {
			items, _ := quests[list].([]any)
			for _, q := range items {
				if quest, ok := q.(Raw); ok {
					convertTimes(quest, "createdAt", "completedAt")
					if list == "completed" {
						setDefault(quest, "completedAt", quest["createdAt"])
					}
				}
			}
		}
	}
}

func setDefault(m Raw, key string, value any) {
	if cur, ok := m[key]; !ok || cur == nil {
		m[key] = value
	}
}

// convertTimes rewrites numeric epoch-millisecond values; strings and nulls are kept
func convertTimes(m Raw, keys ...string) {
	for _, key := range keys {
		if ms, ok := m[key].(float64); ok {
			m[key] = time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano)
		}
	}
}

func liftPosition(m Raw) {
	if _, ok := m["position"]; ok {
		return
	}
	x, _ := m["x"].(float64)
	y, _ := m["y"].(float64)
	m["position"] = Raw{"x": x, "y": y}
}

// tagObject converts a flat v1 world object into a tagged v2 WorldObject
func tagObject(obj Raw) Raw {
	if _, ok := obj["kind"]; ok {
		return obj
	}

	area, _ := obj["area"].(string)
	if area == "" {
		area = domain.AreaGarden
	}
	id, _ := obj["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	liftPosition(obj)

	payload := Raw{"id": id, "type": obj["type"], "position": obj["position"]}
	switch {
	case obj["seedType"] != nil || obj["stage"] != nil:
		convertTimes(obj, "plantedAt", "lastWatered")
		plant := Raw{
			"id":            id,
			"seedKind":      obj["seedType"],
			"variety":       obj["type"],
			"position":      obj["position"],
			"plantedAt":     obj["plantedAt"],
			"lastWatered":   obj["lastWatered"],
			"stage":         obj["stage"],
			"stageProgress": obj["stageProgress"],
		}
		return Raw{"kind": string(domain.EntityPlant), "area": area, "plant": plant}
	case obj["isBuilt"] != nil:
		convertTimes(obj, "builtAt")
		maps.Copy(payload, Raw{"built": obj["isBuilt"], "builtAt": obj["builtAt"]})
		return Raw{"kind": string(domain.EntityBuilding), "area": area, "building": payload}
	default:
		if color, ok := obj["color"].(string); ok {
			payload["color"] = color
		}
		return Raw{"kind": string(domain.EntityDecoration), "area": area, "decoration": payload}
	}
}

// migrateVisitor turns the v1 visitor object and display-date cache into an id and
// a date key. Unreadable dates drop the cache so the visitor is rolled again.
func migrateVisitor(daily Raw) {
	if visitor, ok := daily["todayVisitor"].(Raw); ok {
		id, _ := visitor["id"].(string)
		daily["todayVisitor"] = id
	}
	if daily["todayVisitor"] == nil {
		delete(daily, "todayVisitor")
	}

	date, ok := daily["visitorDate"].(string)
	if !ok {
		delete(daily, "visitorDate")
		return
	}
	if _, err := time.Parse(domain.DateKeyLayout, date); err == nil {
		return
	}
	parsed, err := time.Parse(legacyVisitorDateLayout, date)
	if err != nil {
		delete(daily, "visitorDate")
		delete(daily, "todayVisitor")
		return
	}
	daily["visitorDate"] = parsed.Format(domain.DateKeyLayout)
}

// stepNames lists the steps that would run for a document at version from
func stepNames(from int) []string {
	var names []string
	for _, s := range steps {
		if from <= s.from {
			names = append(names, fmt.Sprintf("v%d->v%d:%s", s.from, s.from+1, s.name))
		}
	}
	return names
}
