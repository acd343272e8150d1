package domain

import (
	"slices"
	"time"
)

// SaveDocument is the single persisted root aggregate of a game
type SaveDocument struct {
	Version    int         `json:"version" validate:"gte=0"`
	SavedAt    *time.Time  `json:"savedAt,omitempty"`
	LastAccess *time.Time  `json:"lastAccess,omitempty"`
	Player     Player      `json:"player"`
	Inventory  Inventory   `json:"inventory"`
	World      World       `json:"world"`
	Residents  []*Resident `json:"residents" validate:"dive,required"`
	Daily      DailyRecord `json:"daily"`
	Collection Collection  `json:"collection"`
	Quests     QuestLog    `json:"quests"`
	Settings   Settings    `json:"settings"`
}

// Player is the profile section
type Player struct {
	Name       string     `json:"name"`
	Level      int        `json:"level" validate:"gte=1"`
	TotalSeeds int        `json:"totalSeeds" validate:"gte=0"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
}

// Inventory holds per-kind seed counts and harvested/collected items
type Inventory struct {
	Seeds map[string]int `json:"seeds" validate:"dive,gte=0"`
	Items map[string]int `json:"items" validate:"dive,gte=0"`
}

// World holds area flags and every placed object
type World struct {
	Areas   map[string]*Area `json:"areas" validate:"required,dive,required"`
	Objects []WorldObject    `json:"objects" validate:"dive"`
}

// Area is the persisted state of one area
type Area struct {
	Unlocked bool     `json:"unlocked"`
	Visited  bool     `json:"visited"`
	Items    []string `json:"items"`
}

// DailyRecord tracks login streaks and per-day flags
type DailyRecord struct {
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	Streak       int        `json:"streak" validate:"gte=0"`
	BonusClaimed bool       `json:"bonusClaimed"`
	LastClaimed  *time.Time `json:"lastClaimed,omitempty"`
	TodayWatered bool       `json:"todayWatered"`
	TodayVisitor string     `json:"todayVisitor,omitempty"`
	VisitorDate  string     `json:"visitorDate,omitempty"`
}

// Collection records everything the player has seen at least once
type Collection struct {
	Plants      []string `json:"plants"`
	Residents   []string `json:"residents"`
	Buildings   []string `json:"buildings"`
	Discoveries []string `json:"discoveries"`
}

// QuestLog splits quests by state
type QuestLog struct {
	Active    []Quest `json:"active" validate:"dive"`
	Completed []Quest `json:"completed" validate:"dive"`
}

// Settings are player preferences
type Settings struct {
	SoundEnabled   bool `json:"soundEnabled"`
	HapticsEnabled bool `json:"hapticsEnabled"`
}

// NewSaveDocument builds the document a brand new game starts from
func NewSaveDocument(now time.Time) *SaveDocument {
	areas := make(map[string]*Area, len(AllAreas))
	for _, name := range AllAreas {
		areas[name] = &Area{Unlocked: name == AreaGarden, Items: []string{}}
	}

	seeds := make(map[string]int, len(AllSeedKinds))
	for _, kind := range AllSeedKinds {
		seeds[kind] = 0
	}
	seeds[SeedGreen] = 5
	seeds[SeedBrown] = 3

	created := now
	lastLogin := now
	return &SaveDocument{
		Version: SaveVersion,
		Player: Player{
			Level:      1,
			TotalSeeds: 8,
			CreatedAt:  &created,
		},
		Inventory: Inventory{Seeds: seeds, Items: map[string]int{}},
		World:     World{Areas: areas, Objects: []WorldObject{}},
		Residents: []*Resident{},
		Daily:     DailyRecord{LastLogin: &lastLogin},
		Collection: Collection{
			Plants:      []string{},
			Residents:   []string{},
			Buildings:   []string{},
			Discoveries: []string{},
		},
		Quests:   QuestLog{Active: []Quest{}, Completed: []Quest{}},
		Settings: Settings{SoundEnabled: true, HapticsEnabled: true},
	}
}

// Normalize replaces nil collections with empty ones and adds any area the document
// does not know yet, so decoded documents can be used without nil checks.
func (d *SaveDocument) Normalize() {
	if d.Player.Level < 1 {
		d.Player.Level = 1
	}
	if d.Inventory.Seeds == nil {
		d.Inventory.Seeds = map[string]int{}
	}
	if d.Inventory.Items == nil {
		d.Inventory.Items = map[string]int{}
	}
	if d.World.Areas == nil {
		d.World.Areas = map[string]*Area{}
	}
	for _, name := range AllAreas {
		area, ok := d.World.Areas[name]
		if !ok || area == nil {
			area = &Area{Unlocked: name == AreaGarden}
			d.World.Areas[name] = area
		}
		if area.Items == nil {
			area.Items = []string{}
		}
	}
	if d.World.Objects == nil {
		d.World.Objects = []WorldObject{}
	}
	if d.Residents == nil {
		d.Residents = []*Resident{}
	}
	if d.Collection.Plants == nil {
		d.Collection.Plants = []string{}
	}
	if d.Collection.Residents == nil {
		d.Collection.Residents = []string{}
	}
	if d.Collection.Buildings == nil {
		d.Collection.Buildings = []string{}
	}
	if d.Collection.Discoveries == nil {
		d.Collection.Discoveries = []string{}
	}
	if d.Quests.Active == nil {
		d.Quests.Active = []Quest{}
	}
	if d.Quests.Completed == nil {
		d.Quests.Completed = []Quest{}
	}
}

// Resident returns the resident with the given id
func (d *SaveDocument) Resident(id string) (*Resident, bool) {
	for _, r := range d.Residents {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}

// Plant returns the plant with the given id
func (d *SaveDocument) Plant(id string) (*Plant, bool) {
	for _, obj := range d.World.Objects {
		if obj.Kind == EntityPlant && obj.Plant != nil && obj.Plant.ID == id {
			return obj.Plant, true
		}
	}
	return nil, false
}

// Plants returns every plant in the world, in placement order
func (d *SaveDocument) Plants() []*Plant {
	var plants []*Plant
	for _, obj := range d.World.Objects {
		if obj.Kind == EntityPlant && obj.Plant != nil {
			plants = append(plants, obj.Plant)
		}
	}
	return plants
}

// Buildings returns every placed building
func (d *SaveDocument) Buildings() []*Building {
	var buildings []*Building
	for _, obj := range d.World.Objects {
		if obj.Kind == EntityBuilding && obj.Building != nil {
			buildings = append(buildings, obj.Building)
		}
	}
	return buildings
}

// ActiveQuestIndex returns the index of an active quest, or -1
func (d *SaveDocument) ActiveQuestIndex(id string) int {
	return slices.IndexFunc(d.Quests.Active, func(q Quest) bool { return q.ID == id })
}

// ActiveQuestFor returns the active quest owned by a resident
func (d *SaveDocument) ActiveQuestFor(residentID string) (*Quest, bool) {
	for i := range d.Quests.Active {
		if d.Quests.Active[i].ResidentID == residentID {
			return &d.Quests.Active[i], true
		}
	}
	return nil, false
}

// AddSeeds credits n seeds of a kind
func (inv *Inventory) AddSeeds(kind string, n int) {
	if inv.Seeds == nil {
		inv.Seeds = map[string]int{}
	}
	inv.Seeds[kind] += n
}

// TakeSeed removes one seed of a kind
func (inv *Inventory) TakeSeed(kind string) error {
	if inv.Seeds[kind] <= 0 {
		return ErrInsufficientSeeds
	}
	inv.Seeds[kind]--
	return nil
}

// AddItem credits n of an item
func (inv *Inventory) AddItem(name string, n int) {
	if inv.Items == nil {
		inv.Items = map[string]int{}
	}
	inv.Items[name] += n
}

// TakeItem removes one of an item and reports whether there was one to take
func (inv *Inventory) TakeItem(name string) bool {
	if inv.Items[name] <= 0 {
		return false
	}
	inv.Items[name]--
	if inv.Items[name] == 0 {
		delete(inv.Items, name)
	}
	return true
}

// ItemCount returns how many of an item the player holds. QuestTargetAny sums every item.
func (inv *Inventory) ItemCount(name string) int {
	if name != QuestTargetAny {
		return inv.Items[name]
	}
	total := 0
	for _, n := range inv.Items {
		total += n
	}
	return total
}

// HasDiscovery reports whether a discovery was already recorded
func (c *Collection) HasDiscovery(id string) bool {
	return slices.Contains(c.Discoveries, id)
}

// AddDiscovery records a discovery once, reporting whether it was new
func (c *Collection) AddDiscovery(id string) bool {
	if c.HasDiscovery(id) {
		return false
	}
	c.Discoveries = append(c.Discoveries, id)
	return true
}

// AddPlant records a variety in the collection once
func (c *Collection) AddPlant(variety string) bool {
	if slices.Contains(c.Plants, variety) {
		return false
	}
	c.Plants = append(c.Plants, variety)
	return true
}

// AddResident records a resident type in the collection once
func (c *Collection) AddResident(residentType string) bool {
	if slices.Contains(c.Residents, residentType) {
		return false
	}
	c.Residents = append(c.Residents, residentType)
	return true
}

// ResidentHomedAt returns the resident living in the given home
func (d *SaveDocument) ResidentHomedAt(homeID string) (*Resident, bool) {
	for _, r := range d.Residents {
		if r.HomeID == homeID {
			return r, true
		}
	}
	return nil, false
}
