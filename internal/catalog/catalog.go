package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osse101/MagicGarden_Go/internal/clock"
	"github.com/osse101/MagicGarden_Go/internal/domain"
	"github.com/osse101/MagicGarden_Go/internal/validation"
)

//go:embed default_catalog.yaml
var defaultCatalogYAML []byte

var schemaValidator = validation.NewSchemaValidator()

// Seed maps a seed kind to the varieties it may grow into
type Seed struct {
	ID       string   `yaml:"id" validate:"required"`
	Rarity   int      `yaml:"rarity" validate:"gte=1,lte=5"`
	Outcomes []string `yaml:"outcomes" validate:"required,min=1"`
}

// Variety is what a seed turns into, with its growth timings
type Variety struct {
	ID             string    `yaml:"id" validate:"required"`
	Type           string    `yaml:"type" validate:"required"`
	Seed           string    `yaml:"seed"`
	Rarity         int       `yaml:"rarity"`
	StageHours     []float64 `yaml:"stage_hours" validate:"len=3,dive,gt=0"`
	WaterHours     float64   `yaml:"water_hours" validate:"gte=0"`
	SpawnsResident string    `yaml:"spawns_resident,omitempty"`
}

// StageDuration returns the time a stage needs to complete. Terminal and unknown stages need none.
func (v Variety) StageDuration(stage int) time.Duration {
	if stage < 0 || stage >= len(v.StageHours) {
		return 0
	}
	return clock.HoursToDuration(v.StageHours[stage])
}

// WaterInterval returns how long a watering lasts; zero means never thirsty
func (v Variety) WaterInterval() time.Duration {
	return clock.HoursToDuration(v.WaterHours)
}

// TotalGrowth is the sum of all stage durations
func (v Variety) TotalGrowth() time.Duration {
	var total time.Duration
	for stage := range v.StageHours {
		total += v.StageDuration(stage)
	}
	return total
}

// ResidentType describes a kind of resident
type ResidentType struct {
	ID         string          `yaml:"id" validate:"required"`
	Category   string          `yaml:"category"`
	Area       string          `yaml:"area"`
	Rarity     int             `yaml:"rarity"`
	LikedGifts []string        `yaml:"liked_gifts"`
	Schedule   domain.Schedule `yaml:"schedule"`
}

// Ingredient is one requirement of a discovery recipe
type Ingredient struct {
	Tag         string  `yaml:"tag" validate:"required"`
	Count       int     `yaml:"count" validate:"gte=1"`
	Distance    float64 `yaml:"distance" validate:"gte=0"`
	SameVariety bool    `yaml:"same_variety"`
}

// Recipe is a proximity combination that yields a discovery
type Recipe struct {
	ID          string       `yaml:"id" validate:"required"`
	Ingredients []Ingredient `yaml:"ingredients" validate:"required,min=1,dive"`
}

type file struct {
	Seeds          []Seed                            `yaml:"seeds" validate:"required,dive"`
	Varieties      []Variety                         `yaml:"varieties" validate:"required,dive"`
	Residents      []ResidentType                    `yaml:"residents" validate:"dive"`
	QuestTemplates map[string][]domain.QuestTemplate `yaml:"quest_templates"`
	Recipes        []Recipe                          `yaml:"recipes" validate:"dive"`
}

// Catalog is the read-only content the simulation consumes
type Catalog struct {
	seeds     map[string]Seed
	varieties map[string]Variety
	residents map[string]ResidentType
	templates map[string][]domain.QuestTemplate
	recipes   []Recipe
}

// Default returns the catalog shipped with the binary
func Default() *Catalog {
	c, err := Parse(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog file from disk
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates catalog YAML. The document is checked against the
// catalog schema first so misspelled keys are rejected instead of ignored.
func Parse(data []byte) (*Catalog, error) {
	if err := schemaValidator.ValidateYAML(data, validation.SchemaCatalog); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := validator.New().Struct(f); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	c := &Catalog{
		seeds:     make(map[string]Seed, len(f.Seeds)),
		varieties: make(map[string]Variety, len(f.Varieties)),
		residents: make(map[string]ResidentType, len(f.Residents)),
		templates: f.QuestTemplates,
		recipes:   f.Recipes,
	}
	for _, v := range f.Varieties {
		c.varieties[v.ID] = v
	}
	for _, s := range f.Seeds {
		for _, outcome := range s.Outcomes {
			if _, ok := c.varieties[outcome]; !ok {
				return nil, fmt.Errorf("%w: seed %s references unknown variety %s", domain.ErrInvalidInput, s.ID, outcome)
			}
		}
		c.seeds[s.ID] = s
	}
	for _, r := range f.Residents {
		c.residents[r.ID] = r
	}
	for _, v := range f.Varieties {
		if v.SpawnsResident == "" || v.SpawnsResident == SpawnRandom {
			continue
		}
		if _, ok := c.residents[v.SpawnsResident]; !ok {
			return nil, fmt.Errorf("%w: variety %s spawns unknown resident %s", domain.ErrInvalidInput, v.ID, v.SpawnsResident)
		}
	}
	if c.templates == nil {
		c.templates = map[string][]domain.QuestTemplate{}
	}
	return c, nil
}

// Variety returns a variety by id. Unknown ids get the default timings.
func (c *Catalog) Variety(id string) Variety {
	if v, ok := c.varieties[id]; ok {
		return v
	}
	return Variety{
		ID:         id,
		StageHours: []float64{domain.DefaultStageHours0, domain.DefaultStageHours1, domain.DefaultStageHours2},
		WaterHours: domain.DefaultWaterIntervalHours,
	}
}

// LookupVariety returns a variety and whether the catalog defines it
func (c *Catalog) LookupVariety(id string) (Variety, bool) {
	v, ok := c.varieties[id]
	return v, ok
}

// Outcomes lists the varieties a seed kind may grow into
func (c *Catalog) Outcomes(seedKind string) []string {
	return c.seeds[seedKind].Outcomes
}

// HasSeed reports whether a seed kind exists
func (c *Catalog) HasSeed(seedKind string) bool {
	_, ok := c.seeds[seedKind]
	return ok
}

// ResidentType returns a resident definition
func (c *Catalog) ResidentType(id string) (ResidentType, bool) {
	r, ok := c.residents[id]
	return r, ok
}

// ResidentIDs lists every resident type in id order
func (c *Catalog) ResidentIDs() []string {
	ids := make([]string, 0, len(c.residents))
	for id := range c.residents {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// IsLikedGift reports whether a resident type favors an item
func (c *Catalog) IsLikedGift(residentType, item string) bool {
	r, ok := c.residents[residentType]
	return ok && slices.Contains(r.LikedGifts, item)
}

// QuestTemplates returns the templates for a resident type, falling back to the default list
func (c *Catalog) QuestTemplates(residentType string) []domain.QuestTemplate {
	if templates := c.templates[residentType]; len(templates) > 0 {
		return templates
	}
	return c.templates[DefaultTemplateKey]
}

// Recipes returns every discovery recipe
func (c *Catalog) Recipes() []Recipe {
	return c.recipes
}

// MatchesTag reports whether an item or variety id satisfies a catalog tag:
// the id itself or its variety type.
func (c *Catalog) MatchesTag(id, tag string) bool {
	if id == tag {
		return true
	}
	v, ok := c.varieties[id]
	return ok && v.Type == tag
}
