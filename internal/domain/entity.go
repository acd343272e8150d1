package domain

import (
	"fmt"
	"math"
	"time"
)

// EntityKind tags the variant held by a world object
type EntityKind string

const (
	EntityPlant      EntityKind = "plant"
	EntityBuilding   EntityKind = "building"
	EntityResident   EntityKind = "resident"
	EntityDecoration EntityKind = "decoration"
)

// Position is a point in area coordinates
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// DistanceTo returns the Euclidean distance between two positions
func (p Position) DistanceTo(o Position) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}

// Entity is the common identity and position contract shared by everything placed in the world.
// Consumers resolve the concrete variant with a type switch.
type Entity interface {
	EntityID() string
	Kind() EntityKind
	Pos() Position
	SetPos(Position)
}

// Plant is a seed growing toward its variety
type Plant struct {
	ID            string    `json:"id" validate:"required"`
	SeedKind      string    `json:"seedKind"`
	Variety       string    `json:"variety" validate:"required"`
	Position      Position  `json:"position"`
	PlantedAt     time.Time `json:"plantedAt"`
	LastWatered   time.Time `json:"lastWatered"`
	Stage         int       `json:"stage" validate:"gte=0,lte=3"`
	StageProgress float64   `json:"stageProgress" validate:"gte=0,lt=100"`
}

func (p *Plant) EntityID() string    { return p.ID }
func (p *Plant) Kind() EntityKind    { return EntityPlant }
func (p *Plant) Pos() Position       { return p.Position }
func (p *Plant) SetPos(pos Position) { p.Position = pos }
func (p *Plant) IsComplete() bool    { return p.Stage >= StageComplete }

// Building is a placed structure. Buildings may also be grown from seeds, in which
// case they are plants until complete.
type Building struct {
	ID       string     `json:"id" validate:"required"`
	Type     string     `json:"type" validate:"required"`
	Position Position   `json:"position"`
	Built    bool       `json:"built"`
	BuiltAt  *time.Time `json:"builtAt,omitempty"`
}

func (b *Building) EntityID() string    { return b.ID }
func (b *Building) Kind() EntityKind    { return EntityBuilding }
func (b *Building) Pos() Position       { return b.Position }
func (b *Building) SetPos(pos Position) { b.Position = pos }

// Decoration is a purely cosmetic object
type Decoration struct {
	ID       string   `json:"id" validate:"required"`
	Type     string   `json:"type" validate:"required"`
	Color    string   `json:"color,omitempty"`
	Position Position `json:"position"`
}

func (d *Decoration) EntityID() string    { return d.ID }
func (d *Decoration) Kind() EntityKind    { return EntityDecoration }
func (d *Decoration) Pos() Position       { return d.Position }
func (d *Decoration) SetPos(pos Position) { d.Position = pos }

// WorldObject is the persisted form of a placed entity: a kind tag plus exactly one payload.
type WorldObject struct {
	Kind       EntityKind  `json:"kind" validate:"oneof=plant building decoration"`
	Area       string      `json:"area" validate:"required"`
	Plant      *Plant      `json:"plant,omitempty" validate:"required_if=Kind plant,omitempty"`
	Building   *Building   `json:"building,omitempty" validate:"required_if=Kind building,omitempty"`
	Decoration *Decoration `json:"decoration,omitempty" validate:"required_if=Kind decoration,omitempty"`
}

// NewPlantObject wraps a plant for storage in an area
func NewPlantObject(area string, p *Plant) WorldObject {
	return WorldObject{Kind: EntityPlant, Area: area, Plant: p}
}

// NewBuildingObject wraps a building for storage in an area
func NewBuildingObject(area string, b *Building) WorldObject {
	return WorldObject{Kind: EntityBuilding, Area: area, Building: b}
}

// NewDecorationObject wraps a decoration for storage in an area
func NewDecorationObject(area string, d *Decoration) WorldObject {
	return WorldObject{Kind: EntityDecoration, Area: area, Decoration: d}
}

// Entity resolves the tagged payload
func (o WorldObject) Entity() (Entity, error) {
	switch o.Kind {
	case EntityPlant:
		if o.Plant != nil {
			return o.Plant, nil
		}
	case EntityBuilding:
		if o.Building != nil {
			return o.Building, nil
		}
	case EntityDecoration:
		if o.Decoration != nil {
			return o.Decoration, nil
		}
	}
	return nil, fmt.Errorf("%w: world object kind %q without payload", ErrMalformedDocument, o.Kind)
}

// ID returns the payload's identity, or "" when the object is malformed
func (o WorldObject) ID() string {
	e, err := o.Entity()
	if err != nil {
		return ""
	}
	return e.EntityID()
}
