// Package entity provides the component-based entity arena: every actor,
// item, stairway and light source in the dungeon is an Entity with optional
// capability components.
package entity

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/gamedata"
)

// PlayerIndex is the arena index the player always occupies.
const PlayerIndex = 0

// DeathKind selects the death transition to run when a fighter's HP reaches zero.
type DeathKind string

const (
	DeathPlayer  DeathKind = "player"
	DeathMonster DeathKind = "monster"
)

// Fighter holds combat-related state. Base stats never include equipment
// bonuses; effective stats are computed against the owning inventory.
type Fighter struct {
	BaseMaxHP   int
	HP          int
	BaseDefense int
	BasePower   int
	XP          int
	Level       int // character level; meaningful for the player only
	OnDeath     DeathKind
}

// Equipment marks an entity as wearable. Equipping only toggles Equipped;
// ownership stays with the inventory.
type Equipment struct {
	Slot         gamedata.EquipSlot
	Equipped     bool
	MaxHPBonus   int
	PowerBonus   int
	DefenseBonus int
}

// Emitter marks an entity as a light source with its own field of view.
type Emitter struct {
	Radius int
}

// Entity is a uniquely-indexed record for anything on the map: the player,
// monsters, items, stairs, torches.
type Entity struct {
	X, Y  int
	Name  string
	Glyph rune
	Color tcell.Color

	Blocks        bool
	Alive         bool
	AlwaysVisible bool

	Fighter   *Fighter
	AI        *AI
	Item      gamedata.ItemKind // empty when the entity is not usable
	Equipment *Equipment
	Emitter   *Emitter
}

// New creates a bare entity with a display identity.
func New(x, y int, glyph rune, name string, color tcell.Color, blocks bool) *Entity {
	return &Entity{
		X:      x,
		Y:      y,
		Glyph:  glyph,
		Name:   name,
		Color:  color,
		Blocks: blocks,
	}
}

// NewPlayer creates the player entity. It always has a Fighter and never an AI.
func NewPlayer(maxHP, defense, power int) *Entity {
	player := New(0, 0, '@', "player", tcell.ColorWhite, true)
	player.Alive = true
	player.Fighter = &Fighter{
		BaseMaxHP:   maxHP,
		HP:          maxHP,
		BaseDefense: defense,
		BasePower:   power,
		Level:       1,
		OnDeath:     DeathPlayer,
	}
	return player
}

// NewMonster creates a monster entity from its data definition.
func NewMonster(def *gamedata.MonsterDef, x, y int) *Entity {
	monster := New(x, y, def.GlyphRune(), def.Name, def.TCellColor(), true)
	monster.Alive = true
	monster.Fighter = &Fighter{
		BaseMaxHP:   def.HP,
		HP:          def.HP,
		BaseDefense: def.Defense,
		BasePower:   def.Power,
		XP:          def.XP,
		OnDeath:     DeathMonster,
	}
	monster.AI = &AI{Kind: AIBasic}
	return monster
}

// NewItem creates an item entity from its data definition.
func NewItem(def *gamedata.ItemDef, x, y int) *Entity {
	item := New(x, y, def.GlyphRune(), def.Name, def.TCellColor(), false)
	item.Item = def.Kind
	item.AlwaysVisible = true
	if def.Kind == gamedata.ItemEquipment {
		item.Equipment = &Equipment{
			Slot:         def.Slot,
			MaxHPBonus:   def.MaxHPBonus,
			PowerBonus:   def.PowerBonus,
			DefenseBonus: def.DefenseBonus,
		}
	}
	return item
}

// NewStairs creates a stairway entity, drawable once its tile is explored.
func NewStairs(x, y int) *Entity {
	stairs := New(x, y, '<', "stairs", tcell.ColorWhite, false)
	stairs.AlwaysVisible = true
	return stairs
}

// NewTorch creates a torch entity that lights its surroundings.
func NewTorch(x, y, radius int) *Entity {
	torch := New(x, y, 'i', "torch", tcell.NewRGBColor(0x7F, 0x3F, 0x00), false)
	torch.Emitter = &Emitter{Radius: radius}
	torch.AlwaysVisible = true
	return torch
}

// Pos returns the entity's current position.
func (e *Entity) Pos() (int, int) {
	return e.X, e.Y
}

// SetPos moves the entity to an absolute position.
func (e *Entity) SetPos(x, y int) {
	e.X = x
	e.Y = y
}

// DistanceTo returns the euclidean distance to another entity.
func (e *Entity) DistanceTo(other *Entity) float64 {
	return e.Distance(other.X, other.Y)
}

// Distance returns the euclidean distance to a tile coordinate.
func (e *Entity) Distance(x, y int) float64 {
	dx := float64(x - e.X)
	dy := float64(y - e.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// MaxHP returns the effective maximum HP including equipped bonuses.
// inv may be nil for entities that own no inventory.
func (e *Entity) MaxHP(inv *Inventory) int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.BaseMaxHP + inv.maxHPBonus()
}

// Power returns the effective attack power including equipped bonuses.
func (e *Entity) Power(inv *Inventory) int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.BasePower + inv.powerBonus()
}

// Defense returns the effective defense including equipped bonuses.
func (e *Entity) Defense(inv *Inventory) int {
	if e.Fighter == nil {
		return 0
	}
	return e.Fighter.BaseDefense + inv.defenseBonus()
}

// Heal restores HP up to the effective maximum and returns the amount healed.
func (e *Entity) Heal(amount int, inv *Inventory) int {
	if e.Fighter == nil || amount <= 0 {
		return 0
	}
	max := e.MaxHP(inv)
	if e.Fighter.HP+amount > max {
		amount = max - e.Fighter.HP
	}
	e.Fighter.HP += amount
	return amount
}
