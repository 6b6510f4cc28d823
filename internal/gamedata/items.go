package gamedata

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// ItemKind identifies the effect an item has when used.
type ItemKind string

const (
	ItemHeal      ItemKind = "heal"
	ItemLightning ItemKind = "lightning"
	ItemConfuse   ItemKind = "confuse"
	ItemFireball  ItemKind = "fireball"
	ItemEquipment ItemKind = "equipment"
)

// EquipSlot names the body slot an equippable item occupies.
type EquipSlot string

const (
	SlotNone      EquipSlot = ""
	SlotRightHand EquipSlot = "right hand"
	SlotLeftHand  EquipSlot = "left hand"
)

// ItemDef defines an item type loaded from JSON.
type ItemDef struct {
	ID          string       `json:"id"`    // Unique identifier (e.g., "healing-potion")
	Name        string       `json:"name"`  // Display name (e.g., "healing potion")
	Glyph       string       `json:"glyph"` // Single character for rendering
	Color       string       `json:"color"` // Hex color code
	Kind        ItemKind     `json:"kind"`  // Effect when used
	SpawnWeight []Transition `json:"spawnWeight"`

	// Equipment-only fields.
	Slot         EquipSlot `json:"slot,omitempty"`
	MaxHPBonus   int       `json:"maxHpBonus,omitempty"`
	PowerBonus   int       `json:"powerBonus,omitempty"`
	DefenseBonus int       `json:"defenseBonus,omitempty"`
}

// GlyphRune returns the glyph as a rune for rendering.
func (it *ItemDef) GlyphRune() rune {
	if len(it.Glyph) == 0 {
		return '?'
	}
	return rune(it.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (it *ItemDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(it.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// ItemsFile represents the structure of items.json.
type ItemsFile struct {
	Items      []ItemDef    `json:"items"`
	MaxPerRoom []Transition `json:"maxPerRoom"`
}

// ItemRegistry holds loaded item definitions and spawn tables.
type ItemRegistry struct {
	items      []ItemDef
	maxPerRoom []Transition
}

// LoadItemRegistry loads and creates a registry from the embedded items.json.
func LoadItemRegistry() (*ItemRegistry, error) {
	file, err := Load[ItemsFile]("items.json")
	if err != nil {
		return nil, err
	}
	if len(file.Items) == 0 {
		return nil, errors.New("no items loaded from items.json")
	}
	return &ItemRegistry{
		items:      file.Items,
		maxPerRoom: file.MaxPerRoom,
	}, nil
}

// MustLoadItemRegistry loads a registry, panicking on error.
func MustLoadItemRegistry() *ItemRegistry {
	registry, err := LoadItemRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// MaxPerRoom returns the maximum items per room at the given dungeon level.
func (r *ItemRegistry) MaxPerRoom(level int) int {
	return FromDungeonLevel(r.maxPerRoom, level)
}

// PickRandom selects an item definition using depth-scaled weighted
// probability. Returns nil if no item has a positive weight at this level.
func (r *ItemRegistry) PickRandom(rng *rand.Rand, level int) *ItemDef {
	weights := make([]int, len(r.items))
	for i := range r.items {
		weights[i] = FromDungeonLevel(r.items[i].SpawnWeight, level)
	}
	idx := ChooseWeighted(rng, weights)
	if idx < 0 {
		return nil
	}
	return &r.items[idx]
}

// GetByID returns the item definition with the given ID, or nil if not found.
func (r *ItemRegistry) GetByID(id string) *ItemDef {
	for i := range r.items {
		if r.items[i].ID == id {
			return &r.items[i]
		}
	}
	return nil
}

// All returns all item definitions.
func (r *ItemRegistry) All() []ItemDef {
	return r.items
}
