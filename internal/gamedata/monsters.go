package gamedata

import (
	"errors"
	"math/rand"

	"github.com/gdamore/tcell/v2"
)

// MonsterDef defines a monster type loaded from JSON.
type MonsterDef struct {
	ID          string       `json:"id"`          // Unique identifier (e.g., "orc")
	Name        string       `json:"name"`        // Display name (e.g., "orc")
	Glyph       string       `json:"glyph"`       // Single character for rendering (e.g., "o")
	Color       string       `json:"color"`       // Hex color code (e.g., "#3F7F3F")
	HP          int          `json:"hp"`          // Base hit points
	Defense     int          `json:"defense"`     // Base defense value
	Power       int          `json:"power"`       // Base attack power
	XP          int          `json:"xp"`          // Experience awarded on death
	SpawnWeight []Transition `json:"spawnWeight"` // Depth-scaled spawn weight
}

// GlyphRune returns the glyph as a rune for rendering.
func (m *MonsterDef) GlyphRune() rune {
	if len(m.Glyph) == 0 {
		return '?'
	}
	return rune(m.Glyph[0])
}

// TCellColor returns the color as a tcell.Color.
func (m *MonsterDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(m.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// MonstersFile represents the structure of monsters.json.
type MonstersFile struct {
	Monsters   []MonsterDef `json:"monsters"`
	MaxPerRoom []Transition `json:"maxPerRoom"`
}

// MonsterRegistry holds loaded monster definitions and spawn tables.
type MonsterRegistry struct {
	monsters   []MonsterDef
	maxPerRoom []Transition
}

// LoadMonsterRegistry loads and creates a registry from the embedded monsters.json.
func LoadMonsterRegistry() (*MonsterRegistry, error) {
	file, err := Load[MonstersFile]("monsters.json")
	if err != nil {
		return nil, err
	}
	if len(file.Monsters) == 0 {
		return nil, errors.New("no monsters loaded from monsters.json")
	}
	return &MonsterRegistry{
		monsters:   file.Monsters,
		maxPerRoom: file.MaxPerRoom,
	}, nil
}

// MustLoadMonsterRegistry loads a registry, panicking on error.
func MustLoadMonsterRegistry() *MonsterRegistry {
	registry, err := LoadMonsterRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// MaxPerRoom returns the maximum monsters per room at the given dungeon level.
func (r *MonsterRegistry) MaxPerRoom(level int) int {
	return FromDungeonLevel(r.maxPerRoom, level)
}

// PickRandom selects a monster definition using depth-scaled weighted
// probability. Returns nil if no monster has a positive weight at this level.
func (r *MonsterRegistry) PickRandom(rng *rand.Rand, level int) *MonsterDef {
	weights := make([]int, len(r.monsters))
	for i := range r.monsters {
		weights[i] = FromDungeonLevel(r.monsters[i].SpawnWeight, level)
	}
	idx := ChooseWeighted(rng, weights)
	if idx < 0 {
		return nil
	}
	return &r.monsters[idx]
}

// GetByID returns the monster definition with the given ID, or nil if not found.
func (r *MonsterRegistry) GetByID(id string) *MonsterDef {
	for i := range r.monsters {
		if r.monsters[i].ID == id {
			return &r.monsters[i]
		}
	}
	return nil
}

// All returns all monster definitions.
func (r *MonsterRegistry) All() []MonsterDef {
	return r.monsters
}
