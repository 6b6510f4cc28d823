package game

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/underdark/internal/combat"
	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/gamedata"
	"github.com/samdwyer/underdark/internal/world"
)

// Snapshot is the persisted form of a session. The encoding is a
// collaborator's concern; this is the schema. Visibility and lighting caches
// are deliberately absent and always recomputed on restore.
type Snapshot struct {
	SessionID    string            `json:"session_id"`
	DungeonLevel int               `json:"dungeon_level"`
	MapWidth     int               `json:"map_width"`
	MapHeight    int               `json:"map_height"`
	Tiles        [][]world.Tile    `json:"tiles"`
	Rooms        []world.Room      `json:"rooms"`
	Entities     []SnapshotEntity  `json:"entities"`
	Inventory    []SnapshotEntity  `json:"inventory"`
	Log          []SnapshotMessage `json:"log"`
}

// SnapshotEntity mirrors entity.Entity with renderer-portable colors.
type SnapshotEntity struct {
	X             int    `json:"x"`
	Y             int    `json:"y"`
	Name          string `json:"name"`
	Glyph         string `json:"glyph"`
	Color         string `json:"color"`
	Blocks        bool   `json:"blocks,omitempty"`
	Alive         bool   `json:"alive,omitempty"`
	AlwaysVisible bool   `json:"always_visible,omitempty"`

	Fighter   *SnapshotFighter   `json:"fighter,omitempty"`
	AI        *SnapshotAI        `json:"ai,omitempty"`
	Item      string             `json:"item,omitempty"`
	Equipment *SnapshotEquipment `json:"equipment,omitempty"`
	Emitter   *SnapshotEmitter   `json:"emitter,omitempty"`
}

// SnapshotFighter mirrors entity.Fighter.
type SnapshotFighter struct {
	BaseMaxHP   int    `json:"base_max_hp"`
	HP          int    `json:"hp"`
	BaseDefense int    `json:"base_defense"`
	BasePower   int    `json:"base_power"`
	XP          int    `json:"xp"`
	Level       int    `json:"level,omitempty"`
	OnDeath     string `json:"on_death"`
}

// SnapshotAI mirrors entity.AI; Previous nests at most one level.
type SnapshotAI struct {
	Kind      string      `json:"kind"`
	TurnsLeft int         `json:"turns_left,omitempty"`
	Previous  *SnapshotAI `json:"previous,omitempty"`
}

// SnapshotEquipment mirrors entity.Equipment.
type SnapshotEquipment struct {
	Slot         string `json:"slot"`
	Equipped     bool   `json:"equipped,omitempty"`
	MaxHPBonus   int    `json:"max_hp_bonus,omitempty"`
	PowerBonus   int    `json:"power_bonus,omitempty"`
	DefenseBonus int    `json:"defense_bonus,omitempty"`
}

// SnapshotEmitter mirrors entity.Emitter.
type SnapshotEmitter struct {
	Radius int `json:"radius"`
}

// SnapshotMessage is one log entry with its color flattened to hex.
type SnapshotMessage struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Snapshot captures the full session state for persistence.
func (s *Session) Snapshot() *Snapshot {
	snap := &Snapshot{
		SessionID:    s.ID.String(),
		DungeonLevel: s.DungeonLevel,
		MapWidth:     s.Level.Width,
		MapHeight:    s.Level.Height,
		Tiles:        s.Level.Tiles,
		Rooms:        s.Level.Rooms,
	}
	for _, e := range s.Store.All() {
		snap.Entities = append(snap.Entities, snapshotEntity(e))
	}
	for _, item := range s.Inventory.Items() {
		snap.Inventory = append(snap.Inventory, snapshotEntity(item))
	}
	for _, msg := range s.Log.Messages() {
		snap.Log = append(snap.Log, SnapshotMessage{Text: msg.Text, Color: colorToHex(msg.Color)})
	}
	return snap
}

// RestoreSession rebuilds a session from a snapshot. The lit flags and the
// player's field of view are not part of the schema; they are recomputed
// before the session is returned.
func RestoreSession(cfg Config, rng *rand.Rand, snap *Snapshot) (*Session, error) {
	if len(snap.Entities) == 0 {
		return nil, errors.New("snapshot holds no entities")
	}
	player := restoreEntity(snap.Entities[0])
	if player.Fighter == nil {
		return nil, errors.New("snapshot player has no fighter component")
	}

	monsters, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading monster data: %w", err)
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading item data: %w", err)
	}

	id, err := uuid.Parse(snap.SessionID)
	if err != nil {
		id = uuid.New()
	}

	s := &Session{
		ID:           id,
		cfg:          cfg,
		rng:          rng,
		Store:        entity.NewStore(player),
		Inventory:    entity.NewInventory(),
		Log:          NewMessageLog(),
		DungeonLevel: snap.DungeonLevel,
		monsters:     monsters,
		items:        items,
		fovRadius:    cfg.FOVRadiusLit,
	}
	for _, se := range snap.Entities[1:] {
		s.Store.Add(restoreEntity(se))
	}
	for _, se := range snap.Inventory {
		s.Inventory.Add(restoreEntity(se))
	}
	for _, msg := range snap.Log {
		s.Log.Log(msg.Text, hexToColor(msg.Color))
	}

	s.Level = &world.Level{
		Width:  snap.MapWidth,
		Height: snap.MapHeight,
		Tiles:  snap.Tiles,
		Rooms:  snap.Rooms,
	}

	s.resolver = combat.NewResolver(
		combat.Config{LevelUpBase: cfg.LevelUpBase, LevelUpFactor: cfg.LevelUpFactor},
		s.Log, player, s.Inventory,
	)

	s.needsRecompute = true
	s.RecomputeVisibility()
	return s, nil
}

func colorToHex(c tcell.Color) string {
	h := c.Hex()
	if h < 0 {
		h = 0xFFFFFF
	}
	return fmt.Sprintf("#%06X", h)
}

// hexToColor tolerates hand-edited save files: unparseable colors fall back
// to white instead of failing the whole restore.
func hexToColor(hex string) tcell.Color {
	color, err := gamedata.ParseHexColor(hex)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

func snapshotEntity(e *entity.Entity) SnapshotEntity {
	se := SnapshotEntity{
		X:             e.X,
		Y:             e.Y,
		Name:          e.Name,
		Glyph:         string(e.Glyph),
		Color:         colorToHex(e.Color),
		Blocks:        e.Blocks,
		Alive:         e.Alive,
		AlwaysVisible: e.AlwaysVisible,
		Item:          string(e.Item),
	}
	if e.Fighter != nil {
		se.Fighter = &SnapshotFighter{
			BaseMaxHP:   e.Fighter.BaseMaxHP,
			HP:          e.Fighter.HP,
			BaseDefense: e.Fighter.BaseDefense,
			BasePower:   e.Fighter.BasePower,
			XP:          e.Fighter.XP,
			Level:       e.Fighter.Level,
			OnDeath:     string(e.Fighter.OnDeath),
		}
	}
	se.AI = snapshotAI(e.AI)
	if e.Equipment != nil {
		se.Equipment = &SnapshotEquipment{
			Slot:         string(e.Equipment.Slot),
			Equipped:     e.Equipment.Equipped,
			MaxHPBonus:   e.Equipment.MaxHPBonus,
			PowerBonus:   e.Equipment.PowerBonus,
			DefenseBonus: e.Equipment.DefenseBonus,
		}
	}
	if e.Emitter != nil {
		se.Emitter = &SnapshotEmitter{Radius: e.Emitter.Radius}
	}
	return se
}

func snapshotAI(ai *entity.AI) *SnapshotAI {
	if ai == nil {
		return nil
	}
	return &SnapshotAI{
		Kind:      string(ai.Kind),
		TurnsLeft: ai.TurnsLeft,
		Previous:  snapshotAI(ai.Previous),
	}
}

func restoreEntity(se SnapshotEntity) *entity.Entity {
	glyph := '?'
	if len(se.Glyph) > 0 {
		glyph = []rune(se.Glyph)[0]
	}
	e := entity.New(se.X, se.Y, glyph, se.Name, hexToColor(se.Color), se.Blocks)
	e.Alive = se.Alive
	e.AlwaysVisible = se.AlwaysVisible
	e.Item = gamedata.ItemKind(se.Item)

	if se.Fighter != nil {
		e.Fighter = &entity.Fighter{
			BaseMaxHP:   se.Fighter.BaseMaxHP,
			HP:          se.Fighter.HP,
			BaseDefense: se.Fighter.BaseDefense,
			BasePower:   se.Fighter.BasePower,
			XP:          se.Fighter.XP,
			Level:       se.Fighter.Level,
			OnDeath:     entity.DeathKind(se.Fighter.OnDeath),
		}
	}
	e.AI = restoreAI(se.AI)
	if se.Equipment != nil {
		e.Equipment = &entity.Equipment{
			Slot:         gamedata.EquipSlot(se.Equipment.Slot),
			Equipped:     se.Equipment.Equipped,
			MaxHPBonus:   se.Equipment.MaxHPBonus,
			PowerBonus:   se.Equipment.PowerBonus,
			DefenseBonus: se.Equipment.DefenseBonus,
		}
	}
	if se.Emitter != nil {
		e.Emitter = &entity.Emitter{Radius: se.Emitter.Radius}
	}
	return e
}

func restoreAI(sa *SnapshotAI) *entity.AI {
	if sa == nil {
		return nil
	}
	return &entity.AI{
		Kind:      entity.AIKind(sa.Kind),
		TurnsLeft: sa.TurnsLeft,
		Previous:  restoreAI(sa.Previous),
	}
}
