// Package game owns the running game session: world state, turn scheduling,
// items, spells and visibility.
package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/samdwyer/underdark/internal/combat"
	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/fov"
	"github.com/samdwyer/underdark/internal/gamedata"
	"github.com/samdwyer/underdark/internal/world"
)

// Interaction is the synchronous player-interaction collaborator. Each call
// blocks until the player answers or cancels; the core never times out.
type Interaction interface {
	// PickTile asks for a target tile within maxRange of the player
	// (0 means unlimited). ok is false on cancellation.
	PickTile(maxRange float64) (x, y int, ok bool)
	// PickMonster asks for a target monster in FOV within maxRange.
	// ok is false on cancellation or when nothing valid was picked.
	PickMonster(maxRange float64) (id int, ok bool)
	// ChooseLevelUp asks for a level-up stat increase. The core re-prompts
	// on ChoiceInvalid, since skipping a level-up is not permitted.
	ChooseLevelUp() combat.LevelUpChoice
}

// Session aggregates everything one running game owns: the level map, the
// entity arena, the player's inventory, the message log and the dungeon depth.
type Session struct {
	ID  uuid.UUID
	cfg Config
	rng *rand.Rand

	Level        *world.Level
	Store        *entity.Store
	Inventory    *entity.Inventory
	Log          *MessageLog
	DungeonLevel int

	resolver *combat.Resolver
	monsters *gamedata.MonsterRegistry
	items    *gamedata.ItemRegistry

	playerFov      fov.VisibleSet
	fovRadius      int
	needsRecompute bool
}

// NewSession starts a new game: fresh player, first dungeon floor, empty
// inventory.
func NewSession(ctx context.Context, cfg Config, rng *rand.Rand) (*Session, error) {
	monsters, err := gamedata.LoadMonsterRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading monster data: %w", err)
	}
	items, err := gamedata.LoadItemRegistry()
	if err != nil {
		return nil, fmt.Errorf("loading item data: %w", err)
	}

	player := entity.NewPlayer(cfg.PlayerHP, cfg.PlayerDefense, cfg.PlayerPower)
	s := &Session{
		ID:           uuid.New(),
		cfg:          cfg,
		rng:          rng,
		Store:        entity.NewStore(player),
		Inventory:    entity.NewInventory(),
		Log:          NewMessageLog(),
		DungeonLevel: 1,
		monsters:     monsters,
		items:        items,
		fovRadius:    cfg.FOVRadiusLit,
	}
	s.resolver = combat.NewResolver(
		combat.Config{LevelUpBase: cfg.LevelUpBase, LevelUpFactor: cfg.LevelUpFactor},
		s.Log, player, s.Inventory,
	)

	s.Level = world.Generate(ctx, cfg.genParams(), rng, s.Store, monsters, items, s.DungeonLevel)
	s.needsRecompute = true
	s.RecomputeVisibility()

	s.Log.Log("Welcome stranger! Prepare to perish in the Tombs of the Ancient Kings.", tcell.ColorRed)
	return s, nil
}

// Player returns the player entity.
func (s *Session) Player() *entity.Entity {
	return s.Store.Player()
}

// Config returns the session's immutable tuning.
func (s *Session) Config() Config {
	return s.cfg
}

// PlayerStats is a read-only snapshot of the player's sheet for rendering.
type PlayerStats struct {
	HP, MaxHP      int
	Power, Defense int
	XP, Level      int
	NextLevelXP    int
	DungeonLevel   int
}

// Stats returns the player's current sheet.
func (s *Session) Stats() PlayerStats {
	player := s.Player()
	stats := PlayerStats{DungeonLevel: s.DungeonLevel}
	if player.Fighter != nil {
		stats.HP = player.Fighter.HP
		stats.MaxHP = s.resolver.MaxHP(player)
		stats.Power = s.resolver.Power(player)
		stats.Defense = s.resolver.Defense(player)
		stats.XP = player.Fighter.XP
		stats.Level = player.Fighter.Level
		stats.NextLevelXP = s.resolver.LevelUpThreshold(player.Fighter.Level)
	}
	return stats
}

// IsVisible reports whether an entity is eligible for display: in the
// player's FOV, on a currently lit tile, or always-visible on an explored
// tile.
func (s *Session) IsVisible(e *entity.Entity) bool {
	if s.playerFov.Contains(e.X, e.Y) {
		return true
	}
	if s.Level.Tile(e.X, e.Y).Lit {
		return true
	}
	return e.AlwaysVisible && s.Level.Tile(e.X, e.Y).Explored
}

// InFOV reports whether a tile is in the player's current field of view.
func (s *Session) InFOV(x, y int) bool {
	return s.playerFov.Contains(x, y)
}

// NextLevel advances to the next dungeon floor: the map and its population
// regenerate while the player and inventory persist; the player rests and
// recovers half their effective maximum HP on the way down.
func (s *Session) NextLevel(ctx context.Context) {
	s.Log.Log("You take a moment to rest, and recover your strength.", tcell.ColorLightGreen)
	player := s.Player()
	player.Heal(s.resolver.MaxHP(player)/2, s.Inventory)

	s.Log.Log("After a rare moment of peace, you descend deeper into the heart of the dungeon...", tcell.ColorRed)
	s.DungeonLevel++
	s.Level = world.Generate(ctx, s.cfg.genParams(), s.rng, s.Store, s.monsters, s.items, s.DungeonLevel)
	s.needsRecompute = true
	s.RecomputeVisibility()
}
