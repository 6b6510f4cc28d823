package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/telemetry"
	"github.com/samdwyer/underdark/internal/world"
)

// IntentKind classifies a player intent.
type IntentKind int

const (
	IntentMove IntentKind = iota
	IntentWait
	IntentPickUp
	IntentUseItem
	IntentDropItem
	IntentDescend
	IntentCharacterSheet
	IntentExit
)

// Intent is one player action request from the input collaborator.
type Intent struct {
	Kind   IntentKind
	DX, DY int // 8-directional move delta for IntentMove
	Slot   int // inventory slot for IntentUseItem/IntentDropItem
}

// ActionOutcome classifies what a player action cost.
type ActionOutcome int

const (
	// DidntTakeTurn leaves the world untouched by the AI phase.
	DidntTakeTurn ActionOutcome = iota
	// TookTurn advances the world: every AI entity acts.
	TookTurn
	// ExitGame ends the session.
	ExitGame
)

// String returns a human-readable outcome name.
func (o ActionOutcome) String() string {
	switch o {
	case DidntTakeTurn:
		return "didnt_take_turn"
	case TookTurn:
		return "took_turn"
	case ExitGame:
		return "exit"
	default:
		return "unknown"
	}
}

// ApplyIntent resolves one player action and, when it consumed a turn and the
// player survived, runs every AI entity's turn. Visibility is recomputed
// between the player action and the AI phase so monsters act on the fresh
// field of view.
func (s *Session) ApplyIntent(ctx context.Context, intent Intent, io Interaction) ActionOutcome {
	tracer := telemetry.Tracer("game")
	ctx, span := tracer.Start(ctx, "turn.resolve")
	defer span.End()

	outcome := s.resolvePlayerAction(ctx, intent, io)
	span.SetAttributes(
		attribute.Int("turn.intent", int(intent.Kind)),
		attribute.String("turn.outcome", outcome.String()),
	)

	if outcome == ExitGame {
		return outcome
	}

	// Any XP the action earned may level the player up; the choice blocks
	// until the interaction layer supplies a valid answer.
	if s.Player().Alive {
		s.resolver.CheckLevelUp(io.ChooseLevelUp)
	}

	s.RecomputeVisibility()

	if outcome == TookTurn && s.Player().Alive {
		s.runAITurns(ctx)
	}
	return outcome
}

// resolvePlayerAction applies one intent and classifies its turn cost.
func (s *Session) resolvePlayerAction(ctx context.Context, intent Intent, io Interaction) ActionOutcome {
	player := s.Player()

	switch intent.Kind {
	case IntentExit:
		return ExitGame

	case IntentMove:
		if !player.Alive {
			return DidntTakeTurn
		}
		s.playerMoveOrAttack(intent.DX, intent.DY)
		return TookTurn

	case IntentWait:
		if !player.Alive {
			return DidntTakeTurn
		}
		return TookTurn

	case IntentPickUp:
		if !player.Alive {
			return DidntTakeTurn
		}
		s.PickUpItem()
		return DidntTakeTurn

	case IntentUseItem:
		if !player.Alive {
			return DidntTakeTurn
		}
		switch s.UseItem(intent.Slot, io) {
		case UsedUp, UsedAndKept:
			return TookTurn
		default:
			return DidntTakeTurn
		}

	case IntentDropItem:
		if !player.Alive {
			return DidntTakeTurn
		}
		s.DropItem(intent.Slot)
		return DidntTakeTurn

	case IntentDescend:
		if !player.Alive {
			return DidntTakeTurn
		}
		if !s.playerOnStairs() {
			s.Log.Log("There are no stairs here.", tcell.ColorYellow)
			return DidntTakeTurn
		}
		s.NextLevel(ctx)
		return DidntTakeTurn

	case IntentCharacterSheet:
		// The interaction layer renders the sheet from Stats().
		return DidntTakeTurn

	default:
		return DidntTakeTurn
	}
}

// playerMoveOrAttack steps the player or strikes the fighter on the
// destination tile.
func (s *Session) playerMoveOrAttack(dx, dy int) {
	player := s.Player()
	x := player.X + dx
	y := player.Y + dy

	targetID := s.Store.FighterAt(x, y)
	if targetID >= 0 && targetID != entity.PlayerIndex {
		attacker, defender := s.Store.MutTwo(entity.PlayerIndex, targetID)
		xp := s.resolver.Attack(attacker, defender)
		s.resolver.AddXP(xp)
		return
	}

	if s.moveBy(entity.PlayerIndex, dx, dy) {
		s.markForRecompute()
	}
}

// playerOnStairs reports whether the player stands on a stairway entity.
func (s *Session) playerOnStairs() bool {
	player := s.Player()
	for _, id := range s.Store.At(player.X, player.Y) {
		if id != entity.PlayerIndex && s.Store.Get(id).Name == "stairs" {
			return true
		}
	}
	return false
}

// moveBy steps an entity by the given delta if the destination is open.
// Returns whether the entity moved.
func (s *Session) moveBy(id, dx, dy int) bool {
	e := s.Store.Get(id)
	x, y := e.X+dx, e.Y+dy
	if world.IsBlocked(s.Level, s.Store, x, y) {
		return false
	}
	e.SetPos(x, y)
	return true
}
