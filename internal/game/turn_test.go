package game

import (
	"context"
	"testing"

	"github.com/samdwyer/underdark/internal/entity"
)

func TestMoveIntoOpenTile(t *testing.T) {
	s := newTestSession(t)
	io := &stubInteraction{}

	outcome := s.ApplyIntent(context.Background(), Intent{Kind: IntentMove, DX: 1, DY: 0}, io)
	if outcome != TookTurn {
		t.Errorf("Expected TookTurn, got %v", outcome)
	}
	if x, y := s.Player().Pos(); x != 6 || y != 5 {
		t.Errorf("Expected player at (6,5), got (%d,%d)", x, y)
	}
}

func TestMoveIntoWallCostsTurn(t *testing.T) {
	s := newTestSession(t)
	s.Player().SetPos(1, 1)
	s.markForRecompute()
	s.RecomputeVisibility()

	outcome := s.ApplyIntent(context.Background(), Intent{Kind: IntentMove, DX: -1, DY: 0}, &stubInteraction{})
	if outcome != TookTurn {
		t.Errorf("Expected TookTurn, got %v", outcome)
	}
	if x, y := s.Player().Pos(); x != 1 || y != 1 {
		t.Errorf("Expected player to stay at (1,1), got (%d,%d)", x, y)
	}
}

func TestMoveIntoMonsterAttacks(t *testing.T) {
	s := newTestSession(t)
	id := spawnMonster(t, s, "orc", 6, 5)

	s.ApplyIntent(context.Background(), Intent{Kind: IntentMove, DX: 1, DY: 0}, &stubInteraction{})

	// Player power 2 against orc defense 0.
	if got := s.Store.Get(id).Fighter.HP; got != 18 {
		t.Errorf("Expected orc at 18 HP, got %d", got)
	}
	if x, y := s.Player().Pos(); x != 5 || y != 5 {
		t.Errorf("Attacking must not move the player, got (%d,%d)", x, y)
	}
}

func TestAIPhaseOnlyOnTookTurn(t *testing.T) {
	s := newTestSession(t)
	id := spawnMonster(t, s, "orc", 9, 5)
	s.markForRecompute()
	s.RecomputeVisibility()
	if !s.InFOV(9, 5) {
		t.Fatal("Orc must start inside the player's FOV")
	}

	// Picking up from an empty tile costs no turn; the orc must not move.
	s.ApplyIntent(context.Background(), Intent{Kind: IntentPickUp}, &stubInteraction{})
	if x, y := s.Store.Get(id).Pos(); x != 9 || y != 5 {
		t.Errorf("Orc moved on a non-turn: (%d,%d)", x, y)
	}

	// Waiting costs a turn; the seeking orc closes in.
	s.ApplyIntent(context.Background(), Intent{Kind: IntentWait}, &stubInteraction{})
	if x, y := s.Store.Get(id).Pos(); x != 8 || y != 5 {
		t.Errorf("Expected orc to step to (8,5), got (%d,%d)", x, y)
	}
}

func TestAdjacentMonsterAttacksPlayer(t *testing.T) {
	s := newTestSession(t)
	spawnMonster(t, s, "orc", 6, 5)

	s.ApplyIntent(context.Background(), Intent{Kind: IntentWait}, &stubInteraction{})

	// Orc power 4 against player defense 1.
	if got := s.Player().Fighter.HP; got != 97 {
		t.Errorf("Expected player at 97 HP, got %d", got)
	}
}

func TestDeadPlayerHaltsAIPhase(t *testing.T) {
	s := newTestSession(t)
	id := spawnMonster(t, s, "orc", 9, 5)

	s.resolver.TakeDamage(s.Player(), 1000)
	if s.Player().Alive {
		t.Fatal("Player should be dead")
	}

	outcome := s.ApplyIntent(context.Background(), Intent{Kind: IntentMove, DX: 1, DY: 0}, &stubInteraction{})
	if outcome != DidntTakeTurn {
		t.Errorf("Expected DidntTakeTurn for a dead player, got %v", outcome)
	}
	if x, y := s.Store.Get(id).Pos(); x != 9 || y != 5 {
		t.Errorf("AI must not act after the player dies, orc at (%d,%d)", x, y)
	}
}

func TestConfusionWearsOff(t *testing.T) {
	s := newTestSession(t)
	// Out of FOV reach so the restored basic AI stays put afterwards.
	id := spawnMonster(t, s, "orc", 25, 17)
	monster := s.Store.Get(id)
	monster.AI = entity.Confuse(monster.AI, 2)

	// Turns 2, 1 and 0 wander; the next AI phase restores the previous state.
	for i := 0; i < 3; i++ {
		s.ApplyIntent(context.Background(), Intent{Kind: IntentWait}, &stubInteraction{})
		if got := s.Store.Get(id).AI.Kind; got != entity.AIConfused {
			t.Fatalf("Turn %d: expected still confused, got %v", i, got)
		}
	}
	s.ApplyIntent(context.Background(), Intent{Kind: IntentWait}, &stubInteraction{})
	if got := s.Store.Get(id).AI.Kind; got != entity.AIBasic {
		t.Errorf("Expected basic AI restored, got %v", got)
	}
}

func TestExitIntent(t *testing.T) {
	s := newTestSession(t)
	if outcome := s.ApplyIntent(context.Background(), Intent{Kind: IntentExit}, &stubInteraction{}); outcome != ExitGame {
		t.Errorf("Expected ExitGame, got %v", outcome)
	}
}

func TestDescendRequiresStairs(t *testing.T) {
	s := newTestSession(t)

	outcome := s.ApplyIntent(context.Background(), Intent{Kind: IntentDescend}, &stubInteraction{})
	if outcome != DidntTakeTurn {
		t.Errorf("Expected DidntTakeTurn, got %v", outcome)
	}
	if s.DungeonLevel != 1 {
		t.Errorf("Expected to stay on level 1, got %d", s.DungeonLevel)
	}

	px, py := s.Player().Pos()
	s.Store.Add(entity.NewStairs(px, py))
	s.ApplyIntent(context.Background(), Intent{Kind: IntentDescend}, &stubInteraction{})
	if s.DungeonLevel != 2 {
		t.Errorf("Expected dungeon level 2 after descending, got %d", s.DungeonLevel)
	}
}

func TestLevelUpAfterKill(t *testing.T) {
	s := newTestSession(t)
	id := spawnMonster(t, s, "orc", 6, 5)
	s.Store.Get(id).Fighter.HP = 1
	s.Player().Fighter.XP = s.resolver.LevelUpThreshold(1) - 35

	s.ApplyIntent(context.Background(), Intent{Kind: IntentMove, DX: 1, DY: 0}, &stubInteraction{})

	f := s.Player().Fighter
	if f.Level != 2 {
		t.Errorf("Expected level 2, got %d", f.Level)
	}
	if f.XP != 0 {
		t.Errorf("Expected XP spent on level-up, got %d", f.XP)
	}
	if f.BaseMaxHP != 120 {
		t.Errorf("Expected base max HP 120 after HP choice, got %d", f.BaseMaxHP)
	}
}

func TestWaitDoesNotResetExplored(t *testing.T) {
	s := newTestSession(t)
	if !s.Level.Tile(5, 5).Explored {
		t.Fatal("Player tile must be explored")
	}

	s.ApplyIntent(context.Background(), Intent{Kind: IntentWait}, &stubInteraction{})
	if !s.Level.Tile(5, 5).Explored {
		t.Error("Explored flag must persist across turns")
	}
	var unexplored int
	for y := 0; y < s.Level.Height; y++ {
		for x := 0; x < s.Level.Width; x++ {
			if !s.Level.Tile(x, y).Explored {
				unexplored++
			}
		}
	}
	if unexplored == 0 {
		t.Error("Distant tiles should remain unexplored")
	}
}
