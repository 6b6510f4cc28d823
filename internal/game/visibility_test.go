package game

import (
	"testing"

	"github.com/samdwyer/underdark/internal/entity"
)

func TestExploredPersistsOutsideFOV(t *testing.T) {
	s := newTestSession(t)
	if !s.Level.Tile(6, 5).Explored {
		t.Fatal("Tile next to the player must start explored")
	}

	// March the player far enough that the start area leaves the FOV.
	for i := 0; i < 15; i++ {
		s.moveBy(entity.PlayerIndex, 1, 0)
		s.markForRecompute()
		s.RecomputeVisibility()
	}
	if s.InFOV(5, 5) {
		t.Fatal("Start tile should have left the FOV")
	}
	if !s.Level.Tile(5, 5).Explored {
		t.Error("Explored must be permanent")
	}
}

func TestEmitterLightsAndExploresTiles(t *testing.T) {
	s := newTestSession(t)
	id := s.Store.Add(entity.NewTorch(20, 10, s.cfg.TorchRadius))
	s.markForRecompute()
	s.RecomputeVisibility()

	if !s.Level.Tile(20, 10).Lit {
		t.Fatal("Torch tile must be lit")
	}
	if !s.Level.Tile(21, 10).Lit {
		t.Error("Tile inside the torch radius must be lit")
	}
	if s.Level.Tile(23, 10).Lit {
		t.Error("Tile beyond the torch radius must not be lit")
	}
	if !s.Level.Tile(20, 10).Explored {
		t.Error("Lit tiles become explored even outside the player's FOV")
	}

	// Lit is transient: removing the emitter reverts it on the next pass.
	s.Store.Remove(id)
	s.markForRecompute()
	s.RecomputeVisibility()
	if s.Level.Tile(20, 10).Lit {
		t.Error("Lit must revert once the emitter is gone")
	}
	if !s.Level.Tile(20, 10).Explored {
		t.Error("Explored must survive the emitter's removal")
	}
}

func TestFOVRadiusContractsOnLitTile(t *testing.T) {
	s := newTestSession(t)

	// In the dark the radius grows by one per recompute, up to the cap.
	start := s.fovRadius
	s.markForRecompute()
	s.RecomputeVisibility()
	if s.fovRadius != start+1 {
		t.Errorf("Expected radius %d in the dark, got %d", start+1, s.fovRadius)
	}
	for i := 0; i < 20; i++ {
		s.markForRecompute()
		s.RecomputeVisibility()
	}
	if s.fovRadius != s.cfg.FOVRadiusDark {
		t.Errorf("Expected radius capped at %d, got %d", s.cfg.FOVRadiusDark, s.fovRadius)
	}

	// A torch at the player's feet lights their tile and snaps the radius
	// down.
	px, py := s.Player().Pos()
	s.Store.Add(entity.NewTorch(px, py, s.cfg.TorchRadius))
	s.markForRecompute()
	s.RecomputeVisibility()
	if s.fovRadius != s.cfg.FOVRadiusLit {
		t.Errorf("Expected radius %d on a lit tile, got %d", s.cfg.FOVRadiusLit, s.fovRadius)
	}
}

func TestRecomputeIsGuarded(t *testing.T) {
	s := newTestSession(t)
	radius := s.fovRadius

	// Without the flag set the pass is a no-op and the radius never grows.
	s.RecomputeVisibility()
	s.RecomputeVisibility()
	if s.fovRadius != radius {
		t.Errorf("Unflagged recompute changed the radius: %d -> %d", radius, s.fovRadius)
	}
}

func TestIsVisible(t *testing.T) {
	s := newTestSession(t)

	near := spawnMonster(t, s, "orc", 7, 5)
	farAway := spawnMonster(t, s, "orc", 25, 17)
	if !s.IsVisible(s.Store.Get(near)) {
		t.Error("Monster in FOV must be visible")
	}
	if s.IsVisible(s.Store.Get(farAway)) {
		t.Error("Monster in the unexplored dark must be hidden")
	}

	// A lit tile shows its occupants even outside the player's FOV.
	s.Store.Add(entity.NewTorch(25, 17, s.cfg.TorchRadius))
	s.markForRecompute()
	s.RecomputeVisibility()
	if !s.IsVisible(s.Store.Get(farAway)) {
		t.Error("Monster on a lit tile must be visible")
	}

	// Always-visible entities show on explored tiles once the light is out.
	s.Store.Add(entity.NewStairs(25, 17))
	torchID := -1
	for id := 1; id < s.Store.Len(); id++ {
		if s.Store.Get(id).Emitter != nil {
			torchID = id
		}
	}
	s.Store.Remove(torchID)
	s.markForRecompute()
	s.RecomputeVisibility()

	for id := 1; id < s.Store.Len(); id++ {
		e := s.Store.Get(id)
		if e.Name == "stairs" && !s.IsVisible(e) {
			t.Error("Stairs on an explored tile must stay visible in the dark")
		}
		if e.Name == "orc" && e.X == 25 && s.IsVisible(e) {
			t.Error("Monster on a dark explored tile must be hidden")
		}
	}
}
