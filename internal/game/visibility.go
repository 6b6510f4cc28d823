package game

import (
	"github.com/samdwyer/underdark/internal/fov"
)

// RecomputeVisibility rebuilds lit tiles and the player's field of view. It
// is a no-op unless the scheduler flagged a recompute (the player moved or
// the level changed), so waiting in place costs nothing.
//
// Lit state is transient: it is cleared and rebuilt from the emitters every
// time, while explored is set permanently for any tile seen or lit.
func (s *Session) RecomputeVisibility() {
	if !s.needsRecompute {
		return
	}
	s.needsRecompute = false

	opaque := func(x, y int) bool { return s.Level.BlocksSight(x, y) }

	// Every emitter casts its own field of view, independent of the player.
	s.Level.ClearLit()
	for _, e := range s.Store.All() {
		if e.Emitter == nil {
			continue
		}
		for p := range fov.Compute(e.X, e.Y, e.Emitter.Radius, s.cfg.FOVLightWalls, opaque) {
			s.Level.SetLit(p.X, p.Y)
			s.Level.MarkExplored(p.X, p.Y)
		}
	}

	// On a lit tile the player's own sight contracts; in the dark it
	// recovers one tile per turn up to the dark cap.
	player := s.Player()
	if s.Level.Tile(player.X, player.Y).Lit {
		s.fovRadius = s.cfg.FOVRadiusLit
	} else if s.fovRadius < s.cfg.FOVRadiusDark {
		s.fovRadius++
	}

	s.playerFov = fov.Compute(player.X, player.Y, s.fovRadius, s.cfg.FOVLightWalls, opaque)
	for p := range s.playerFov {
		s.Level.MarkExplored(p.X, p.Y)
	}
}

// markForRecompute flags that the next RecomputeVisibility must run.
func (s *Session) markForRecompute() {
	s.needsRecompute = true
}
