package game

import (
	"context"
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/entity"
)

// runAITurns gives every AI-driven entity one turn, strictly by ascending
// index. The bound is snapshotted at phase start; nothing in the AI phase
// creates entities, and the snapshot keeps that an explicit invariant.
func (s *Session) runAITurns(_ context.Context) {
	bound := s.Store.Len()
	for id := 1; id < bound; id++ {
		if s.Store.Get(id).AI != nil {
			s.aiTakeTurn(id)
		}
	}
}

// aiTakeTurn runs one entity's state transition and stores the successor
// state back on the entity.
func (s *Session) aiTakeTurn(id int) {
	e := s.Store.Get(id)
	switch e.AI.Kind {
	case entity.AIBasic:
		s.aiBasic(id)
	case entity.AIConfused:
		e.AI = s.aiConfused(id, e.AI)
	}
}

// aiBasic seeks and attacks: if the monster is in the player's FOV it closes
// the distance, and strikes once adjacent while the player lives.
func (s *Session) aiBasic(id int) {
	monster := s.Store.Get(id)
	if !s.playerFov.Contains(monster.X, monster.Y) {
		return
	}

	player := s.Player()
	if monster.DistanceTo(player) >= 2 {
		s.moveTowards(id, player.X, player.Y)
	} else if player.Fighter != nil && player.Fighter.HP > 0 {
		attacker, defender := s.Store.MutTwo(id, entity.PlayerIndex)
		// A dying player yields no XP credit to anyone.
		s.resolver.Attack(attacker, defender)
	}
}

// aiConfused wanders randomly while turns remain, then restores the wrapped
// previous state.
func (s *Session) aiConfused(id int, ai *entity.AI) *entity.AI {
	if ai.TurnsLeft >= 0 {
		s.moveBy(id, s.rng.Intn(3)-1, s.rng.Intn(3)-1)
		return &entity.AI{Kind: entity.AIConfused, Previous: ai.Previous, TurnsLeft: ai.TurnsLeft - 1}
	}

	s.Log.Log(fmt.Sprintf("The %s is no longer confused!", s.Store.Get(id).Name), tcell.ColorRed)
	return ai.Previous
}

// moveTowards steps one tile toward the target: the displacement is
// normalized to a rounded unit vector, restricting movement to the 8
// grid directions.
func (s *Session) moveTowards(id, targetX, targetY int) {
	e := s.Store.Get(id)
	dx := float64(targetX - e.X)
	dy := float64(targetY - e.Y)
	distance := math.Sqrt(dx*dx + dy*dy)
	if distance == 0 {
		return
	}

	s.moveBy(id, int(math.Round(dx/distance)), int(math.Round(dy/distance)))
}
