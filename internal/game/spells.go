package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/entity"
)

// castHeal restores the player's wounds. Already-full health is a soft
// failure that keeps the potion.
func (s *Session) castHeal() UseResult {
	player := s.Player()
	if player.Fighter == nil {
		return UseCancelled
	}

	if player.Fighter.HP == s.resolver.MaxHP(player) {
		s.Log.Log("You are already at full health.", tcell.ColorRed)
		return UseCancelled
	}

	s.Log.Log("Your wounds start to feel better!", tcell.ColorLightGreen)
	player.Heal(s.cfg.HealAmount, s.Inventory)
	return UsedUp
}

// castLightning strikes the closest enemy in the player's FOV within range.
func (s *Session) castLightning() UseResult {
	monsterID := s.closestMonster(s.cfg.LightningRange)
	if monsterID < 0 {
		s.Log.Log("No enemy is close enough to strike.", tcell.ColorRed)
		return UseCancelled
	}

	monster := s.Store.Get(monsterID)
	s.Log.Log(fmt.Sprintf("A lightning bolt strikes the %s with a loud thunder! The damage is %d hit points.",
		monster.Name, s.cfg.LightningDamage), tcell.ColorLightBlue)

	xp := s.resolver.TakeDamage(monster, s.cfg.LightningDamage)
	s.resolver.AddXP(xp)
	return UsedUp
}

// castConfuse wraps a targeted monster's AI in a confused state. Targeting
// blocks on the interaction collaborator and may be cancelled.
func (s *Session) castConfuse(io Interaction) UseResult {
	s.Log.Log("Left-click an enemy to confuse it, or right-click to cancel.", tcell.ColorLightCyan)

	monsterID, ok := io.PickMonster(float64(s.cfg.ConfuseRange))
	if !ok {
		s.Log.Log("No enemy is close enough to confuse.", tcell.ColorRed)
		return UseCancelled
	}

	monster := s.Store.Get(monsterID)
	monster.AI = entity.Confuse(monster.AI, s.cfg.ConfuseTurns)
	s.Log.Log(fmt.Sprintf("The eyes of the %s look vacant, as it starts to stumble around!", monster.Name),
		tcell.ColorLightGreen)
	return UsedUp
}

// castFireball burns every fighter within the blast radius, the caster
// included. The player is never credited XP for self-damage.
func (s *Session) castFireball(io Interaction) UseResult {
	s.Log.Log("Left-click a target tile for the fireball, or right-click to cancel.", tcell.ColorLightCyan)

	x, y, ok := io.PickTile(0)
	if !ok {
		return UseCancelled
	}

	s.Log.Log(fmt.Sprintf("The fireball explodes, burning everything within %d tiles!", s.cfg.FireballRadius),
		tcell.ColorOrange)

	xpToGain := 0
	bound := s.Store.Len()
	for id := 0; id < bound; id++ {
		e := s.Store.Get(id)
		if e.Fighter == nil || e.Distance(x, y) > float64(s.cfg.FireballRadius) {
			continue
		}
		s.Log.Log(fmt.Sprintf("The %s gets burned for %d hit points.", e.Name, s.cfg.FireballDamage),
			tcell.ColorOrange)
		xp := s.resolver.TakeDamage(e, s.cfg.FireballDamage)
		if id != entity.PlayerIndex {
			xpToGain += xp
		}
	}
	s.resolver.AddXP(xpToGain)
	return UsedUp
}

// closestMonster returns the nearest living monster in the player's FOV
// within maxRange, or -1.
func (s *Session) closestMonster(maxRange int) int {
	player := s.Player()
	closest := -1
	closestDist := float64(maxRange) + 1

	for id := 1; id < s.Store.Len(); id++ {
		e := s.Store.Get(id)
		if e.Fighter == nil || e.AI == nil || !s.playerFov.Contains(e.X, e.Y) {
			continue
		}
		if dist := player.DistanceTo(e); dist < closestDist {
			closest = id
			closestDist = dist
		}
	}
	return closest
}
