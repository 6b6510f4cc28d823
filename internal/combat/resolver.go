// Package combat resolves attacks, damage, death transitions and character
// progression.
package combat

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/entity"
)

// Logger receives combat messages for the session's message log.
type Logger interface {
	Log(text string, color tcell.Color)
}

// Config holds the progression tuning numbers.
type Config struct {
	LevelUpBase   int // threshold for the first level-up
	LevelUpFactor int // additional threshold per character level
}

// LevelUpChoice is the stat increase picked by the player on level-up.
type LevelUpChoice int

const (
	ChoiceInvalid LevelUpChoice = iota
	ChoiceHP                    // +20 max HP
	ChoicePower                 // +1 power
	ChoiceDefense               // +1 defense
)

// HPBonusPerLevel is the max HP gained when ChoiceHP is picked.
const HPBonusPerLevel = 20

// Resolver applies combat math against the entity arena. It knows which
// entity is the player so equipment bonuses from the player's inventory enter
// effective stats.
type Resolver struct {
	cfg    Config
	log    Logger
	player *entity.Entity
	inv    *entity.Inventory
}

// NewResolver creates a resolver bound to one session's player and inventory.
func NewResolver(cfg Config, log Logger, player *entity.Entity, inv *entity.Inventory) *Resolver {
	return &Resolver{cfg: cfg, log: log, player: player, inv: inv}
}

// invFor returns the inventory whose equipped bonuses apply to the entity.
// Only the player owns one.
func (r *Resolver) invFor(e *entity.Entity) *entity.Inventory {
	if e == r.player {
		return r.inv
	}
	return nil
}

// Power returns the entity's effective attack power.
func (r *Resolver) Power(e *entity.Entity) int {
	return e.Power(r.invFor(e))
}

// Defense returns the entity's effective defense.
func (r *Resolver) Defense(e *entity.Entity) int {
	return e.Defense(r.invFor(e))
}

// MaxHP returns the entity's effective maximum HP.
func (r *Resolver) MaxHP(e *entity.Entity) int {
	return e.MaxHP(r.invFor(e))
}

// Attack resolves one melee strike. Damage is effective power minus effective
// defense, clamped at zero; zero damage logs a no-effect message. Returns the
// XP reward if the strike killed the defender, otherwise 0.
func (r *Resolver) Attack(attacker, defender *entity.Entity) int {
	damage := r.Power(attacker) - r.Defense(defender)
	if damage <= 0 {
		r.log.Log(fmt.Sprintf("%s attacks %s but it has no effect!", attacker.Name, defender.Name), tcell.ColorWhite)
		return 0
	}

	r.log.Log(fmt.Sprintf("%s attacks %s for %d hit points.", attacker.Name, defender.Name, damage), tcell.ColorWhite)
	return r.TakeDamage(defender, damage)
}

// TakeDamage applies damage to a fighter. Non-positive amounts never change
// HP. When HP reaches zero the death transition runs and the victim's XP
// reward is returned to the caller, who decides whether anyone is credited.
func (r *Resolver) TakeDamage(e *entity.Entity, amount int) int {
	if e.Fighter == nil {
		return 0
	}
	if amount > 0 {
		e.Fighter.HP -= amount
	}

	if e.Fighter.HP <= 0 && e.Alive {
		e.Alive = false
		xp := e.Fighter.XP
		switch e.Fighter.OnDeath {
		case entity.DeathPlayer:
			r.playerDeath(e)
		case entity.DeathMonster:
			r.monsterDeath(e)
		}
		return xp
	}
	return 0
}

// AddXP credits experience to the player.
func (r *Resolver) AddXP(xp int) {
	if xp > 0 && r.player.Fighter != nil {
		r.player.Fighter.XP += xp
	}
}

// LevelUpThreshold returns the XP needed for the next level at the given
// character level.
func (r *Resolver) LevelUpThreshold(level int) int {
	return r.cfg.LevelUpBase + level*r.cfg.LevelUpFactor
}

// CheckLevelUp levels the player up while accumulated XP meets the threshold.
// Overflow XP is preserved. choose blocks until the player supplies a stat
// increase; invalid choices re-prompt, since skipping a level-up is not
// permitted. Returns the number of levels gained.
func (r *Resolver) CheckLevelUp(choose func() LevelUpChoice) int {
	fighter := r.player.Fighter
	if fighter == nil {
		return 0
	}

	gained := 0
	for fighter.XP >= r.LevelUpThreshold(fighter.Level) {
		fighter.XP -= r.LevelUpThreshold(fighter.Level)
		fighter.Level++
		gained++
		r.log.Log(fmt.Sprintf("Your battle skills grow stronger! You reached level %d!", fighter.Level), tcell.ColorYellow)

		for {
			applied := true
			switch choose() {
			case ChoiceHP:
				fighter.BaseMaxHP += HPBonusPerLevel
				fighter.HP += HPBonusPerLevel
			case ChoicePower:
				fighter.BasePower++
			case ChoiceDefense:
				fighter.BaseDefense++
			default:
				applied = false
			}
			if applied {
				break
			}
		}
	}
	return gained
}

// playerDeath changes the player's display identity only; the scheduler halts
// AI dispatch once the player is no longer alive.
func (r *Resolver) playerDeath(player *entity.Entity) {
	r.log.Log("You died!", tcell.ColorRed)
	player.Glyph = '%'
	player.Color = tcell.ColorDarkRed
}

// monsterDeath turns the corpse inert: it no longer blocks, fights or acts.
func (r *Resolver) monsterDeath(monster *entity.Entity) {
	r.log.Log(fmt.Sprintf("%s is dead! You gain %d experience points.", monster.Name, monster.Fighter.XP), tcell.ColorOrange)
	monster.Glyph = '%'
	monster.Color = tcell.ColorDarkRed
	monster.Blocks = false
	monster.Fighter = nil
	monster.AI = nil
	monster.Name = "remains of " + monster.Name
}
