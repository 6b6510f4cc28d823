package combat

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/gamedata"
)

type logRecorder struct {
	entries []string
}

func (l *logRecorder) Log(text string, _ tcell.Color) {
	l.entries = append(l.entries, text)
}

func (l *logRecorder) contains(substr string) bool {
	for _, e := range l.entries {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}

func newTestResolver(cfg Config) (*Resolver, *entity.Entity, *entity.Inventory, *logRecorder) {
	player := entity.NewPlayer(100, 1, 2)
	inv := entity.NewInventory()
	log := &logRecorder{}
	return NewResolver(cfg, log, player, inv), player, inv, log
}

func newOrc() *entity.Entity {
	orc := entity.New(1, 1, 'o', "orc", tcell.ColorGreen, true)
	orc.Alive = true
	orc.Fighter = &entity.Fighter{
		BaseMaxHP:   10,
		HP:          10,
		BaseDefense: 2,
		BasePower:   3,
		XP:          35,
		OnDeath:     entity.DeathMonster,
	}
	orc.AI = &entity.AI{Kind: entity.AIBasic}
	return orc
}

func TestAttackDamageFormula(t *testing.T) {
	resolver, player, _, _ := newTestResolver(Config{})

	// attacker power 5, defender defense 2 => 3 damage
	player.Fighter.BasePower = 5
	orc := newOrc()
	resolver.Attack(player, orc)
	if orc.Fighter.HP != 7 {
		t.Errorf("defender HP = %d, want 7", orc.Fighter.HP)
	}
}

func TestAttackNoEffect(t *testing.T) {
	resolver, player, _, log := newTestResolver(Config{})

	// attacker power 2, defender defense 5 => 0 damage, hp unchanged
	orc := newOrc()
	orc.Fighter.BaseDefense = 5
	resolver.Attack(player, orc)

	if orc.Fighter.HP != 10 {
		t.Errorf("defender HP = %d, want unchanged 10", orc.Fighter.HP)
	}
	if !log.contains("no effect") {
		t.Error("no-effect message not logged")
	}
}

func TestTakeDamageIgnoresNonPositive(t *testing.T) {
	resolver, _, _, _ := newTestResolver(Config{})
	orc := newOrc()

	resolver.TakeDamage(orc, 0)
	resolver.TakeDamage(orc, -5)

	if orc.Fighter.HP != 10 {
		t.Errorf("HP = %d after non-positive damage, want 10", orc.Fighter.HP)
	}
}

func TestMonsterDeathTransition(t *testing.T) {
	resolver, _, _, log := newTestResolver(Config{})
	orc := newOrc()

	xp := resolver.TakeDamage(orc, 10)

	if xp != 35 {
		t.Errorf("TakeDamage returned xp = %d, want 35", xp)
	}
	if orc.Alive {
		t.Error("orc still alive at 0 HP")
	}
	if orc.Blocks {
		t.Error("corpse still blocks")
	}
	if orc.Fighter != nil || orc.AI != nil {
		t.Error("corpse kept Fighter/AI components")
	}
	if orc.Name != "remains of orc" {
		t.Errorf("corpse name = %q", orc.Name)
	}
	if orc.Glyph != '%' {
		t.Errorf("corpse glyph = %c", orc.Glyph)
	}
	if !log.contains("is dead") {
		t.Error("death message not logged")
	}
}

func TestDeathRunsOnlyOnce(t *testing.T) {
	resolver, _, _, _ := newTestResolver(Config{})
	orc := newOrc()

	if xp := resolver.TakeDamage(orc, 10); xp != 35 {
		t.Fatalf("first kill xp = %d, want 35", xp)
	}
	// Corpse has no Fighter; further damage is a no-op.
	if xp := resolver.TakeDamage(orc, 10); xp != 0 {
		t.Errorf("second kill xp = %d, want 0", xp)
	}
}

func TestPlayerDeath(t *testing.T) {
	resolver, player, _, log := newTestResolver(Config{})

	resolver.TakeDamage(player, 100)

	if player.Alive {
		t.Error("player still alive")
	}
	if player.Fighter == nil {
		t.Error("player death must not clear the Fighter component")
	}
	if player.Glyph != '%' {
		t.Errorf("player corpse glyph = %c", player.Glyph)
	}
	if !log.contains("You died") {
		t.Error("death message not logged")
	}
}

func TestLevelUpPreservesOverflow(t *testing.T) {
	resolver, player, _, _ := newTestResolver(Config{LevelUpBase: 100, LevelUpFactor: 0})

	player.Fighter.XP = 130
	gained := resolver.CheckLevelUp(func() LevelUpChoice { return ChoicePower })

	if gained != 1 {
		t.Fatalf("gained %d levels, want 1", gained)
	}
	if player.Fighter.XP != 30 {
		t.Errorf("post-level XP = %d, want 30 (overflow preserved)", player.Fighter.XP)
	}
	if player.Fighter.Level != 2 {
		t.Errorf("level = %d, want 2", player.Fighter.Level)
	}
}

func TestLevelUpThresholdScales(t *testing.T) {
	resolver, _, _, _ := newTestResolver(Config{LevelUpBase: 200, LevelUpFactor: 150})

	if got := resolver.LevelUpThreshold(1); got != 350 {
		t.Errorf("threshold at level 1 = %d, want 350", got)
	}
	if got := resolver.LevelUpThreshold(3); got != 650 {
		t.Errorf("threshold at level 3 = %d, want 650", got)
	}
}

func TestLevelUpRepromptsUntilValid(t *testing.T) {
	resolver, player, _, _ := newTestResolver(Config{LevelUpBase: 100, LevelUpFactor: 0})

	player.Fighter.XP = 100
	prompts := 0
	resolver.CheckLevelUp(func() LevelUpChoice {
		prompts++
		if prompts < 3 {
			return ChoiceInvalid
		}
		return ChoiceHP
	})

	if prompts != 3 {
		t.Errorf("choose called %d times, want 3", prompts)
	}
	if player.Fighter.BaseMaxHP != 100+HPBonusPerLevel {
		t.Errorf("BaseMaxHP = %d, want %d", player.Fighter.BaseMaxHP, 100+HPBonusPerLevel)
	}
	if player.Fighter.HP != 100+HPBonusPerLevel {
		t.Errorf("HP = %d, want %d", player.Fighter.HP, 100+HPBonusPerLevel)
	}
}

func TestEquipmentEntersEffectiveStats(t *testing.T) {
	resolver, player, inv, _ := newTestResolver(Config{})

	sword := entity.New(0, 0, '/', "sword", tcell.ColorBlue, false)
	sword.Item = gamedata.ItemEquipment
	sword.Equipment = &entity.Equipment{Slot: gamedata.SlotRightHand, PowerBonus: 3, Equipped: true}
	inv.Add(sword)

	if got := resolver.Power(player); got != player.Fighter.BasePower+3 {
		t.Errorf("effective power = %d, want base+3", got)
	}

	// Equipment on the player's inventory never applies to monsters.
	orc := newOrc()
	if got := resolver.Power(orc); got != 3 {
		t.Errorf("orc power = %d, want 3", got)
	}
}
