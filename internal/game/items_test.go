package game

import (
	"testing"

	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/gamedata"
)

func TestPickUpNothing(t *testing.T) {
	s := newTestSession(t)
	before := s.Log.Len()

	s.PickUpItem()
	if s.Inventory.Len() != 0 {
		t.Errorf("Expected empty inventory, got %d items", s.Inventory.Len())
	}
	if s.Log.Len() != before+1 {
		t.Error("Expected a log message for the empty tile")
	}
}

func TestPickUpItem(t *testing.T) {
	s := newTestSession(t)
	placeItem(t, s, "healing-potion", 5, 5)
	before := s.Store.Len()

	s.PickUpItem()
	if s.Inventory.Len() != 1 {
		t.Fatalf("Expected 1 item in inventory, got %d", s.Inventory.Len())
	}
	if s.Inventory.Get(0).Item != gamedata.ItemHeal {
		t.Errorf("Expected a healing potion, got %q", s.Inventory.Get(0).Name)
	}
	if s.Store.Len() != before-1 {
		t.Error("Picked-up item must leave the map")
	}
}

func TestPickUpInventoryFull(t *testing.T) {
	s := newTestSession(t)
	for i := 0; i < entity.InventoryCapacity; i++ {
		giveItem(t, s, "healing-potion")
	}
	id := placeItem(t, s, "lightning-scroll", 5, 5)

	s.PickUpItem()
	if s.Inventory.Len() != entity.InventoryCapacity {
		t.Errorf("Expected inventory to stay at %d, got %d", entity.InventoryCapacity, s.Inventory.Len())
	}
	if s.Store.Get(id) == nil || s.Store.Get(id).Item != gamedata.ItemLightning {
		t.Error("Rejected item must stay on the map")
	}
}

func TestDropItem(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "healing-potion")

	s.DropItem(slot)
	if s.Inventory.Len() != 0 {
		t.Errorf("Expected empty inventory, got %d items", s.Inventory.Len())
	}

	px, py := s.Player().Pos()
	found := false
	for _, id := range s.Store.At(px, py) {
		if s.Store.Get(id).Item == gamedata.ItemHeal {
			found = true
		}
	}
	if !found {
		t.Error("Dropped item must land at the player's feet")
	}
}

func TestDropEquippedItemDequips(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "sword")
	s.UseItem(slot, &stubInteraction{})
	if !s.Inventory.Get(slot).Equipment.Equipped {
		t.Fatal("Sword should be equipped")
	}

	s.DropItem(slot)
	px, py := s.Player().Pos()
	for _, id := range s.Store.At(px, py) {
		if e := s.Store.Get(id); e.Equipment != nil && e.Equipment.Equipped {
			t.Error("Dropped equipment must be unequipped")
		}
	}
	if got := s.resolver.Power(s.Player()); got != 2 {
		t.Errorf("Expected power back to 2 after dropping the sword, got %d", got)
	}
}

func TestEquipmentSlotExclusive(t *testing.T) {
	s := newTestSession(t)
	first := giveItem(t, s, "sword")
	second := giveItem(t, s, "sword")

	if got := s.UseItem(first, &stubInteraction{}); got != UsedAndKept {
		t.Fatalf("Expected UsedAndKept, got %v", got)
	}
	if got := s.UseItem(second, &stubInteraction{}); got != UsedAndKept {
		t.Fatalf("Expected UsedAndKept, got %v", got)
	}

	if s.Inventory.Get(first).Equipment.Equipped {
		t.Error("First sword must be unequipped when the second claims the slot")
	}
	if !s.Inventory.Get(second).Equipment.Equipped {
		t.Error("Second sword must be equipped")
	}
	if got := s.resolver.Power(s.Player()); got != 5 {
		t.Errorf("Expected power 5 with one sword, got %d", got)
	}
}

func TestEquipToggle(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "shield")

	s.UseItem(slot, &stubInteraction{})
	if got := s.resolver.Defense(s.Player()); got != 2 {
		t.Errorf("Expected defense 2 with shield, got %d", got)
	}

	s.UseItem(slot, &stubInteraction{})
	if s.Inventory.Get(slot).Equipment.Equipped {
		t.Error("Second use must unequip")
	}
	if got := s.resolver.Defense(s.Player()); got != 1 {
		t.Errorf("Expected defense back to 1, got %d", got)
	}
}

func TestHealAtFullHealthKeepsPotion(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "healing-potion")

	if got := s.UseItem(slot, &stubInteraction{}); got != UseCancelled {
		t.Errorf("Expected UseCancelled at full health, got %v", got)
	}
	if s.Inventory.Len() != 1 {
		t.Error("Cancelled use must keep the potion")
	}
}

func TestHealConsumesPotion(t *testing.T) {
	s := newTestSession(t)
	s.Player().Fighter.HP = 50
	slot := giveItem(t, s, "healing-potion")

	if got := s.UseItem(slot, &stubInteraction{}); got != UsedUp {
		t.Errorf("Expected UsedUp, got %v", got)
	}
	if got := s.Player().Fighter.HP; got != 90 {
		t.Errorf("Expected 90 HP after healing 40, got %d", got)
	}
	if s.Inventory.Len() != 0 {
		t.Error("Used potion must leave the inventory")
	}
}

func TestHealCapsAtMax(t *testing.T) {
	s := newTestSession(t)
	s.Player().Fighter.HP = 95
	slot := giveItem(t, s, "healing-potion")

	s.UseItem(slot, &stubInteraction{})
	if got := s.Player().Fighter.HP; got != 100 {
		t.Errorf("Expected HP capped at 100, got %d", got)
	}
}

func TestLightningNoTarget(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "lightning-scroll")

	if got := s.UseItem(slot, &stubInteraction{}); got != UseCancelled {
		t.Errorf("Expected UseCancelled with no target, got %v", got)
	}
	if s.Inventory.Len() != 1 {
		t.Error("Cancelled scroll must stay in the inventory")
	}
}

func TestLightningStrikesClosest(t *testing.T) {
	s := newTestSession(t)
	near := spawnMonster(t, s, "orc", 7, 5)
	far := spawnMonster(t, s, "orc", 9, 5)
	s.markForRecompute()
	s.RecomputeVisibility()

	slot := giveItem(t, s, "lightning-scroll")
	if got := s.UseItem(slot, &stubInteraction{}); got != UsedUp {
		t.Fatalf("Expected UsedUp, got %v", got)
	}

	if s.Store.Get(near).Alive {
		t.Error("Closest orc should be dead after 40 lightning damage")
	}
	if !s.Store.Get(far).Alive {
		t.Error("Far orc must be untouched")
	}
	if got := s.Player().Fighter.XP; got != 35 {
		t.Errorf("Expected 35 XP for the kill, got %d", got)
	}
}

func TestConfuseCancelled(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "confusion-scroll")

	if got := s.UseItem(slot, &stubInteraction{monsterOK: false}); got != UseCancelled {
		t.Errorf("Expected UseCancelled, got %v", got)
	}
	if s.Inventory.Len() != 1 {
		t.Error("Cancelled scroll must stay in the inventory")
	}
}

func TestConfuseWrapsMonsterAI(t *testing.T) {
	s := newTestSession(t)
	id := spawnMonster(t, s, "orc", 7, 5)
	slot := giveItem(t, s, "confusion-scroll")

	if got := s.UseItem(slot, &stubInteraction{monsterID: id, monsterOK: true}); got != UsedUp {
		t.Fatalf("Expected UsedUp, got %v", got)
	}

	ai := s.Store.Get(id).AI
	if ai.Kind != entity.AIConfused {
		t.Fatalf("Expected confused AI, got %v", ai.Kind)
	}
	if ai.TurnsLeft != s.cfg.ConfuseTurns {
		t.Errorf("Expected %d turns of confusion, got %d", s.cfg.ConfuseTurns, ai.TurnsLeft)
	}
	if ai.Previous == nil || ai.Previous.Kind != entity.AIBasic {
		t.Error("Previous AI state must be preserved for restoration")
	}
}

func TestFireballBurnsAreaWithoutSelfXP(t *testing.T) {
	s := newTestSession(t)
	inBlast := spawnMonster(t, s, "orc", 7, 5)
	outside := spawnMonster(t, s, "orc", 15, 15)
	slot := giveItem(t, s, "fireball-scroll")

	// Centered on the player: the caster burns too.
	px, py := s.Player().Pos()
	io := &stubInteraction{tileX: px, tileY: py, tileOK: true}
	if got := s.UseItem(slot, io); got != UsedUp {
		t.Fatalf("Expected UsedUp, got %v", got)
	}

	if got := s.Player().Fighter.HP; got != 75 {
		t.Errorf("Expected player at 75 HP after 25 burn damage, got %d", got)
	}
	if s.Store.Get(inBlast).Alive {
		t.Error("Orc in the blast should be dead")
	}
	if !s.Store.Get(outside).Alive {
		t.Error("Orc outside the radius must be untouched")
	}
	if got := s.Player().Fighter.XP; got != 35 {
		t.Errorf("Expected XP only for the orc, got %d", got)
	}
}

func TestFireballCancelled(t *testing.T) {
	s := newTestSession(t)
	slot := giveItem(t, s, "fireball-scroll")

	if got := s.UseItem(slot, &stubInteraction{tileOK: false}); got != UseCancelled {
		t.Errorf("Expected UseCancelled, got %v", got)
	}
	if s.Inventory.Len() != 1 {
		t.Error("Cancelled scroll must stay in the inventory")
	}
}
