package game

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/gamedata"
)

// UseResult classifies what using an item cost.
type UseResult int

const (
	// UseCancelled consumed no charge and no turn.
	UseCancelled UseResult = iota
	// UsedUp consumed the item.
	UsedUp
	// UsedAndKept used the item without consuming it (equipment toggles).
	UsedAndKept
)

// PickUpItem moves the item under the player from the map into the
// inventory. Soft failures (nothing here, inventory full) log and leave the
// world untouched.
func (s *Session) PickUpItem() {
	player := s.Player()

	itemID := -1
	for _, id := range s.Store.At(player.X, player.Y) {
		if s.Store.Get(id).Item != "" {
			itemID = id
			break
		}
	}
	if itemID < 0 {
		s.Log.Log("There is nothing here to pick up.", tcell.ColorYellow)
		return
	}

	if s.Inventory.Full() {
		s.Log.Log(fmt.Sprintf("Your inventory is full, cannot pick up %s.", s.Store.Get(itemID).Name), tcell.ColorRed)
		return
	}

	item := s.Store.Remove(itemID)
	s.Inventory.Add(item)
	s.Log.Log(fmt.Sprintf("You picked up a %s!", item.Name), tcell.ColorGreen)
}

// DropItem returns the item in the given slot to the map at the player's
// feet, unequipping it first if worn.
func (s *Session) DropItem(slot int) {
	item := s.Inventory.Remove(slot)
	if item.Equipment != nil && item.Equipment.Equipped {
		s.dequip(item)
	}

	player := s.Player()
	item.SetPos(player.X, player.Y)
	s.Store.Add(item)
	s.Log.Log(fmt.Sprintf("You dropped a %s.", item.Name), tcell.ColorYellow)
}

// UseItem applies the item in the given slot. Items that need a target invoke
// the interaction collaborator synchronously; cancellation consumes nothing.
// The caller removes the item from the inventory on UsedUp.
func (s *Session) UseItem(slot int, io Interaction) UseResult {
	item := s.Inventory.Get(slot)

	if item.Equipment != nil {
		s.toggleEquipment(item)
		return UsedAndKept
	}

	var result UseResult
	switch item.Item {
	case gamedata.ItemHeal:
		result = s.castHeal()
	case gamedata.ItemLightning:
		result = s.castLightning()
	case gamedata.ItemConfuse:
		result = s.castConfuse(io)
	case gamedata.ItemFireball:
		result = s.castFireball(io)
	default:
		s.Log.Log(fmt.Sprintf("The %s cannot be used.", item.Name), tcell.ColorYellow)
		return UseCancelled
	}

	if result == UsedUp {
		s.Inventory.Remove(slot)
	}
	return result
}

// toggleEquipment equips or unequips a worn item. Equipping claims the body
// slot: whatever currently occupies it is unequipped first.
func (s *Session) toggleEquipment(item *entity.Entity) {
	if item.Equipment.Equipped {
		s.dequip(item)
		return
	}

	if current := s.Inventory.EquippedInSlot(item.Equipment.Slot); current >= 0 {
		s.dequip(s.Inventory.Get(current))
	}
	item.Equipment.Equipped = true
	s.Log.Log(fmt.Sprintf("Equipped %s on %s.", item.Name, item.Equipment.Slot), tcell.ColorLightGreen)
}

// dequip removes a worn item's bonuses by clearing its equipped flag.
func (s *Session) dequip(item *entity.Entity) {
	if !item.Equipment.Equipped {
		return
	}
	item.Equipment.Equipped = false
	s.Log.Log(fmt.Sprintf("Dequipped %s from %s.", item.Name, item.Equipment.Slot), tcell.ColorLightYellow)
}
