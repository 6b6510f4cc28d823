package entity

import (
	"fmt"

	"github.com/samdwyer/underdark/internal/gamedata"
)

// InventoryCapacity is the number of item slots (one per letter a-z).
const InventoryCapacity = 26

// Inventory is the ordered collection of items the player carries. Items in
// the inventory are off the map; equip state only toggles, never moves them.
type Inventory struct {
	items []*Entity
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{}
}

// Len returns the number of carried items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Full reports whether the inventory has no free slot.
func (inv *Inventory) Full() bool {
	return len(inv.items) >= InventoryCapacity
}

// Add appends an item. Callers must check Full first; overflow is a caller bug.
func (inv *Inventory) Add(item *Entity) {
	if inv.Full() {
		panic("entity: inventory overflow")
	}
	inv.items = append(inv.items, item)
}

// Get returns the item in the given slot. Out-of-range slots are a caller
// bug and panic.
func (inv *Inventory) Get(slot int) *Entity {
	if slot < 0 || slot >= len(inv.items) {
		panic(fmt.Sprintf("entity: inventory slot %d out of range (have %d items)", slot, len(inv.items)))
	}
	return inv.items[slot]
}

// Remove deletes and returns the item in the given slot.
func (inv *Inventory) Remove(slot int) *Entity {
	item := inv.Get(slot)
	inv.items = append(inv.items[:slot], inv.items[slot+1:]...)
	return item
}

// Items returns the carried items in slot order.
func (inv *Inventory) Items() []*Entity {
	return inv.items
}

// EquippedInSlot returns the index of the equipped item occupying the given
// body slot, or -1.
func (inv *Inventory) EquippedInSlot(slot gamedata.EquipSlot) int {
	for i, item := range inv.items {
		if item.Equipment != nil && item.Equipment.Equipped && item.Equipment.Slot == slot {
			return i
		}
	}
	return -1
}

func (inv *Inventory) maxHPBonus() int {
	total := 0
	if inv == nil {
		return 0
	}
	for _, item := range inv.items {
		if item.Equipment != nil && item.Equipment.Equipped {
			total += item.Equipment.MaxHPBonus
		}
	}
	return total
}

func (inv *Inventory) powerBonus() int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, item := range inv.items {
		if item.Equipment != nil && item.Equipment.Equipped {
			total += item.Equipment.PowerBonus
		}
	}
	return total
}

func (inv *Inventory) defenseBonus() int {
	if inv == nil {
		return 0
	}
	total := 0
	for _, item := range inv.items {
		if item.Equipment != nil && item.Equipment.Equipped {
			total += item.Equipment.DefenseBonus
		}
	}
	return total
}
