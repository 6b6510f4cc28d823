package entity

import "fmt"

// Store is the indexed arena holding every entity on the active level.
// Index PlayerIndex is always the player.
type Store struct {
	entities []*Entity
}

// NewStore creates a store seeded with the player entity.
func NewStore(player *Entity) *Store {
	return &Store{entities: []*Entity{player}}
}

// Player returns the player entity.
func (s *Store) Player() *Entity {
	return s.entities[PlayerIndex]
}

// Get returns the entity at the given index. Out-of-range indices are a
// caller bug and panic.
func (s *Store) Get(id int) *Entity {
	return s.entities[id]
}

// Len returns the number of entities in the arena.
func (s *Store) Len() int {
	return len(s.entities)
}

// Add appends an entity and returns its index.
func (s *Store) Add(e *Entity) int {
	s.entities = append(s.entities, e)
	return len(s.entities) - 1
}

// Remove deletes the entity at the given index and returns it. The player
// cannot be removed.
func (s *Store) Remove(id int) *Entity {
	if id == PlayerIndex {
		panic("entity: cannot remove the player from the store")
	}
	e := s.entities[id]
	s.entities = append(s.entities[:id], s.entities[id+1:]...)
	return e
}

// Reset truncates the arena to just the player, for level regeneration.
func (s *Store) Reset() {
	s.entities = s.entities[:1]
}

// MutTwo yields two distinct entities from the arena. Equal indices indicate
// a broken caller invariant and panic.
func (s *Store) MutTwo(first, second int) (*Entity, *Entity) {
	if first == second {
		panic(fmt.Sprintf("entity: MutTwo called with aliasing index %d", first))
	}
	return s.entities[first], s.entities[second]
}

// BlockingAt reports whether any blocking entity occupies the tile.
func (s *Store) BlockingAt(x, y int) bool {
	for _, e := range s.entities {
		if e.Blocks && e.X == x && e.Y == y {
			return true
		}
	}
	return false
}

// At returns the indices of all entities on the tile, ascending.
func (s *Store) At(x, y int) []int {
	var ids []int
	for id, e := range s.entities {
		if e.X == x && e.Y == y {
			ids = append(ids, id)
		}
	}
	return ids
}

// FighterAt returns the index of a fighter on the tile, or -1.
func (s *Store) FighterAt(x, y int) int {
	for id, e := range s.entities {
		if e.Fighter != nil && e.X == x && e.Y == y {
			return id
		}
	}
	return -1
}

// All returns the backing slice. Callers must not grow it.
func (s *Store) All() []*Entity {
	return s.entities
}
