package gamedata

import "math/rand"

// Transition is one step of a depth-scaled value: Value applies from dungeon
// Level onward, until a later entry overrides it.
type Transition struct {
	Level int `json:"level"`
	Value int `json:"value"`
}

// FromDungeonLevel evaluates a step function of dungeon depth: it returns the
// Value of the last transition whose Level is <= level, or 0 if none match.
// The table must be ordered by ascending Level.
func FromDungeonLevel(table []Transition, level int) int {
	for i := len(table) - 1; i >= 0; i-- {
		if level >= table[i].Level {
			return table[i].Value
		}
	}
	return 0
}

// ChooseWeighted selects an index with probability proportional to its weight.
// Zero-weight entries are never selected. Returns -1 if every weight is zero.
func ChooseWeighted(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return -1
	}

	roll := rng.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return -1
}
