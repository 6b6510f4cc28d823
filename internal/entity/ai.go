package entity

// AIKind tags the variant of an AI state.
type AIKind string

const (
	// AIBasic seeks the player and attacks when adjacent.
	AIBasic AIKind = "basic"
	// AIConfused wanders randomly until TurnsLeft runs out, then restores
	// the wrapped previous state.
	AIConfused AIKind = "confused"
)

// AI is the per-entity behavior state. Confused wraps exactly one previous
// state; restoration unwraps fully, so nesting never grows beyond one level.
type AI struct {
	Kind      AIKind
	Previous  *AI // set only while Kind == AIConfused
	TurnsLeft int // remaining confusion turns
}

// Confuse returns a confused state wrapping the given previous state for the
// given duration. Re-confusing an already-confused entity discards the spent
// wrapper and wraps the state beneath it, so the duration re-rolls and the
// nesting depth never exceeds one.
func Confuse(previous *AI, turns int) *AI {
	if previous == nil {
		previous = &AI{Kind: AIBasic}
	}
	if previous.Kind == AIConfused {
		previous = previous.Previous
	}
	return &AI{Kind: AIConfused, Previous: previous, TurnsLeft: turns}
}
