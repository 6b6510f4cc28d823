package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/underdark/internal/entity"
	"github.com/samdwyer/underdark/internal/gamedata"
	"github.com/samdwyer/underdark/internal/telemetry"
)

// GenParams are the generator tuning numbers, passed explicitly so generation
// is testable in isolation.
type GenParams struct {
	MapWidth    int
	MapHeight   int
	MaxRooms    int // placement attempts, not a guaranteed count
	RoomMinSize int
	RoomMaxSize int

	MaxTorchesPerRoom int
	TorchRadius       int
}

// Generate carves a fresh dungeon floor and populates it. The store is
// truncated to the player, who is moved to the first accepted room's center;
// monsters, items, torches and the stairway are appended behind the player.
func Generate(ctx context.Context, params GenParams, rng *rand.Rand, store *entity.Store,
	monsters *gamedata.MonsterRegistry, items *gamedata.ItemRegistry, dungeonLevel int) *Level {

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "level.generate")
	defer span.End()

	startTime := time.Now()

	level := NewLevel(params.MapWidth, params.MapHeight)
	store.Reset()

	for i := 0; i < params.MaxRooms; i++ {
		w := params.RoomMinSize + rng.Intn(params.RoomMaxSize-params.RoomMinSize+1)
		h := params.RoomMinSize + rng.Intn(params.RoomMaxSize-params.RoomMinSize+1)
		x := rng.Intn(params.MapWidth - w)
		y := rng.Intn(params.MapHeight - h)

		candidate := Room{X: x, Y: y, Width: w, Height: h}

		// Rejected candidates are skipped, not retried.
		overlaps := false
		for _, other := range level.Rooms {
			if candidate.Intersects(other) {
				overlaps = true
				break
			}
		}
		if overlaps {
			continue
		}

		level.carveRoom(candidate)
		populateRoom(candidate, level, rng, store, monsters, items, params, dungeonLevel)

		cx, cy := candidate.Center()
		if len(level.Rooms) == 0 {
			store.Player().SetPos(cx, cy)
		} else {
			px, py := level.Rooms[len(level.Rooms)-1].Center()
			if rng.Intn(2) == 0 {
				level.carveHTunnel(px, cx, py)
				level.carveVTunnel(py, cy, cx)
			} else {
				level.carveVTunnel(py, cy, px)
				level.carveHTunnel(px, cx, cy)
			}
		}

		level.Rooms = append(level.Rooms, candidate)
	}

	// Stairway down sits at the center of the last accepted room.
	sx, sy := level.Rooms[len(level.Rooms)-1].Center()
	store.Add(entity.NewStairs(sx, sy))

	span.SetAttributes(
		attribute.Int("level.depth", dungeonLevel),
		attribute.Int("level.room_count", len(level.Rooms)),
		attribute.Int("level.entity_count", store.Len()),
		attribute.Int64("level.generation_us", time.Since(startTime).Microseconds()),
	)

	return level
}

// IsBlocked reports whether the tile is impassable for movement: either the
// tile itself blocks or a blocking entity occupies it.
func IsBlocked(level *Level, store *entity.Store, x, y int) bool {
	if level.IsBlocked(x, y) {
		return true
	}
	return store.BlockingAt(x, y)
}

// carveRoom opens the interior of the room, leaving its outermost ring as
// wall so adjacent rooms keep a 1-tile border.
func (l *Level) carveRoom(room Room) {
	for y := room.Y + 1; y < room.Y+room.Height; y++ {
		for x := room.X + 1; x < room.X+room.Width; x++ {
			l.Tiles[y][x] = FloorTile()
		}
	}
}

// carveHTunnel opens a horizontal corridor, both endpoints included.
func (l *Level) carveHTunnel(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		if l.InBounds(x, y) {
			l.Tiles[y][x] = FloorTile()
		}
	}
}

// carveVTunnel opens a vertical corridor, both endpoints included.
func (l *Level) carveVTunnel(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		if l.InBounds(x, y) {
			l.Tiles[y][x] = FloorTile()
		}
	}
}

// randomSpotIn draws a random interior coordinate of the room.
func randomSpotIn(room Room, rng *rand.Rand) (int, int) {
	x := room.X + 1 + rng.Intn(room.Width-1)
	y := room.Y + 1 + rng.Intn(room.Height-1)
	return x, y
}

// populateRoom rolls monster, item and torch counts from the depth tables and
// places each on an unoccupied open tile. Occupied or blocked candidate tiles
// are skipped, so realized counts may fall below the roll.
func populateRoom(room Room, level *Level, rng *rand.Rand, store *entity.Store,
	monsters *gamedata.MonsterRegistry, items *gamedata.ItemRegistry, params GenParams, dungeonLevel int) {

	numMonsters := rng.Intn(monsters.MaxPerRoom(dungeonLevel) + 1)
	for i := 0; i < numMonsters; i++ {
		x, y := randomSpotIn(room, rng)
		if IsBlocked(level, store, x, y) {
			continue
		}
		def := monsters.PickRandom(rng, dungeonLevel)
		if def == nil {
			continue
		}
		store.Add(entity.NewMonster(def, x, y))
	}

	numItems := rng.Intn(items.MaxPerRoom(dungeonLevel) + 1)
	for i := 0; i < numItems; i++ {
		x, y := randomSpotIn(room, rng)
		if IsBlocked(level, store, x, y) {
			continue
		}
		def := items.PickRandom(rng, dungeonLevel)
		if def == nil {
			continue
		}
		store.Add(entity.NewItem(def, x, y))
	}

	numTorches := rng.Intn(params.MaxTorchesPerRoom + 1)
	for i := 0; i < numTorches; i++ {
		x, y := randomSpotIn(room, rng)
		if IsBlocked(level, store, x, y) {
			continue
		}
		store.Add(entity.NewTorch(x, y, params.TorchRadius))
	}
}
