package game

import "github.com/samdwyer/underdark/internal/world"

// Config holds every gameplay tuning number. It is immutable for the life of
// a session and passed explicitly into the generator and combat resolver.
type Config struct {
	// Map generation.
	MapWidth          int
	MapHeight         int
	MaxRooms          int
	RoomMinSize       int
	RoomMaxSize       int
	MaxTorchesPerRoom int
	TorchRadius       int

	// Visibility.
	FOVLightWalls bool
	FOVRadiusLit  int // player FOV radius while standing on a lit tile
	FOVRadiusDark int // cap the radius grows toward in the dark

	// Player starting stats.
	PlayerHP      int
	PlayerDefense int
	PlayerPower   int

	// Items and spells.
	HealAmount      int
	LightningDamage int
	LightningRange  int
	ConfuseRange    int
	ConfuseTurns    int
	FireballRadius  int
	FireballDamage  int

	// Progression.
	LevelUpBase   int
	LevelUpFactor int
}

// DefaultConfig returns the standard game tuning.
func DefaultConfig() Config {
	return Config{
		MapWidth:          80,
		MapHeight:         43,
		MaxRooms:          30,
		RoomMinSize:       6,
		RoomMaxSize:       10,
		MaxTorchesPerRoom: 1,
		TorchRadius:       2,

		FOVLightWalls: true,
		FOVRadiusLit:  5,
		FOVRadiusDark: 10,

		PlayerHP:      100,
		PlayerDefense: 1,
		PlayerPower:   2,

		HealAmount:      40,
		LightningDamage: 40,
		LightningRange:  5,
		ConfuseRange:    8,
		ConfuseTurns:    10,
		FireballRadius:  3,
		FireballDamage:  25,

		LevelUpBase:   200,
		LevelUpFactor: 150,
	}
}

// genParams extracts the generator's slice of the configuration.
func (c Config) genParams() world.GenParams {
	return world.GenParams{
		MapWidth:          c.MapWidth,
		MapHeight:         c.MapHeight,
		MaxRooms:          c.MaxRooms,
		RoomMinSize:       c.RoomMinSize,
		RoomMaxSize:       c.RoomMaxSize,
		MaxTorchesPerRoom: c.MaxTorchesPerRoom,
		TorchRadius:       c.TorchRadius,
	}
}
