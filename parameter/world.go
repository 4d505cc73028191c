package parameter

// World - chunked storage and generation
const (
	// TileSize is the tile edge length in world pixels
	TileSize = 16

	// ChunkSize is the chunk edge length in tiles
	ChunkSize = 32

	// WorldWallDensity is the probability of a generated wall per eligible tile
	WorldWallDensity = 0.2

	// WorldSafeMargin keeps local rows/columns 0..WorldSafeMargin of each chunk free of walls
	WorldSafeMargin = 2

	// WorldSpawnChunkRadius is the chunk radius generated around the goal
	WorldSpawnChunkRadius = 2

	// WorldSeed is the default generation seed
	WorldSeed = 0x5eed
)

// Simulation
const (
	// TickRate is the fixed simulation rate in ticks per second
	TickRate = 60

	// AgentSpeed is the default follower speed in world pixels per second
	AgentSpeed = 48.0

	// AgentArrivalDistance snaps a follower onto the tile centre when closer than this (pixels)
	AgentArrivalDistance = TileSize * 0.25

	// SimFollowers is the default follower count spawned by the simulation commands
	SimFollowers = 16
)
