package systems

// World geometry.
const (
	WorldSize     = 800.0
	LakeFootprint = 48.0 // lakes block with this footprint, not their drawn size
)

// Tick timing, in milliseconds.
const (
	TickRate     = 60
	TickInterval = 1000.0 / TickRate
)

// Vitals. Hunger and thirst grow every tick; crossing a threshold kills.
const (
	HungerPerTick        = TickInterval / 1000
	ThirstPerTick        = TickInterval / 2000
	StarvationThreshold  = 30.0
	DehydrationThreshold = 30.0
)

// Behavior thresholds.
const (
	FeedHunger      = 10.0 // look for food above this
	ForageHunger    = 50.0 // bias wandering towards food above this
	DrinkThirst     = 5.0  // look for water above this
	SeekWaterThirst = 50.0 // bias wandering towards water above this
	MateHunger      = 20.0 // must be below this to mate
	MaturityAge     = 30000.0
)

// Behavior distances, in world units between box centers.
const (
	FleeRadius        = 150.0
	FeedRadius        = 100.0
	EatRange          = 20.0
	DrinkRadius       = 200.0
	DrinkRange        = 78.0
	MateRadius        = 100.0
	MateRange         = 50.0
	ForageRadius      = 300.0
	WaterSearchRadius = 500.0
	WanderMin         = 50.0
	WanderSpan        = 150.0
	ArrivalDistance   = 2.0
	FleeLead          = 200.0
)

// Behavior rates and amounts.
const (
	FleeSpeedFactor      = 1.5
	RetargetChance       = 0.01
	FacingFlipChance     = 0.02
	NutritionPerFood     = 10.0
	DrinkAmount          = 5.0
	FaecesChance         = 0.1
	ReproductionCooldown = 30000.0
	MatingHungerCost     = 5.0
	OffspringHunger      = 25.0
	OffspringJitter      = 30.0
)

// Lifecycle.
const (
	SeedlingTreeChance   = 0.10
	SeedlingPoisonChance = 0.05
	SeedlingPlantChance  = 0.50
	TreeClearance        = 10.0
)

// Periodic spawning.
const (
	GrassSpawnPeriod   = 1500.0 // ms, scaled by settings.grass_spawn_rate
	InsectSpawnPeriod  = 3000.0 // ms, scaled by settings.insect_spawn_rate
	GrassChance        = 0.8
	SeedlingSpread     = 32.0
	MinGrassForSeeding = 10
)

// Placement.
const (
	PlacementAttempts    = 500
	ScanStride           = 10.0
	AnimalPlacementTries = 50
)

// Termination, in elapsed milliseconds.
const (
	TimeLimit       = 600000.0
	ExtinctionGrace = 10000.0
)
