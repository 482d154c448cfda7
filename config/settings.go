package config

// Biome tags a run for presentation. It has no effect on simulation rules.
type Biome string

const (
	BiomeForest  Biome = "forest"
	BiomeSavanna Biome = "savanna"
)

// Settings is the per-run configuration handed to the engine when a run starts.
// It is read-only for the lifetime of the run.
type Settings struct {
	GrassSpawnRate  float64 `yaml:"grass_spawn_rate" json:"grass_spawn_rate"`
	InsectSpawnRate float64 `yaml:"insect_spawn_rate" json:"insect_spawn_rate"`

	InitialSmallCarnivores int `yaml:"initial_small_carnivores" json:"initial_small_carnivores"`
	InitialBigCarnivores   int `yaml:"initial_big_carnivores" json:"initial_big_carnivores"`
	InitialSmallHerbivores int `yaml:"initial_small_herbivores" json:"initial_small_herbivores"`
	InitialBigHerbivores   int `yaml:"initial_big_herbivores" json:"initial_big_herbivores"`
	InitialScavengers      int `yaml:"initial_scavengers" json:"initial_scavengers"`
	InitialInsectivores    int `yaml:"initial_insectivores" json:"initial_insectivores"`
	LakeCount              int `yaml:"lake_count" json:"lake_count"`

	// Durations in milliseconds
	CarcassFreshness float64 `yaml:"carcass_freshness" json:"carcass_freshness"`
	GrassFreshness   float64 `yaml:"grass_freshness" json:"grass_freshness"`
	InsectLifespan   float64 `yaml:"insect_lifespan" json:"insect_lifespan"`

	MushroomChance   float64 `yaml:"mushroom_chance" json:"mushroom_chance"`
	PeriodicSpawning bool    `yaml:"periodic_spawning" json:"periodic_spawning"`
	GraphicsMode     bool    `yaml:"graphics_mode" json:"graphics_mode"`
	Biome            Biome   `yaml:"biome" json:"biome"`
}

// InitialAnimals returns the total number of animals requested at start.
func (s Settings) InitialAnimals() int {
	return s.InitialSmallCarnivores + s.InitialBigCarnivores +
		s.InitialSmallHerbivores + s.InitialBigHerbivores +
		s.InitialScavengers + s.InitialInsectivores
}

type floatRange struct {
	field    string
	value    *float64
	min, max float64
}

type intRange struct {
	field    string
	value    *int
	min, max int
}

// Normalize clamps every field to the range the settings screen allows and
// returns the names of the fields it changed.
func (s *Settings) Normalize() []string {
	var clamped []string

	floats := []floatRange{
		{"grass_spawn_rate", &s.GrassSpawnRate, 0.1, 1},
		{"insect_spawn_rate", &s.InsectSpawnRate, 0.1, 1},
		{"grass_freshness", &s.GrassFreshness, 5000, 30000},
		{"insect_lifespan", &s.InsectLifespan, 3000, 20000},
		{"carcass_freshness", &s.CarcassFreshness, 5000, 20000},
		{"mushroom_chance", &s.MushroomChance, 0, 1},
	}
	for _, r := range floats {
		if v := min(max(*r.value, r.min), r.max); v != *r.value {
			*r.value = v
			clamped = append(clamped, r.field)
		}
	}

	ints := []intRange{
		{"initial_small_carnivores", &s.InitialSmallCarnivores, 0, 10},
		{"initial_big_carnivores", &s.InitialBigCarnivores, 0, 5},
		{"initial_small_herbivores", &s.InitialSmallHerbivores, 0, 15},
		{"initial_big_herbivores", &s.InitialBigHerbivores, 0, 8},
		{"initial_insectivores", &s.InitialInsectivores, 0, 10},
		{"initial_scavengers", &s.InitialScavengers, 0, 8},
		{"lake_count", &s.LakeCount, 1, 5},
	}
	for _, r := range ints {
		if v := min(max(*r.value, r.min), r.max); v != *r.value {
			*r.value = v
			clamped = append(clamped, r.field)
		}
	}

	if s.Biome != BiomeForest && s.Biome != BiomeSavanna {
		s.Biome = BiomeForest
		clamped = append(clamped, "biome")
	}

	return clamped
}
