package components

import "fmt"

// Kind identifies an entity type. The set is closed: every attribute that
// depends on the type lives in kindTable.
type Kind uint8

const (
	KindGrass Kind = iota
	KindSeedling
	KindPlant
	KindPoisonousPlant
	KindTree
	KindDeadTree
	KindLog
	KindLitter
	KindMushroom
	KindInsect
	KindInsectivore
	KindSmallCarnivore
	KindBigCarnivore
	KindSmallHerbivore
	KindBigHerbivore
	KindScavenger
	KindCarcass
	KindFaeces
	KindLake

	numKinds
)

// Category is the coarse classification of a kind.
type Category uint8

const (
	CategoryPlant Category = iota
	CategoryAnimal
	CategoryOther
)

// Size is the edge class of an entity's square bounding box.
type Size uint8

const (
	SizeSmall Size = iota
	SizeStandard
	SizeBig
)

// Edge returns the bounding box edge length in world units.
func (s Size) Edge() float64 {
	switch s {
	case SizeSmall:
		return 24
	case SizeBig:
		return 72
	default:
		return 48
	}
}

func (s Size) String() string {
	switch s {
	case SizeSmall:
		return "small"
	case SizeBig:
		return "big"
	default:
		return "standard"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Size) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (c Category) String() string {
	switch c {
	case CategoryPlant:
		return "plant"
	case CategoryAnimal:
		return "animal"
	default:
		return "other"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// Lifespan sources: where a kind's maximum age comes from.
type LifespanSource uint8

const (
	LifespanNone    LifespanSource = iota // never expires
	LifespanFixed                         // KindInfo.FixedLifespan
	LifespanGrass                         // settings.grass_freshness
	LifespanCarcass                       // settings.carcass_freshness
	LifespanInsect                        // settings.insect_lifespan
)

// KindSet is a bitset of kinds.
type KindSet uint32

// SetOf builds a KindSet from kinds.
func SetOf(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether k is in the set.
func (s KindSet) Has(k Kind) bool { return s&(1<<k) != 0 }

// Empty reports whether the set has no members.
func (s KindSet) Empty() bool { return s == 0 }

// KindInfo holds the default attributes of a kind.
type KindInfo struct {
	Name          string
	Category      Category
	Size          Size
	FoodValue     int
	CanWalkOver   bool
	Renewable     bool
	Speed         float64
	Lifespan      LifespanSource
	FixedLifespan float64 // ms, for LifespanFixed
	AvoidLakes    bool    // placement keeps clear of lakes
	NeedsWater    bool    // seeks lakes when thirsty
	Diet          KindSet
	Threats       KindSet // kinds this one flees from
}

var (
	carnivores = SetOf(KindSmallCarnivore, KindBigCarnivore)
	grazing    = SetOf(KindGrass, KindSeedling, KindPlant, KindPoisonousPlant, KindMushroom)
)

var kindTable = [numKinds]KindInfo{
	KindGrass:          {Name: "grass", Category: CategoryPlant, Size: SizeStandard, FoodValue: 1, CanWalkOver: true, Lifespan: LifespanGrass},
	KindSeedling:       {Name: "seedling", Category: CategoryPlant, Size: SizeStandard, FoodValue: 1, CanWalkOver: true, Lifespan: LifespanGrass},
	KindPlant:          {Name: "plant", Category: CategoryPlant, Size: SizeStandard, FoodValue: 2, CanWalkOver: true, Lifespan: LifespanGrass},
	KindPoisonousPlant: {Name: "poisonous_plant", Category: CategoryPlant, Size: SizeStandard, FoodValue: 2, CanWalkOver: true, Lifespan: LifespanGrass},
	KindTree:           {Name: "tree", Category: CategoryPlant, Size: SizeBig, FoodValue: 5, Renewable: true, Lifespan: LifespanGrass},
	KindDeadTree:       {Name: "dead_tree", Category: CategoryPlant, Size: SizeBig, Lifespan: LifespanGrass},
	KindLog:            {Name: "log", Category: CategoryPlant, Size: SizeStandard, Lifespan: LifespanGrass},
	KindLitter:         {Name: "litter", Category: CategoryPlant, Size: SizeStandard, CanWalkOver: true, Lifespan: LifespanGrass},
	KindMushroom:       {Name: "mushroom", Category: CategoryPlant, Size: SizeStandard, FoodValue: 2, CanWalkOver: true, Lifespan: LifespanGrass},

	KindInsect: {Name: "insect", Category: CategoryAnimal, Size: SizeSmall, FoodValue: 1, CanWalkOver: true, Speed: 1, Lifespan: LifespanInsect},
	KindInsectivore: {
		Name: "insectivore", Category: CategoryAnimal, Size: SizeStandard, FoodValue: 2, CanWalkOver: true, Speed: 2,
		Lifespan: LifespanFixed, FixedLifespan: 120000, AvoidLakes: true, NeedsWater: true,
		Diet: SetOf(KindInsect), Threats: SetOf(KindSmallCarnivore),
	},
	KindSmallCarnivore: {
		Name: "small_carnivore", Category: CategoryAnimal, Size: SizeStandard, FoodValue: 3, CanWalkOver: true, Speed: 2,
		Lifespan: LifespanFixed, FixedLifespan: 180000, AvoidLakes: true, NeedsWater: true,
		Diet: SetOf(KindInsect, KindInsectivore, KindSmallHerbivore),
	},
	// Apex: nothing hunts it, so it carries no food value.
	KindBigCarnivore: {
		Name: "big_carnivore", Category: CategoryAnimal, Size: SizeBig, CanWalkOver: true, Speed: 2,
		Lifespan: LifespanFixed, FixedLifespan: 240000, AvoidLakes: true, NeedsWater: true,
		Diet: SetOf(KindSmallCarnivore, KindSmallHerbivore, KindBigHerbivore, KindScavenger),
	},
	KindSmallHerbivore: {
		Name: "small_herbivore", Category: CategoryAnimal, Size: SizeStandard, FoodValue: 3, CanWalkOver: true, Speed: 2,
		Lifespan: LifespanFixed, FixedLifespan: 150000, AvoidLakes: true, NeedsWater: true,
		Diet: grazing, Threats: carnivores,
	},
	KindBigHerbivore: {
		Name: "big_herbivore", Category: CategoryAnimal, Size: SizeBig, FoodValue: 5, CanWalkOver: true, Speed: 1,
		Lifespan: LifespanFixed, FixedLifespan: 210000, AvoidLakes: true, NeedsWater: true,
		Diet: grazing | SetOf(KindTree), Threats: carnivores,
	},
	KindScavenger: {
		Name: "scavenger", Category: CategoryAnimal, Size: SizeStandard, FoodValue: 2, CanWalkOver: true, Speed: 1,
		Lifespan: LifespanFixed, FixedLifespan: 90000, AvoidLakes: true, NeedsWater: true,
		Diet: SetOf(KindInsect, KindCarcass),
	},

	KindCarcass: {Name: "carcass", Category: CategoryOther, Size: SizeStandard, CanWalkOver: true, Lifespan: LifespanCarcass},
	KindFaeces:  {Name: "faeces", Category: CategoryOther, Size: SizeSmall, CanWalkOver: true, Lifespan: LifespanCarcass},
	KindLake:    {Name: "lake", Category: CategoryOther, Size: SizeBig},
}

// Kinds returns every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Info returns the static attributes of k.
func (k Kind) Info() KindInfo {
	if k >= numKinds {
		return KindInfo{Name: "unknown", Category: CategoryOther}
	}
	return kindTable[k]
}

func (k Kind) String() string { return k.Info().Name }

// Category returns the kind's category.
func (k Kind) Category() Category { return k.Info().Category }

// IsAnimal reports whether k belongs to the animal category.
func (k Kind) IsAnimal() bool { return k.Category() == CategoryAnimal }

// IsCarnivore reports whether k is a small or big carnivore.
func (k Kind) IsCarnivore() bool { return carnivores.Has(k) }

// IsHerbivore reports whether k is a small or big herbivore.
func (k Kind) IsHerbivore() bool { return k == KindSmallHerbivore || k == KindBigHerbivore }

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k >= numKinds {
		return nil, fmt.Errorf("unknown kind %d", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind returns the kind with the given name.
func ParseKind(name string) (Kind, error) {
	for i := range kindTable {
		if kindTable[i].Name == name {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown kind %q", name)
}
