package systems

import (
	"math"

	"github.com/pthm-cable/ecosim/components"
	"github.com/pthm-cable/ecosim/telemetry"
)

var lakes = components.SetOf(components.KindLake)

// Behavior runs the per-tick decision procedure for animals.
type Behavior struct {
	factory   *Factory
	lifecycle *Lifecycle
	rng       Rand
}

// NewBehavior creates a behavior engine.
func NewBehavior(factory *Factory, lifecycle *Lifecycle, rng Rand) *Behavior {
	return &Behavior{factory: factory, lifecycle: lifecycle, rng: rng}
}

// Step advances one animal by one tick. self must be a private copy (see
// Entity.Clone); every other read goes through world, the snapshot taken at
// the start of the tick. Structural edits are staged in ch. Step returns
// false when the animal died during the tick.
func (b *Behavior) Step(world *Snapshot, self *components.Entity, now float64, ch *Changes) bool {
	if self.Vitals == nil || self.Drive == nil {
		return true
	}

	// A successful flee replaces every other activity this tick.
	if b.flee(world, self) {
		return true
	}

	b.wander(world, self)

	if !b.feed(world, self, ch) {
		return false
	}
	b.drink(world, self, ch)
	b.reproduce(world, self, now, ch)
	return true
}

func (b *Behavior) flee(world *Snapshot, self *components.Entity) bool {
	threats := self.Kind.Info().Threats
	if threats.Empty() {
		return false
	}
	threat, dist, ok := world.Nearest(self, FleeRadius, threats, nil)
	if !ok || dist == 0 {
		return false
	}

	sx, sy := self.Center()
	tx, ty := threat.Center()
	ux, uy := (sx-tx)/dist, (sy-ty)/dist
	step := self.Vitals.Speed * FleeSpeedFactor

	nx, ny := self.X+ux*step, self.Y+uy*step
	if !world.IsPositionValid(nx, ny, self.Edge(), []uint64{self.ID}, true) {
		return false
	}
	self.X, self.Y = nx, ny
	cx, cy := self.Center()
	self.Drive.SetTarget(cx+ux*FleeLead, cy+uy*FleeLead)
	return true
}

func (b *Behavior) wander(world *Snapshot, self *components.Entity) {
	d := self.Drive
	if !d.HasTarget || chance(b.rng, RetargetChance) {
		d.SetTarget(b.randomTarget(world, self))
	}
	if chance(b.rng, FacingFlipChance) {
		self.Facing = components.FacingRight
		if chance(b.rng, 0.5) {
			self.Facing = components.FacingLeft
		}
	}

	speed := self.Vitals.Speed
	if speed <= 0 {
		return
	}
	cx, cy := self.Center()
	dx, dy := d.TargetX-cx, d.TargetY-cy
	dist := math.Hypot(dx, dy)
	if dist <= ArrivalDistance {
		d.SetTarget(b.randomTarget(world, self))
		return
	}

	mx, my := dx/dist*speed, dy/dist*speed
	if math.Abs(mx) > math.Abs(my) {
		if mx > 0 {
			self.Facing = components.FacingRight
		} else {
			self.Facing = components.FacingLeft
		}
	}

	nx, ny := self.X+mx, self.Y+my
	if world.IsPositionValid(nx, ny, self.Edge(), []uint64{self.ID}, true) {
		self.X, self.Y = nx, ny
	} else {
		d.SetTarget(b.randomTarget(world, self))
	}
}

// randomTarget picks the next wander goal: visible food when very hungry,
// a lake when very thirsty, otherwise a random point around the animal.
func (b *Behavior) randomTarget(world *Snapshot, self *components.Entity) (float64, float64) {
	info := self.Kind.Info()
	v := self.Vitals

	if v.Hunger > ForageHunger && !info.Diet.Empty() {
		if food, _, ok := world.Nearest(self, ForageRadius, info.Diet, nil); ok {
			return food.Center()
		}
	}
	if info.NeedsWater && v.Thirst > SeekWaterThirst {
		if lake, _, ok := world.Nearest(self, WaterSearchRadius, lakes, nil); ok {
			return lakeCenter(&lake)
		}
	}

	angle := b.rng.Float64() * 2 * math.Pi
	reach := WanderMin + b.rng.Float64()*WanderSpan
	cx, cy := self.Center()
	return cx + math.Cos(angle)*reach, cy + math.Sin(angle)*reach
}

// feed returns false when the meal killed the animal.
func (b *Behavior) feed(world *Snapshot, self *components.Entity, ch *Changes) bool {
	diet := self.Kind.Info().Diet
	if self.Vitals.Hunger <= FeedHunger || diet.Empty() {
		return true
	}

	// Food someone else already claimed this tick is gone.
	unclaimed := func(e *components.Entity) bool { return !ch.Removed(e.ID) }
	food, dist, ok := world.Nearest(self, FeedRadius, diet, unclaimed)
	if !ok {
		return true
	}
	if dist >= EatRange {
		self.Drive.SetTarget(food.Center())
		return true
	}

	self.Vitals.Hunger = max(0, self.Vitals.Hunger-float64(food.FoodValue)*NutritionPerFood)

	if food.Kind == components.KindPoisonousPlant && self.Kind.IsHerbivore() {
		ch.Remove(food.ID)
		b.lifecycle.Apply(world, self, ch, telemetry.CausePoisoning)
		return false
	}

	ch.Record(telemetry.NewMealEvent(self.Kind))
	if food.Renewable {
		return true
	}

	ch.Remove(food.ID)
	if food.IsAnimal() {
		ch.Record(telemetry.NewDeathEvent(food.Kind, telemetry.CausePredation))
		if food.Kind != components.KindInsect {
			ch.Add(b.factory.Carcass(Replacing(&food)))
		}
	}
	if chance(b.rng, FaecesChance) {
		ch.Add(b.factory.Faeces(At(self.X, self.Y)))
	}
	return true
}

func (b *Behavior) drink(world *Snapshot, self *components.Entity, ch *Changes) {
	if !self.Kind.Info().NeedsWater || self.Vitals.Thirst <= DrinkThirst {
		return
	}
	lake, _, ok := world.Nearest(self, DrinkRadius, lakes, nil)
	if !ok {
		return
	}

	lx, ly := lakeCenter(&lake)
	cx, cy := self.Center()
	if distance(cx, cy, lx, ly) < DrinkRange {
		self.Vitals.Thirst = max(0, self.Vitals.Thirst-DrinkAmount)
		ch.Record(telemetry.NewDrinkEvent(self.Kind))
		return
	}
	self.Drive.SetTarget(lx, ly)
}

func readyToMate(e *components.Entity) bool {
	return e.Vitals != nil && e.Vitals.Hunger < MateHunger && e.Age > MaturityAge
}

func (b *Behavior) reproduce(world *Snapshot, self *components.Entity, now float64, ch *Changes) {
	if !readyToMate(self) {
		return
	}

	candidate := func(e *components.Entity) bool { return readyToMate(e) && !ch.Removed(e.ID) }
	partner, dist, ok := world.Nearest(self, MateRadius, components.SetOf(self.Kind), candidate)
	if !ok {
		return
	}
	d := self.Drive
	if dist >= MateRange {
		d.SetTarget(partner.Center())
		return
	}
	if d.HasReproduced && now-d.LastReproduction <= ReproductionCooldown {
		return
	}

	self.Vitals.Hunger += MatingHungerCost
	d.LastReproduction, d.HasReproduced = now, true
	d.ShouldReproduce, d.Partner = true, partner.ID
	ch.Mark(PartnerMark{Partner: partner.ID, From: self.ID})
	ch.Record(telemetry.NewMatingEvent(self.Kind))
}
