// Package telemetry provides population statistics, run results, ecosystem
// health scoring and experiment output.
package telemetry

import "github.com/pthm-cable/ecosim/components"

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota // offspring from mating
	EventSpawn                  // periodic or initial spawn
	EventDeath
	EventMeal
	EventDrink
	EventMating
	EventPlacementFallback
)

// DeathCause says why an entity left the world.
type DeathCause uint8

const (
	CauseNone DeathCause = iota
	CauseOldAge
	CauseStarvation
	CauseDehydration
	CausePredation
	CausePoisoning
)

func (c DeathCause) String() string {
	switch c {
	case CauseOldAge:
		return "old_age"
	case CauseStarvation:
		return "starvation"
	case CauseDehydration:
		return "dehydration"
	case CausePredation:
		return "predation"
	case CausePoisoning:
		return "poisoning"
	default:
		return "none"
	}
}

// Event represents a single telemetry event.
type Event struct {
	Type  EventType
	Kind  components.Kind
	Cause DeathCause
}

// NewBirthEvent creates a birth event.
func NewBirthEvent(kind components.Kind) Event {
	return Event{Type: EventBirth, Kind: kind}
}

// NewSpawnEvent creates a spawn event.
func NewSpawnEvent(kind components.Kind) Event {
	return Event{Type: EventSpawn, Kind: kind}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(kind components.Kind, cause DeathCause) Event {
	return Event{Type: EventDeath, Kind: kind, Cause: cause}
}

// NewMealEvent records kind eating something.
func NewMealEvent(kind components.Kind) Event {
	return Event{Type: EventMeal, Kind: kind}
}

// NewDrinkEvent records kind drinking.
func NewDrinkEvent(kind components.Kind) Event {
	return Event{Type: EventDrink, Kind: kind}
}

// NewMatingEvent records kind choosing a mate.
func NewMatingEvent(kind components.Kind) Event {
	return Event{Type: EventMating, Kind: kind}
}

// NewPlacementFallbackEvent records a placement that ended at the (0, 0) fallback.
func NewPlacementFallbackEvent(kind components.Kind) Event {
	return Event{Type: EventPlacementFallback, Kind: kind}
}
