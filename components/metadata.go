package components

import "fmt"

// FieldDescriptor describes an entity field for UI display.
type FieldDescriptor struct {
	ID     string  // Unique identifier
	Label  string  // Display name
	Format string  // Printf format (e.g., "%.2f")
	Min    float64 // Minimum value (for bars)
	Max    float64 // Maximum value (for bars)
	IsBar  bool    // True to render as progress bar
	Group  string  // Logical grouping
}

// Field is a descriptor paired with the value read from one entity.
type Field struct {
	FieldDescriptor
	Value float64
	Text  string
}

// EntityFieldDescriptors returns metadata for fields every entity has.
func EntityFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "id", Label: "ID", Format: "%.0f", Group: "identity"},
		{ID: "age", Label: "Age", Format: "%.1fs", Group: "life"},
		{ID: "max_age", Label: "Lifespan", Format: "%.1fs", Group: "life"},
		{ID: "food_value", Label: "Food", Format: "%.0f", Group: "material"},
	}
}

// VitalsFieldDescriptors returns metadata for animal vitals. The bar maxima are
// the death thresholds.
func VitalsFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "hunger", Label: "Hunger", Format: "%.1f", Min: 0, Max: 30, IsBar: true, Group: "vitals"},
		{ID: "thirst", Label: "Thirst", Format: "%.1f", Min: 0, Max: 30, IsBar: true, Group: "vitals"},
		{ID: "speed", Label: "Speed", Format: "%.1f", Group: "vitals"},
	}
}

// Describe reads the displayable fields of e.
func Describe(e *Entity) []Field {
	values := map[string]float64{
		"id":         float64(e.ID),
		"age":        e.Age / 1000,
		"max_age":    e.MaxAge / 1000,
		"food_value": float64(e.FoodValue),
	}
	descs := EntityFieldDescriptors()
	if !e.Mortal {
		descs = descs[:2]
	}
	if e.Vitals != nil {
		values["hunger"] = e.Vitals.Hunger
		values["thirst"] = e.Vitals.Thirst
		values["speed"] = e.Vitals.Speed
		descs = append(descs, VitalsFieldDescriptors()...)
	}

	fields := make([]Field, 0, len(descs))
	for _, d := range descs {
		v := values[d.ID]
		fields = append(fields, Field{FieldDescriptor: d, Value: v, Text: fmt.Sprintf(d.Format, v)})
	}
	return fields
}
