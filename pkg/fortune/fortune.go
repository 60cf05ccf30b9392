package fortune

// Fortune is a single id+message record. Values are immutable once handed to
// a caller; writing a new value under the same id replaces the old one.
type Fortune struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// Defaults returns the fortunes every backend process starts with. The ids
// are part of the deployed data contract: an external store seeded by an
// older deployment may overlay any of them.
func Defaults() []Fortune {
	return []Fortune{
		{ID: "1", Message: "A new voyage will fill your life with untold memories."},
		{ID: "2", Message: "The measure of time to your next goal is the measure of your discipline."},
		{ID: "3", Message: "The only way to do well is to do better each day."},
		{ID: "4", Message: "It ain't over till it's EOF."},
	}
}
