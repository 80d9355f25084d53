package model

// CounterFormat selects how a counter value is rendered.
type CounterFormat string

const (
	FormatNumber CounterFormat = "number"
	FormatText   CounterFormat = "text"
	FormatDate   CounterFormat = "date"
)

// CounterDisplay is one labelled metric ready for rendering. Value holds the
// raw upstream value (Count, *string, ...) and may be absent.
type CounterDisplay struct {
	Label  string        `json:"label"`
	Value  any           `json:"value"`
	Format CounterFormat `json:"format"`
}

// PlatformStats groups the counters shown for one lookup.
type PlatformStats struct {
	Platform Platform         `json:"platform"`
	Title    string           `json:"title"`
	Counters []CounterDisplay `json:"counters"`
}
