package forestfire

import (
	"fmt"
	"strings"

	"wildfire/internal/weather"
)

// State enumerates cell values. The numeric codes double as render codes.
type State uint8

const (
	Tree State = iota
	Fire
	Burnt
	// Rain only ever appears in composited render buffers, never in the
	// logical grid.
	Rain = State(weather.RainMarker)
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case Tree:
		return "tree"
	case Fire:
		return "fire"
	case Burnt:
		return "burnt"
	case Rain:
		return "rain"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// ParseState accepts a state name or its numeric code.
func ParseState(v string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "tree", "0":
		return Tree, nil
	case "fire", "1":
		return Fire, nil
	case "burnt", "burned", "2":
		return Burnt, nil
	}
	return 0, fmt.Errorf("unknown cell state %q", v)
}
