package event

import "time"

// TransitionKind says which way a wall moved between two generations.
type TransitionKind string

const (
	// Eroded: the edge was a wall in the previous generation and is open now.
	Eroded TransitionKind = "eroded"
	// Raised: the edge was open in the previous generation and is a wall now.
	Raised TransitionKind = "raised"
)

// Point is a world-space coordinate handed to effect consumers.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Transition is the payload of one "trigger transition effect for this edge" call.
type Transition struct {
	ID         string         `json:"id"`
	Generation string         `json:"generation"`
	From       int            `json:"from"`
	To         int            `json:"to"`
	Kind       TransitionKind `json:"kind"`
	Midpoint   Point          `json:"midpoint"`
	OccurredAt time.Time      `json:"occurred_at"`
}
