package invalid

// Box is generic.
//
// +updateobject:generate
type Box[T any] struct {
	Value T
}

// Level is not a struct.
//
// +updateobject:generate
type Level int

// Plain carries no marker.
type Plain struct {
	Name string
}

type (
	// Grouped is declared in a parenthesized block.
	// +updateobject:generate:visibility=private
	Grouped struct {
		Ch   chan int
		Name string `update:"required,omitempty"`
	}
)
