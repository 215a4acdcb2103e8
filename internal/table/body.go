package table

import "fmt"

// Kind tags a body at creation time. The set is closed: the browser engine
// mirrors the same four categories and never re-tags a body.
type Kind uint8

const (
	KindPlayBody Kind = iota
	KindWall
	KindEntryWall
	KindEffectParticle
)

func (k Kind) String() string {
	switch k {
	case KindPlayBody:
		return "play"
	case KindWall:
		return "wall"
	case KindEntryWall:
		return "entry_wall"
	case KindEffectParticle:
		return "effect"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "play":
		*k = KindPlayBody
	case "wall":
		*k = KindWall
	case "entry_wall":
		*k = KindEntryWall
	case "effect":
		*k = KindEffectParticle
	default:
		return fmt.Errorf("unknown body kind %q", string(b))
	}
	return nil
}

// IsPocketWall reports whether the kind belongs to the pocket or boundary
// walls a body can collide with.
func (k Kind) IsPocketWall() bool {
	return k == KindWall || k == KindEntryWall
}

// Segment is a straight wall between two points.
type Segment struct {
	A Vec2 `json:"a"`
	B Vec2 `json:"b"`
}

// Body is the server-side mirror of a rigid body living in the browser
// physics engine. Sides == 0 means a circle.
type Body struct {
	ID       int      `json:"id"`
	Kind     Kind     `json:"kind"`
	Static   bool     `json:"static"`
	Position Vec2     `json:"position"`
	Radius   float64  `json:"radius,omitempty"`
	Sides    int      `json:"sides,omitempty"`
	Angle    float64  `json:"angle,omitempty"`
	Segment  *Segment `json:"segment,omitempty"`
	Name     string   `json:"name,omitempty"`
}

// Scorable reports whether the body counts toward the live board census.
func (b Body) Scorable() bool {
	return !b.Static && b.Kind != KindEffectParticle
}

// Contact is one pair from a collision-start notification. Normal points
// from BodyA toward BodyB.
type Contact struct {
	BodyA  int  `json:"a"`
	BodyB  int  `json:"b"`
	Normal Vec2 `json:"normal"`
}

// BodyPosition is a position report for a dynamic body.
type BodyPosition struct {
	ID       int  `json:"id"`
	Position Vec2 `json:"position"`
}
