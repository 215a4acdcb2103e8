package table

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrBoardExhausted is returned when a body cannot be placed within the
// retry budget. It is the one unrecoverable setup failure.
var ErrBoardExhausted = errors.New("no valid board position found")

// ErrNoBodies is returned for a board config that places nothing. Such a
// round could never be cleared.
var ErrNoBodies = errors.New("board needs at least one body")

// BoardConfig controls random board generation.
type BoardConfig struct {
	BodyCount  int
	MinRadius  float64
	MaxRadius  float64
	MinSides   int // polygons get MinSides..MaxSides sides
	MaxSides   int
	Gap        float64
	MaxRetries int // placement attempts per body
}

func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		BodyCount:  5,
		MinRadius:  18,
		MaxRadius:  34,
		MinSides:   3,
		MaxSides:   7,
		Gap:        6,
		MaxRetries: 200,
	}
}

// GenerateBoard produces BodyCount randomly shaped play bodies inside the
// layout's play area, clear of every wall, the pocket and each other.
// Returned bodies have no IDs yet.
func GenerateBoard(rng *rand.Rand, layout Layout, cfg BoardConfig) ([]Body, error) {
	if cfg.BodyCount < 1 {
		return nil, fmt.Errorf("%w: body count %d", ErrNoBodies, cfg.BodyCount)
	}
	if cfg.MaxRadius < cfg.MinRadius {
		cfg.MaxRadius = cfg.MinRadius
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 1
	}

	placed := make([]Body, 0, cfg.BodyCount)
	for i := 0; i < cfg.BodyCount; i++ {
		b, ok := placeBody(rng, layout, cfg, placed)
		if !ok {
			return nil, fmt.Errorf("%w: body %d of %d after %d attempts (area %.0fx%.0f, radius %.0f-%.0f)",
				ErrBoardExhausted, i+1, cfg.BodyCount, cfg.MaxRetries,
				layout.PlayArea.Width(), layout.PlayArea.Height(), cfg.MinRadius, cfg.MaxRadius)
		}
		placed = append(placed, b)
	}
	return placed, nil
}

func placeBody(rng *rand.Rand, layout Layout, cfg BoardConfig, placed []Body) (Body, bool) {
	area := layout.PlayArea
	for attempt := 0; attempt < cfg.MaxRetries; attempt++ {
		radius := cfg.MinRadius + rng.Float64()*(cfg.MaxRadius-cfg.MinRadius)
		if area.Width() < 2*radius || area.Height() < 2*radius {
			continue
		}

		pos := NewVec2(
			area.Min.X+radius+rng.Float64()*(area.Width()-2*radius),
			area.Min.Y+radius+rng.Float64()*(area.Height()-2*radius),
		)
		if !fits(pos, radius, layout, cfg.Gap, placed) {
			continue
		}

		sides := 0
		lo := max(cfg.MinSides, 3)
		if cfg.MaxSides >= lo && rng.Intn(3) > 0 {
			sides = lo + rng.Intn(cfg.MaxSides-lo+1)
		}

		return Body{
			Kind:     KindPlayBody,
			Position: pos,
			Radius:   fix(radius),
			Sides:    sides,
			Angle:    fix(rng.Float64() * 2 * math.Pi),
		}, true
	}
	return Body{}, false
}

func fits(pos Vec2, radius float64, layout Layout, gap float64, placed []Body) bool {
	for _, w := range layout.Walls {
		if circleTouchesSegment(pos, radius+gap, w.Segment) {
			return false
		}
	}
	if layout.Pocket.Contains(pos) {
		return false
	}
	for _, other := range placed {
		if pos.DistanceTo(other.Position) < radius+other.Radius+gap {
			return false
		}
	}
	return true
}
