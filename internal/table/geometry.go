package table

import "math"

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min Vec2 `json:"min"`
	Max Vec2 `json:"max"`
}

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// WallSpec describes one static wall of the layout.
type WallSpec struct {
	Name    string
	Kind    Kind
	Segment Segment
}

// Layout holds the static geometry of a board: boundary walls, the pocket
// cup and the area bodies may be spawned in.
type Layout struct {
	Width    float64    `json:"width"`
	Height   float64    `json:"height"`
	Walls    []WallSpec `json:"-"`
	PlayArea Rect       `json:"play_area"`
	Pocket   Rect       `json:"pocket"`
}

// StandardLayout builds the default board: a box with a pocket cut into the
// floor at the center. The pocket has two side walls that only contain
// bodies physically and an entry wall lining the bottom of the cup; touching
// the entry wall means the body is in.
func StandardLayout(width, height float64) Layout {
	w, h := width, height
	pocketHalf := w * 0.08
	pocketDepth := h * 0.12
	floor := h - pocketDepth
	cx := w / 2

	walls := []WallSpec{
		{"ceiling", KindWall, Segment{NewVec2(0, 0), NewVec2(w, 0)}},
		{"left", KindWall, Segment{NewVec2(0, 0), NewVec2(0, floor)}},
		{"right", KindWall, Segment{NewVec2(w, 0), NewVec2(w, floor)}},
		{"floor_left", KindWall, Segment{NewVec2(0, floor), NewVec2(cx-pocketHalf, floor)}},
		{"floor_right", KindWall, Segment{NewVec2(cx+pocketHalf, floor), NewVec2(w, floor)}},
		{"pocket_left", KindWall, Segment{NewVec2(cx-pocketHalf, floor), NewVec2(cx-pocketHalf, h)}},
		{"pocket_right", KindWall, Segment{NewVec2(cx+pocketHalf, floor), NewVec2(cx+pocketHalf, h)}},
		{"pocket_entry", KindEntryWall, Segment{NewVec2(cx-pocketHalf, h), NewVec2(cx+pocketHalf, h)}},
	}

	margin := w * 0.04
	return Layout{
		Width:  w,
		Height: h,
		Walls:  walls,
		PlayArea: Rect{
			Min: NewVec2(margin, margin),
			Max: NewVec2(w-margin, floor-margin),
		},
		Pocket: Rect{
			Min: NewVec2(cx-pocketHalf, floor),
			Max: NewVec2(cx+pocketHalf, h),
		},
	}
}

// Center returns the midpoint of the segment.
func (s Segment) Center() Vec2 {
	return NewVec2((s.A.X+s.B.X)/2, (s.A.Y+s.B.Y)/2)
}

// distanceToSegment returns the shortest distance from p to the segment.
func distanceToSegment(p Vec2, s Segment) float64 {
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-s.A.X, p.Y-s.A.Y)
	}

	t := ((p.X-s.A.X)*dx + (p.Y-s.A.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	px := s.A.X + t*dx
	py := s.A.Y + t*dy
	return math.Hypot(p.X-px, p.Y-py)
}

// circleTouchesSegment reports whether a circle overlaps the segment,
// including the tangent case.
func circleTouchesSegment(center Vec2, radius float64, s Segment) bool {
	return distanceToSegment(center, s) <= radius
}
