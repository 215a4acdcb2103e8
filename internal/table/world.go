package table

import (
	"log"
	"sort"
	"sync"
)

// World mirrors the bodies living in the browser physics engine. The
// engine owns the simulation; the server owns membership. Bodies are added
// when a board is populated and removed when a pocketing is confirmed.
type World struct {
	layout   Layout
	bodies   map[int]Body
	nextID   int
	onRemove func(Body)
	mu       sync.RWMutex
}

// NewWorld creates a world holding the static walls of the layout.
func NewWorld(layout Layout) *World {
	w := &World{
		layout: layout,
		bodies: make(map[int]Body),
		nextID: 1,
	}

	for _, spec := range layout.Walls {
		seg := spec.Segment
		w.addLocked(Body{
			Kind:     spec.Kind,
			Static:   true,
			Position: seg.Center(),
			Segment:  &seg,
			Name:     spec.Name,
		})
	}
	return w
}

// Layout returns the static geometry the world was built from.
func (w *World) Layout() Layout {
	return w.layout
}

// SetRemoveListener registers fn to be called after a body leaves the world.
// The listener runs outside the world lock.
func (w *World) SetRemoveListener(fn func(Body)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onRemove = fn
}

// Add inserts a body and returns it with its assigned ID.
func (w *World) Add(b Body) Body {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.addLocked(b)
}

func (w *World) addLocked(b Body) Body {
	b.ID = w.nextID
	w.nextID++
	w.bodies[b.ID] = b
	return b
}

// Remove deletes a body. It returns false when the body is already gone.
func (w *World) Remove(id int) bool {
	w.mu.Lock()
	b, ok := w.bodies[id]
	if ok {
		delete(w.bodies, id)
	}
	listener := w.onRemove
	w.mu.Unlock()

	if !ok {
		return false
	}
	if listener != nil {
		listener(b)
	}
	return true
}

// Body looks a body up by ID.
func (w *World) Body(id int) (Body, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	b, ok := w.bodies[id]
	return b, ok
}

// Has reports whether the body is still present.
func (w *World) Has(id int) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.bodies[id]
	return ok
}

// CountPlayBodies returns the number of live non-static, non-effect bodies.
func (w *World) CountPlayBodies() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	n := 0
	for _, b := range w.bodies {
		if b.Scorable() {
			n++
		}
	}
	return n
}

// Move updates the position of a dynamic body reported by the engine.
// Unknown or static bodies are ignored.
func (w *World) Move(id int, pos Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	b, ok := w.bodies[id]
	if !ok || b.Static {
		return
	}
	b.Position = pos
	w.bodies[id] = b
}

// ClearDynamic removes every non-static body without notifying the remove
// listener; the browser rebuilds its board from the next board message.
func (w *World) ClearDynamic() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for id, b := range w.bodies {
		if !b.Static {
			delete(w.bodies, id)
			n++
		}
	}
	if n > 0 {
		log.Printf("[TABLE] Cleared %d dynamic bodies", n)
	}
	return n
}

// Bodies returns a snapshot of all bodies ordered by ID.
func (w *World) Bodies() []Body {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Body, 0, len(w.bodies))
	for _, b := range w.bodies {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
