package game

import (
	"log"

	"github.com/playpool/pocketball/internal/table"
)

// Scorer is the part of the game the detector reports pocketed bodies to.
// GameManager implements it.
type Scorer interface {
	FirstAttemptMade() bool
	CurrentAttempt() AttemptToken
	Score(tok AttemptToken, points int) bool
	HandlePrematurePocketing(bodyID int)
	RequestRoundEndCheck(tok AttemptToken)
}

// upwardBias is added to the explosion direction so the burst always
// leaves the pocket through its mouth.
var upwardBias = table.NewVec2(0, -0.6)

// Detector turns collision-start batches into scores and body removals.
type Detector struct {
	world  World
	scorer Scorer
	ui     UI
	audio  Audio
	sched  Scheduler
	volume float64

	// bodies whose removal is already deferred
	pending map[int]struct{}
}

func NewDetector(world World, scorer Scorer, ui UI, audio Audio, sched Scheduler) *Detector {
	return &Detector{
		world:   world,
		scorer:  scorer,
		ui:      ui,
		audio:   audio,
		sched:   sched,
		volume:  0.8,
		pending: make(map[int]struct{}),
	}
}

// HandleCollisionStart processes one collision-start batch and returns how
// many bodies were pocketed. Removals run once the current loop phase ends.
func (d *Detector) HandleCollisionStart(pairs []table.Contact) int {
	pocketed := 0
	for _, c := range pairs {
		if d.handleContact(c) {
			pocketed++
		}
	}
	return pocketed
}

func (d *Detector) handleContact(c table.Contact) bool {
	a, okA := d.world.Body(c.BodyA)
	b, okB := d.world.Body(c.BodyB)
	if !okA || !okB {
		return false
	}

	// normal is made to point from the wall toward the other body
	var wall, body table.Body
	var normal table.Vec2
	switch {
	case a.Kind.IsPocketWall():
		wall, body, normal = a, b, c.Normal
	case b.Kind.IsPocketWall():
		wall, body, normal = b, a, c.Normal.Invert()
	default:
		return false
	}

	if body.Static {
		return false
	}
	if body.Kind != table.KindPlayBody {
		return false
	}
	if wall.Kind != table.KindEntryWall {
		return false
	}

	if !d.scorer.FirstAttemptMade() {
		d.scorer.HandlePrematurePocketing(body.ID)
		return false
	}

	if _, ok := d.pending[body.ID]; ok {
		return false
	}
	d.pending[body.ID] = struct{}{}

	dir := explosionDirection(normal, wallCenter(wall), body.Position)
	d.ui.ShowExplosion(body.Position, dir)
	if d.audio != nil {
		d.audio.PlaySound(SoundPocket, d.volume)
	}

	tok := d.scorer.CurrentAttempt()
	id := body.ID
	d.sched.Defer(func() {
		d.removePocketed(id, tok)
	})

	d.scorer.Score(tok, 1)
	return true
}

func (d *Detector) removePocketed(id int, tok AttemptToken) {
	delete(d.pending, id)
	if !d.world.Has(id) {
		log.Printf("[DETECTOR] Body %d already removed", id)
		return
	}
	if !d.world.Remove(id) {
		log.Printf("[DETECTOR] Body %d vanished during removal", id)
		return
	}
	if d.world.CountPlayBodies() == 0 {
		d.scorer.RequestRoundEndCheck(tok)
	}
}

// Pending reports whether a removal is queued for the body.
func (d *Detector) Pending(id int) bool {
	_, ok := d.pending[id]
	return ok
}

func wallCenter(w table.Body) table.Vec2 {
	if w.Segment != nil {
		return w.Segment.Center()
	}
	return w.Position
}

// explosionDirection flips the contact normal so it points away from the
// pocket wall, biases it upward and normalizes it.
func explosionDirection(normal, pocket, body table.Vec2) table.Vec2 {
	away := body.Minus(pocket)
	if !away.IsZero() && normal.Dot(away) < 0 {
		normal = normal.Invert()
	}
	dir := normal.Normalize().Plus(upwardBias)
	if dir.IsZero() {
		return table.NewVec2(0, -1)
	}
	return dir.Normalize()
}
