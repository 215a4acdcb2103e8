package game

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/playpool/pocketball/internal/ranking"
	"github.com/playpool/pocketball/internal/table"
)

const testSettle = 50 * time.Millisecond

// fakeScheduler is a manual clock. run executes one loop phase including
// its deferred closures; advance fires due timers in order.
type fakeScheduler struct {
	now      time.Duration
	deferred []func()
	timers   []*fakeTimer
}

type fakeTimer struct {
	at        time.Duration
	seq       int
	fn        func()
	cancelled bool
	fired     bool
}

func (s *fakeScheduler) Defer(fn func()) {
	s.deferred = append(s.deferred, fn)
}

func (s *fakeScheduler) After(d time.Duration, fn func()) func() {
	t := &fakeTimer{at: s.now + d, seq: len(s.timers), fn: fn}
	s.timers = append(s.timers, t)
	return func() { t.cancelled = true }
}

func (s *fakeScheduler) run(fn func()) {
	fn()
	s.flush()
}

func (s *fakeScheduler) flush() {
	for len(s.deferred) > 0 {
		fn := s.deferred[0]
		s.deferred = s.deferred[1:]
		fn()
	}
}

func (s *fakeScheduler) advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.now = next.at
		next.fired = true
		s.run(next.fn)
	}
	s.now = target
}

func (s *fakeScheduler) nextDue(target time.Duration) *fakeTimer {
	var due []*fakeTimer
	for _, t := range s.timers {
		if !t.fired && !t.cancelled && t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at == due[j].at {
			return due[i].seq < due[j].seq
		}
		return due[i].at < due[j].at
	})
	return due[0]
}

// slowRemovalScheduler turns end-of-phase deferrals into delayed timers to
// simulate removals that land after the settle delay.
type slowRemovalScheduler struct {
	*fakeScheduler
	delay time.Duration
}

func (s slowRemovalScheduler) Defer(fn func()) {
	s.fakeScheduler.After(s.delay, fn)
}

type recordingUI struct {
	rounds    []RoundStats
	matches   []MatchScore
	turns     []Player
	summaries []MatchSummary
	rankings  [][]ranking.Entry
	explosion []table.Vec2
	notices   []string
}

func (u *recordingUI) UpdateRoundScore(s RoundStats)        { u.rounds = append(u.rounds, s) }
func (u *recordingUI) UpdateMatchScore(s MatchScore)        { u.matches = append(u.matches, s) }
func (u *recordingUI) UpdateTurn(p Player)                  { u.turns = append(u.turns, p) }
func (u *recordingUI) ShowMatchSummary(s MatchSummary)      { u.summaries = append(u.summaries, s) }
func (u *recordingUI) ShowExplosion(_, dir table.Vec2)      { u.explosion = append(u.explosion, dir) }
func (u *recordingUI) ShowNotice(msg string)                { u.notices = append(u.notices, msg) }
func (u *recordingUI) ShowRanking(_ ranking.Board, _ int, e []ranking.Entry) {
	u.rankings = append(u.rankings, e)
}

type recordingAudio struct {
	sounds []string
}

func (a *recordingAudio) PlaySound(name string, _ float64) {
	a.sounds = append(a.sounds, name)
}

func (a *recordingAudio) count(name string) int {
	n := 0
	for _, s := range a.sounds {
		if s == name {
			n++
		}
	}
	return n
}

type harness struct {
	t        *testing.T
	world    *table.World
	ui       *recordingUI
	audio    *recordingAudio
	sched    *fakeScheduler
	rankings *ranking.Manager
	gm       *GameManager
	det      *Detector
	entry    table.Body
	side     table.Body
	removed  map[int]int
	resets   int
}

func newHarness(t *testing.T, bodies int) *harness {
	return newHarnessWith(t, bodies, &fakeScheduler{}, nil)
}

func newHarnessWith(t *testing.T, bodies int, clock *fakeScheduler, sched Scheduler) *harness {
	t.Helper()
	if sched == nil {
		sched = clock
	}
	h := &harness{
		t:        t,
		world:    table.NewWorld(table.StandardLayout(800, 600)),
		ui:       &recordingUI{},
		audio:    &recordingAudio{},
		sched:    clock,
		rankings: ranking.NewManager(ranking.NewMemoryStore()),
		removed:  make(map[int]int),
	}
	h.world.SetRemoveListener(func(b table.Body) { h.removed[b.ID]++ })

	for _, b := range h.world.Bodies() {
		switch {
		case b.Kind == table.KindEntryWall:
			h.entry = b
		case b.Name == "pocket_left":
			h.side = b
		}
	}

	h.gm = NewGameManager(Deps{
		World:     h.world,
		UI:        h.ui,
		Audio:     h.audio,
		Scheduler: sched,
		Rankings:  h.rankings,
	}, Options{SettleDelay: testSettle, Context: context.Background()})

	h.gm.SetBoardReset(func() {
		h.resets++
		h.world.ClearDynamic()
		for i := 0; i < bodies; i++ {
			h.world.Add(table.Body{
				Kind:     table.KindPlayBody,
				Position: table.NewVec2(100+float64(i)*80, 200),
				Radius:   20,
			})
		}
		h.gm.SetInitialBodyCount(h.world.CountPlayBodies())
	})
	h.det = NewDetector(h.world, h.gm, h.ui, h.audio, sched)
	return h
}

func (h *harness) start(mode Mode, matchLength int) {
	h.t.Helper()
	var err error
	h.sched.run(func() { err = h.gm.SelectMode(mode, matchLength) })
	if err != nil {
		h.t.Fatalf("SelectMode: %v", err)
	}
}

func (h *harness) playBodies() []table.Body {
	var out []table.Body
	for _, b := range h.world.Bodies() {
		if b.Scorable() {
			out = append(out, b)
		}
	}
	return out
}

func (h *harness) attempt(count int) AttemptToken {
	var tok AttemptToken
	h.sched.run(func() { tok = h.gm.RegisterAttempt(count) })
	return tok
}

// pocket reports the body touching the entry wall in one collision batch.
func (h *harness) pocket(id int) {
	h.sched.run(func() {
		h.det.HandleCollisionStart([]table.Contact{{
			BodyA:  h.entry.ID,
			BodyB:  id,
			Normal: table.NewVec2(0, -1),
		}})
	})
}

// clearBoard pockets the remaining bodies one attempt each and lets the
// round end check run.
func (h *harness) clearBoard() {
	for _, b := range h.playBodies() {
		h.attempt(1)
		h.pocket(b.ID)
		h.sched.advance(2 * testSettle)
	}
}
