// Package session composes one playable table: the body mirror, the game
// loop, the game manager and the pocketing detector, with every UI and
// audio update fanned out to the table's websocket room.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/playpool/pocketball/internal/game"
	"github.com/playpool/pocketball/internal/loop"
	"github.com/playpool/pocketball/internal/ranking"
	"github.com/playpool/pocketball/internal/table"
)

// ErrTableClosed is returned by table operations once the table stopped.
var ErrTableClosed = errors.New("table closed")

// Broadcaster delivers a message to every connection watching a table.
type Broadcaster interface {
	BroadcastToTable(tableID string, message interface{})
}

// Config is the per-table setup.
type Config struct {
	Layout         table.Layout
	Board          table.BoardConfig
	SettleDelay    time.Duration
	RankingTimeout time.Duration
	Volume         float64
	MatchLength    int   // used when a mode is selected without a length
	Seed           int64 // 0 picks a time based seed
}

// Table is one running game.
type Table struct {
	ID        string
	CreatedAt time.Time

	cfg      Config
	loop     *loop.Loop
	world    *table.World
	game     *game.GameManager
	detector *game.Detector
	out      Broadcaster
	rng      *rand.Rand
	cancel   context.CancelFunc

	lastActive atomic.Int64
	fatal      atomic.Pointer[string]
	closeOnce  sync.Once
}

// NewTable builds a table and starts its loop. A board is generated once
// up front so a layout that can never be populated fails here instead of
// mid-match.
func NewTable(ctx context.Context, id string, cfg Config, rankings game.Rankings, out Broadcaster) (*Table, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	if _, err := table.GenerateBoard(rng, cfg.Layout, cfg.Board); err != nil {
		return nil, fmt.Errorf("table %s: %w", id, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	t := &Table{
		ID:        id,
		CreatedAt: time.Now(),
		cfg:       cfg,
		loop:      loop.New(256),
		world:     table.NewWorld(cfg.Layout),
		out:       out,
		rng:       rng,
		cancel:    cancel,
	}
	t.touch()

	t.game = game.NewGameManager(game.Deps{
		World:     t.world,
		UI:        t,
		Audio:     t,
		Scheduler: t.loop,
		Rankings:  rankings,
	}, game.Options{
		SettleDelay:    cfg.SettleDelay,
		RankingTimeout: cfg.RankingTimeout,
		Volume:         cfg.Volume,
		Context:        ctx,
	})
	t.detector = game.NewDetector(t.world, t.game, t, t, t.loop)
	t.game.SetBoardReset(t.resetBoard)
	t.world.SetRemoveListener(func(b table.Body) {
		t.broadcast("remove_body", map[string]interface{}{"id": b.ID})
	})

	go t.loop.Run(ctx)
	log.Printf("[TABLE] Table %s created", id)
	return t, nil
}

// Close stops the table loop. It is safe to call more than once.
func (t *Table) Close() {
	t.closeOnce.Do(func() {
		t.cancel()
		t.loop.Stop()
		log.Printf("[TABLE] Table %s closed", t.ID)
	})
}

// Done is closed once the table loop has exited.
func (t *Table) Done() <-chan struct{} {
	return t.loop.Done()
}

// LastActive is the time of the last player or spectator request.
func (t *Table) LastActive() time.Time {
	return time.Unix(0, t.lastActive.Load())
}

func (t *Table) touch() {
	t.lastActive.Store(time.Now().UnixNano())
}

// Fatal returns the unrecoverable error that stopped play, if any.
func (t *Table) Fatal() string {
	if msg := t.fatal.Load(); msg != nil {
		return *msg
	}
	return ""
}

// do runs fn on the table loop and waits for it.
func (t *Table) do(ctx context.Context, fn func()) error {
	t.touch()
	if t.Fatal() != "" {
		return ErrTableClosed
	}
	if err := t.loop.Do(ctx, fn); err != nil {
		if errors.Is(err, loop.ErrStopped) {
			return ErrTableClosed
		}
		return err
	}
	return nil
}

// SelectMode starts a new match in the given mode. A length of zero
// picks the configured default.
func (t *Table) SelectMode(ctx context.Context, mode game.Mode, matchLength int) error {
	if matchLength == 0 && t.cfg.MatchLength > 0 {
		matchLength = t.cfg.MatchLength
	}
	var err error
	if derr := t.do(ctx, func() { err = t.game.SelectMode(mode, matchLength) }); derr != nil {
		return derr
	}
	return err
}

// NewMatch restarts the match in the mode already selected.
func (t *Table) NewMatch(ctx context.Context) error {
	var err error
	if derr := t.do(ctx, func() { err = t.game.StartNewMatch() }); derr != nil {
		return derr
	}
	return err
}

// Attempt registers count attempts for the player whose turn it is.
func (t *Table) Attempt(ctx context.Context, count int) (game.AttemptToken, error) {
	var tok game.AttemptToken
	err := t.do(ctx, func() { tok = t.game.RegisterAttempt(count) })
	return tok, err
}

// CollisionStart feeds one collision-start batch to the detector and
// returns the number of bodies pocketed.
func (t *Table) CollisionStart(ctx context.Context, pairs []table.Contact) (int, error) {
	var n int
	err := t.do(ctx, func() { n = t.detector.HandleCollisionStart(pairs) })
	return n, err
}

// UpdatePositions records body positions reported by the physics engine.
func (t *Table) UpdatePositions(ctx context.Context, positions []table.BodyPosition) error {
	return t.do(ctx, func() {
		for _, p := range positions {
			t.world.Move(p.ID, p.Position)
		}
	})
}

func (t *Table) RestartRound(ctx context.Context) error {
	return t.do(ctx, t.game.RestartRound)
}

// SaveScore stores the eligible players' scores of a finished match.
func (t *Table) SaveScore(ctx context.Context, name1, name2 string) error {
	var err error
	if derr := t.do(ctx, func() { err = t.game.SaveScore(name1, name2) }); derr != nil {
		return derr
	}
	return err
}

// State returns the game snapshot together with the current bodies.
func (t *Table) State(ctx context.Context) (State, error) {
	var st State
	err := t.do(ctx, func() {
		st = State{
			ID:     t.ID,
			Game:   t.game.State(),
			Bodies: t.world.Bodies(),
			Layout: t.world.Layout(),
		}
	})
	return st, err
}

// State is the full table view sent to late joiners.
type State struct {
	ID     string        `json:"id"`
	Game   game.Snapshot `json:"game"`
	Bodies []table.Body  `json:"bodies"`
	Layout table.Layout  `json:"layout"`
}

// resetBoard repopulates the dynamic bodies. It runs on the loop.
func (t *Table) resetBoard() {
	t.world.ClearDynamic()
	bodies, err := table.GenerateBoard(t.rng, t.cfg.Layout, t.cfg.Board)
	if err != nil {
		t.fail(err)
		return
	}
	for _, b := range bodies {
		t.world.Add(b)
	}
	n := t.world.CountPlayBodies()
	t.game.SetInitialBodyCount(n)
	log.Printf("[TABLE] Table %s board populated with %d bodies", t.ID, n)
	t.broadcast("board", map[string]interface{}{"bodies": t.world.Bodies()})
}

// fail stops play for good. Players get one fatal message.
func (t *Table) fail(err error) {
	msg := err.Error()
	if !t.fatal.CompareAndSwap(nil, &msg) {
		return
	}
	log.Printf("[TABLE] Table %s fatal error: %v", t.ID, err)
	t.broadcast("fatal", map[string]interface{}{"message": msg})
}

func (t *Table) broadcast(msgType string, fields map[string]interface{}) {
	if t.out == nil {
		return
	}
	msg := map[string]interface{}{"type": msgType}
	for k, v := range fields {
		msg[k] = v
	}
	t.out.BroadcastToTable(t.ID, msg)
}

// UI sink

func (t *Table) UpdateRoundScore(stats game.RoundStats) {
	t.broadcast("round_score", map[string]interface{}{"round": stats})
}

func (t *Table) UpdateMatchScore(score game.MatchScore) {
	t.broadcast("match_score", map[string]interface{}{"match": score})
}

func (t *Table) UpdateTurn(player game.Player) {
	t.broadcast("turn", map[string]interface{}{"player": player})
}

func (t *Table) ShowMatchSummary(summary game.MatchSummary) {
	t.broadcast("match_over", map[string]interface{}{"summary": summary})
}

func (t *Table) ShowRanking(board ranking.Board, matchLength int, entries []ranking.Entry) {
	t.broadcast("ranking", map[string]interface{}{
		"board":        board,
		"match_length": matchLength,
		"ranking":      entries,
	})
}

func (t *Table) ShowExplosion(at, direction table.Vec2) {
	t.broadcast("explosion", map[string]interface{}{"at": at, "direction": direction})
}

func (t *Table) ShowNotice(message string) {
	t.broadcast("notice", map[string]interface{}{"message": message})
}

// Audio sink

// PlaySound tells clients to play one of the synthesized sounds.
func (t *Table) PlaySound(name string, volume float64) {
	t.broadcast("play_sound", map[string]interface{}{
		"name":   name,
		"volume": volume,
		"url":    "/sounds/" + name + ".wav",
	})
}
