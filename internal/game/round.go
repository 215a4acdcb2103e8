package game

import (
	"log"
	"time"
)

// DefaultSettleDelay is how long a round end check waits after a score so
// that removals from the same collision batch land first.
const DefaultSettleDelay = 50 * time.Millisecond

// RoundManager owns the counters of the round in progress. It must only be
// used from the table's game loop.
type RoundManager struct {
	world  World
	ui     UI
	sched  Scheduler
	settle time.Duration

	onRoundEnd func(scoring Player)

	mode             Mode
	round            int
	phase            RoundPhase
	epoch            uint64
	seq              int
	last             AttemptToken
	lastScored       AttemptToken
	currentPlayer    Player
	startingPlayer   Player
	score            [3]int
	attempts         [3]int
	firstAttemptMade bool
	initialBodyCount int

	pendingChecks []func()
}

// NewRoundManager creates a round manager. A non-positive settle delay
// falls back to DefaultSettleDelay.
func NewRoundManager(world World, ui UI, sched Scheduler, settle time.Duration) *RoundManager {
	if settle <= 0 {
		settle = DefaultSettleDelay
	}
	return &RoundManager{
		world:          world,
		ui:             ui,
		sched:          sched,
		settle:         settle,
		currentPlayer:  PlayerOne,
		startingPlayer: PlayerOne,
	}
}

// OnRoundEnd sets the callback fired once per round with the scoring player.
func (r *RoundManager) OnRoundEnd(fn func(scoring Player)) {
	r.onRoundEnd = fn
}

func (r *RoundManager) SetMode(mode Mode) {
	r.mode = mode
}

// SetRoundNumber records the round number shown with the round stats.
func (r *RoundManager) SetRoundNumber(n int) {
	r.round = n
}

// ResetRoundState starts a fresh round. Any token or pending check from
// the previous round becomes stale.
func (r *RoundManager) ResetRoundState(starting Player) {
	if !starting.Valid() || r.mode != ModeTwo {
		starting = PlayerOne
	}
	for _, cancel := range r.pendingChecks {
		cancel()
	}
	r.pendingChecks = nil

	r.epoch++
	r.seq = 0
	r.last = AttemptToken{}
	r.lastScored = AttemptToken{}
	r.phase = PhaseAwaitingFirstAttempt
	r.currentPlayer = starting
	r.startingPlayer = starting
	r.score = [3]int{}
	r.attempts = [3]int{}
	r.firstAttemptMade = false
	r.initialBodyCount = 0

	r.refresh()
	r.ui.UpdateTurn(r.currentPlayer)
}

// SetInitialBodyCount records the scorable body census taken right after
// the board was populated. Calling it again overwrites the value.
func (r *RoundManager) SetInitialBodyCount(n int) {
	if n < 0 {
		n = 0
	}
	r.initialBodyCount = n
	r.refresh()
}

// AddAttempt registers count attempts for the current player and returns
// the token later scores must carry. It returns the zero token when no
// game mode is set or the round has already ended.
func (r *RoundManager) AddAttempt(count int) AttemptToken {
	if r.mode == ModeNone {
		log.Printf("[ROUND] Ignoring attempt: no game mode set")
		return AttemptToken{}
	}
	if r.phase == PhaseEnded {
		log.Printf("[ROUND] Ignoring attempt: round %d already ended", r.round)
		return AttemptToken{}
	}
	if count < 1 {
		count = 1
	}

	p := r.currentPlayer
	r.attempts[p] += count
	r.firstAttemptMade = true
	r.phase = PhaseInProgress
	r.seq++
	r.last = AttemptToken{Epoch: r.epoch, Seq: r.seq, Player: p}

	if r.mode == ModeTwo {
		r.currentPlayer = p.Other()
		r.ui.UpdateTurn(r.currentPlayer)
	}
	r.refresh()
	return r.last
}

// AddScore credits the player of the most recent attempt.
func (r *RoundManager) AddScore(points int) bool {
	return r.AddScoreFor(r.last, points)
}

// AddScoreFor credits the player the token was issued to and schedules a
// settle-delayed round end check. It reports whether the score counted.
func (r *RoundManager) AddScoreFor(tok AttemptToken, points int) bool {
	if !r.firstAttemptMade {
		log.Printf("[ROUND] Ignoring score before first attempt")
		return false
	}
	if points < 1 {
		return false
	}
	if tok.Epoch != r.epoch || !tok.Valid() {
		log.Printf("[ROUND] Ignoring stale score (token epoch %d, round epoch %d)", tok.Epoch, r.epoch)
		return false
	}
	if r.phase == PhaseEnded {
		log.Printf("[ROUND] Ignoring score: round %d already ended", r.round)
		return false
	}

	r.score[tok.Player] += points
	r.lastScored = tok
	r.refresh()
	r.scheduleCheck(tok)
	return true
}

// RequestRoundEndCheck schedules another settle-delayed check for the
// round the token belongs to.
func (r *RoundManager) RequestRoundEndCheck(tok AttemptToken) {
	if tok.Epoch != r.epoch || r.phase == PhaseEnded {
		return
	}
	r.scheduleCheck(tok)
}

func (r *RoundManager) scheduleCheck(tok AttemptToken) {
	cancel := r.sched.After(r.settle, func() {
		r.checkRoundEnd(tok)
	})
	r.pendingChecks = append(r.pendingChecks, cancel)
}

// checkRoundEnd re-queries the live world and fires the round end
// callback at most once per round. The round goes to the latest accepted
// score, whichever check happens to see the empty board.
func (r *RoundManager) checkRoundEnd(tok AttemptToken) bool {
	if tok.Epoch != r.epoch || r.phase == PhaseEnded {
		return false
	}
	if !r.firstAttemptMade || r.initialBodyCount <= 0 {
		return false
	}
	if remaining := r.world.CountPlayBodies(); remaining > 0 {
		return false
	}

	scorer := tok.Player
	if r.lastScored.Valid() && r.lastScored.Epoch == r.epoch {
		scorer = r.lastScored.Player
	}

	r.phase = PhaseEnded
	r.pendingChecks = nil
	log.Printf("[ROUND] Round %d cleared, last scorer player %d", r.round, scorer)
	r.refresh()
	if r.onRoundEnd != nil {
		r.onRoundEnd(scorer)
	}
	return true
}

// CurrentRoundStats returns the current round normalized to two player slots.
func (r *RoundManager) CurrentRoundStats() RoundStats {
	return RoundStats{
		Mode:             r.mode,
		Round:            r.round,
		Phase:            r.phase,
		P1:               Tally{Score: r.score[PlayerOne], Attempts: r.attempts[PlayerOne]},
		P2:               Tally{Score: r.score[PlayerTwo], Attempts: r.attempts[PlayerTwo]},
		CurrentPlayer:    r.currentPlayer,
		StartingPlayer:   r.startingPlayer,
		FirstAttemptMade: r.firstAttemptMade,
		InitialBodyCount: r.initialBodyCount,
	}
}

func (r *RoundManager) FirstAttemptMade() bool { return r.firstAttemptMade }

// LastAttempt returns the token of the most recent attempt this round.
func (r *RoundManager) LastAttempt() AttemptToken { return r.last }

func (r *RoundManager) Phase() RoundPhase { return r.phase }

func (r *RoundManager) Epoch() uint64 { return r.epoch }

func (r *RoundManager) refresh() {
	r.ui.UpdateRoundScore(r.CurrentRoundStats())
}
