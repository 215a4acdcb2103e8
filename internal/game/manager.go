package game

import (
	"context"
	"log"
	"time"
)

// Sound names the game asks the audio sink to play.
const (
	SoundPocket    = "pocket"
	SoundShot      = "shot"
	SoundRoundWon  = "round_won"
	SoundMatchOver = "match_over"
	SoundFoul      = "foul"
)

// Deps are the collaborators a GameManager is wired to.
type Deps struct {
	World     World
	UI        UI
	Audio     Audio
	Scheduler Scheduler
	Rankings  Rankings
}

// Options tune a GameManager.
type Options struct {
	// SettleDelay is the wait between a score and its round end check.
	SettleDelay time.Duration
	// RankingTimeout bounds each ranking lookup or save.
	RankingTimeout time.Duration
	// Volume is the volume of game sounds, 0 to 1.
	Volume float64
	// Context is the parent context of ranking calls.
	Context context.Context
}

// GameManager is the per-table facade over the round and match managers.
// Every method must be called from the table's game loop.
type GameManager struct {
	round *RoundManager
	match *MatchManager
	ui    UI
	audio Audio

	volume          float64
	prematureEpochs map[uint64]bool
}

// NewGameManager wires a round and match manager to the given
// collaborators.
func NewGameManager(deps Deps, opts Options) *GameManager {
	if opts.Volume <= 0 || opts.Volume > 1 {
		opts.Volume = 0.8
	}

	round := NewRoundManager(deps.World, deps.UI, deps.Scheduler, opts.SettleDelay)
	match := NewMatchManager(opts.Context, round, deps.Rankings, deps.UI, opts.RankingTimeout)

	gm := &GameManager{
		round:           round,
		match:           match,
		ui:              deps.UI,
		audio:           deps.Audio,
		volume:          opts.Volume,
		prematureEpochs: make(map[uint64]bool),
	}

	round.OnRoundEnd(gm.handleRoundEnd)
	return gm
}

func (gm *GameManager) handleRoundEnd(scoring Player) {
	gm.match.HandleRoundEnd(scoring)
	if gm.match.IsOver() {
		gm.play(SoundMatchOver)
		return
	}
	gm.play(SoundRoundWon)
}

// SetBoardReset sets the callback that repopulates the board. It runs at
// match start, on every round transition and on a round restart.
func (gm *GameManager) SetBoardReset(fn func()) {
	gm.match.SetBoardReset(fn)
}

// SelectMode sets the mode and match length, then starts a new match.
func (gm *GameManager) SelectMode(mode Mode, matchLength int) error {
	if err := gm.match.SetGameMode(mode, matchLength); err != nil {
		return err
	}
	return gm.StartNewMatch()
}

func (gm *GameManager) StartNewMatch() error {
	gm.prematureEpochs = make(map[uint64]bool)
	return gm.match.StartNewMatch()
}

// SetInitialBodyCount records the scorable body census of a fresh board.
func (gm *GameManager) SetInitialBodyCount(n int) {
	gm.round.SetInitialBodyCount(n)
}

// RegisterAttempt records a player action and returns its token.
func (gm *GameManager) RegisterAttempt(count int) AttemptToken {
	if gm.match.IsOver() {
		log.Printf("[GAME] Ignoring attempt after match over")
		return AttemptToken{}
	}
	tok := gm.round.AddAttempt(count)
	if tok.Valid() {
		gm.play(SoundShot)
	}
	return tok
}

// Score credits points to the attempt the token identifies.
func (gm *GameManager) Score(tok AttemptToken, points int) bool {
	return gm.round.AddScoreFor(tok, points)
}

// CurrentAttempt returns the token of the most recent attempt.
func (gm *GameManager) CurrentAttempt() AttemptToken {
	return gm.round.LastAttempt()
}

func (gm *GameManager) FirstAttemptMade() bool {
	return gm.round.FirstAttemptMade()
}

// HandlePrematurePocketing is called when a body reaches the pocket before
// anyone has played. The body is left alone and the players are told once
// per round that they can restart it.
func (gm *GameManager) HandlePrematurePocketing(bodyID int) {
	log.Printf("[GAME] Body %d pocketed before the first attempt, not scored", bodyID)
	epoch := gm.round.Epoch()
	if gm.prematureEpochs[epoch] {
		return
	}
	gm.prematureEpochs[epoch] = true
	gm.play(SoundFoul)
	gm.ui.ShowNotice("A body fell in before the first shot. Restart the round to reset the board.")
}

// RequestRoundEndCheck asks for another settle-delayed round end check.
func (gm *GameManager) RequestRoundEndCheck(tok AttemptToken) {
	gm.round.RequestRoundEndCheck(tok)
}

// RestartRound resets the round in progress only.
func (gm *GameManager) RestartRound() {
	gm.match.RestartRound()
}

// SaveScore stores the eligible players' scores after the match is over.
func (gm *GameManager) SaveScore(name1, name2 string) error {
	return gm.match.HandleSaveScore(name1, name2)
}

func (gm *GameManager) Outcome() Outcome {
	return gm.match.Outcome()
}

// State returns the full game state.
func (gm *GameManager) State() Snapshot {
	return Snapshot{
		Round:   gm.round.CurrentRoundStats(),
		Match:   gm.match.Score(),
		Summary: gm.match.Summary(),
	}
}

func (gm *GameManager) Round() *RoundManager { return gm.round }

func (gm *GameManager) Match() *MatchManager { return gm.match }

func (gm *GameManager) play(name string) {
	if gm.audio == nil {
		return
	}
	gm.audio.PlaySound(name, gm.volume)
}
