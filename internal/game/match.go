package game

import (
	"context"
	"errors"
	"log"
	"math"
	"time"

	"github.com/playpool/pocketball/internal/ranking"
)

var (
	ErrNoGameMode         = errors.New("no game mode selected")
	ErrInvalidMatchLength = errors.New("match length must be at least 1")
	ErrMatchNotOver       = errors.New("match is not over")
	ErrAlreadySaved       = errors.New("scores for this match were already saved")
)

const (
	defaultNameP1 = "Player 1"
	defaultNameP2 = "Player 2"
)

// RoundScore is the accuracy score of one player in one round.
func RoundScore(score, attempts int) int {
	if attempts <= 0 {
		return 0
	}
	s := int(math.Round(100 * float64(score) / float64(attempts)))
	if s > 100 {
		s = 100
	}
	if s < 0 {
		s = 0
	}
	return s
}

// WinThreshold is the number of rounds needed to win a best-of-n match.
func WinThreshold(matchLength int) int {
	return (matchLength + 1) / 2
}

// MatchManager sequences rounds into a match. Like RoundManager it is only
// touched from the table's game loop.
type MatchManager struct {
	round      *RoundManager
	rankings   Rankings
	ui         UI
	resetBoard func()
	ctx        context.Context
	timeout    time.Duration

	mode           Mode
	matchLength    int
	roundNumber    int
	startingPlayer Player
	roundsWon      [3]int
	totals         [3]int
	totalAttempts  [3]int
	history        []RoundResult
	over           bool
	saved          bool
	eligible       [3]bool
	summary        *MatchSummary
}

func NewMatchManager(ctx context.Context, round *RoundManager, rankings Rankings, ui UI, timeout time.Duration) *MatchManager {
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &MatchManager{
		round:          round,
		rankings:       rankings,
		ui:             ui,
		ctx:            ctx,
		timeout:        timeout,
		roundNumber:    1,
		startingPlayer: PlayerOne,
	}
}

// SetBoardReset sets the callback that repopulates the board for a round.
func (m *MatchManager) SetBoardReset(fn func()) {
	m.resetBoard = fn
}

// SetGameMode selects the mode and match length for the next match. Even
// lengths are accepted with the same (n+1)/2 threshold.
func (m *MatchManager) SetGameMode(mode Mode, matchLength int) error {
	if mode != ModeSingle && mode != ModeTwo {
		return ErrNoGameMode
	}
	if matchLength < 1 {
		return ErrInvalidMatchLength
	}
	if matchLength%2 == 0 {
		log.Printf("[MATCH] Even match length %d, first to %d wins", matchLength, WinThreshold(matchLength))
	}
	m.mode = mode
	m.matchLength = matchLength
	m.round.SetMode(mode)
	return nil
}

// StartNewMatch clears all match state and sets up round one.
func (m *MatchManager) StartNewMatch() error {
	if m.mode == ModeNone {
		return ErrNoGameMode
	}
	m.roundNumber = 1
	m.startingPlayer = PlayerOne
	m.roundsWon = [3]int{}
	m.totals = [3]int{}
	m.totalAttempts = [3]int{}
	m.history = nil
	m.over = false
	m.saved = false
	m.eligible = [3]bool{}
	m.summary = nil

	log.Printf("[MATCH] Starting %s match, best of %d", m.mode, m.matchLength)
	m.round.SetRoundNumber(m.roundNumber)
	m.round.ResetRoundState(m.startingPlayer)
	m.ui.UpdateMatchScore(m.Score())
	m.callBoardReset()
	return nil
}

// HandleRoundEnd records the finished round and either ends the match or
// sets up the next round.
func (m *MatchManager) HandleRoundEnd(scoring Player) {
	if m.over {
		log.Printf("[MATCH] Ignoring round end after match over")
		return
	}
	if m.mode == ModeNone {
		log.Printf("[MATCH] Ignoring round end: no game mode set")
		return
	}

	stats := m.round.CurrentRoundStats()
	result := RoundResult{
		Round: m.roundNumber,
		P1: RoundTally{
			Score:      stats.P1.Score,
			Attempts:   stats.P1.Attempts,
			RoundScore: RoundScore(stats.P1.Score, stats.P1.Attempts),
		},
	}
	m.totals[PlayerOne] += result.P1.RoundScore
	m.totalAttempts[PlayerOne] += stats.P1.Attempts

	winner := PlayerOne
	if m.mode == ModeTwo {
		p2 := RoundTally{
			Score:      stats.P2.Score,
			Attempts:   stats.P2.Attempts,
			RoundScore: RoundScore(stats.P2.Score, stats.P2.Attempts),
		}
		result.P2 = &p2
		m.totals[PlayerTwo] += p2.RoundScore
		m.totalAttempts[PlayerTwo] += stats.P2.Attempts
		if scoring.Valid() {
			winner = scoring
		} else {
			log.Printf("[MATCH] Round end without a scoring player, crediting player 1")
		}
	}
	result.Winner = winner
	m.history = append(m.history, result)
	m.roundsWon[winner]++

	log.Printf("[MATCH] Round %d won by player %d (%d-%d)", m.roundNumber, winner, m.roundsWon[PlayerOne], m.roundsWon[PlayerTwo])

	if m.roundsWon[winner] >= WinThreshold(m.matchLength) {
		m.finish()
		return
	}

	m.roundNumber++
	if m.mode == ModeTwo {
		m.startingPlayer = m.startingPlayer.Other()
	}
	m.round.SetRoundNumber(m.roundNumber)
	m.round.ResetRoundState(m.startingPlayer)
	m.ui.UpdateMatchScore(m.Score())
	m.callBoardReset()
}

func (m *MatchManager) finish() {
	m.over = true
	board := m.mode.Board()

	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	m.eligible[PlayerOne] = m.rankings.IsTopScore(ctx, m.totals[PlayerOne], board, m.matchLength)
	if m.mode == ModeTwo {
		m.eligible[PlayerTwo] = m.rankings.IsTopScore(ctx, m.totals[PlayerTwo], board, m.matchLength)
	}

	summary := MatchSummary{
		Score:     m.Score(),
		History:   m.History(),
		Ranking:   m.rankings.GetRanking(ctx, board, m.matchLength),
		CanSaveP1: m.eligible[PlayerOne],
		CanSaveP2: m.eligible[PlayerTwo],
		Outcome:   m.Outcome(),
	}
	m.summary = &summary

	log.Printf("[MATCH] Match over: %d-%d after %d rounds", m.roundsWon[PlayerOne], m.roundsWon[PlayerTwo], len(m.history))
	m.ui.UpdateMatchScore(summary.Score)
	m.ui.ShowMatchSummary(summary)
}

// HandleSaveScore submits every eligible player's total to the rankings
// and refreshes the ranking display. Empty names fall back to
// "Player 1"/"Player 2".
func (m *MatchManager) HandleSaveScore(name1, name2 string) error {
	if !m.over {
		return ErrMatchNotOver
	}
	if m.saved {
		return ErrAlreadySaved
	}
	m.saved = true

	board := m.mode.Board()
	ctx, cancel := context.WithTimeout(m.ctx, m.timeout)
	defer cancel()

	if m.eligible[PlayerOne] {
		m.save(ctx, ranking.NormalizeName(name1, defaultNameP1), m.totals[PlayerOne], board)
	}
	if m.mode == ModeTwo && m.eligible[PlayerTwo] {
		m.save(ctx, ranking.NormalizeName(name2, defaultNameP2), m.totals[PlayerTwo], board)
	}

	m.ui.ShowRanking(board, m.matchLength, m.rankings.GetRanking(ctx, board, m.matchLength))
	return nil
}

func (m *MatchManager) save(ctx context.Context, name string, score int, board ranking.Board) {
	ok, err := m.rankings.SaveRanking(ctx, name, score, board, m.matchLength)
	if err != nil {
		log.Printf("[MATCH] Failed to save score for %s: %v", name, err)
		return
	}
	if !ok {
		log.Printf("[MATCH] Score %d for %s no longer makes the ranking", score, name)
	}
}

// RestartRound resets only the round in progress, keeping the round
// number, the rounds won and the history.
func (m *MatchManager) RestartRound() {
	if m.mode == ModeNone || m.over {
		log.Printf("[MATCH] Ignoring round restart (mode %s, over %v)", m.mode, m.over)
		return
	}
	log.Printf("[MATCH] Restarting round %d", m.roundNumber)
	m.round.ResetRoundState(m.startingPlayer)
	m.callBoardReset()
}

// Outcome reports the match result. Without a threshold winner the
// tie-break applies: more rounds won, then fewer total attempts, else a
// draw. That result is flagged as forced and never changes match state.
func (m *MatchManager) Outcome() Outcome {
	threshold := WinThreshold(m.matchLength)
	for _, p := range []Player{PlayerOne, PlayerTwo} {
		if m.over && m.roundsWon[p] >= threshold {
			return Outcome{Winner: p, Reason: "rounds"}
		}
	}

	out := Outcome{Forced: true}
	switch {
	case m.mode != ModeTwo:
		out.Winner, out.Reason = PlayerOne, "single"
	case m.roundsWon[PlayerOne] != m.roundsWon[PlayerTwo]:
		out.Reason = "rounds"
		out.Winner = PlayerOne
		if m.roundsWon[PlayerTwo] > m.roundsWon[PlayerOne] {
			out.Winner = PlayerTwo
		}
	case m.totalAttempts[PlayerOne] != m.totalAttempts[PlayerTwo]:
		out.Reason = "attempts"
		out.Winner = PlayerOne
		if m.totalAttempts[PlayerTwo] < m.totalAttempts[PlayerOne] {
			out.Winner = PlayerTwo
		}
	default:
		out.Reason = "draw"
	}
	log.Printf("[MATCH] Outcome reported without a threshold winner: %s, player %d", out.Reason, out.Winner)
	return out
}

func (m *MatchManager) callBoardReset() {
	if m.resetBoard == nil {
		log.Printf("[MATCH] WARNING: no board reset callback configured")
		return
	}
	m.resetBoard()
}

// Score returns the match scoreboard.
func (m *MatchManager) Score() MatchScore {
	return MatchScore{
		Mode:           m.mode,
		MatchLength:    m.matchLength,
		WinThreshold:   WinThreshold(m.matchLength),
		Round:          m.roundNumber,
		StartingPlayer: m.startingPlayer,
		RoundsWonP1:    m.roundsWon[PlayerOne],
		RoundsWonP2:    m.roundsWon[PlayerTwo],
		TotalScoreP1:   m.totals[PlayerOne],
		TotalScoreP2:   m.totals[PlayerTwo],
		Over:           m.over,
	}
}

// History returns a copy of the finished rounds.
func (m *MatchManager) History() []RoundResult {
	out := make([]RoundResult, len(m.history))
	copy(out, m.history)
	return out
}

func (m *MatchManager) IsOver() bool { return m.over }

func (m *MatchManager) Mode() Mode { return m.mode }

func (m *MatchManager) MatchLength() int { return m.matchLength }

// Summary returns the match summary once the match is over.
func (m *MatchManager) Summary() *MatchSummary {
	if m.summary == nil {
		return nil
	}
	s := *m.summary
	return &s
}
