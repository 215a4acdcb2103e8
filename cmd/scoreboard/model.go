package main

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/playpool/pocketball/internal/game"
	"github.com/playpool/pocketball/internal/ranking"
	"github.com/playpool/pocketball/internal/session"
)

// message is the union of the table messages the scoreboard reads.
type message struct {
	Type    string             `json:"type"`
	State   *session.State     `json:"state"`
	Round   *game.RoundStats   `json:"round"`
	Match   *game.MatchScore   `json:"match"`
	Player  game.Player        `json:"player"`
	Summary *game.MatchSummary `json:"summary"`
	Ranking []ranking.Entry    `json:"ranking"`
	Board   ranking.Board      `json:"board"`
	Message string             `json:"message"`
}

// scoreboard is the spectator's view of one table.
type scoreboard struct {
	mu      sync.Mutex
	round   game.RoundStats
	match   game.MatchScore
	turn    game.Player
	history []game.RoundResult
	outcome *game.Outcome
	ranking []ranking.Entry
	board   ranking.Board
	notice  string
	fatal   string
}

// apply folds one server message into the view. Unknown types are
// ignored.
func (s *scoreboard) apply(data []byte) error {
	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("decode message: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case "state":
		if msg.State != nil {
			s.round = msg.State.Game.Round
			s.match = msg.State.Game.Match
			s.turn = s.round.CurrentPlayer
			s.history = nil
			s.outcome = nil
			if sum := msg.State.Game.Summary; sum != nil {
				s.history = sum.History
				out := sum.Outcome
				s.outcome = &out
			}
		}
	case "round_score":
		if msg.Round != nil {
			s.round = *msg.Round
		}
	case "match_score":
		if msg.Match != nil {
			if msg.Match.Round == 1 && s.match.Round != 1 {
				s.history = nil
				s.outcome = nil
			}
			s.match = *msg.Match
		}
	case "turn":
		s.turn = msg.Player
	case "match_over":
		if msg.Summary != nil {
			s.match = msg.Summary.Score
			s.history = msg.Summary.History
			out := msg.Summary.Outcome
			s.outcome = &out
			s.ranking = msg.Summary.Ranking
			s.board = msg.Summary.Score.Mode.Board()
		}
	case "ranking":
		s.ranking = msg.Ranking
		s.board = msg.Board
	case "notice":
		s.notice = msg.Message
	case "fatal":
		s.fatal = msg.Message
	case "error":
		s.notice = "error: " + msg.Message
	}
	return nil
}

// lines renders the view as plain text rows.
func (s *scoreboard) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []string
	if s.fatal != "" {
		out = append(out, "TABLE STOPPED: "+s.fatal, "")
	}
	if s.match.Mode == game.ModeNone {
		return append(out, "Waiting for a game mode...")
	}

	out = append(out,
		fmt.Sprintf("%s player, best of %d (first to %d)", modeLabel(s.match.Mode), s.match.MatchLength, s.match.WinThreshold),
		fmt.Sprintf("Round %d   Rounds won  P1 %d", s.match.Round, s.match.RoundsWonP1),
	)
	if s.match.Mode == game.ModeTwo {
		out[len(out)-1] += fmt.Sprintf("  P2 %d", s.match.RoundsWonP2)
		out = append(out, fmt.Sprintf("Turn: Player %d", s.turn))
	}
	out = append(out, "")

	out = append(out, fmt.Sprintf("This round  P1 %d pocketed / %d attempts", s.round.P1.Score, s.round.P1.Attempts))
	if s.match.Mode == game.ModeTwo {
		out = append(out, fmt.Sprintf("            P2 %d pocketed / %d attempts", s.round.P2.Score, s.round.P2.Attempts))
	}
	out = append(out, fmt.Sprintf("Bodies on board at start: %d", s.round.InitialBodyCount), "")

	if len(s.history) > 0 {
		out = append(out, "History")
		for _, r := range s.history {
			line := fmt.Sprintf("  R%d  winner P%d  P1 %d", r.Round, r.Winner, r.P1.RoundScore)
			if r.P2 != nil {
				line += fmt.Sprintf("  P2 %d", r.P2.RoundScore)
			}
			out = append(out, line)
		}
		out = append(out, "")
	}

	if s.match.Over {
		out = append(out, fmt.Sprintf("MATCH OVER  total P1 %d", s.match.TotalScoreP1))
		if s.match.Mode == game.ModeTwo {
			out[len(out)-1] += fmt.Sprintf("  P2 %d", s.match.TotalScoreP2)
		}
		if s.outcome != nil {
			if s.outcome.Winner == game.NoPlayer {
				out = append(out, "Result: draw")
			} else {
				out = append(out, fmt.Sprintf("Winner: Player %d (%s)", s.outcome.Winner, s.outcome.Reason))
			}
		}
		out = append(out, "")
	}

	if len(s.ranking) > 0 {
		out = append(out, fmt.Sprintf("Top scores (%s)", s.board))
		for i, e := range s.ranking {
			out = append(out, fmt.Sprintf("  %d. %-15s %d", i+1, e.Name, e.Score))
		}
		out = append(out, "")
	}

	if s.notice != "" {
		out = append(out, s.notice)
	}
	return out
}

func modeLabel(m game.Mode) string {
	if m == game.ModeTwo {
		return "Two"
	}
	return "Single"
}
