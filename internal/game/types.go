package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/playpool/pocketball/internal/ranking"
)

// Mode is the kind of match being played.
type Mode int

const (
	ModeNone Mode = iota
	ModeSingle
	ModeTwo
)

func (m Mode) String() string {
	switch m {
	case ModeSingle:
		return "single"
	case ModeTwo:
		return "two"
	}
	return "none"
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// UnmarshalJSON takes either the text form or the bare numbers 0, 1 and 2.
func (m *Mode) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return m.UnmarshalText([]byte(s))
	}
	if string(b) == "null" {
		return nil
	}
	return m.UnmarshalText(b)
}

// ParseMode accepts "single"/"1", "two"/"2" and "none"/"0".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "1":
		return ModeSingle, nil
	case "two", "2":
		return ModeTwo, nil
	case "none", "0", "":
		return ModeNone, nil
	}
	return ModeNone, fmt.Errorf("unknown game mode %q", s)
}

// Board returns the leaderboard scores of this mode are ranked on.
func (m Mode) Board() ranking.Board {
	if m == ModeTwo {
		return ranking.BoardTwo
	}
	return ranking.BoardSingle
}

// Player identifies a seat at the table. The zero value is no player.
type Player int

const (
	NoPlayer  Player = 0
	PlayerOne Player = 1
	PlayerTwo Player = 2
)

// Other returns the opponent seat.
func (p Player) Other() Player {
	if p == PlayerTwo {
		return PlayerOne
	}
	return PlayerTwo
}

func (p Player) Valid() bool {
	return p == PlayerOne || p == PlayerTwo
}

// RoundPhase is the lifecycle of a single round.
type RoundPhase int

const (
	PhaseAwaitingFirstAttempt RoundPhase = iota
	PhaseInProgress
	PhaseEnded
)

func (p RoundPhase) String() string {
	switch p {
	case PhaseAwaitingFirstAttempt:
		return "awaiting_first_attempt"
	case PhaseInProgress:
		return "in_progress"
	case PhaseEnded:
		return "ended"
	}
	return "unknown"
}

func (p RoundPhase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *RoundPhase) UnmarshalText(b []byte) error {
	for _, candidate := range []RoundPhase{PhaseAwaitingFirstAttempt, PhaseInProgress, PhaseEnded} {
		if candidate.String() == string(b) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown round phase %q", string(b))
}

// AttemptToken identifies one registered attempt. Scores and deferred
// checks carry the token so they stay attributed to the right player and
// turn into no-ops once the round they belong to has been reset.
type AttemptToken struct {
	Epoch  uint64 `json:"epoch"`
	Seq    int    `json:"seq"`
	Player Player `json:"player"`
}

// Valid reports whether the token was issued by an attempt.
func (t AttemptToken) Valid() bool {
	return t.Seq > 0 && t.Player.Valid()
}

// Tally is a player's score and attempt count in one round.
type Tally struct {
	Score    int `json:"score"`
	Attempts int `json:"attempts"`
}

// RoundStats is the round state normalized to two player slots.
type RoundStats struct {
	Mode             Mode       `json:"mode"`
	Round            int        `json:"round"`
	Phase            RoundPhase `json:"phase"`
	P1               Tally      `json:"p1"`
	P2               Tally      `json:"p2"`
	CurrentPlayer    Player     `json:"current_player"`
	StartingPlayer   Player     `json:"starting_player"`
	FirstAttemptMade bool       `json:"first_attempt_made"`
	InitialBodyCount int        `json:"initial_body_count"`
}

// RoundTally is one player's line in a round result.
type RoundTally struct {
	Score      int `json:"score"`
	Attempts   int `json:"attempts"`
	RoundScore int `json:"round_score"`
}

// RoundResult is the record appended to the match history when a round
// ends. P2 is nil in single player matches.
type RoundResult struct {
	Round  int         `json:"round"`
	Winner Player      `json:"winner"`
	P1     RoundTally  `json:"p1"`
	P2     *RoundTally `json:"p2,omitempty"`
}

// MatchScore is the match level scoreboard.
type MatchScore struct {
	Mode           Mode   `json:"mode"`
	MatchLength    int    `json:"match_length"`
	WinThreshold   int    `json:"win_threshold"`
	Round          int    `json:"round"`
	StartingPlayer Player `json:"starting_player"`
	RoundsWonP1    int    `json:"rounds_won_p1"`
	RoundsWonP2    int    `json:"rounds_won_p2"`
	TotalScoreP1   int    `json:"total_score_p1"`
	TotalScoreP2   int    `json:"total_score_p2"`
	Over           bool   `json:"over"`
}

// Outcome is the reported result of a match. Winner is NoPlayer for a
// draw. Forced is set when the match had no threshold winner and the
// tie-break had to be applied.
type Outcome struct {
	Winner Player `json:"winner"`
	Reason string `json:"reason"`
	Forced bool   `json:"forced"`
}

// MatchSummary is shown once when a match ends.
type MatchSummary struct {
	Score     MatchScore      `json:"score"`
	History   []RoundResult   `json:"history"`
	Ranking   []ranking.Entry `json:"ranking"`
	CanSaveP1 bool            `json:"can_save_p1"`
	CanSaveP2 bool            `json:"can_save_p2"`
	Outcome   Outcome         `json:"outcome"`
}

// Snapshot is the full state of a table's game, for late joiners.
type Snapshot struct {
	Round   RoundStats    `json:"round"`
	Match   MatchScore    `json:"match"`
	Summary *MatchSummary `json:"summary,omitempty"`
}
