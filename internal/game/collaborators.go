package game

//go:generate mockgen -source=collaborators.go -destination=mock_collaborators_test.go -package=game

import (
	"context"
	"time"

	"github.com/playpool/pocketball/internal/ranking"
	"github.com/playpool/pocketball/internal/table"
)

// World is the live physics body census the game reads and removes from.
type World interface {
	CountPlayBodies() int
	Body(id int) (table.Body, bool)
	Has(id int) bool
	Remove(id int) bool
}

// UI receives every display update the game produces.
type UI interface {
	UpdateRoundScore(stats RoundStats)
	UpdateMatchScore(score MatchScore)
	UpdateTurn(player Player)
	ShowMatchSummary(summary MatchSummary)
	ShowRanking(board ranking.Board, matchLength int, entries []ranking.Entry)
	ShowExplosion(at, direction table.Vec2)
	ShowNotice(message string)
}

// Audio plays named sounds. Failures are the sink's problem.
type Audio interface {
	PlaySound(name string, volume float64)
}

// Scheduler runs closures on the table's game loop. Defer runs fn once
// the current phase returns; After runs fn on the loop after d.
type Scheduler interface {
	Defer(fn func())
	After(d time.Duration, fn func()) (cancel func())
}

// Rankings is the leaderboard the match reports to.
type Rankings interface {
	GetRanking(ctx context.Context, board ranking.Board, matchLength int) []ranking.Entry
	SaveRanking(ctx context.Context, name string, score int, board ranking.Board, matchLength int) (bool, error)
	IsTopScore(ctx context.Context, score int, board ranking.Board, matchLength int) bool
}
