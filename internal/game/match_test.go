package game

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/playpool/pocketball/internal/ranking"
	"go.uber.org/mock/gomock"
)

func TestRoundScore(t *testing.T) {
	tests := []struct {
		score, attempts, want int
	}{
		{1, 2, 50},
		{1, 1, 100},
		{3, 3, 100},
		{5, 3, 100},
		{1, 3, 33},
		{2, 3, 67},
		{0, 4, 0},
		{2, 0, 0},
	}
	for _, tt := range tests {
		if got := RoundScore(tt.score, tt.attempts); got != tt.want {
			t.Errorf("RoundScore(%d, %d) = %d, want %d", tt.score, tt.attempts, got, tt.want)
		}
	}
}

func TestWinThreshold(t *testing.T) {
	for length, want := range map[int]int{1: 1, 3: 2, 4: 2, 5: 3, 7: 4} {
		if got := WinThreshold(length); got != want {
			t.Errorf("WinThreshold(%d) = %d, want %d", length, got, want)
		}
	}
}

func TestSetGameModeValidation(t *testing.T) {
	h := newHarness(t, 1)
	m := h.gm.Match()
	if err := m.SetGameMode(ModeNone, 3); !errors.Is(err, ErrNoGameMode) {
		t.Fatalf("expected ErrNoGameMode, got %v", err)
	}
	if err := m.SetGameMode(ModeTwo, 0); !errors.Is(err, ErrInvalidMatchLength) {
		t.Fatalf("expected ErrInvalidMatchLength, got %v", err)
	}
	if err := h.gm.StartNewMatch(); !errors.Is(err, ErrNoGameMode) {
		t.Fatalf("starting without a mode should fail, got %v", err)
	}
}

func TestMatchOverAtThreshold(t *testing.T) {
	h := newHarness(t, 1)
	h.start(ModeTwo, 7)
	m := h.gm.Match()

	for i := 0; i < 3; i++ {
		m.HandleRoundEnd(PlayerOne)
		m.HandleRoundEnd(PlayerTwo)
	}
	if m.IsOver() {
		t.Fatal("3-3 must not end a best-of-7")
	}
	if got := m.Score().Round; got != 7 {
		t.Fatalf("expected round 7, got %d", got)
	}

	m.HandleRoundEnd(PlayerTwo)
	if !m.IsOver() {
		t.Fatal("4 rounds should end a best-of-7")
	}
	if len(h.ui.summaries) != 1 {
		t.Fatalf("expected one match summary, got %d", len(h.ui.summaries))
	}
	out := h.ui.summaries[0].Outcome
	if out.Winner != PlayerTwo || out.Forced {
		t.Fatalf("unexpected outcome %+v", out)
	}

	rounds := len(m.History())
	m.HandleRoundEnd(PlayerOne)
	if len(m.History()) != rounds {
		t.Fatal("round end after match over changed the history")
	}
}

func TestStartingPlayerAlternatesInTwoMode(t *testing.T) {
	h := newHarness(t, 1)
	h.start(ModeTwo, 5)
	m := h.gm.Match()

	if got := h.gm.Round().CurrentRoundStats().CurrentPlayer; got != PlayerOne {
		t.Fatalf("round 1 should start with player 1, got %d", got)
	}
	m.HandleRoundEnd(PlayerOne)
	if got := h.gm.Round().CurrentRoundStats().StartingPlayer; got != PlayerTwo {
		t.Fatalf("round 2 should start with player 2, got %d", got)
	}
	m.HandleRoundEnd(PlayerTwo)
	if got := h.gm.Round().CurrentRoundStats().StartingPlayer; got != PlayerOne {
		t.Fatalf("round 3 should start with player 1, got %d", got)
	}
	if got := m.Score().Round; got != 3 {
		t.Fatalf("expected round 3, got %d", got)
	}
}

func TestForcedOutcomeTieBreak(t *testing.T) {
	h := newHarness(t, 1)
	h.start(ModeTwo, 5)
	m := h.gm.Match()

	out := m.Outcome()
	if !out.Forced || out.Winner != NoPlayer || out.Reason != "draw" {
		t.Fatalf("expected forced draw, got %+v", out)
	}

	// player 1 takes a round with 3 attempts, player 2 takes one with 1
	h.gm.Round().AddAttempt(3)
	m.HandleRoundEnd(PlayerOne)
	h.gm.Round().AddAttempt(1)
	m.HandleRoundEnd(PlayerTwo)

	out = m.Outcome()
	if !out.Forced || out.Reason != "attempts" || out.Winner != PlayerTwo {
		t.Fatalf("expected player 2 on fewer attempts, got %+v", out)
	}

	m.HandleRoundEnd(PlayerOne)
	out = m.Outcome()
	if out.Reason != "rounds" || out.Winner != PlayerOne || !out.Forced {
		t.Fatalf("expected player 1 ahead on rounds, got %+v", out)
	}
	if m.IsOver() {
		t.Fatal("reporting an outcome must not end the match")
	}
}

func TestSaveScoreRequiresMatchOver(t *testing.T) {
	h := newHarness(t, 1)
	h.start(ModeSingle, 3)
	if err := h.gm.SaveScore("a", ""); !errors.Is(err, ErrMatchNotOver) {
		t.Fatalf("expected ErrMatchNotOver, got %v", err)
	}
}

func TestMissingBoardResetIsNotFatal(t *testing.T) {
	sched := &fakeScheduler{}
	ui := &recordingUI{}
	gm := NewGameManager(Deps{
		World:     &countWorld{},
		UI:        ui,
		Scheduler: sched,
		Rankings:  ranking.NewManager(ranking.NewMemoryStore()),
	}, Options{})
	if err := gm.SelectMode(ModeSingle, 3); err != nil {
		t.Fatalf("SelectMode: %v", err)
	}
	if gm.State().Match.Round != 1 {
		t.Fatal("match did not start without a board reset callback")
	}
}

func TestMatchSummaryEligibility(t *testing.T) {
	ctrl := gomock.NewController(t)
	rankings := NewMockRankings(ctrl)
	ui := NewMockUI(ctrl)
	ui.EXPECT().UpdateRoundScore(gomock.Any()).AnyTimes()
	ui.EXPECT().UpdateMatchScore(gomock.Any()).AnyTimes()
	ui.EXPECT().UpdateTurn(gomock.Any()).AnyTimes()

	round := NewRoundManager(&countWorld{}, ui, &fakeScheduler{}, testSettle)
	m := NewMatchManager(context.Background(), round, rankings, ui, 0)
	m.SetBoardReset(func() {})
	if err := m.SetGameMode(ModeTwo, 1); err != nil {
		t.Fatal(err)
	}
	if err := m.StartNewMatch(); err != nil {
		t.Fatal(err)
	}

	round.AddAttempt(1)
	round.AddScore(1)
	round.AddAttempt(2)

	board := []ranking.Entry{{Name: "old", Score: 90, MatchLength: 1}}
	rankings.EXPECT().IsTopScore(gomock.Any(), 100, ranking.BoardTwo, 1).Return(true)
	rankings.EXPECT().IsTopScore(gomock.Any(), 0, ranking.BoardTwo, 1).Return(false)
	rankings.EXPECT().GetRanking(gomock.Any(), ranking.BoardTwo, 1).Return(board)
	ui.EXPECT().ShowMatchSummary(gomock.Any()).Do(func(s MatchSummary) {
		if !s.CanSaveP1 || s.CanSaveP2 {
			t.Errorf("unexpected eligibility p1=%v p2=%v", s.CanSaveP1, s.CanSaveP2)
		}
		if len(s.History) != 1 || s.History[0].P2 == nil || s.History[0].P2.Attempts != 2 {
			t.Errorf("unexpected history %+v", s.History)
		}
		if len(s.Ranking) != 1 {
			t.Errorf("ranking snapshot missing")
		}
	})
	m.HandleRoundEnd(PlayerOne)

	// only the eligible player is submitted
	rankings.EXPECT().SaveRanking(gomock.Any(), "Ann", 100, ranking.BoardTwo, 1).Return(true, nil)
	rankings.EXPECT().GetRanking(gomock.Any(), ranking.BoardTwo, 1).Return(board)
	ui.EXPECT().ShowRanking(ranking.BoardTwo, 1, board)
	if err := m.HandleSaveScore(" Ann ", "Bob"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := m.HandleSaveScore("Ann", "Bob"); !errors.Is(err, ErrAlreadySaved) {
		t.Fatalf("expected ErrAlreadySaved, got %v", err)
	}
}

func TestSaveScoreErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	rankings := NewMockRankings(ctrl)
	ui := NewMockUI(ctrl)
	ui.EXPECT().UpdateRoundScore(gomock.Any()).AnyTimes()
	ui.EXPECT().UpdateMatchScore(gomock.Any()).AnyTimes()
	ui.EXPECT().UpdateTurn(gomock.Any()).AnyTimes()
	ui.EXPECT().ShowMatchSummary(gomock.Any())
	ui.EXPECT().ShowRanking(ranking.BoardSingle, 1, gomock.Any())

	round := NewRoundManager(&countWorld{}, ui, &fakeScheduler{}, testSettle)
	m := NewMatchManager(context.Background(), round, rankings, ui, 0)
	m.SetBoardReset(func() {})
	m.SetGameMode(ModeSingle, 1)
	m.StartNewMatch()

	rankings.EXPECT().IsTopScore(gomock.Any(), 0, ranking.BoardSingle, 1).Return(true)
	rankings.EXPECT().GetRanking(gomock.Any(), ranking.BoardSingle, 1).Return(nil).Times(2)
	m.HandleRoundEnd(PlayerOne)

	rankings.EXPECT().SaveRanking(gomock.Any(), "Player 1", 0, ranking.BoardSingle, 1).
		Return(false, errors.New("redis down"))
	if err := m.HandleSaveScore("", ""); err != nil {
		t.Fatalf("persistence errors must not surface, got %v", err)
	}
}

func TestNameTruncation(t *testing.T) {
	h := newHarness(t, 1)
	h.start(ModeTwo, 1)
	h.clearBoard()
	if !h.gm.Match().IsOver() {
		t.Fatal("best of 1 should be over after one round")
	}
	long := strings.Repeat("x", 20)
	if err := h.gm.SaveScore(long, ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := h.rankings.GetRanking(context.Background(), ranking.BoardTwo, 1)
	if len(got) != 2 {
		t.Fatalf("expected both players saved, got %+v", got)
	}
	names := map[string]bool{}
	for _, e := range got {
		names[e.Name] = true
	}
	if !names[strings.Repeat("x", 15)] || !names["Player 2"] {
		t.Fatalf("unexpected names %+v", got)
	}
}

func TestModeDecodesTextAndNumbers(t *testing.T) {
	cases := map[string]Mode{
		`"two"`:    ModeTwo,
		`"2"`:      ModeTwo,
		`2`:        ModeTwo,
		`1`:        ModeSingle,
		`"single"`: ModeSingle,
		`0`:        ModeNone,
	}
	for in, want := range cases {
		var got struct {
			Mode Mode `json:"mode"`
		}
		if err := json.Unmarshal([]byte(`{"mode":`+in+`}`), &got); err != nil {
			t.Fatalf("%s: %v", in, err)
		}
		if got.Mode != want {
			t.Errorf("%s: expected %v, got %v", in, want, got.Mode)
		}
	}

	var bad struct {
		Mode Mode `json:"mode"`
	}
	if err := json.Unmarshal([]byte(`{"mode":7}`), &bad); err == nil {
		t.Error("mode 7 should be rejected")
	}
}
