// Package ranking keeps the top-N leaderboards, one list per board and
// match length, on top of a plain key/value string store.
package ranking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"
)

const (
	// MaxEntries is the length of every ranking list.
	MaxEntries = 3
	// MaxNameLength is the longest name stored, in runes.
	MaxNameLength = 15
)

// Board identifies which leaderboard a score belongs to.
type Board string

const (
	BoardSingle Board = "single"
	BoardTwo    Board = "two"
)

// ParseBoard validates a board name coming from a URL or message.
func ParseBoard(s string) (Board, error) {
	switch Board(strings.ToLower(s)) {
	case BoardSingle:
		return BoardSingle, nil
	case BoardTwo:
		return BoardTwo, nil
	}
	return "", fmt.Errorf("unknown ranking board %q", s)
}

// Entry is one leaderboard row.
type Entry struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	MatchLength int    `json:"matchLengthMode"`
}

// Update describes a successful admission.
type Update struct {
	Board       Board   `json:"board"`
	MatchLength int     `json:"match_length"`
	Entry       Entry   `json:"entry"`
	Ranking     []Entry `json:"ranking"`
}

// Notifier is told about every admitted score. Failures are logged only.
type Notifier interface {
	RankingUpdated(ctx context.Context, u Update) error
}

// Manager reads and writes ranking lists.
type Manager struct {
	store     Store
	notifiers []Notifier
	mu        sync.Mutex // serializes read-modify-write of lists
}

// NewManager creates a ranking manager backed by store.
func NewManager(store Store, notifiers ...Notifier) *Manager {
	return &Manager{store: store, notifiers: notifiers}
}

// Key returns the storage key of a ranking list.
func Key(board Board, matchLength int) string {
	return fmt.Sprintf("ranking:%s:%d", board, matchLength)
}

// NormalizeName trims the name, substitutes fallback when it is empty and
// truncates it to MaxNameLength runes.
func NormalizeName(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = fallback
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = string([]rune(name)[:MaxNameLength])
	}
	return name
}

// GetRanking returns up to MaxEntries entries sorted by descending score.
// Missing or unreadable lists read as empty.
func (m *Manager) GetRanking(ctx context.Context, board Board, matchLength int) []Entry {
	return m.load(ctx, board, matchLength)
}

// IsTopScore reports whether score would be admitted, without saving it.
func (m *Manager) IsTopScore(ctx context.Context, score int, board Board, matchLength int) bool {
	return admits(m.load(ctx, board, matchLength), score)
}

// SaveRanking inserts the score when the list has room or the score beats
// the last entry. It reports whether the score was admitted.
func (m *Manager) SaveRanking(ctx context.Context, name string, score int, board Board, matchLength int) (bool, error) {
	m.mu.Lock()
	list := m.load(ctx, board, matchLength)
	if !admits(list, score) {
		m.mu.Unlock()
		return false, nil
	}

	entry := Entry{
		Name:        NormalizeName(name, "Player"),
		Score:       score,
		MatchLength: matchLength,
	}
	list = insert(list, entry)

	data, err := json.Marshal(list)
	if err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("encode ranking: %w", err)
	}
	if err := m.store.Save(ctx, Key(board, matchLength), string(data)); err != nil {
		m.mu.Unlock()
		return false, fmt.Errorf("save ranking %s: %w", Key(board, matchLength), err)
	}
	m.mu.Unlock()

	log.Printf("[RANKING] %s scored %d on %s (best of %d)", entry.Name, score, board, matchLength)
	m.notify(ctx, Update{Board: board, MatchLength: matchLength, Entry: entry, Ranking: list})
	return true, nil
}

// Reset clears one ranking list.
func (m *Manager) Reset(ctx context.Context, board Board, matchLength int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Delete(ctx, Key(board, matchLength)); err != nil && !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("reset ranking %s: %w", Key(board, matchLength), err)
	}
	return nil
}

func (m *Manager) load(ctx context.Context, board Board, matchLength int) []Entry {
	key := Key(board, matchLength)
	raw, err := m.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[RANKING] Failed to load %s, treating as empty: %v", key, err)
		}
		return []Entry{}
	}

	var list []Entry
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		log.Printf("[RANKING] Corrupt ranking %s, treating as empty: %v", key, err)
		return []Entry{}
	}

	sortEntries(list)
	if len(list) > MaxEntries {
		list = list[:MaxEntries]
	}
	return list
}

func (m *Manager) notify(ctx context.Context, u Update) {
	for _, n := range m.notifiers {
		if err := n.RankingUpdated(ctx, u); err != nil {
			log.Printf("[RANKING] Notifier failed: %v", err)
		}
	}
}

// admits reports whether score enters list.
func admits(list []Entry, score int) bool {
	if score < 0 {
		return false
	}
	if len(list) < MaxEntries {
		return true
	}
	return score > list[len(list)-1].Score
}

func insert(list []Entry, e Entry) []Entry {
	out := make([]Entry, 0, len(list)+1)
	out = append(out, list...)
	out = append(out, e)
	sortEntries(out)
	if len(out) > MaxEntries {
		out = out[:MaxEntries]
	}
	return out
}

func sortEntries(list []Entry) {
	sort.SliceStable(list, func(i, j int) bool { return list[i].Score > list[j].Score })
}
