package session

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/playpool/pocketball/internal/game"
)

var ErrTableNotFound = errors.New("table not found")

// Registry holds the live tables of this instance.
type Registry struct {
	ctx      context.Context
	cfg      Config
	rankings game.Rankings
	out      Broadcaster
	idle     time.Duration

	tables  map[string]*Table
	onClose func(id string)
	mu      sync.RWMutex
}

// NewRegistry creates a registry. Tables live until ctx is done, they are
// removed or they sit idle for longer than idle; idle <= 0 disables expiry.
func NewRegistry(ctx context.Context, cfg Config, rankings game.Rankings, out Broadcaster, idle time.Duration) *Registry {
	return &Registry{
		ctx:      ctx,
		cfg:      cfg,
		rankings: rankings,
		out:      out,
		idle:     idle,
		tables:   make(map[string]*Table),
	}
}

// OnClose registers fn to run after a table is removed.
func (r *Registry) OnClose(fn func(id string)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onClose = fn
}

// Create starts a new table with a fresh ID.
func (r *Registry) Create() (*Table, error) {
	id := uuid.NewString()
	t, err := NewTable(r.ctx, id, r.cfg, r.rankings, r.out)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.tables[id] = t
	total := len(r.tables)
	r.mu.Unlock()

	log.Printf("[TABLE] %d tables open", total)
	return t, nil
}

func (r *Registry) Get(id string) (*Table, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[id]
	if !ok {
		return nil, ErrTableNotFound
	}
	return t, nil
}

// Remove closes and forgets a table.
func (r *Registry) Remove(id string) bool {
	r.mu.Lock()
	t, ok := r.tables[id]
	delete(r.tables, id)
	onClose := r.onClose
	r.mu.Unlock()

	if !ok {
		return false
	}
	t.Close()
	if onClose != nil {
		onClose(id)
	}
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tables)
}

// CloseAll closes every table, used on shutdown.
func (r *Registry) CloseAll() {
	r.mu.RLock()
	ids := make([]string, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	r.mu.RUnlock()

	for _, id := range ids {
		r.Remove(id)
	}
}

// ExpireIdle closes tables idle since before now minus the idle timeout
// and returns how many were closed.
func (r *Registry) ExpireIdle(now time.Time) int {
	if r.idle <= 0 {
		return 0
	}
	var stale []string
	r.mu.RLock()
	for id, t := range r.tables {
		if now.Sub(t.LastActive()) > r.idle {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	n := 0
	for _, id := range stale {
		if r.Remove(id) {
			log.Printf("[TABLE] Table %s expired after %s idle", id, r.idle)
			n++
		}
	}
	return n
}

// RunExpiry checks for idle tables every interval until ctx is done.
func (r *Registry) RunExpiry(ctx context.Context, interval time.Duration) error {
	if r.idle <= 0 {
		log.Println("[TABLE] Idle expiry disabled")
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[TABLE] Idle expiry started (timeout %s)", r.idle)
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			r.ExpireIdle(now)
		}
	}
}
