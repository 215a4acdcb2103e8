package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playpool/pocketball/internal/ranking"
	"github.com/redis/go-redis/v9"
)

// RankingEvent is the payload published on ranking.EventsChannel.
type RankingEvent struct {
	Type        string          `json:"type"`
	Board       ranking.Board   `json:"board"`
	MatchLength int             `json:"match_length"`
	Entry       ranking.Entry   `json:"entry"`
	Ranking     []ranking.Entry `json:"ranking"`
}

// SubscribeRankingEvents forwards ranking updates published by any
// instance to every table connected here. It returns when ctx is done.
func (h *Hub) SubscribeRankingEvents(ctx context.Context, rdb *redis.Client) error {
	pubsub := rdb.Subscribe(ctx, ranking.EventsChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()
	log.Printf("[WS] %s subscriber started", ranking.EventsChannel)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			h.handleRankingEvent([]byte(msg.Payload))
		}
	}
}

// handleRankingEvent broadcasts one event and returns the number of
// connections it was queued for.
func (h *Hub) handleRankingEvent(payload []byte) int {
	var ev RankingEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		log.Printf("[WS] invalid ranking event payload: %v", err)
		return 0
	}
	if ev.Type != "ranking_updated" {
		log.Printf("[WS] unknown ranking event type: %s", ev.Type)
		return 0
	}

	n := h.BroadcastAll(map[string]interface{}{
		"type":         "ranking",
		"board":        ev.Board,
		"match_length": ev.MatchLength,
		"ranking":      ev.Ranking,
	})
	log.Printf("[WS] ranking update for %s/%d sent to %d connections", ev.Board, ev.MatchLength, n)
	return n
}
