package models

import (
	"encoding/json"
	"time"
)

// RankingRecord is one stored ranking list, keyed ranking:<board>:<length>.
type RankingRecord struct {
	Key       string    `db:"key" json:"key"`
	Value     string    `db:"value" json:"value"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// AdminAudit is a recorded admin action.
type AdminAudit struct {
	ID        int             `db:"id" json:"id"`
	IP        string          `db:"ip" json:"ip"`
	Route     string          `db:"route" json:"route"`
	Action    string          `db:"action" json:"action"`
	Details   json.RawMessage `db:"details" json:"details"`
	Success   bool            `db:"success" json:"success"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
