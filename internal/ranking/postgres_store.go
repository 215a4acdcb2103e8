package ranking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/playpool/pocketball/internal/models"
)

// PostgresStore persists rankings in the rankings table created by the
// migrations.
type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Load(ctx context.Context, key string) (string, error) {
	var rec models.RankingRecord
	err := s.db.GetContext(ctx, &rec, `SELECT key, value, updated_at FROM rankings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	return rec.Value, err
}

func (s *PostgresStore) Save(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO rankings (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`, key, value)
	return err
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM rankings WHERE key = $1`, key)
	return err
}
