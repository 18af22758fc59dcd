// README: Quota stores: Postgres (atomic check-and-increment) and in-memory.
package quota

import (
	"context"
	"errors"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists per-session quota records.
type Store interface {
	// Increment resets the count when date differs from the stored date, then adds one
	// unless the count already reached limit. It returns the new count or ErrQuotaExceeded.
	Increment(ctx context.Context, sessionID, date string, limit int) (int, error)
	Get(ctx context.Context, sessionID string) (Record, bool, error)
	Reset(ctx context.Context, sessionID string) error
}

// PGStore keeps quota rows in the generation_quota table.
type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// Increment runs as one statement; a denied call updates no row.
func (s *PGStore) Increment(ctx context.Context, sessionID, date string, limit int) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, `
		INSERT INTO generation_quota (session_id, quota_date, count)
		VALUES ($1, $2, 1)
		ON CONFLICT (session_id) DO UPDATE SET
			count = CASE WHEN generation_quota.quota_date <> EXCLUDED.quota_date THEN 1 ELSE generation_quota.count + 1 END,
			quota_date = EXCLUDED.quota_date
		WHERE generation_quota.quota_date <> EXCLUDED.quota_date OR generation_quota.count < $3
		RETURNING count
	`, sessionID, date, limit).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrQuotaExceeded
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PGStore) Get(ctx context.Context, sessionID string) (Record, bool, error) {
	var r Record
	err := s.db.QueryRow(ctx, `
		SELECT quota_date, count FROM generation_quota WHERE session_id = $1
	`, sessionID).Scan(&r.Date, &r.Count)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return r, true, nil
}

func (s *PGStore) Reset(ctx context.Context, sessionID string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM generation_quota WHERE session_id = $1`, sessionID)
	return err
}

// MemoryStore keeps quota records in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]Record
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]Record{}}
}

func (s *MemoryStore) Increment(_ context.Context, sessionID, date string, limit int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.records[sessionID]
	if r.Date != date {
		r = Record{Date: date}
	}
	if r.Count >= limit {
		return 0, ErrQuotaExceeded
	}
	r.Count++
	s.records[sessionID] = r
	return r.Count, nil
}

func (s *MemoryStore) Get(_ context.Context, sessionID string) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[sessionID]
	return r, ok, nil
}

func (s *MemoryStore) Reset(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.records, sessionID)
	s.mu.Unlock()
	return nil
}
