// README: Feedback store backed by PostgreSQL.
package feedback

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, f *Feedback) error {
	return s.db.QueryRow(ctx, `
		INSERT INTO feedback (rating, comment)
		VALUES ($1, $2)
		RETURNING id, created_at
	`, f.Rating, f.Comment).Scan(&f.ID, &f.Timestamp)
}

// List returns feedback newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Feedback, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, rating, comment, created_at
		FROM feedback
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.Rating, &f.Comment, &f.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
