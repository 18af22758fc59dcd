package feedback

import (
	"context"
	"strings"
	"unicode/utf8"
)

// defaultListLimit bounds GET /api/all-feedback.
const defaultListLimit = 500

// Repository is implemented by Store.
type Repository interface {
	Create(ctx context.Context, f *Feedback) error
	List(ctx context.Context, limit int) ([]Feedback, error)
}

// Service validates and records user feedback.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit stores a rating with an optional comment.
func (s *Service) Submit(ctx context.Context, rating int, comment string) (*Feedback, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > maxCommentRunes {
		comment = string([]rune(comment)[:maxCommentRunes])
	}
	f := &Feedback{Rating: rating, Comment: comment}
	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) List(ctx context.Context) ([]Feedback, error) {
	return s.repo.List(ctx, defaultListLimit)
}
