package feedback

import (
	"errors"
	"time"
)

// ErrInvalidRating is returned for ratings outside MinRating..MaxRating.
var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const (
	MinRating = 1
	MaxRating = 5
	// maxCommentRunes caps stored comment length.
	maxCommentRunes = 2000
)

type Feedback struct {
	ID        int64     `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}
