package quota

import "errors"

// ErrQuotaExceeded is returned when a session has used its daily generation allowance.
var ErrQuotaExceeded = errors.New("daily generation limit reached")

// LimitReachedMessage is shown to the user when a generation is denied.
const LimitReachedMessage = "You have reached the daily generation limit. Please try again tomorrow."

// DefaultDailyLimit is the number of generation calls a session may issue per quota day.
const DefaultDailyLimit = 20

// dateLayout formats the quota day in the configured timezone.
const dateLayout = "2006-01-02"

// Record is the persisted (date, count) pair of one session.
type Record struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// Status reports the quota of a session for the current quota day.
type Status struct {
	Date   string `json:"date"`
	Count  int    `json:"count"`
	Limit  int    `json:"limit"`
	Capped bool   `json:"capped"`
}
