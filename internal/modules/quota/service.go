// README: Generation governor policies (capped per quota day, or always allow).
package quota

import (
	"context"
	"time"
)

// Governor decides whether a session may issue another generation call.
type Governor interface {
	// CheckAndIncrement consumes one generation or returns ErrQuotaExceeded without side effects.
	CheckAndIncrement(ctx context.Context, sessionID string) error
	Status(ctx context.Context, sessionID string) (Status, error)
	Reset(ctx context.Context, sessionID string) error
}

// Capped enforces a daily limit. The quota day is the local date in loc, which makes the
// boundary approximate for users in other timezones.
type Capped struct {
	store Store
	limit int
	loc   *time.Location
	now   func() time.Time
}

func NewCapped(store Store, limit int, loc *time.Location) *Capped {
	if limit < 1 {
		limit = DefaultDailyLimit
	}
	if loc == nil {
		loc = time.Local
	}
	return &Capped{store: store, limit: limit, loc: loc, now: time.Now}
}

func (c *Capped) today() string {
	return c.now().In(c.loc).Format(dateLayout)
}

func (c *Capped) CheckAndIncrement(ctx context.Context, sessionID string) error {
	_, err := c.store.Increment(ctx, sessionID, c.today(), c.limit)
	return err
}

// Status reports a stale record as zero usage for today.
func (c *Capped) Status(ctx context.Context, sessionID string) (Status, error) {
	today := c.today()
	st := Status{Date: today, Limit: c.limit, Capped: true}
	r, ok, err := c.store.Get(ctx, sessionID)
	if err != nil {
		return Status{}, err
	}
	if ok && r.Date == today {
		st.Count = r.Count
	}
	return st, nil
}

func (c *Capped) Reset(ctx context.Context, sessionID string) error {
	return c.store.Reset(ctx, sessionID)
}

// AlwaysAllow is used outside production. It never persists anything.
// Location sets the calendar day reported by Status; nil means time.Local.
type AlwaysAllow struct {
	Location *time.Location
}

func (AlwaysAllow) CheckAndIncrement(context.Context, string) error { return nil }

func (a AlwaysAllow) Status(context.Context, string) (Status, error) {
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return Status{Date: time.Now().In(loc).Format(dateLayout)}, nil
}

func (AlwaysAllow) Reset(context.Context, string) error { return nil }
