// README: Session service; creates sessions and serialises updates per session id.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Service owns session lifecycle. Updates to one session run one at a time.
type Service struct {
	store Store
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now, locks: map[string]*keyLock{}}
}

// Create starts an empty session with a fresh id.
func (s *Service) Create(ctx context.Context) (*State, error) {
	st := New(uuid.NewString(), s.now().UTC())
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Get loads a session without locking it.
func (s *Service) Get(ctx context.Context, id string) (*State, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Update loads a session under its lock, applies fn and saves the result when fn succeeds.
func (s *Service) Update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	unlock := s.lock(id)
	defer unlock()

	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(st); err != nil {
		return nil, err
	}
	st.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, st); err != nil {
		return nil, err
	}
	return st, nil
}

// Form returns the saved form fields.
func (s *Service) Form(ctx context.Context, id string) (Form, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return Form{}, err
	}
	return st.Form, nil
}

// SaveForm replaces the saved form fields.
func (s *Service) SaveForm(ctx context.Context, id string, form Form) (Form, error) {
	st, err := s.Update(ctx, id, func(st *State) error {
		st.Form = form
		return nil
	})
	if err != nil {
		return Form{}, err
	}
	return st.Form, nil
}

// ResetForm clears the saved form fields.
func (s *Service) ResetForm(ctx context.Context, id string) error {
	_, err := s.Update(ctx, id, func(st *State) error {
		st.Form = Form{}
		return nil
	})
	return err
}

func (s *Service) lock(id string) func() {
	s.mu.Lock()
	l, ok := s.locks[id]
	if !ok {
		l = &keyLock{}
		s.locks[id] = l
	}
	l.refs++
	s.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		s.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
		s.mu.Unlock()
	}
}
