// README: Session service and store tests. Redis tests need WANDERPLAN_TEST_REDIS_ADDR.
package session

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"wanderplan/internal/itinerary"
)

func TestServiceCreateAndForm(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()

	st, err := svc.Create(ctx)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	form := Form{Destination: "Paris", HomeLocation: "London", NumDays: 3, IsRoundTrip: true, Travelers: "Family", GroupSize: 4}
	if _, err := svc.SaveForm(ctx, st.ID, form); err != nil {
		t.Fatalf("SaveForm: %v", err)
	}
	got, err := svc.Form(ctx, st.ID)
	if err != nil || got != form {
		t.Fatalf("Form = %+v, %v", got, err)
	}

	if err := svc.ResetForm(ctx, st.ID); err != nil {
		t.Fatalf("ResetForm: %v", err)
	}
	if got, _ := svc.Form(ctx, st.ID); got != (Form{}) {
		t.Fatalf("form not reset: %+v", got)
	}
}

func TestServiceUnknownSession(t *testing.T) {
	svc := NewService(NewMemoryStore())
	for _, id := range []string{"not-a-uuid", "6f1c1d3e-8f0a-4c55-9a43-2d7f5f8c0b11"} {
		if _, err := svc.Get(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("%s: expected ErrNotFound, got %v", id, err)
		}
	}
}

func TestServiceUpdateDiscardsOnError(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	st, _ := svc.Create(ctx)

	boom := errors.New("boom")
	_, err := svc.Update(ctx, st.ID, func(s *State) error {
		s.Form.Destination = "Rome"
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if form, _ := svc.Form(ctx, st.ID); form.Destination != "" {
		t.Fatalf("failed update was saved")
	}
}

func TestServiceUpdateSerialisesPerSession(t *testing.T) {
	svc := NewService(NewMemoryStore())
	ctx := context.Background()
	st, _ := svc.Create(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Update(ctx, st.ID, func(s *State) error {
				s.Form.NumDays++
				return nil
			})
		}()
	}
	wg.Wait()

	form, _ := svc.Form(ctx, st.ID)
	if form.NumDays != 20 {
		t.Fatalf("lost updates: %d", form.NumDays)
	}
	if len(svc.locks) != 0 {
		t.Fatalf("locks leaked: %d", len(svc.locks))
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	st := newPlannedState()
	if err := store.Save(ctx, st); err != nil {
		t.Fatal(err)
	}
	st.Plan.Days[0].Morning = "changed"

	got, err := store.Get(ctx, st.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Plan.Days[0].Morning != "m" {
		t.Fatalf("store shares memory with caller")
	}
}

func TestRedisStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("WANDERPLAN_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("WANDERPLAN_TEST_REDIS_ADDR not set; skipping integration test")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	defer rdb.Close()

	store := NewRedisStore(rdb, time.Minute)
	ctx := context.Background()
	st := newPlannedState()
	st.ID = "test-" + time.Now().Format("150405.000000000")
	_, _ = st.RecordRegeneration(2, map[itinerary.TimeOfDay]string{itinerary.Morning: "M1"})
	st.StoreImage(2, 2, itinerary.Morning, "/img.jpg")

	if err := store.Save(ctx, st); err != nil {
		t.Fatalf("Save: %v", err)
	}
	defer store.Delete(ctx, st.ID)

	got, err := store.Get(ctx, st.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.HistoryLength(2) != 2 || got.Page(2) != 2 {
		t.Fatalf("history not restored: %d / %d", got.HistoryLength(2), got.Page(2))
	}
	if url, _ := got.CurrentImage(2, itinerary.Morning); url != "/img.jpg" {
		t.Fatalf("projection not restored: %q", url)
	}

	if err := store.Delete(ctx, st.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Get(ctx, st.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
