// README: Image cache tests (stale-write guard and projection refresh on paging).
package session

import (
	"testing"

	"wanderplan/internal/itinerary"
)

func TestStoreImageOnlyProjectsDisplayedVersion(t *testing.T) {
	st := newPlannedState()
	_, _ = st.RecordRegeneration(2, map[itinerary.TimeOfDay]string{itinerary.Morning: "M1"})

	// Version 1 resolves late while version 2 is shown.
	if st.StoreImage(2, 1, itinerary.Morning, "/old.jpg") {
		t.Fatalf("stale version should not update the projection")
	}
	if _, ok := st.CurrentImage(2, itinerary.Morning); ok {
		t.Fatalf("projection written for a hidden version")
	}
	if url, ok := st.CachedImage(2, 1, itinerary.Morning); !ok || url != "/old.jpg" {
		t.Fatalf("versioned slot not written")
	}

	if !st.StoreImage(2, 2, itinerary.Morning, "/new.jpg") {
		t.Fatalf("displayed version should update the projection")
	}
	if url, _ := st.CurrentImage(2, itinerary.Morning); url != "/new.jpg" {
		t.Fatalf("projection = %q", url)
	}
}

func TestRefreshProjectionUsesCacheForPage(t *testing.T) {
	st := newPlannedState()
	st.StoreImage(2, 1, itinerary.Morning, "/v1-morning.jpg")
	st.StoreImage(2, 1, itinerary.Evening, "/v1-evening.jpg")
	_, _ = st.RecordRegeneration(2, map[itinerary.TimeOfDay]string{itinerary.Morning: "M1"})

	missing, err := st.RefreshProjection(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 3 {
		t.Fatalf("new version should miss every segment, got %v", missing)
	}
	if _, ok := st.CurrentImage(2, itinerary.Evening); ok {
		t.Fatalf("projection kept an image from another version")
	}

	_, _ = st.SetPage(2, 1)
	missing, err = st.RefreshProjection(2)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 1 || missing[0] != itinerary.Afternoon {
		t.Fatalf("expected only afternoon missing, got %v", missing)
	}
	if url, _ := st.CurrentImage(2, itinerary.Morning); url != "/v1-morning.jpg" {
		t.Fatalf("projection = %q", url)
	}
}

func TestStoreImageIgnoresEmptyURL(t *testing.T) {
	st := newPlannedState()
	if st.StoreImage(1, 1, itinerary.Morning, "") {
		t.Fatalf("empty url should be ignored")
	}
	if _, ok := st.CachedImage(1, 1, itinerary.Morning); ok {
		t.Fatalf("empty url was cached")
	}
}
