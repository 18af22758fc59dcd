// README: Response parser tests (strict parse, brace fallback, segment scoping).
package itinerary

import (
	"errors"
	"strings"
	"testing"
)

const samplePlan = `{
  "summary": {"introduction": "Paris is lovely.", "bestTimeToVisit": "Spring"},
  "itinerary": [
    {"day": 1, "morning": "Visit [Eiffel Tower](landmark).", "afternoon": "Lunch at [Le Jules Verne](restaurant) then [Louvre Museum](museum).", "evening": "Stroll."},
    {"day": 2, "morning": "[Jardin du Luxembourg](park)", "afternoon": "Shopping", "evening": "Dinner"}
  ],
  "estimatedCost": {"total": "1000-1500 EUR", "breakdown": {"accommodation": "400-600", "transportation": "100", "food": "300", "activities": "150", "other": "50"}}
}`

func TestParsePlanStrict(t *testing.T) {
	res, err := ParsePlan(samplePlan, DefaultSearchURL)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	it := res.Itinerary
	if len(it.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(it.Days))
	}
	if it.Summary == nil || it.Summary.BestTimeToVisit != "Spring" || it.Summary.HowToGetThere != "" {
		t.Fatalf("unexpected summary %+v", it.Summary)
	}
	if it.EstimatedCost.Breakdown.Accommodation != "400-600" || it.EstimatedCost.Total != "1000-1500 EUR" {
		t.Fatalf("unexpected cost %+v", it.EstimatedCost)
	}
	if !strings.Contains(it.Days[0].Morning, `data-attr="landmark"`) {
		t.Fatalf("morning not linkified: %s", it.Days[0].Morning)
	}

	got := res.Mentions[1][Afternoon]
	if len(got) != 2 || got[0].Name != "Le Jules Verne" || got[1].Category != CategoryMuseum {
		t.Fatalf("unexpected afternoon mentions %+v", got)
	}
	if len(res.Mentions[1][Evening]) != 0 {
		t.Fatalf("plain segment should have no mentions")
	}
}

func TestParsePlanFencedAndWrapped(t *testing.T) {
	cases := map[string]string{
		"fenced":  "```json\n" + samplePlan + "\n```",
		"wrapped": "Here is your plan:\n" + samplePlan + "\nEnjoy {your trip}!",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := ParsePlan(raw, DefaultSearchURL)
			if err != nil {
				t.Fatalf("ParsePlan: %v", err)
			}
			if len(res.Itinerary.Days) != 2 {
				t.Fatalf("expected 2 days, got %d", len(res.Itinerary.Days))
			}
		})
	}
}

func TestParsePlanFailures(t *testing.T) {
	cases := map[string]string{
		"not json":     "not json",
		"unbalanced":   `{"itinerary": [`,
		"no itinerary": `{"summary": {"introduction": "hi"}}`,
		"empty days":   `{"itinerary": []}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := ParsePlan(raw, DefaultSearchURL)
			if !errors.Is(err, ErrParseFailure) {
				t.Fatalf("expected ErrParseFailure, got %v", err)
			}
			if res != nil {
				t.Fatalf("expected no result on failure")
			}
		})
	}
}

func TestParsePlanKeepsDayIndexAndCountMismatch(t *testing.T) {
	raw := `{"itinerary": [{"day": 7, "morning": "a", "afternoon": "b", "evening": "c"}]}`
	res, err := ParsePlan(raw, DefaultSearchURL)
	if err != nil {
		t.Fatalf("ParsePlan: %v", err)
	}
	if res.Itinerary.Days[0].Day != 7 || res.Renumbered {
		t.Fatalf("day index changed: %d", res.Itinerary.Days[0].Day)
	}
}

func TestParsePlanNumbersDaysByPositionWhenIndexesUnusable(t *testing.T) {
	cases := map[string]string{
		"missing": `{"itinerary": [
			{"morning": "[Eiffel Tower](landmark)", "afternoon": "a1", "evening": "e1"},
			{"morning": "[Louvre Museum](museum)", "afternoon": "a2", "evening": "e2"},
			{"morning": "[Sacre Coeur](landmark)", "afternoon": "a3", "evening": "e3"}]}`,
		"duplicate": `{"itinerary": [
			{"day": 1, "morning": "[Eiffel Tower](landmark)", "afternoon": "a1", "evening": "e1"},
			{"day": 1, "morning": "[Louvre Museum](museum)", "afternoon": "a2", "evening": "e2"},
			{"day": 2, "morning": "[Sacre Coeur](landmark)", "afternoon": "a3", "evening": "e3"}]}`,
	}
	want := []string{"Eiffel Tower", "Louvre Museum", "Sacre Coeur"}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			res, err := ParsePlan(raw, DefaultSearchURL)
			if err != nil {
				t.Fatalf("ParsePlan: %v", err)
			}
			if !res.Renumbered || len(res.Itinerary.Days) != 3 {
				t.Fatalf("renumbered=%v days=%d", res.Renumbered, len(res.Itinerary.Days))
			}
			for i, d := range res.Itinerary.Days {
				if d.Day != i+1 {
					t.Fatalf("day %d has index %d", i, d.Day)
				}
				got := res.Mentions[d.Day][Morning]
				if len(got) != 1 || got[0].Name != want[i] {
					t.Fatalf("day %d morning mentions %+v, want %s", d.Day, got, want[i])
				}
			}
		})
	}
}

func TestParseSegmentsScopesToTarget(t *testing.T) {
	raw := `{"morning": "See [Sacre-Coeur](landmark)", "afternoon": "ignored"}`
	res, err := ParseSegments(raw, RegenerateSegment(2, Morning), DefaultSearchURL)
	if err != nil {
		t.Fatalf("ParseSegments: %v", err)
	}
	if len(res.Segments) != 1 {
		t.Fatalf("expected only the targeted segment, got %v", res.Segments)
	}
	if !strings.Contains(res.Segments[Morning], `data-attr="landmark"`) {
		t.Fatalf("segment not linkified: %s", res.Segments[Morning])
	}
	if m := res.Mentions[Morning]; len(m) != 1 || m[0].Name != "Sacre-Coeur" {
		t.Fatalf("unexpected mentions %+v", m)
	}
}

func TestParseSegmentsPartialDay(t *testing.T) {
	raw := "```json\n{\"morning\": \"M1\", \"evening\": \"E1\"}\n```"
	res, err := ParseSegments(raw, RegenerateDay(1), DefaultSearchURL)
	if err != nil {
		t.Fatalf("ParseSegments: %v", err)
	}
	if res.Segments[Morning] != "M1" || res.Segments[Evening] != "E1" {
		t.Fatalf("unexpected segments %v", res.Segments)
	}
	if _, ok := res.Segments[Afternoon]; ok {
		t.Fatalf("absent key should not be present")
	}
}

func TestParseSegmentsFailures(t *testing.T) {
	for _, raw := range []string{"not json", `{"afternoon": "x"}`, `{"morning": 3}`} {
		if _, err := ParseSegments(raw, RegenerateSegment(1, Morning), DefaultSearchURL); !errors.Is(err, ErrParseFailure) {
			t.Errorf("%q: expected ErrParseFailure, got %v", raw, err)
		}
	}
}

func TestFirstObjectIgnoresBracesInStrings(t *testing.T) {
	got, ok := firstObject(`noise {"a": "}{", "b": {"c": 1}} tail }`)
	if !ok || got != `{"a": "}{", "b": {"c": 1}}` {
		t.Fatalf("firstObject = %q, %v", got, ok)
	}
}
