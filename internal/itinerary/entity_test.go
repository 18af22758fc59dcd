// README: Entity extraction, markup and primary-entity selection tests.
package itinerary

import (
	"net/url"
	"strings"
	"testing"
)

func TestLinkifyOneAnchorPerMarker(t *testing.T) {
	text := "Start at [Notre-Dame de Paris](landmark), eat at [Café de Flore](restaurant) & relax in [Parc Monceau](park)."
	markup, mentions := Linkify(text, DefaultSearchURL)

	if n := strings.Count(markup, "<a "); n != 3 {
		t.Fatalf("expected 3 anchors, got %d: %s", n, markup)
	}
	if !strings.Contains(markup, "&amp; relax") {
		t.Fatalf("surrounding text not escaped: %s", markup)
	}

	found := ExtractFromHyperlinks(markup)
	if len(found) != len(mentions) {
		t.Fatalf("hyperlink extraction found %d, linkify reported %d", len(found), len(mentions))
	}
	for i, m := range found {
		if m != mentions[i] {
			t.Errorf("mention %d: %+v != %+v", i, m, mentions[i])
		}
	}
	if found[1].Name != "Café de Flore" || found[1].Category != CategoryRestaurant {
		t.Fatalf("unexpected second mention %+v", found[1])
	}
}

func TestLinkifySearchURLRoundTrips(t *testing.T) {
	markup, _ := Linkify("[Musée d'Orsay & Co](museum)", DefaultSearchURL)
	start := strings.Index(markup, `href="`) + len(`href="`)
	end := strings.Index(markup[start:], `"`) + start
	href := strings.ReplaceAll(markup[start:end], "&amp;", "&")

	u, err := url.Parse(href)
	if err != nil {
		t.Fatalf("parse href: %v", err)
	}
	if q := u.Query().Get("q"); q != "Musée d'Orsay & Co" {
		t.Fatalf("query decodes to %q", q)
	}
}

func TestLinkifyLeavesMalformedLiteral(t *testing.T) {
	cases := []string{
		"[Open bracket only",
		"[Name] without category",
		"[Name](unclosed",
		"[](empty)",
		"[Name](bad/category)",
		"[Split\nname](park)",
	}
	for _, text := range cases {
		markup, mentions := Linkify(text, DefaultSearchURL)
		if len(mentions) != 0 || strings.Contains(markup, "<a ") {
			t.Errorf("%q: expected no anchors, got %s", text, markup)
		}
	}
}

func TestLinkifyNestedOpenBracket(t *testing.T) {
	_, mentions := Linkify("[outer [Big Ben](landmark)", DefaultSearchURL)
	if len(mentions) != 1 || mentions[0].Name != "Big Ben" {
		t.Fatalf("unexpected mentions %+v", mentions)
	}
}

func TestExtractFromBrackets(t *testing.T) {
	got := ExtractFromBrackets("[Tate Modern](Museum) and [Borough Market](restaurant)")
	if len(got) != 2 || got[0].Category != CategoryMuseum || got[1].Name != "Borough Market" {
		t.Fatalf("unexpected mentions %+v", got)
	}
}

func TestExtractFromHyperlinksDefaultsUnknown(t *testing.T) {
	got := ExtractFromHyperlinks(`<a href="x">Big Ben</a>`)
	if len(got) != 1 || got[0].Category != CategoryUnknown {
		t.Fatalf("unexpected mentions %+v", got)
	}
}

func TestPrimaryEntityDeprioritizesRestaurants(t *testing.T) {
	mentions := []EntityMention{
		{Name: "A", Category: CategoryLandmark},
		{Name: "B", Category: CategoryRestaurant},
		{Name: "C", Category: CategoryLandmark},
	}
	if got := PrimaryEntity(mentions, ""); got != "A" {
		t.Fatalf("primary = %q", got)
	}

	restaurantFirst := []EntityMention{
		{Name: "R", Category: CategoryRestaurant},
		{Name: "P", Category: CategoryPark},
		{Name: "M", Category: CategoryMuseum},
	}
	sorted := DeprioritizeRestaurants(restaurantFirst)
	if sorted[0].Name != "P" || sorted[1].Name != "M" || sorted[2].Name != "R" {
		t.Fatalf("unexpected order %+v", sorted)
	}
	if restaurantFirst[0].Name != "R" {
		t.Fatalf("input slice was modified")
	}

	if got := PrimaryEntity([]EntityMention{{Name: "A", Category: CategoryRestaurant}}, ""); got != "A" {
		t.Fatalf("restaurant-only primary = %q", got)
	}
}

func TestPrimaryEntityFallsBackToLeadingSentence(t *testing.T) {
	if got := PrimaryEntity(nil, "Wander the old town. Then rest."); got != "Wander the old town" {
		t.Fatalf("fallback = %q", got)
	}
	long := strings.Repeat("é", 150)
	if got := PrimaryEntity(nil, long); len([]rune(got)) != fallbackMaxRunes {
		t.Fatalf("fallback length = %d", len([]rune(got)))
	}
}

func TestPrimaryEntityOfMarkup(t *testing.T) {
	markup, _ := Linkify("Dinner at [Chez Janou](restaurant), then [Place des Vosges](landmark).", DefaultSearchURL)
	if got := PrimaryEntityOf(markup); got != "Place des Vosges" {
		t.Fatalf("primary = %q", got)
	}
	if got := PrimaryEntityOf("Free morning. Sleep in."); got != "Free morning" {
		t.Fatalf("primary of plain text = %q", got)
	}
}
