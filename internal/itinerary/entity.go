// README: Entity extraction from segment text and primary-entity selection.
package itinerary

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// fallbackMaxRunes caps the primary text used when a segment has no tagged entity.
const fallbackMaxRunes = 100

// ExtractFromHyperlinks reads anchors from rendered segment markup in source order.
// A missing or empty data-attr yields CategoryUnknown.
func ExtractFromHyperlinks(markup string) []EntityMention {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}
	var out []EntityMention
	doc.Find("a").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Text())
		if name == "" {
			return
		}
		category := Category(strings.TrimSpace(s.AttrOr("data-attr", "")))
		if category == "" {
			category = CategoryUnknown
		}
		out = append(out, EntityMention{Name: name, Category: category})
	})
	return out
}

// ExtractFromBrackets reads "[Name](category)" markers from raw model text.
func ExtractFromBrackets(text string) []EntityMention {
	markers := scanMarkers(text)
	out := make([]EntityMention, 0, len(markers))
	for _, m := range markers {
		out = append(out, m.mention)
	}
	return out
}

// PlainText strips markup from rendered segment text.
func PlainText(markup string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return markup
	}
	return doc.Text()
}

// DeprioritizeRestaurants returns a copy of mentions with every restaurant moved after
// all other mentions. Relative order within each group is preserved.
func DeprioritizeRestaurants(mentions []EntityMention) []EntityMention {
	sorted := slices.Clone(mentions)
	slices.SortStableFunc(sorted, func(a, b EntityMention) int {
		return restaurantRank(a) - restaurantRank(b)
	})
	return sorted
}

func restaurantRank(m EntityMention) int {
	if m.Category == CategoryRestaurant {
		return 1
	}
	return 0
}

// PrimaryEntity picks the name that represents a segment for image lookup: the first mention
// after deprioritizing restaurants, or the leading sentence of fallbackText when there is none.
func PrimaryEntity(mentions []EntityMention, fallbackText string) string {
	if len(mentions) > 0 {
		return DeprioritizeRestaurants(mentions)[0].Name
	}
	return leadingSentence(fallbackText)
}

// PrimaryEntityOf applies PrimaryEntity to rendered segment markup.
func PrimaryEntityOf(markup string) string {
	return PrimaryEntity(ExtractFromHyperlinks(markup), PlainText(markup))
}

func leadingSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?。！？"); i >= 0 {
		text = text[:i]
	}
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > fallbackMaxRunes {
		text = string([]rune(text)[:fallbackMaxRunes])
	}
	return text
}
