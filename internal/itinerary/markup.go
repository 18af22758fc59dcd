// README: Bracket-markup scanner and hyperlink rendering for entity mentions.
package itinerary

import (
	"html"
	"net/url"
	"strings"
)

// DefaultSearchURL prefixes the percent-encoded entity name in generated links.
const DefaultSearchURL = "https://www.google.com/search?q="

// marker is one well-formed "[Name](category)" occurrence; end is exclusive.
type marker struct {
	start, end int
	mention    EntityMention
}

// scanMarkers finds well-formed markers in source order. Anything else stays literal.
func scanMarkers(text string) []marker {
	var out []marker
	i := 0
	for i < len(text) {
		open := strings.IndexByte(text[i:], '[')
		if open < 0 {
			break
		}
		open += i
		m, next, ok := markerAt(text, open)
		if ok {
			out = append(out, m)
		}
		i = next
	}
	return out
}

// markerAt tries to read a marker starting at text[open] == '['.
// It returns where scanning should resume.
func markerAt(text string, open int) (marker, int, bool) {
	closeName := -1
	for j := open + 1; j < len(text); j++ {
		c := text[j]
		if c == ']' {
			closeName = j
			break
		}
		if c == '[' || c == '\n' {
			return marker{}, j, false
		}
	}
	if closeName < 0 {
		return marker{}, len(text), false
	}
	name := strings.TrimSpace(text[open+1 : closeName])
	if name == "" || closeName+1 >= len(text) || text[closeName+1] != '(' {
		return marker{}, closeName + 1, false
	}

	closeCat := -1
	for k := closeName + 2; k < len(text); k++ {
		c := text[k]
		if c == ')' {
			closeCat = k
			break
		}
		if !isCategoryByte(c) {
			return marker{}, closeName + 1, false
		}
	}
	if closeCat < 0 {
		return marker{}, closeName + 1, false
	}
	category := strings.ToLower(strings.TrimSpace(text[closeName+2 : closeCat]))
	if category == "" {
		return marker{}, closeName + 1, false
	}
	return marker{
		start:   open,
		end:     closeCat + 1,
		mention: EntityMention{Name: name, Category: Category(category)},
	}, closeCat + 1, true
}

func isCategoryByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == ' ' || c == '-' || c == '_'
}

// Linkify converts every well-formed marker into an anchor carrying the category in data-attr
// and returns the mentions in source order. Surrounding text is HTML-escaped.
func Linkify(text, searchURL string) (string, []EntityMention) {
	if searchURL == "" {
		searchURL = DefaultSearchURL
	}
	markers := scanMarkers(text)
	mentions := make([]EntityMention, 0, len(markers))

	var b strings.Builder
	b.Grow(len(text) + 96*len(markers))
	last := 0
	for _, m := range markers {
		b.WriteString(html.EscapeString(text[last:m.start]))
		b.WriteString(anchor(m.mention, searchURL))
		mentions = append(mentions, m.mention)
		last = m.end
	}
	b.WriteString(html.EscapeString(text[last:]))
	return b.String(), mentions
}

// SearchLink builds the web-search target for an entity name.
func SearchLink(searchURL, name string) string {
	return searchURL + url.QueryEscape(name)
}

func anchor(m EntityMention, searchURL string) string {
	return `<a href="` + html.EscapeString(SearchLink(searchURL, m.Name)) +
		`" data-attr="` + html.EscapeString(string(m.Category)) + `">` +
		html.EscapeString(m.Name) + `</a>`
}
