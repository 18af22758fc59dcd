// README: Response parser; turns raw model text into an itinerary or regenerated segments.
package itinerary

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SegmentMentions holds the entities found in each segment of one day, in source order.
type SegmentMentions map[TimeOfDay][]EntityMention

// ParsedPlan is the result of a full-plan parse. Mentions is keyed by day index.
// Renumbered is set when the response's day fields were missing or repeated and the
// days were numbered by position instead.
type ParsedPlan struct {
	Itinerary  Itinerary
	Mentions   map[int]SegmentMentions
	Renumbered bool
}

// ParsedSegments is the result of a regeneration parse. It only holds keys present in the response.
type ParsedSegments struct {
	Segments map[TimeOfDay]string
	Mentions SegmentMentions
}

type rawDay struct {
	Day       int     `json:"day"`
	Morning   *string `json:"morning"`
	Afternoon *string `json:"afternoon"`
	Evening   *string `json:"evening"`
}

func (d rawDay) segment(t TimeOfDay) *string {
	switch t {
	case Morning:
		return d.Morning
	case Afternoon:
		return d.Afternoon
	case Evening:
		return d.Evening
	}
	return nil
}

type rawPlan struct {
	Summary       *Summary       `json:"summary"`
	Days          *[]rawDay      `json:"itinerary"`
	EstimatedCost *EstimatedCost `json:"estimatedCost"`
}

// ParsePlan reads a full-plan response. The day count is not checked against the request.
func ParsePlan(raw, searchURL string) (*ParsedPlan, error) {
	var rp rawPlan
	if err := decodeLoose(raw, &rp); err != nil {
		return nil, err
	}
	if rp.Days == nil || len(*rp.Days) == 0 {
		return nil, fmt.Errorf("%w: response has no itinerary days", ErrParseFailure)
	}

	out := &ParsedPlan{Mentions: make(map[int]SegmentMentions, len(*rp.Days))}
	if rp.Summary != nil {
		s := Summary{
			Introduction:    linkText(rp.Summary.Introduction, searchURL),
			BestTimeToVisit: linkText(rp.Summary.BestTimeToVisit, searchURL),
			HowToGetThere:   linkText(rp.Summary.HowToGetThere, searchURL),
		}
		out.Itinerary.Summary = &s
	}
	if rp.EstimatedCost != nil {
		out.Itinerary.EstimatedCost = *rp.EstimatedCost
	}

	out.Renumbered = !uniqueDayIndexes(*rp.Days)
	for i, rd := range *rp.Days {
		day := Day{Day: rd.Day}
		if out.Renumbered {
			day.Day = i + 1
		}
		mentions := SegmentMentions{}
		for _, t := range TimesOfDay {
			text := rd.segment(t)
			if text == nil {
				continue
			}
			markup, found := Linkify(*text, searchURL)
			day = day.WithSegment(t, markup)
			mentions[t] = found
		}
		out.Itinerary.Days = append(out.Itinerary.Days, day)
		out.Mentions[day.Day] = mentions
	}
	return out, nil
}

// uniqueDayIndexes reports whether every day carries a positive index not used by another day.
func uniqueDayIndexes(days []rawDay) bool {
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d.Day < 1 || seen[d.Day] {
			return false
		}
		seen[d.Day] = true
	}
	return true
}

// ParseSegments reads a regeneration response, keeping only the segment keys m targets.
// A response with none of them is a parse failure.
func ParseSegments(raw string, m Mode, searchURL string) (*ParsedSegments, error) {
	var obj map[string]json.RawMessage
	if err := decodeLoose(raw, &obj); err != nil {
		return nil, err
	}

	out := &ParsedSegments{Segments: map[TimeOfDay]string{}, Mentions: SegmentMentions{}}
	for _, t := range m.Targets() {
		val, ok := obj[string(t)]
		if !ok {
			continue
		}
		var text string
		if err := json.Unmarshal(val, &text); err != nil {
			continue
		}
		markup, found := Linkify(text, searchURL)
		out.Segments[t] = markup
		out.Mentions[t] = found
	}
	if len(out.Segments) == 0 {
		return nil, fmt.Errorf("%w: response has none of the requested segments", ErrParseFailure)
	}
	return out, nil
}

func linkText(text, searchURL string) string {
	if text == "" {
		return ""
	}
	markup, _ := Linkify(text, searchURL)
	return markup
}

// decodeLoose tries a strict decode of the whole text, then of its first balanced {...} block.
func decodeLoose(raw string, v any) error {
	text := stripFences(raw)
	err := json.Unmarshal([]byte(text), v)
	if err == nil {
		return nil
	}
	block, ok := firstObject(text)
	if !ok {
		return fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if err := json.Unmarshal([]byte(block), v); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	return nil
}

func stripFences(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// firstObject returns the first brace-balanced substring, ignoring braces inside JSON strings.
func firstObject(text string) (string, bool) {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString, escaped := false, false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}
	return "", false
}
