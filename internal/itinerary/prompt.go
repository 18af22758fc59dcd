// README: Prompt builder; renders the instruction text sent to the language model.
package itinerary

import (
	"fmt"
	"strings"
)

const fullPlanSchema = `{
  "summary": {
    "introduction": "string (optional) a short introduction to the destination",
    "bestTimeToVisit": "string (optional) only when the time to visit is flexible",
    "howToGetThere": "string (optional) only when the transportation preference is flexible"
  },
  "itinerary": [
    {
      "day": 1,
      "morning": "string",
      "afternoon": "string",
      "evening": "string"
    }
  ],
  "estimatedCost": {
    "total": "string (a range, e.g. 1200-1500 USD)",
    "breakdown": {
      "accommodation": "string (range)",
      "transportation": "string (range)",
      "food": "string (range)",
      "activities": "string (range)",
      "other": "string (range)"
    }
  }
}`

const entityInstruction = `Formatting rules for places:
- Wrap every attraction, landmark, restaurant or experience in square brackets as a whole phrase, never single words, e.g. [Eiffel Tower] not [Eiffel] Tower.
- Immediately after the closing bracket add its category in parentheses, chosen from: restaurant, landmark, museum, park, activity, other. Example: [Louvre Museum](museum).
- Do not tag generic or common activities such as walking, shopping, resting or having dinner.
- Only suggest well-known, established places that actually exist.`

// BuildPrompt renders the instruction text for one generation call.
// The output depends only on its arguments.
func BuildPrompt(p TripParameters, m Mode) string {
	var b strings.Builder

	b.WriteString(languageLine(p.Language))
	b.WriteString("\n\n")
	b.WriteString(tripLine(p, m))
	b.WriteString("\n\n")

	b.WriteString("Trip details:\n")
	fmt.Fprintf(&b, "- Duration: %d days\n", p.Days)
	fmt.Fprintf(&b, "- Direction: %s\n", direction(p.RoundTrip))
	fmt.Fprintf(&b, "- Travelers: %s%s\n", p.Travelers, groupSuffix(p))
	fmt.Fprintf(&b, "- Budget: %s\n", p.Budget)
	fmt.Fprintf(&b, "- Transportation preference: %s\n", transportationText(p.Transportation))
	fmt.Fprintf(&b, "- Accommodation preference: %s\n", accommodationText(p.Accommodation))
	fmt.Fprintf(&b, "- Time to visit: %s\n", timeToVisitText(p.TimeToVisit))
	if req := strings.TrimSpace(p.SpecialRequirements); req != "" {
		fmt.Fprintf(&b, "- Special requirements: %s\n", req)
	}
	b.WriteString("\n")

	switch m.Kind {
	case ModeRegenerateDay, ModeRegenerateSegment:
		b.WriteString(regenerationInstructions(p, m))
	default:
		b.WriteString(fullPlanInstructions(p))
	}
	b.WriteString("\n\n")
	b.WriteString(entityInstruction)
	b.WriteString("\n\nReturn only the JSON object, without markdown code fences or any other text.")
	return b.String()
}

func languageLine(lang Language) string {
	if lang == LanguageChinese {
		return "Respond in Simplified Chinese (简体中文). Keep every JSON key in English."
	}
	return "Respond in English."
}

func tripLine(p TripParameters, m Mode) string {
	shape := fmt.Sprintf("%d-day %s from %s to %s for %s%s with a %s budget",
		p.Days, direction(p.RoundTrip), p.Origin, p.Destination, p.Travelers, groupSuffix(p), p.Budget)
	switch m.Kind {
	case ModeRegenerateDay:
		return fmt.Sprintf("I already have a plan for a %s. Regenerate day %d of it.", shape, m.Day)
	case ModeRegenerateSegment:
		return fmt.Sprintf("I already have a plan for a %s. Regenerate only the %s of day %d.", shape, m.Segment, m.Day)
	default:
		return fmt.Sprintf("Create a travel plan for a %s.", shape)
	}
}

func direction(roundTrip bool) string {
	if roundTrip {
		return "round trip"
	}
	return "one-way trip"
}

func groupSuffix(p TripParameters) string {
	if p.Travelers.NeedsGroupSize() && p.GroupSize > 0 {
		return fmt.Sprintf(" (group of %d)", p.GroupSize)
	}
	return ""
}

func transportationText(v string) string {
	if v == Flexible {
		return "flexible, recommend the best way to get there and to get around"
	}
	return v
}

func accommodationText(v string) string {
	if v == Flexible {
		return "flexible, recommend suitable places to stay"
	}
	return v
}

func timeToVisitText(v string) string {
	if v == Flexible {
		return "flexible, suggest the best time of year to visit"
	}
	return v
}

func fullPlanInstructions(p TripParameters) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan all %d days, each with morning, afternoon and evening activities.\n", p.Days)
	b.WriteString("Estimate the cost of the whole trip as a total range plus a range for each of these categories: accommodation, transportation, food, activities, other.\n")
	b.WriteString("In the summary, write a short introduction to the destination.")
	if p.TimeToVisit == Flexible {
		b.WriteString(" Fill bestTimeToVisit with the best time of year to visit.")
	} else {
		b.WriteString(" Leave bestTimeToVisit out.")
	}
	if p.Transportation == Flexible {
		fmt.Fprintf(&b, " Fill howToGetThere with how to travel from %s to %s.", p.Origin, p.Destination)
	} else {
		b.WriteString(" Leave howToGetThere out.")
	}
	b.WriteString("\n\nReturn the result strictly as a JSON object with this structure:\n")
	b.WriteString(fullPlanSchema)
	return b.String()
}

func regenerationInstructions(p TripParameters, m Mode) string {
	var b strings.Builder
	if m.Kind == ModeRegenerateSegment {
		fmt.Fprintf(&b, "Suggest new activities for the %s of day %d only.\n", m.Segment, m.Day)
	} else {
		fmt.Fprintf(&b, "Suggest new morning, afternoon and evening activities for day %d only.\n", m.Day)
	}
	fmt.Fprintf(&b, "The new suggestions must be different from the existing %d-day plan: do not repeat any attraction, restaurant or activity that already appears in it.\n", p.Days)
	if len(m.Existing) > 0 {
		b.WriteString("\nExisting plan:\n")
		for _, d := range m.Existing {
			fmt.Fprintf(&b, "Day %d:\n", d.Day)
			for _, t := range TimesOfDay {
				if text := strings.TrimSpace(PlainText(d.Segment(t))); text != "" {
					fmt.Fprintf(&b, "- %s: %s\n", t, text)
				}
			}
		}
	}
	b.WriteString("\nReturn the result strictly as a JSON object with this structure:\n")
	b.WriteString(segmentSchema(m.Targets()))
	return b.String()
}

func segmentSchema(targets []TimeOfDay) string {
	lines := make([]string, 0, len(targets))
	for _, t := range targets {
		lines = append(lines, fmt.Sprintf(`  %q: "string"`, string(t)))
	}
	return "{\n" + strings.Join(lines, ",\n") + "\n}"
}
