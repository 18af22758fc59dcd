package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"wanderplan/internal/ai"
	"wanderplan/internal/config"
	"wanderplan/internal/itinerary"
)

func main() {
	destination := flag.String("to", "Paris", "destination")
	origin := flag.String("from", "London", "home location")
	days := flag.Int("days", 3, "number of days")
	lang := flag.String("lang", "en", "response language (en or zh)")
	promptOnly := flag.Bool("prompt-only", false, "print the prompt and exit")
	flag.Parse()

	params := itinerary.TripParameters{
		Destination: *destination,
		Origin:      *origin,
		Days:        *days,
		RoundTrip:   true,
		Travelers:   itinerary.TravelersCouple,
		Budget:      itinerary.BudgetMid,
		Language:    itinerary.Language(*lang),
	}.Normalize()
	if err := params.Validate(); err != nil {
		log.Fatal(err)
	}

	prompt := itinerary.BuildPrompt(params, itinerary.FullPlan())
	if *promptOnly {
		fmt.Println(prompt)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	provider, err := ai.NewProvider(ctx, cfg.LLM)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer provider.Close()

	fmt.Printf("Planning %d days in %s from %s via %s\n", params.Days, params.Destination, params.Origin, cfg.LLM.Provider)

	raw, err := provider.Generate(ctx, prompt)
	if err != nil {
		log.Fatalf("Error generating plan: %v", err)
	}
	parsed, err := itinerary.ParsePlan(raw, cfg.SearchURL)
	if err != nil {
		fmt.Fprintln(os.Stderr, raw)
		log.Fatalf("Error parsing plan: %v", err)
	}

	for _, day := range parsed.Itinerary.Days {
		fmt.Printf("\nDay %d\n", day.Day)
		for _, t := range itinerary.TimesOfDay {
			fmt.Printf("  %-9s %s\n", t, itinerary.PlainText(day.Segment(t)))
			for _, m := range parsed.Mentions[day.Day][t] {
				fmt.Printf("            - %s (%s)\n", m.Name, m.Category)
			}
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	fmt.Println("\nEstimated cost:")
	_ = enc.Encode(parsed.Itinerary.EstimatedCost)
}
