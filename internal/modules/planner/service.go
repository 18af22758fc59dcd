// README: Planner service; runs quota, prompt, model call, parsing, versioning and images per session.
package planner

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"wanderplan/internal/ai"
	"wanderplan/internal/itinerary"
	"wanderplan/internal/logger"
	"wanderplan/internal/modules/imagery"
	"wanderplan/internal/modules/quota"
	"wanderplan/internal/modules/session"
)

var tracer = otel.Tracer("wanderplan/planner")

// Service orchestrates generation for one session at a time.
type Service struct {
	sessions  *session.Service
	governor  quota.Governor
	llm       ai.LLMProvider
	images    *imagery.Resolver
	searchURL string
	log       *logger.Logger
}

func NewService(sessions *session.Service, governor quota.Governor, llm ai.LLMProvider, images *imagery.Resolver, searchURL string, log *logger.Logger) *Service {
	if searchURL == "" {
		searchURL = itinerary.DefaultSearchURL
	}
	return &Service{
		sessions:  sessions,
		governor:  governor,
		llm:       llm,
		images:    images,
		searchURL: searchURL,
		log:       log,
	}
}

// GeneratePlan creates a full plan. On a parse failure the session keeps an error placeholder
// instead of a plan; the returned view shows it and the error wraps itinerary.ErrParseFailure.
func (s *Service) GeneratePlan(ctx context.Context, sessionID string, params itinerary.TripParameters) (session.View, error) {
	ctx, span := tracer.Start(ctx, "planner.GeneratePlan", trace.WithAttributes(attribute.String("session_id", sessionID)))
	defer span.End()

	params = params.Normalize()
	if err := params.Validate(); err != nil {
		return session.View{}, err
	}

	var parseErr error
	st, err := s.sessions.Update(ctx, sessionID, func(st *session.State) error {
		raw, err := s.generate(ctx, sessionID, itinerary.BuildPrompt(params, itinerary.FullPlan()))
		if err != nil {
			return err
		}

		parsed, err := itinerary.ParsePlan(raw, s.searchURL)
		if err != nil {
			s.log.Warn("plan response rejected", "session_id", sessionID, "error", err)
			st.RecordPlanFailure(params, itinerary.ParseFailureMessage)
			parseErr = err
			return nil
		}
		if parsed.Renumbered {
			s.log.Warn("plan day indexes missing or repeated; numbered by position", "session_id", sessionID)
		}
		if n := len(parsed.Itinerary.Days); n != params.Days {
			s.log.Warn("plan day count differs from request", "session_id", sessionID, "requested", params.Days, "received", n)
		}
		st.RecordFullPlan(params, parsed.Itinerary)

		var reqs []imagery.Request
		for _, day := range parsed.Itinerary.Days {
			reqs = append(reqs, imagery.RequestsForDay(day, 1, parsed.Mentions[day.Day], itinerary.TimesOfDay)...)
		}
		resolved := s.images.Resolve(ctx, st, reqs)
		s.log.Info("plan generated", "session_id", sessionID, "days", len(parsed.Itinerary.Days), "images", resolved)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return session.View{}, err
	}
	if parseErr != nil {
		span.SetStatus(codes.Error, "parse failure")
		return st.View(), parseErr
	}
	return st.View(), nil
}

// Regenerate replaces a day or one of its segments with a new variant and displays it.
// A parse failure leaves the session untouched.
func (s *Service) Regenerate(ctx context.Context, sessionID string, req RegenerateRequest) (session.DayView, error) {
	ctx, span := tracer.Start(ctx, "planner.Regenerate", trace.WithAttributes(
		attribute.String("session_id", sessionID),
		attribute.Int("day", req.Day),
		attribute.String("segment", string(req.Segment)),
	))
	defer span.End()

	var view session.DayView
	_, err := s.sessions.Update(ctx, sessionID, func(st *session.State) error {
		if _, err := st.BaselineDay(req.Day); err != nil {
			return err
		}
		if st.Params == nil {
			return session.ErrNoPlan
		}
		params := *st.Params
		if req.SpecialRequirements != nil {
			params.SpecialRequirements = *req.SpecialRequirements
		}

		mode := req.mode().WithExisting(st.DisplayedPlan())
		raw, err := s.generate(ctx, sessionID, itinerary.BuildPrompt(params, mode))
		if err != nil {
			return err
		}
		parsed, err := itinerary.ParseSegments(raw, mode, s.searchURL)
		if err != nil {
			s.log.Warn("regeneration response rejected", "session_id", sessionID, "day", req.Day, "error", err)
			return err
		}

		version, err := st.RecordRegeneration(req.Day, parsed.Segments)
		if err != nil {
			return err
		}
		s.resolveDisplayed(ctx, st, req.Day, parsed.Mentions)
		s.log.Info("day regenerated", "session_id", sessionID, "day", req.Day, "segment", req.Segment, "version", version)

		view, err = st.DayView(req.Day)
		return err
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return session.DayView{}, err
	}
	return view, nil
}

// SetPage displays another variant of a day, reusing cached images for it.
func (s *Service) SetPage(ctx context.Context, sessionID string, day, page int) (session.DayView, error) {
	var view session.DayView
	_, err := s.sessions.Update(ctx, sessionID, func(st *session.State) error {
		if _, err := st.SetPage(day, page); err != nil {
			return err
		}
		s.resolveDisplayed(ctx, st, day, nil)
		var err error
		view, err = st.DayView(day)
		return err
	})
	if err != nil {
		return session.DayView{}, err
	}
	return view, nil
}

// View returns the session snapshot.
func (s *Service) View(ctx context.Context, sessionID string) (session.View, error) {
	st, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return session.View{}, err
	}
	return st.View(), nil
}

// Complete forwards a caller-built prompt to the model. A non-empty sessionID is charged
// against that session's quota.
func (s *Service) Complete(ctx context.Context, sessionID, prompt string) (string, error) {
	if sessionID != "" {
		if _, err := s.sessions.Get(ctx, sessionID); err != nil {
			return "", err
		}
	}
	return s.generate(ctx, sessionID, prompt)
}

// QuotaStatus reports the generation quota of a session.
func (s *Service) QuotaStatus(ctx context.Context, sessionID string) (quota.Status, error) {
	if _, err := s.sessions.Get(ctx, sessionID); err != nil {
		return quota.Status{}, err
	}
	return s.governor.Status(ctx, sessionID)
}

// Reset clears the saved form fields and the quota record of a session.
func (s *Service) Reset(ctx context.Context, sessionID string) error {
	if err := s.sessions.ResetForm(ctx, sessionID); err != nil {
		return err
	}
	return s.governor.Reset(ctx, sessionID)
}

// generate charges the quota and calls the model.
func (s *Service) generate(ctx context.Context, sessionID, prompt string) (string, error) {
	if sessionID != "" {
		if err := s.governor.CheckAndIncrement(ctx, sessionID); err != nil {
			if errors.Is(err, quota.ErrQuotaExceeded) {
				s.log.Info("generation denied", "session_id", sessionID)
			}
			return "", err
		}
	}
	raw, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		s.log.Error("llm call failed", "session_id", sessionID, "error", err)
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	return raw, nil
}

// resolveDisplayed refreshes the image projection of a day and looks up what is missing.
func (s *Service) resolveDisplayed(ctx context.Context, st *session.State, day int, mentions itinerary.SegmentMentions) {
	missing, err := st.RefreshProjection(day)
	if err != nil || len(missing) == 0 {
		return
	}
	shown, version, err := st.Displayed(day)
	if err != nil {
		return
	}
	s.images.Resolve(ctx, st, imagery.RequestsForDay(shown, version, mentions, missing))
}
