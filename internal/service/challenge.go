package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/challenge"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ChallengeService manages the active challenge and the custom catalog.
type ChallengeService struct {
	db       *gorm.DB
	clock    fasting.Clock
	notifier Notifier
	log      *zap.Logger
}

var (
	_ IChallengeService  = (*ChallengeService)(nil)
	_ ChallengeEvaluator = (*ChallengeService)(nil)
)

func NewChallengeService(db *gorm.DB, clock fasting.Clock, notifier Notifier, log *zap.Logger) *ChallengeService {
	return &ChallengeService{db: db, clock: clock, notifier: notifier, log: log}
}

// List returns every available challenge and the active progress, if any.
func (s *ChallengeService) List(ctx context.Context, userID uuid.UUID) ([]model.Challenge, *model.UserChallengeProgress, error) {
	rec, err := findProfile(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, nil, err
	}
	p := rec.Domain()
	return challenge.All(p.CustomChallenges), p.ChallengeProgress, nil
}

// Select starts challengeID as the active challenge and evaluates today.
func (s *ChallengeService) Select(ctx context.Context, userID uuid.UUID, challengeID string) (*model.UserChallengeProgress, error) {
	today := s.clock.Now()
	if _, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		ch, ok := challenge.Find(challengeID, p.CustomChallenges)
		if !ok {
			return challenge.ErrChallengeNotFound
		}
		challenge.Select(p, ch, today)
		return nil
	}); err != nil {
		return nil, err
	}

	if _, err := s.EvaluateToday(ctx, userID); err != nil {
		s.log.Warn("challenge evaluation failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
	rec, err := findProfile(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	return rec.ChallengeProgress, nil
}

// Disable clears the active challenge.
func (s *ChallengeService) Disable(ctx context.Context, userID uuid.UUID) error {
	_, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		if p.ChallengeProgress == nil {
			return ErrNoActiveChallenge
		}
		challenge.Disable(p)
		return nil
	})
	return err
}

// CreateCustom validates the input, stores the challenge and makes it
// active. Validation failures are returned as *challenge.ValidationError.
func (s *ChallengeService) CreateCustom(ctx context.Context, userID uuid.UUID, in challenge.Input) (model.Challenge, error) {
	ch, err := challenge.Build(in, uuid.NewString(), s.clock.Now())
	if err != nil {
		return model.Challenge{}, err
	}
	if _, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		p.CustomChallenges = append(p.CustomChallenges, ch)
		return nil
	}); err != nil {
		return model.Challenge{}, err
	}
	if _, err := s.Select(ctx, userID, ch.ID); err != nil {
		return model.Challenge{}, err
	}
	return ch, nil
}

// EvaluateToday records today's result for the active challenge and emits a
// notification when it completes.
func (s *ChallengeService) EvaluateToday(ctx context.Context, userID uuid.UUID) (*challenge.Event, error) {
	now := s.clock.Now()
	date := model.DateKey(model.StartOfDay(now))

	rec, err := findLog(s.db.WithContext(ctx), userID, date)
	if err != nil {
		return nil, err
	}
	var day challenge.Day
	if rec != nil {
		l := rec.Domain()
		day = challenge.Day{
			Totals: nutrition.DailyTotals(l),
			Water:  l.WaterIntake,
			Items:  nutrition.ItemCount(l),
		}
	}

	var ev *challenge.Event
	_, err = mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		if p.ChallengeProgress == nil {
			return ErrNoActiveChallenge
		}
		ch, ok := challenge.Find(p.ChallengeProgress.ChallengeID, p.CustomChallenges)
		if !ok {
			return challenge.ErrChallengeNotFound
		}
		var err error
		ev, err = challenge.Track(p, ch, day, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	if ev != nil {
		s.log.Info("challenge completed", zap.String("user_id", userID.String()), zap.String("challenge_id", ev.ChallengeID))
		if s.notifier != nil {
			body := fmt.Sprintf("You completed the %q challenge.", ev.Title)
			if err := s.notifier.Notify(ctx, userID, models.NotificationChallengeCompleted, "Challenge complete", body); err != nil {
				s.log.Error("challenge notification failed", zap.String("user_id", userID.String()), zap.Error(err))
			}
		}
	}
	return ev, nil
}

// Completed returns the challenge history.
func (s *ChallengeService) Completed(ctx context.Context, userID uuid.UUID) ([]model.CompletedChallenge, error) {
	rec, err := findProfile(s.db.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if rec.CompletedChallenges == nil {
		return []model.CompletedChallenge{}, nil
	}
	return rec.CompletedChallenges, nil
}
