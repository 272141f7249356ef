package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// FastingService persists the fasting window and keeps a monitor task per
// running fast that raises the completion notification.
type FastingService struct {
	db       *gorm.DB
	clock    fasting.Clock
	monitor  *fasting.Monitor
	notifier Notifier
	log      *zap.Logger
}

var _ IFastingService = (*FastingService)(nil)

func NewFastingService(db *gorm.DB, clock fasting.Clock, monitor *fasting.Monitor, notifier Notifier, log *zap.Logger) *FastingService {
	return &FastingService{db: db, clock: clock, monitor: monitor, notifier: notifier, log: log}
}

// Status returns the stored state and its reading at the current time.
func (s *FastingService) Status(ctx context.Context, userID uuid.UUID) (model.FastingState, fasting.Reading, error) {
	rec, err := findProfile(s.db.WithContext(ctx), userID)
	if err != nil {
		return model.FastingState{}, fasting.Reading{}, err
	}
	state := rec.Domain().Fasting
	_, r := fasting.Tick(state, s.clock.Now())
	r.Notify = false
	return state, r, nil
}

// Start begins a new fast, replacing any running one.
func (s *FastingService) Start(ctx context.Context, userID uuid.UUID, hours float64) (model.FastingState, fasting.Reading, error) {
	now := s.clock.Now()
	next, err := fasting.Start(now, hours)
	if err != nil {
		return model.FastingState{}, fasting.Reading{}, err
	}
	if _, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		p.Fasting = next
		return nil
	}); err != nil {
		return model.FastingState{}, fasting.Reading{}, err
	}

	s.log.Info("fast started", zap.String("user_id", userID.String()), zap.Float64("hours", hours))
	s.watch(userID, next)
	_, r := fasting.Tick(next, now)
	return next, r, nil
}

// Stop ends the fast and cancels its monitor task.
func (s *FastingService) Stop(ctx context.Context, userID uuid.UUID) (model.FastingState, error) {
	next := fasting.Stop()
	if _, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		p.Fasting = next
		return nil
	}); err != nil {
		return model.FastingState{}, err
	}
	s.monitor.Cancel(userID.String())
	return next, nil
}

// Update moves the boundaries of the running fast. A rejected edit leaves
// the state unchanged and reports false.
func (s *FastingService) Update(ctx context.Context, userID uuid.UUID, upd fasting.TimeUpdate) (model.FastingState, bool, error) {
	var applied bool
	p, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		if !p.Fasting.IsFasting {
			return ErrNotFasting
		}
		p.Fasting, applied = fasting.UpdateTimes(p.Fasting, upd)
		return nil
	})
	if err != nil {
		return model.FastingState{}, false, err
	}
	if applied {
		s.watch(userID, p.Fasting)
	}
	return p.Fasting, applied, nil
}

// Resume restarts monitor tasks for fasts that were running when the process
// stopped.
func (s *FastingService) Resume(ctx context.Context) error {
	var recs []models.UserProfile
	if err := s.db.WithContext(ctx).Where("is_fasting = ?", true).Find(&recs).Error; err != nil {
		return fmt.Errorf("load running fasts: %w", err)
	}
	for i := range recs {
		s.watch(recs[i].UserID, recs[i].Domain().Fasting)
	}
	if len(recs) > 0 {
		s.log.Info("resumed fasting monitors", zap.Int("count", len(recs)))
	}
	return nil
}

// watch evaluates the snapshot on every tick and only touches the database
// once, when completion is first observed.
func (s *FastingService) watch(userID uuid.UUID, state model.FastingState) {
	if !state.IsFasting {
		s.monitor.Cancel(userID.String())
		return
	}
	s.monitor.Watch(userID.String(), func(ctx context.Context, now time.Time) bool {
		_, r := fasting.Tick(state, now)
		if !r.Completed {
			return false
		}
		if r.Notify {
			s.complete(ctx, userID, state)
		}
		return true
	})
}

func (s *FastingService) complete(ctx context.Context, userID uuid.UUID, snapshot model.FastingState) {
	notify := false
	_, err := mutateProfile(ctx, s.db, userID, func(p *model.Profile) error {
		if !sameFast(p.Fasting, snapshot) || p.Fasting.CompletionNotified {
			return nil
		}
		p.Fasting.CompletionNotified = true
		notify = true
		return nil
	})
	if err != nil {
		s.log.Error("failed to mark fast completed", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if !notify || s.notifier == nil {
		return
	}
	body := fmt.Sprintf("You completed your %g hour fast.", snapshot.DurationHours)
	if err := s.notifier.Notify(ctx, userID, models.NotificationFastingCompleted, "Fast complete", body); err != nil {
		s.log.Error("fasting notification failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func sameFast(a, b model.FastingState) bool {
	if !a.IsFasting || !b.IsFasting || a.StartTime == nil || b.StartTime == nil || a.EndTime == nil || b.EndTime == nil {
		return false
	}
	return *a.StartTime == *b.StartTime && *a.EndTime == *b.EndTime
}
