package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const summaryTTL = 10 * time.Minute

// SummaryService computes period summaries and calendars. Summaries are
// memoized in Redis under a per-user version that every log write bumps, so
// stale entries are never read and simply expire.
type SummaryService struct {
	db    *gorm.DB
	redis *redis.Client
	log   *zap.Logger
}

var _ ISummaryService = (*SummaryService)(nil)

// NewSummaryService creates the service. A nil Redis client disables caching.
func NewSummaryService(db *gorm.DB, rdb *redis.Client, log *zap.Logger) *SummaryService {
	return &SummaryService{db: db, redis: rdb, log: log}
}

func summaryVersionKey(userID uuid.UUID) string {
	return fmt.Sprintf("calorix:summary:%s:version", userID)
}

func summaryKey(userID uuid.UUID, version int64, anchor string, window int) string {
	return fmt.Sprintf("calorix:summary:%s:v%d:%s:%d", userID, version, anchor, window)
}

// Summary returns the averages of the window days ending at anchor.
func (s *SummaryService) Summary(ctx context.Context, userID uuid.UUID, anchor time.Time, window int) (nutrition.Summary, error) {
	if !nutrition.ValidWindow(window) {
		return nutrition.Summary{}, nutrition.ErrInvalidWindow
	}
	anchor = model.StartOfDay(anchor)

	key := ""
	if s.redis != nil {
		version, err := s.redis.Get(ctx, summaryVersionKey(userID)).Int64()
		switch {
		case err == nil || errors.Is(err, redis.Nil):
			key = summaryKey(userID, version, model.DateKey(anchor), window)
			if sum, ok := s.cached(ctx, key); ok {
				return sum, nil
			}
		default:
			s.log.Warn("summary cache unavailable", zap.Error(err))
		}
	}

	logs, err := logsBetween(s.db.WithContext(ctx), userID, anchor.AddDate(0, 0, -(window-1)), anchor)
	if err != nil {
		return nutrition.Summary{}, err
	}
	sum, err := nutrition.PeriodSummary(logs, anchor, window)
	if err != nil {
		return nutrition.Summary{}, err
	}

	if key != "" {
		if data, err := json.Marshal(sum); err == nil {
			if err := s.redis.Set(ctx, key, data, summaryTTL).Err(); err != nil {
				s.log.Warn("failed to cache summary", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return sum, nil
}

func (s *SummaryService) cached(ctx context.Context, key string) (nutrition.Summary, bool) {
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.Warn("summary cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nutrition.Summary{}, false
	}
	var sum nutrition.Summary
	if err := json.Unmarshal(data, &sum); err != nil {
		return nutrition.Summary{}, false
	}
	return sum, true
}

// Calendar returns one entry per day of the month, colored against the
// user's calorie goal.
func (s *SummaryService) Calendar(ctx context.Context, userID uuid.UUID, year int, month time.Month) ([]nutrition.CalendarDay, error) {
	if month < time.January || month > time.December {
		return nil, ErrInvalidMonth
	}
	db := s.db.WithContext(ctx)
	rec, err := findProfile(db, userID)
	if err != nil {
		return nil, err
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	logs, err := logsBetween(db, userID, first, first.AddDate(0, 1, -1))
	if err != nil {
		return nil, err
	}
	return nutrition.Month(logs, year, month, rec.GoalCalories), nil
}

// Invalidate bumps the user's summary version.
func (s *SummaryService) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}
	return s.redis.Incr(ctx, summaryVersionKey(userID)).Err()
}
