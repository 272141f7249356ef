package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/pageza/calorix/backend/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LogService reads and writes the per-day food and water logs.
type LogService struct {
	db         *gorm.DB
	clock      fasting.Clock
	cache      Invalidator
	challenges ChallengeEvaluator
	log        *zap.Logger
}

var _ ILogService = (*LogService)(nil)

func NewLogService(db *gorm.DB, clock fasting.Clock, cache Invalidator, challenges ChallengeEvaluator, log *zap.Logger) *LogService {
	return &LogService{db: db, clock: clock, cache: cache, challenges: challenges, log: log}
}

// GetLog returns the day's log; a day without one reads as empty.
func (s *LogService) GetLog(ctx context.Context, userID uuid.UUID, date string) (model.DailyLog, error) {
	if err := validDate(date); err != nil {
		return model.DailyLog{}, err
	}
	rec, err := findLog(s.db.WithContext(ctx), userID, date)
	if err != nil {
		return model.DailyLog{}, err
	}
	if rec == nil {
		return model.DailyLog{Meals: []model.Meal{}}, nil
	}
	return rec.Domain(), nil
}

// AddFoods appends foods to the named meal, creating the log and meal when
// needed. Items get ids and timestamps and stay ordered by timestamp.
func (s *LogService) AddFoods(ctx context.Context, userID uuid.UUID, date, meal string, foods []types.FoodInput) (model.DailyLog, error) {
	meal = strings.TrimSpace(meal)
	now := s.clock.Now().UnixMilli()
	return s.mutate(ctx, userID, date, func(l *model.DailyLog) error {
		m := l.Meal(meal)
		if m == nil {
			l.Meals = append(l.Meals, model.Meal{Name: meal})
			m = &l.Meals[len(l.Meals)-1]
		}
		for _, in := range foods {
			m.Items = append(m.Items, model.Food{
				ID:             uuid.NewString(),
				Name:           strings.TrimSpace(in.Name),
				Calories:       in.Calories,
				Protein:        in.Protein,
				Carbs:          in.Carbs,
				Fat:            in.Fat,
				ServingSize:    in.ServingSize,
				Micronutrients: in.Micronutrients,
				Timestamp:      now,
			})
		}
		sort.SliceStable(m.Items, func(i, j int) bool {
			return m.Items[i].Timestamp < m.Items[j].Timestamp
		})
		return nil
	})
}

// DeleteFood removes one item; a meal left empty is dropped.
func (s *LogService) DeleteFood(ctx context.Context, userID uuid.UUID, date, meal, foodID string) (model.DailyLog, error) {
	return s.mutate(ctx, userID, date, func(l *model.DailyLog) error {
		for mi := range l.Meals {
			if l.Meals[mi].Name != meal {
				continue
			}
			items := l.Meals[mi].Items
			for i := range items {
				if items[i].ID != foodID {
					continue
				}
				l.Meals[mi].Items = append(items[:i:i], items[i+1:]...)
				if len(l.Meals[mi].Items) == 0 {
					l.Meals = append(l.Meals[:mi:mi], l.Meals[mi+1:]...)
				}
				return nil
			}
		}
		return ErrFoodNotFound
	})
}

// AddWater changes the day's water intake by amount ml, never below zero.
func (s *LogService) AddWater(ctx context.Context, userID uuid.UUID, date string, amount float64) (model.DailyLog, error) {
	return s.mutate(ctx, userID, date, func(l *model.DailyLog) error {
		l.WaterIntake = math.Max(0, l.WaterIntake+amount)
		return nil
	})
}

// LogsBetween returns the logs from from to to, both days included.
func (s *LogService) LogsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (map[string]model.DailyLog, error) {
	return logsBetween(s.db.WithContext(ctx), userID, from, to)
}

func logsBetween(db *gorm.DB, userID uuid.UUID, from, to time.Time) (map[string]model.DailyLog, error) {
	var recs []models.DailyLog
	err := db.Where("user_id = ? AND date >= ? AND date <= ?", userID,
		model.DateKey(model.StartOfDay(from)), model.DateKey(model.StartOfDay(to))).
		Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("load logs: %w", err)
	}
	return models.LogMap(recs), nil
}

func (s *LogService) mutate(ctx context.Context, userID uuid.UUID, date string, fn func(l *model.DailyLog) error) (model.DailyLog, error) {
	if err := validDate(date); err != nil {
		return model.DailyLog{}, err
	}

	var out model.DailyLog
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := findLog(tx.Clauses(clause.Locking{Strength: "UPDATE"}), userID, date)
		if err != nil {
			return err
		}
		isNew := rec == nil
		if isNew {
			rec = &models.DailyLog{ID: uuid.New(), UserID: userID, Date: date}
		}
		l := rec.Domain()
		if err := fn(&l); err != nil {
			return err
		}
		rec.Meals = l.Meals
		rec.WaterIntake = l.WaterIntake
		save := tx.Save
		if isNew {
			save = tx.Create
		}
		if err := save(rec).Error; err != nil {
			return fmt.Errorf("save log %s: %w", date, err)
		}
		out = l
		return nil
	})
	if err != nil {
		return model.DailyLog{}, err
	}

	s.afterWrite(ctx, userID, date)
	return out, nil
}

func (s *LogService) afterWrite(ctx context.Context, userID uuid.UUID, date string) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, userID); err != nil {
			s.log.Warn("summary cache invalidation failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	if s.challenges == nil || date != model.DateKey(model.StartOfDay(s.clock.Now())) {
		return
	}
	if _, err := s.challenges.EvaluateToday(ctx, userID); err != nil && !errors.Is(err, ErrNoActiveChallenge) {
		s.log.Warn("challenge evaluation failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
}
