package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NotificationService stores in-app notifications and fans them out on a
// per-user Redis channel.
type NotificationService struct {
	db    *gorm.DB
	redis *redis.Client
	log   *zap.Logger
}

var _ INotificationService = (*NotificationService)(nil)

func NewNotificationService(db *gorm.DB, rdb *redis.Client, log *zap.Logger) *NotificationService {
	return &NotificationService{db: db, redis: rdb, log: log}
}

// NotificationChannel is the pub/sub channel of one user.
func NotificationChannel(userID uuid.UUID) string {
	return fmt.Sprintf("calorix:notifications:%s", userID)
}

// Notify persists the notification, then publishes it. Publish failures are
// logged only.
func (s *NotificationService) Notify(ctx context.Context, userID uuid.UUID, kind, title, body string) error {
	n := models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Kind:      kind,
		Title:     title,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&n).Error; err != nil {
		return fmt.Errorf("save notification: %w", err)
	}
	s.log.Info("notification created",
		zap.String("user_id", userID.String()),
		zap.String("kind", kind),
	)

	if s.redis == nil {
		return nil
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return nil
	}
	if err := s.redis.Publish(ctx, NotificationChannel(userID), payload).Err(); err != nil {
		s.log.Warn("notification publish failed", zap.String("user_id", userID.String()), zap.Error(err))
	}
	return nil
}

// List returns the user's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("read_at IS NULL")
	}
	var out []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

// MarkRead sets the read time of one of the user's notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	var n models.Notification
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotificationNotFound
	}
	if err != nil {
		return fmt.Errorf("load notification: %w", err)
	}
	if n.ReadAt != nil {
		return nil
	}
	now := time.Now().UTC()
	return s.db.WithContext(ctx).Model(&n).Update("read_at", &now).Error
}
