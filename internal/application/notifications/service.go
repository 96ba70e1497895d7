package notifications

import (
	"context"
	"encoding/json"
	"errors"

	"helwati-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ChannelPrefix is the Redis pub/sub channel prefix for realtime inserts;
// the websocket stream subscribes to ChannelPrefix + recipient UUID.
const ChannelPrefix = "user_notifications:"

// DefaultListLimit matches the notification panel page size.
const DefaultListLimit = 20

// Service persists notifications and publishes inserts for realtime
// delivery. Local/in-memory feed state is the feed package's concern; this
// service only confirms writes against the table.
type Service struct {
	DB  *gorm.DB
	Rdb *redis.Client
}

// CreateInput describes a notification to fan out. Actor is the account
// whose action produced it.
type CreateInput struct {
	Recipient uuid.UUID
	Actor     uuid.UUID
	Type      string
	Title     string
	Message   string
	Link      string
}

// Create inserts the row and publishes it on the recipient's channel.
// Self-notifications (actor == recipient) are suppressed: no row, no
// publish, no error. Publish failures are logged and ignored — delivery
// falls back to the next list fetch.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Notification, error) {
	if in.Recipient == uuid.Nil {
		return nil, errors.New("Missing recipient")
	}
	if in.Actor != uuid.Nil && in.Actor == in.Recipient {
		return nil, nil
	}

	n := &domain.Notification{
		UserID:  in.Recipient,
		Type:    in.Type,
		Title:   in.Title,
		Message: in.Message,
		Link:    in.Link,
	}
	if in.Actor != uuid.Nil {
		actor := in.Actor
		n.ActorID = &actor
	}
	if err := s.DB.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}

	if s.Rdb != nil {
		payload, err := json.Marshal(n)
		if err == nil {
			channel := ChannelPrefix + in.Recipient.String()
			if err := s.Rdb.Publish(ctx, channel, payload).Err(); err != nil {
				log.Warn().Err(err).Str("channel", channel).Msg("notification publish failed")
			}
		}
	}
	return n, nil
}

// List returns the recipient's notifications, newest first. Limit <= 0
// falls back to DefaultListLimit.
func (s *Service) List(ctx context.Context, recipient uuid.UUID, limit int) ([]domain.Notification, error) {
	if recipient == uuid.Nil {
		return nil, errors.New("Missing recipient")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var out []domain.Notification
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", recipient).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// MarkRead sets is_read on the recipient's matching row. Absent ids and
// already-read rows are a no-op, not an error.
func (s *Service) MarkRead(ctx context.Context, recipient, id uuid.UUID) error {
	if recipient == uuid.Nil {
		return errors.New("Missing recipient")
	}
	return s.DB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("notification_id = ? AND user_id = ?", id, recipient).
		Update("is_read", true).Error
}

// MarkAllRead sets is_read on every unread row of the recipient.
func (s *Service) MarkAllRead(ctx context.Context, recipient uuid.UUID) error {
	if recipient == uuid.Nil {
		return errors.New("Missing recipient")
	}
	return s.DB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", recipient, false).
		Update("is_read", true).Error
}

// Delete removes the recipient's matching row. Absent ids are a no-op.
func (s *Service) Delete(ctx context.Context, recipient, id uuid.UUID) error {
	if recipient == uuid.Nil {
		return errors.New("Missing recipient")
	}
	return s.DB.WithContext(ctx).
		Where("notification_id = ? AND user_id = ?", id, recipient).
		Delete(&domain.Notification{}).Error
}

// ClearAll removes every row of the recipient.
func (s *Service) ClearAll(ctx context.Context, recipient uuid.UUID) error {
	if recipient == uuid.Nil {
		return errors.New("Missing recipient")
	}
	return s.DB.WithContext(ctx).
		Where("user_id = ?", recipient).
		Delete(&domain.Notification{}).Error
}

// UnreadCount recounts unread rows on every call.
func (s *Service) UnreadCount(ctx context.Context, recipient uuid.UUID) (int64, error) {
	if recipient == uuid.Nil {
		return 0, errors.New("Missing recipient")
	}
	var count int64
	err := s.DB.WithContext(ctx).
		Model(&domain.Notification{}).
		Where("user_id = ? AND is_read = ?", recipient, false).
		Count(&count).Error
	return count, err
}
