package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"penpals_server/models"
	"penpals_server/utils"

	"github.com/google/uuid"
)

// ChatService appends messages, computes per-viewer visibility, and hands
// new messages to the delivery scheduler.
type ChatService struct {
	Store         *StoreHandle
	Scheduler     *DeliveryScheduler
	DeliveryDelay time.Duration
	MinMessageLen int
	Logger        *slog.Logger
}

// SendMessage appends an immutable message addressed to the sender's current
// partner. Delivery to the recipient happens DeliveryDelay later.
func (s *ChatService) SendMessage(ctx context.Context, from, content string) (*models.Message, error) {
	from = utils.NormalizeEmail(from)
	content = strings.TrimSpace(content)
	if len(content) < s.MinMessageLen {
		return nil, fmt.Errorf("%w: minimum length is %d", ErrMessageTooShort, s.MinMessageLen)
	}

	var message models.Message
	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		user, ok := db.Users[from]
		if !ok || !user.Matched {
			return false, ErrNotMatched
		}

		now := time.Now()
		message = models.Message{
			ID:        fmt.Sprintf("%d-%s", now.UnixMilli(), uuid.NewString()[:8]),
			From:      from,
			To:        user.PartnerEmail,
			Content:   content,
			CreatedAt: now,
			DeliverAt: now.Add(s.DeliveryDelay),
		}
		db.Messages = append(db.Messages, &message)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.Scheduler.ScheduleOne(message)
	s.Logger.Info("message sent", "from", message.From, "to", message.To, "deliverAt", message.DeliverAt)
	return &message, nil
}

// Conversation returns the user's view of their current conversation, oldest
// first. Content addressed to the viewer is redacted until its delivery
// time; the viewer's own letters are always visible.
func (s *ChatService) Conversation(ctx context.Context, email string) ([]models.MessageView, error) {
	email = utils.NormalizeEmail(email)

	views := []models.MessageView{}
	err := s.Store.View(ctx, func(db *models.Database) error {
		user, ok := db.Users[email]
		if !ok || !user.Matched {
			return nil
		}

		now := time.Now()
		for _, m := range db.MessagesBetween(email, user.PartnerEmail) {
			views = append(views, m.ViewFor(email, now))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(views, func(i, j int) bool {
		return views[i].CreatedAt.Before(views[j].CreatedAt)
	})
	return views, nil
}

// ConversationBetween returns the raw, unredacted messages between two users
// in chronological order. Admin oversight only: it bypasses delivery gating.
func (s *ChatService) ConversationBetween(ctx context.Context, emailA, emailB string) ([]models.Message, error) {
	emailA = utils.NormalizeEmail(emailA)
	emailB = utils.NormalizeEmail(emailB)

	messages := []models.Message{}
	err := s.Store.View(ctx, func(db *models.Database) error {
		for _, m := range db.MessagesBetween(emailA, emailB) {
			messages = append(messages, *m)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.Before(messages[j].CreatedAt)
	})
	return messages, nil
}
