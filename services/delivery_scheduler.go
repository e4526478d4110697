package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"penpals_server/models"
)

// DeliveryScheduler arms a one-shot timer per message and sends the "letter
// delivered" notification when it fires. Timers never survive a restart: the
// schedule is re-derived from persisted state by RescheduleAll at boot, and
// firing is made idempotent by persisting NotifiedAt before the send.
type DeliveryScheduler struct {
	Store     *StoreHandle
	Email     Notifier
	Templates EmailTemplates
	Logger    *slog.Logger

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewDeliveryScheduler(store *StoreHandle, email Notifier, templates EmailTemplates, logger *slog.Logger) *DeliveryScheduler {
	return &DeliveryScheduler{
		Store:     store,
		Email:     email,
		Templates: templates,
		Logger:    logger,
		timers:    map[string]*time.Timer{},
	}
}

// ScheduleOne arms a timer for the message's delivery time. Messages already
// past due are fired immediately instead of being dropped, so a notification
// missed while the process was down still goes out. Arming twice for the
// same message is a no-op.
func (s *DeliveryScheduler) ScheduleOne(message models.Message) {
	if message.NotifiedAt != nil {
		return
	}

	s.mu.Lock()
	if _, armed := s.timers[message.ID]; armed {
		s.mu.Unlock()
		return
	}

	id := message.ID
	delay := time.Until(message.DeliverAt)
	if delay <= 0 {
		s.timers[id] = nil
		s.mu.Unlock()
		go s.fire(id)
		return
	}

	s.timers[id] = time.AfterFunc(delay, func() { s.fire(id) })
	s.mu.Unlock()

	s.Logger.Info("delivery notification scheduled", "messageId", id, "to", message.To, "in", delay.Round(time.Second))
}

// RescheduleAll re-derives the timer set from persisted state. Run once at
// process start.
func (s *DeliveryScheduler) RescheduleAll(ctx context.Context) error {
	var pending []models.Message
	err := s.Store.View(ctx, func(db *models.Database) error {
		for _, m := range db.Messages {
			if m.NotifiedAt == nil {
				pending = append(pending, *m)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, m := range pending {
		s.ScheduleOne(m)
	}
	s.Logger.Info("rescheduled pending delivery notifications", "count", len(pending))
	return nil
}

// Stop cancels every armed timer. Notifications not yet fired will be
// rebuilt from persisted state on the next boot.
func (s *DeliveryScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		if timer != nil {
			timer.Stop()
		}
		delete(s.timers, id)
	}
}

// fire claims the message by persisting NotifiedAt, then sends the
// notification. The claim makes duplicate fires (restart re-scan racing a
// live timer) a no-op; a failed send is logged, not retried.
func (s *DeliveryScheduler) fire(messageID string) {
	defer func() {
		s.mu.Lock()
		delete(s.timers, messageID)
		s.mu.Unlock()
	}()

	ctx := context.Background()
	var to string
	claimed := false
	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		for _, m := range db.Messages {
			if m.ID != messageID {
				continue
			}
			if m.NotifiedAt != nil {
				return false, nil
			}
			now := time.Now()
			m.NotifiedAt = &now
			to = m.To
			claimed = true
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		s.Logger.Error("failed to mark message notified", "messageId", messageID, "err", err)
		return
	}
	if !claimed {
		return
	}

	if err := s.Email.Send(ctx, to, s.Templates.MessageDelivered()); err != nil {
		s.Logger.Warn("delivery notification failed", "messageId", messageID, "to", to, "err", err)
		return
	}
	s.Logger.Info("delivery notification sent", "messageId", messageID, "to", to)
}
