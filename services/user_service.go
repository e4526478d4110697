package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"penpals_server/models"
	"penpals_server/utils"
)

// UserService covers user lookup, intro submission, and the informational
// counters behind /stats.
type UserService struct {
	Store       *StoreHandle
	Email       Notifier
	Templates   EmailTemplates
	AdminEmail  string
	MinIntroLen int
	Logger      *slog.Logger
}

// Stats reports process-wide counts. Informational only.
type Stats struct {
	Users        int `json:"users"`
	MatchedUsers int `json:"matchedUsers"`
	PendingCodes int `json:"pendingCodes"`
	Messages     int `json:"messages"`
	Undelivered  int `json:"undeliveredMessages"`
}

// GetUser fetches a user record by email.
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	email = utils.NormalizeEmail(email)

	var user models.User
	err := s.Store.View(ctx, func(db *models.Database) error {
		u, ok := db.Users[email]
		if !ok {
			return ErrUserNotFound
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// SubmitIntro stores the user's introduction and alerts the admin that a
// user is waiting for a match. The admin email is best effort.
func (s *UserService) SubmitIntro(ctx context.Context, email, intro string) (*models.User, error) {
	email = utils.NormalizeEmail(email)
	if len(intro) < s.MinIntroLen {
		return nil, fmt.Errorf("%w: minimum length is %d", ErrIntroTooShort, s.MinIntroLen)
	}

	var user models.User
	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		u, ok := db.Users[email]
		if !ok {
			return false, ErrUserNotFound
		}
		u.Intro = intro
		user = *u
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.Email.Send(ctx, s.AdminEmail, s.Templates.AdminNewSignup(email, intro)); err != nil {
		s.Logger.Warn("admin signup notification failed", "err", err)
	}

	s.Logger.Info("introduction submitted", "email", email)
	return &user, nil
}

// GetStats counts users, codes, and messages.
func (s *UserService) GetStats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.Store.View(ctx, func(db *models.Database) error {
		stats.Users = len(db.Users)
		stats.PendingCodes = len(db.PendingCodes)
		stats.Messages = len(db.Messages)
		now := time.Now()
		for _, u := range db.Users {
			if u.Matched {
				stats.MatchedUsers++
			}
		}
		for _, m := range db.Messages {
			if now.Before(m.DeliverAt) {
				stats.Undelivered++
			}
		}
		return nil
	})
	return stats, err
}
