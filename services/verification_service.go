package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"penpals_server/models"
	"penpals_server/utils"
)

// VerificationService issues and checks time-limited one-time codes, gated
// by the email-domain policy.
type VerificationService struct {
	Store         *StoreHandle
	Email         Notifier
	Templates     EmailTemplates
	AllowedDomain string
	ExtraAllowed  []string
	CodeTTL       time.Duration
	SweepInterval time.Duration
	Logger        *slog.Logger
}

// RequestCode generates a fresh 6-digit code for the email, overwriting any
// prior pending code, and mails it. The pending entry is kept even when the
// send fails so the caller can simply retry.
func (s *VerificationService) RequestCode(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)
	if !s.emailAllowed(email) {
		return fmt.Errorf("%w: must use a @%s address", ErrInvalidDomain, s.AllowedDomain)
	}

	code := fmt.Sprintf("%06d", 100000+rand.Intn(900000))

	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		db.PendingCodes[email] = &models.PendingCode{
			Code:     code,
			IssuedAt: time.Now(),
		}
		return true, nil
	})
	if err != nil {
		return err
	}

	if err := s.Email.Send(ctx, email, s.Templates.Verification(code)); err != nil {
		return err
	}

	s.Logger.Info("verification code issued", "email", email)
	return nil
}

// VerifyCode checks the pending code for the email. On success the entry is
// consumed and the user record is created if absent.
func (s *VerificationService) VerifyCode(ctx context.Context, email, code string) (*models.User, error) {
	email = utils.NormalizeEmail(email)

	var user models.User
	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		pending, ok := db.PendingCodes[email]
		if !ok {
			return false, ErrNoPendingCode
		}
		if time.Since(pending.IssuedAt) > s.CodeTTL {
			// Stale entries are consumed; a retry needs a fresh code.
			delete(db.PendingCodes, email)
			return true, ErrCodeExpired
		}
		if pending.Code != strings.TrimSpace(code) {
			return false, ErrCodeMismatch
		}

		delete(db.PendingCodes, email)
		now := time.Now()
		u, exists := db.Users[email]
		if !exists {
			u = &models.User{Email: email, CreatedAt: now}
			db.Users[email] = u
		}
		u.LastLogin = &now
		user = *u
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Info("user verified", "email", email)
	return &user, nil
}

// SweepExpired deletes every pending code past its TTL. The store is only
// written when something was removed.
func (s *VerificationService) SweepExpired(ctx context.Context) (int, error) {
	removed := 0
	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		for email, pending := range db.PendingCodes {
			if time.Since(pending.IssuedAt) > s.CodeTTL {
				delete(db.PendingCodes, email)
				removed++
			}
		}
		return removed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.Logger.Info("swept expired verification codes", "removed", removed)
	}
	return removed, nil
}

// StartSweep runs SweepExpired on a fixed interval until ctx is canceled.
func (s *VerificationService) StartSweep(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := s.SweepExpired(ctx); err != nil {
					s.Logger.Error("pending code sweep failed", "err", err)
				}
			}
		}
	}()
}

func (s *VerificationService) emailAllowed(email string) bool {
	if strings.HasSuffix(email, "@"+s.AllowedDomain) {
		return true
	}
	for _, allowed := range s.ExtraAllowed {
		if email == allowed {
			return true
		}
	}
	return false
}
