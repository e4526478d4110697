package services

import (
	"context"
	"log/slog"
	"sort"

	"penpals_server/models"
	"penpals_server/utils"
)

// MatchService enforces the one-partner-at-a-time invariant and creates and
// destroys pairings.
type MatchService struct {
	Store     *StoreHandle
	Email     Notifier
	Templates EmailTemplates
	Logger    *slog.Logger
}

// ActiveMatch is one deduplicated pairing with aggregate conversation stats.
type ActiveMatch struct {
	User1        string `json:"user1"`
	User2        string `json:"user2"`
	MessageCount int    `json:"messageCount"`
	LastMessage  int64  `json:"lastMessage"` // unix millis of newest message, 0 when none
}

// Match pairs two unmatched users in a single persisted write, then sends
// both a match notification carrying the other's introduction. Notification
// failures never undo the pairing.
func (s *MatchService) Match(ctx context.Context, emailA, emailB string) error {
	emailA = utils.NormalizeEmail(emailA)
	emailB = utils.NormalizeEmail(emailB)
	if emailA == emailB {
		return ErrSelfMatch
	}

	var introA, introB string
	err := s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		userA, okA := db.Users[emailA]
		userB, okB := db.Users[emailB]
		if !okA || !okB {
			return false, ErrUserNotFound
		}
		if userA.Matched || userB.Matched {
			return false, ErrAlreadyMatched
		}

		userA.Matched = true
		userA.PartnerEmail = emailB
		userB.Matched = true
		userB.PartnerEmail = emailA
		introA = userA.Intro
		introB = userB.Intro
		return true, nil
	})
	if err != nil {
		return err
	}

	// Each user receives the other's introduction. Best effort only.
	if err := s.Email.Send(ctx, emailA, s.Templates.MatchNotification(introB)); err != nil {
		s.Logger.Warn("match notification failed", "to", emailA, "err", err)
	}
	if err := s.Email.Send(ctx, emailB, s.Templates.MatchNotification(introA)); err != nil {
		s.Logger.Warn("match notification failed", "to", emailB, "err", err)
	}

	s.Logger.Info("users matched", "user1", emailA, "user2", emailB)
	return nil
}

// EndConversation unmatches the user and their partner and clears both
// intros, forcing a fresh introduction before the next match. A missing
// partner record only resets the requester.
func (s *MatchService) EndConversation(ctx context.Context, email string) error {
	email = utils.NormalizeEmail(email)

	return s.Store.Update(ctx, func(db *models.Database) (bool, error) {
		user, ok := db.Users[email]
		if !ok {
			return false, ErrUserNotFound
		}

		partnerEmail := user.PartnerEmail
		user.Matched = false
		user.PartnerEmail = ""
		user.Intro = ""

		if partner, ok := db.Users[partnerEmail]; ok {
			partner.Matched = false
			partner.PartnerEmail = ""
			partner.Intro = ""
		}
		return true, nil
	})
}

// UnmatchedWithIntro lists users who are waiting for a match: unmatched and
// with a submitted introduction.
func (s *MatchService) UnmatchedWithIntro(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.Store.View(ctx, func(db *models.Database) error {
		for _, u := range db.Users {
			if !u.Matched && u.Intro != "" {
				users = append(users, *u)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// ActiveMatches lists every current pairing once, with its message count and
// the timestamp of the newest message, most recent conversations first.
func (s *MatchService) ActiveMatches(ctx context.Context) ([]ActiveMatch, error) {
	var matches []ActiveMatch
	err := s.Store.View(ctx, func(db *models.Database) error {
		seen := map[string]bool{}
		for _, user := range db.Users {
			if !user.Matched || user.PartnerEmail == "" {
				continue
			}
			key := utils.PairKey(user.Email, user.PartnerEmail)
			if seen[key] {
				continue
			}
			seen[key] = true

			conversation := db.MessagesBetween(user.Email, user.PartnerEmail)
			match := ActiveMatch{
				User1:        user.Email,
				User2:        user.PartnerEmail,
				MessageCount: len(conversation),
			}
			for _, m := range conversation {
				if ts := m.CreatedAt.UnixMilli(); ts > match.LastMessage {
					match.LastMessage = ts
				}
			}
			matches = append(matches, match)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(matches, func(i, j int) bool {
		return matches[i].LastMessage > matches[j].LastMessage
	})
	return matches, nil
}
