package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"penpals_server/models"
	"penpals_server/services"
)

func newMatchService(t *testing.T, notifier services.Notifier) (*services.MatchService, *services.StoreHandle) {
	t.Helper()
	handle := newHandle(t)
	svc := &services.MatchService{
		Store:     handle,
		Email:     notifier,
		Templates: services.EmailTemplates{WebsiteURL: "http://localhost:3000"},
		Logger:    testLogger(),
	}
	return svc, handle
}

func TestMatchSetsSymmetricPairing(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, handle := newMatchService(t, notifier)
	ctx := context.Background()

	seedUser(t, handle, "a@ucsc.edu", "I like long walks to the mailbox")
	seedUser(t, handle, "b@ucsc.edu", "Letters are my love language, truly")

	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "b@ucsc.edu"))

	db := loadDB(t, handle)
	userA := db.Users["a@ucsc.edu"]
	userB := db.Users["b@ucsc.edu"]
	assert.True(t, userA.Matched)
	assert.True(t, userB.Matched)
	assert.Equal(t, "b@ucsc.edu", userA.PartnerEmail)
	assert.Equal(t, "a@ucsc.edu", userB.PartnerEmail)

	// Each side receives the other's introduction verbatim.
	sent := notifier.all()
	require.Len(t, sent, 2)
	assert.Equal(t, "a@ucsc.edu", sent[0].To)
	assert.Contains(t, sent[0].HTML, "Letters are my love language, truly")
	assert.Equal(t, "b@ucsc.edu", sent[1].To)
	assert.Contains(t, sent[1].HTML, "I like long walks to the mailbox")
}

func TestMatchRejections(t *testing.T) {
	svc, handle := newMatchService(t, &fakeNotifier{})
	ctx := context.Background()

	seedUser(t, handle, "a@ucsc.edu", "intro A, twenty characters long")
	seedUser(t, handle, "b@ucsc.edu", "intro B, twenty characters long")
	seedUser(t, handle, "c@ucsc.edu", "intro C, twenty characters long")

	err := svc.Match(ctx, "a@ucsc.edu", "ghost@ucsc.edu")
	require.ErrorIs(t, err, services.ErrUserNotFound)

	err = svc.Match(ctx, "a@ucsc.edu", "a@ucsc.edu")
	require.ErrorIs(t, err, services.ErrSelfMatch)

	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "b@ucsc.edu"))

	// Either side being paired blocks another match.
	err = svc.Match(ctx, "a@ucsc.edu", "c@ucsc.edu")
	require.ErrorIs(t, err, services.ErrAlreadyMatched)
	err = svc.Match(ctx, "c@ucsc.edu", "b@ucsc.edu")
	require.ErrorIs(t, err, services.ErrAlreadyMatched)
}

func TestMatchNotificationFailureIsNonFatal(t *testing.T) {
	svc, handle := newMatchService(t, &fakeNotifier{fail: true})
	ctx := context.Background()

	seedUser(t, handle, "a@ucsc.edu", "intro A, twenty characters long")
	seedUser(t, handle, "b@ucsc.edu", "intro B, twenty characters long")

	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "b@ucsc.edu"))
	assert.True(t, loadDB(t, handle).Users["a@ucsc.edu"].Matched)
}

func TestEndConversationResetsBothSides(t *testing.T) {
	svc, handle := newMatchService(t, &fakeNotifier{})
	ctx := context.Background()

	seedUser(t, handle, "a@ucsc.edu", "intro A, twenty characters long")
	seedUser(t, handle, "b@ucsc.edu", "intro B, twenty characters long")
	seedUser(t, handle, "c@ucsc.edu", "intro C, twenty characters long")
	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "b@ucsc.edu"))

	require.NoError(t, svc.EndConversation(ctx, "a@ucsc.edu"))

	db := loadDB(t, handle)
	for _, email := range []string{"a@ucsc.edu", "b@ucsc.edu"} {
		user := db.Users[email]
		assert.False(t, user.Matched, email)
		assert.Empty(t, user.PartnerEmail, email)
		assert.Empty(t, user.Intro, email)
	}

	// A can be matched again without a new verification cycle.
	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "c@ucsc.edu"))
}

func TestEndConversationToleratesMissingPartner(t *testing.T) {
	svc, handle := newMatchService(t, &fakeNotifier{})
	ctx := context.Background()

	err := handle.Update(ctx, func(db *models.Database) (bool, error) {
		db.Users["a@ucsc.edu"] = &models.User{
			Email:        "a@ucsc.edu",
			Matched:      true,
			PartnerEmail: "vanished@ucsc.edu",
			Intro:        "still here writing letters daily",
			CreatedAt:    time.Now(),
		}
		return true, nil
	})
	require.NoError(t, err)

	require.NoError(t, svc.EndConversation(ctx, "a@ucsc.edu"))
	user := loadDB(t, handle).Users["a@ucsc.edu"]
	assert.False(t, user.Matched)
	assert.Empty(t, user.Intro)
}

func TestEndConversationUnknownUser(t *testing.T) {
	svc, _ := newMatchService(t, &fakeNotifier{})
	err := svc.EndConversation(context.Background(), "ghost@ucsc.edu")
	require.ErrorIs(t, err, services.ErrUserNotFound)
}

func TestUnmatchedWithIntro(t *testing.T) {
	svc, handle := newMatchService(t, &fakeNotifier{})
	ctx := context.Background()

	seedUser(t, handle, "ready@ucsc.edu", "I wrote an intro and I am waiting")
	seedUser(t, handle, "silent@ucsc.edu", "")
	seedUser(t, handle, "a@ucsc.edu", "intro A, twenty characters long")
	seedUser(t, handle, "b@ucsc.edu", "intro B, twenty characters long")
	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "b@ucsc.edu"))

	users, err := svc.UnmatchedWithIntro(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "ready@ucsc.edu", users[0].Email)
}

func TestActiveMatchesDeduplicatesAndSorts(t *testing.T) {
	svc, handle := newMatchService(t, &fakeNotifier{})
	ctx := context.Background()

	for _, email := range []string{"a@ucsc.edu", "b@ucsc.edu", "c@ucsc.edu", "d@ucsc.edu"} {
		seedUser(t, handle, email, "an introduction long enough here")
	}
	require.NoError(t, svc.Match(ctx, "a@ucsc.edu", "b@ucsc.edu"))
	require.NoError(t, svc.Match(ctx, "c@ucsc.edu", "d@ucsc.edu"))

	now := time.Now()
	seedMessage(t, handle, models.Message{
		ID: "1", From: "a@ucsc.edu", To: "b@ucsc.edu", Content: "old letter here",
		CreatedAt: now.Add(-2 * time.Hour), DeliverAt: now.Add(-time.Hour),
	})
	seedMessage(t, handle, models.Message{
		ID: "2", From: "c@ucsc.edu", To: "d@ucsc.edu", Content: "newer letter here",
		CreatedAt: now.Add(-time.Minute), DeliverAt: now.Add(time.Hour),
	})
	seedMessage(t, handle, models.Message{
		ID: "3", From: "d@ucsc.edu", To: "c@ucsc.edu", Content: "reply letter here",
		CreatedAt: now.Add(-30 * time.Second), DeliverAt: now.Add(time.Hour),
	})

	matches, err := svc.ActiveMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2, "symmetric pairs are reported once")

	// The c/d pair has the most recent message and sorts first.
	first := matches[0]
	assert.Equal(t, 2, first.MessageCount)
	assert.ElementsMatch(t, []string{"c@ucsc.edu", "d@ucsc.edu"}, []string{first.User1, first.User2})

	second := matches[1]
	assert.Equal(t, 1, second.MessageCount)
	assert.NotZero(t, second.LastMessage)
}
