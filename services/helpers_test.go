package services_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"penpals_server/models"
	"penpals_server/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHandle backs a StoreHandle with a file store in a temp dir.
func newHandle(t *testing.T) *services.StoreHandle {
	t.Helper()
	store := services.NewFileStore(filepath.Join(t.TempDir(), "database.json"))
	return services.NewStoreHandle(store)
}

type sentEmail struct {
	To      string
	Subject string
	HTML    string
}

// fakeNotifier records sends and can be told to fail.
type fakeNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []sentEmail
}

func (f *fakeNotifier) Send(_ context.Context, to string, tpl services.EmailTemplate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return services.ErrEmailSend
	}
	f.sent = append(f.sent, sentEmail{To: to, Subject: tpl.Subject, HTML: tpl.HTML})
	return nil
}

func (f *fakeNotifier) all() []sentEmail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentEmail(nil), f.sent...)
}

func (f *fakeNotifier) countTo(to string) int {
	n := 0
	for _, s := range f.all() {
		if s.To == to {
			n++
		}
	}
	return n
}

// seedUser inserts a user record directly into the store.
func seedUser(t *testing.T, handle *services.StoreHandle, email, intro string) {
	t.Helper()
	err := handle.Update(context.Background(), func(db *models.Database) (bool, error) {
		db.Users[email] = &models.User{Email: email, Intro: intro, CreatedAt: time.Now()}
		return true, nil
	})
	require.NoError(t, err)
}

// seedMessage inserts a message directly into the store.
func seedMessage(t *testing.T, handle *services.StoreHandle, msg models.Message) {
	t.Helper()
	err := handle.Update(context.Background(), func(db *models.Database) (bool, error) {
		m := msg
		db.Messages = append(db.Messages, &m)
		return true, nil
	})
	require.NoError(t, err)
}

// loadDB reads the current database snapshot.
func loadDB(t *testing.T, handle *services.StoreHandle) *models.Database {
	t.Helper()
	var snapshot *models.Database
	err := handle.View(context.Background(), func(db *models.Database) error {
		snapshot = db
		return nil
	})
	require.NoError(t, err)
	return snapshot
}
