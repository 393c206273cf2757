package services

import (
	"sync"
	"testing"

	"github.com/signworks/go-orderportal/app/models/migrations"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	return db
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

// fakeMailer records outbound mail instead of talking to SMTP.
type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (f *fakeMailer) Enabled() bool { return true }

func (f *fakeMailer) SendHTMLEmail(to, subject, htmlBody string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return f.sendErr
}

func (f *fakeMailer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

func (f *fakeMailer) last() sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent[len(f.sent)-1]
}
