package service

import (
	"context"
	"io"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tubehub/catalog-api/internal/model"
)

// testDB opens a private in-memory database with the production schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		model.User{},
		model.Video{},
		model.PendingIngestion{},
		model.VoteRecord{},
		model.Comment{},
	)
	require.NoError(t, err)

	return db
}

// recordingNotifier captures notifications instead of sending mail.
type recordingNotifier struct {
	mu    sync.Mutex
	calls []string
}

func (n *recordingNotifier) Notify(recipient, subject, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, recipient+": "+subject)
	return nil
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

// memStaging records staged keys and removals.
type memStaging struct {
	mu      sync.Mutex
	objects map[string]bool
	removed []string
}

func newMemStaging() *memStaging {
	return &memStaging{objects: map[string]bool{}}
}

func (m *memStaging) Put(_ context.Context, key string, _ io.Reader, _ int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = true
	return nil
}

func (m *memStaging) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.removed = append(m.removed, key)
	return nil
}

func (m *memStaging) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.objects[key]
}
