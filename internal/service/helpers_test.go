package service

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/pageza/calorix/backend/internal/testhelpers"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock(t time.Time) *testClock { return &testClock{now: t} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func setupUser(t *testing.T) (*gorm.DB, *models.User) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	return db, testhelpers.CreateTestUser(t, db)
}

func setupOther(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	return testhelpers.CreateTestUser(t, db).ID
}

var nopLog = zap.NewNop()
