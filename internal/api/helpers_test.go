package api

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/mocks"
	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/testhelpers"
	"github.com/pageza/calorix/backend/internal/testingutils"
)

type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

type testAPI struct {
	router    *gin.Engine
	clock     *fixedClock
	estimator *mocks.MockEstimatorService
	token     string
}

func (a *testAPI) do(method, path string, body interface{}, opts ...testingutils.RequestOption) *httptest.ResponseRecorder {
	return testingutils.PerformRequest(a.router, method, path, body, a.token, opts...)
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zap.NewNop()
	db := testhelpers.SetupSQLite(t)
	clock := &fixedClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	monitor := fasting.NewMonitor(time.Hour, clock)
	t.Cleanup(monitor.Close)

	authService := service.NewAuthService(db, "test-secret", log)
	summary := service.NewSummaryService(db, nil, log)
	notifications := service.NewNotificationService(db, nil, log)
	challenges := service.NewChallengeService(db, clock, notifications, log)
	logs := service.NewLogService(db, clock, summary, challenges, log)
	estimator := &mocks.MockEstimatorService{}

	router := testingutils.SetupTestRouter()
	RegisterRoutes(router, Services{
		Auth:          authService,
		Profile:       service.NewProfileService(db, clock, summary, log),
		Logs:          logs,
		Summary:       summary,
		Fasting:       service.NewFastingService(db, clock, monitor, notifications, log),
		Challenges:    challenges,
		Notifications: notifications,
		Export:        service.NewExportService(logs, nil, log),
		Estimator:     estimator,
		Clock:         clock,
	}, nil)

	_, token, err := authService.Register(context.Background(), "Ana", "ana@example.com", "password123")
	require.NoError(t, err)

	return &testAPI{router: router, clock: clock, estimator: estimator, token: token}
}
