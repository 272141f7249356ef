package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/calorix/backend/config"
	"github.com/pageza/calorix/backend/internal/api"
	"github.com/pageza/calorix/backend/internal/fasting"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/pageza/calorix/backend/internal/server"
	"github.com/pageza/calorix/backend/internal/service"
	"github.com/pageza/calorix/backend/internal/testhelpers"
	"github.com/pageza/calorix/backend/internal/testingutils"
	"github.com/pageza/calorix/backend/internal/types"
)

func TestServerOnPostgresAndRedis(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	rdb := testhelpers.SetupRedis(t)

	cfg := &config.Config{
		ServerHost:         "127.0.0.1",
		ServerPort:         "0",
		JWTSecret:          "integration-secret",
		EstimateRateLimit:  2,
		FastingTickSeconds: 1,
	}
	srv := server.New(cfg, zap.NewNop(), server.Deps{DB: db, Redis: rdb})
	t.Cleanup(func() { srv.Shutdown(context.Background()) })
	h := srv.Handler()

	w := testingutils.PerformRequest(h, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		Name: "Bruno", Email: "bruno@example.com", Password: "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var auth types.AuthResponse
	testingutils.DecodeJSON(t, w, &auth)

	today := model.DateKey(time.Now())

	t.Run("log food and read it back", func(t *testing.T) {
		w := testingutils.PerformRequest(h, http.MethodPost, "/api/v1/logs/"+today+"/foods", types.AddFoodsRequest{
			Meal:  "Lunch",
			Foods: []types.FoodInput{{Name: "Rice", Calories: 200, Carbs: 45, Protein: 4}},
		}, auth.Token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = testingutils.PerformRequest(h, http.MethodGet, "/api/v1/logs/"+today+"/totals", nil, auth.Token)
		require.Equal(t, http.StatusOK, w.Code)
		var totals api.DayTotals
		testingutils.DecodeJSON(t, w, &totals)
		assert.Equal(t, float64(200), totals.Totals.Calories)
		assert.Equal(t, 1, totals.Items)
	})

	t.Run("summary reflects writes through the cache", func(t *testing.T) {
		var sum struct {
			DaysLogged  int     `json:"daysLogged"`
			AvgCalories float64 `json:"avgCalories"`
		}
		w := testingutils.PerformRequest(h, http.MethodGet, "/api/v1/summary?window=7&anchor="+today, nil, auth.Token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		testingutils.DecodeJSON(t, w, &sum)
		assert.Equal(t, 1, sum.DaysLogged)

		w = testingutils.PerformRequest(h, http.MethodPost, "/api/v1/logs/"+today+"/foods", types.AddFoodsRequest{
			Meal:  "Dinner",
			Foods: []types.FoodInput{{Name: "Soup", Calories: 100}},
		}, auth.Token)
		require.Equal(t, http.StatusCreated, w.Code)

		w = testingutils.PerformRequest(h, http.MethodGet, "/api/v1/summary?window=7&anchor="+today, nil, auth.Token)
		require.Equal(t, http.StatusOK, w.Code)
		testingutils.DecodeJSON(t, w, &sum)
		assert.Equal(t, float64(300), sum.AvgCalories)
	})

	t.Run("estimate is rate limited per user", func(t *testing.T) {
		body := types.EstimateRequest{Description: "a bowl of rice"}
		for i := 0; i < 2; i++ {
			w := testingutils.PerformRequest(h, http.MethodPost, "/api/v1/estimate", body, auth.Token)
			// no API key configured
			assert.Equal(t, http.StatusServiceUnavailable, w.Code)
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
		}
		w := testingutils.PerformRequest(h, http.MethodPost, "/api/v1/estimate", body, auth.Token)
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})
}

func TestSummaryCacheVersioning(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	rdb := testhelpers.SetupRedis(t)
	ctx := context.Background()
	log := zap.NewNop()
	user := testhelpers.CreateTestUser(t, db)

	clock := fasting.SystemClock{}
	summary := service.NewSummaryService(db, rdb, log)
	challenges := service.NewChallengeService(db, clock, service.NewNotificationService(db, rdb, log), log)
	logs := service.NewLogService(db, clock, summary, challenges, log)

	now := time.Now()
	sum, err := summary.Summary(ctx, user.ID, now, 7)
	require.NoError(t, err)
	assert.Zero(t, sum.DaysLogged)

	keys, err := rdb.Keys(ctx, "calorix:summary:"+user.ID.String()+":v0:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	_, err = logs.AddFoods(ctx, user.ID, model.DateKey(now), "Breakfast", []types.FoodInput{{Name: "Oats", Calories: 150}})
	require.NoError(t, err)

	version, err := rdb.Get(ctx, "calorix:summary:"+user.ID.String()+":version").Int()
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	sum, err = summary.Summary(ctx, user.ID, now, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.DaysLogged)
	assert.Equal(t, float64(150), sum.AvgCalories)
}

func TestNotificationsArePublished(t *testing.T) {
	db := testhelpers.SetupPostgres(t)
	rdb := testhelpers.SetupRedis(t)
	ctx := context.Background()
	user := testhelpers.CreateTestUser(t, db)
	svc := service.NewNotificationService(db, rdb, zap.NewNop())

	sub := rdb.Subscribe(ctx, service.NotificationChannel(user.ID))
	t.Cleanup(func() { sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Notify(ctx, user.ID, "fasting_complete", "Fast complete", "You reached your goal."))

	select {
	case msg := <-sub.Channel():
		var n models.Notification
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &n))
		assert.Equal(t, "Fast complete", n.Title)
		assert.Equal(t, user.ID, n.UserID)
	case <-time.After(5 * time.Second):
		t.Fatal("notification was not published")
	}

	stored, err := svc.List(ctx, user.ID, true)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestEstimatesAreCached(t *testing.T) {
	rdb := testhelpers.SetupRedis(t)
	ctx := context.Background()

	var calls atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{
				"content": `{"foods":[{"name":"Banana","serving_size":"1 medium","calories":105,"carbs":27}]}`,
			}}},
		})
	}))
	t.Cleanup(upstream.Close)

	svc := service.NewEstimatorService(upstream.URL, "key", "model", rdb, zap.NewNop())
	for i := 0; i < 3; i++ {
		foods, err := svc.Estimate(ctx, "  A banana ")
		require.NoError(t, err)
		require.Len(t, foods, 1)
		assert.Equal(t, "Banana", foods[0].Name)
	}
	assert.Equal(t, int32(1), calls.Load())
}
