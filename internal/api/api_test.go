package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/nutrition"
	"github.com/pageza/calorix/backend/internal/testingutils"
	"github.com/pageza/calorix/backend/internal/types"
)

func TestHealthCheck(t *testing.T) {
	a := newTestAPI(t)
	w := testingutils.PerformRequest(a.router, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRoutes(t *testing.T) {
	a := newTestAPI(t)

	t.Run("register", func(t *testing.T) {
		w := testingutils.PerformRequest(a.router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
			Name: "Bea", Email: "bea@example.com", Password: "password123",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var resp types.AuthResponse
		testingutils.DecodeJSON(t, w, &resp)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "Bea", resp.Name)
	})

	t.Run("duplicate", func(t *testing.T) {
		w := testingutils.PerformRequest(a.router, http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
			Name: "Ana", Email: "ana@example.com", Password: "password123",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("short password reports the field", func(t *testing.T) {
		w := testingutils.PerformRequest(a.router, http.MethodPost, "/api/v1/auth/register", map[string]string{
			"name": "Cy", "email": "cy@example.com", "password": "short",
		}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		testingutils.DecodeJSON(t, w, &resp)
		assert.Equal(t, "password", resp["field"])
	})

	t.Run("login", func(t *testing.T) {
		w := testingutils.PerformRequest(a.router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
			Email: "ana@example.com", Password: "password123",
		}, "")
		assert.Equal(t, http.StatusOK, w.Code)

		w = testingutils.PerformRequest(a.router, http.MethodPost, "/api/v1/auth/login", types.LoginRequest{
			Email: "ana@example.com", Password: "wrong-password",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		w := testingutils.PerformRequest(a.router, http.MethodGet, "/api/v1/profile", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestProfileRoutes(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPut, "/api/v1/profile/goals", map[string]float64{"calories": 1800})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var goals model.Goals
	testingutils.DecodeJSON(t, w, &goals)
	assert.Equal(t, float64(1800), goals.Calories)
	assert.Equal(t, float64(150), goals.Protein)

	w = a.do(http.MethodPut, "/api/v1/profile/goals", map[string]float64{"calories": -5})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/api/v1/profile/goals/history", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPut, "/api/v1/profile", types.UpdateProfileRequest{Name: "Ana Maria"})
	require.Equal(t, http.StatusOK, w.Code)
	var profile map[string]any
	testingutils.DecodeJSON(t, w, &profile)
	assert.Equal(t, "Ana Maria", profile["name"])

	a.do(http.MethodPost, "/api/v1/logs/2026-03-10/water", types.AddWaterRequest{Amount: 300})
	w = a.do(http.MethodDelete, "/api/v1/profile/logs", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, "/api/v1/logs/2026-03-10", nil)
	var l model.DailyLog
	testingutils.DecodeJSON(t, w, &l)
	assert.Zero(t, l.WaterIntake)
}

func TestLogRoutes(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/logs/2026-03-10/foods", types.AddFoodsRequest{
		Meal: "Lunch",
		Foods: []types.FoodInput{
			{Name: "Rice", Calories: 200, Carbs: 45, Protein: 4},
			{Name: "Chicken", Calories: 250, Protein: 40, Fat: 8},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var l model.DailyLog
	testingutils.DecodeJSON(t, w, &l)
	require.Len(t, l.Meals, 1)
	require.Len(t, l.Meals[0].Items, 2)

	t.Run("totals", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/v1/logs/2026-03-10/totals", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var totals DayTotals
		testingutils.DecodeJSON(t, w, &totals)
		assert.Equal(t, float64(450), totals.Totals.Calories)
		assert.Equal(t, float64(44), totals.Totals.Protein)
		assert.Equal(t, 2, totals.Items)
	})

	t.Run("delete food", func(t *testing.T) {
		w := a.do(http.MethodDelete, "/api/v1/logs/2026-03-10/meals/Lunch/foods/"+l.Meals[0].Items[0].ID, nil)
		require.Equal(t, http.StatusOK, w.Code)
		w = a.do(http.MethodDelete, "/api/v1/logs/2026-03-10/meals/Lunch/foods/missing", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("food validation names the field", func(t *testing.T) {
		w := a.do(http.MethodPost, "/api/v1/logs/2026-03-10/foods", map[string]any{
			"meal":  "Lunch",
			"foods": []map[string]any{{"name": "Soup", "calories": -1}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		testingutils.DecodeJSON(t, w, &resp)
		assert.Equal(t, "calories", resp["field"])
	})

	t.Run("bad date", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/v1/logs/10-03-2026", nil)
		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp map[string]string
		testingutils.DecodeJSON(t, w, &resp)
		assert.Equal(t, "date", resp["field"])
	})

	t.Run("export without bucket streams csv", func(t *testing.T) {
		w := a.do(http.MethodGet, "/api/v1/logs/2026-03-10/export", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
		assert.Contains(t, w.Header().Get("Content-Disposition"), "calorix-2026-03-10.csv")
		assert.Contains(t, w.Body.String(), "Lunch,Chicken,,250,40,0,8")
	})
}

func TestSummaryRoutes(t *testing.T) {
	a := newTestAPI(t)
	a.do(http.MethodPost, "/api/v1/logs/2026-03-09/foods", types.AddFoodsRequest{
		Meal: "Dinner", Foods: []types.FoodInput{{Name: "Pasta", Calories: 700}},
	})

	w := a.do(http.MethodGet, "/api/v1/summary?window=15", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var sum nutrition.Summary
	testingutils.DecodeJSON(t, w, &sum)
	assert.Equal(t, "2026-03-10", sum.To)
	assert.Equal(t, 1, sum.DaysLogged)
	assert.Equal(t, float64(700), sum.AvgCalories)

	w = a.do(http.MethodGet, "/api/v1/summary?window=9", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/api/v1/calendar?year=2026&month=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cal struct {
		Days []nutrition.CalendarDay `json:"days"`
	}
	testingutils.DecodeJSON(t, w, &cal)
	require.Len(t, cal.Days, 31)
	assert.Equal(t, nutrition.StatusUnder, cal.Days[8].Status)

	w = a.do(http.MethodGet, "/api/v1/calendar?year=2026&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFastingRoutes(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/fasting/start", types.StartFastRequest{Hours: 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodPost, "/api/v1/fasting/start", types.StartFastRequest{Hours: 1e300})
	require.Equal(t, http.StatusBadRequest, w.Code)
	var verr map[string]string
	testingutils.DecodeJSON(t, w, &verr)
	assert.Equal(t, "hours", verr["field"])

	w = a.do(http.MethodPost, "/api/v1/fasting/start", types.StartFastRequest{Hours: 16})
	require.Equal(t, http.StatusOK, w.Code)
	var resp FastingResponse
	testingutils.DecodeJSON(t, w, &resp)
	assert.True(t, resp.State.IsFasting)
	assert.Equal(t, "lion", resp.Reading.Label)

	end := *resp.State.StartTime - 1
	w = a.do(http.MethodPatch, "/api/v1/fasting", types.UpdateFastRequest{EndTime: &end})
	require.Equal(t, http.StatusOK, w.Code)
	var upd map[string]any
	testingutils.DecodeJSON(t, w, &upd)
	assert.Equal(t, false, upd["applied"])

	w = a.do(http.MethodPost, "/api/v1/fasting/stop", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodPatch, "/api/v1/fasting", types.UpdateFastRequest{EndTime: &end})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestChallengeRoutes(t *testing.T) {
	a := newTestAPI(t)

	w := a.do(http.MethodPost, "/api/v1/challenges/custom", map[string]any{
		"title": "Water", "type": "water", "goalDays": 10, "endDate": "2026-03-12", "dailyTarget": 2000,
	}, testingutils.WithLanguage("pt-BR,pt;q=0.9"))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var verr map[string]string
	testingutils.DecodeJSON(t, w, &verr)
	assert.Equal(t, "goalDays", verr["field"])
	assert.Contains(t, verr["error"], "entre 1 e 3")

	w = a.do(http.MethodPost, "/api/v1/challenges/evaluate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/v1/challenges/select", types.SelectChallengeRequest{ChallengeID: "nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodPost, "/api/v1/challenges/custom", map[string]any{
		"title": "Log it", "type": "log_streak", "goalDays": 1, "endDate": "2026-03-11",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	a.do(http.MethodPost, "/api/v1/logs/2026-03-10/foods", types.AddFoodsRequest{
		Meal: "Breakfast", Foods: []types.FoodInput{{Name: "Yogurt", Calories: 120}},
	})

	w = a.do(http.MethodGet, "/api/v1/challenges/completed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var done struct {
		Completed []model.CompletedChallenge `json:"completed"`
	}
	testingutils.DecodeJSON(t, w, &done)
	assert.Len(t, done.Completed, 1)

	w = a.do(http.MethodGet, "/api/v1/notifications?unread=true", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notes struct {
		Notifications []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"notifications"`
	}
	testingutils.DecodeJSON(t, w, &notes)
	require.Len(t, notes.Notifications, 1)
	assert.Equal(t, "challenge_completed", notes.Notifications[0].Kind)

	w = a.do(http.MethodPost, "/api/v1/notifications/"+notes.Notifications[0].ID+"/read", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = a.do(http.MethodPost, "/api/v1/notifications/not-a-uuid/read", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// completion cleared the active challenge
	w = a.do(http.MethodDelete, "/api/v1/challenges/active", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/v1/challenges/select", map[string]string{"challengeId": "hydration-week"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = a.do(http.MethodDelete, "/api/v1/challenges/active", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestEstimateRoute(t *testing.T) {
	a := newTestAPI(t)
	a.estimator.On("Estimate", mock.Anything, "a bowl of oats").
		Return([]types.FoodInput{{Name: "Oats", Calories: 150}}, nil)
	a.estimator.On("Estimate", mock.Anything, "broken").
		Return(nil, errors.New("upstream down"))

	w := a.do(http.MethodPost, "/api/v1/estimate", types.EstimateRequest{Description: "a bowl of oats"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Foods []types.FoodInput `json:"foods"`
	}
	testingutils.DecodeJSON(t, w, &resp)
	require.Len(t, resp.Foods, 1)
	assert.Equal(t, "Oats", resp.Foods[0].Name)

	w = a.do(http.MethodPost, "/api/v1/estimate", types.EstimateRequest{Description: "broken"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = a.do(http.MethodPost, "/api/v1/estimate", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
