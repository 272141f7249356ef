package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pageza/calorix/backend/internal/model"
	"github.com/pageza/calorix/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

func TestMigrationsAndJSONColumns(t *testing.T) {
	db, err := Open(sqlite.Open(":memory:"))
	require.NoError(t, err)
	require.NoError(t, RunMigrations(db))

	user := models.User{ID: uuid.New(), Name: "Test User", Email: "test@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	profile := models.NewUserProfile(user.ID, "Test User")
	profile.ChallengeProgress = &model.UserChallengeProgress{ChallengeID: "c", StartDate: "2026-01-01", Progress: []bool{true, false}}
	require.NoError(t, db.Create(profile).Error)

	var got models.UserProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&got).Error)
	assert.Equal(t, model.DefaultGoals, got.Domain().Goals)
	require.NotNil(t, got.ChallengeProgress)
	assert.Equal(t, []bool{true, false}, got.ChallengeProgress.Progress)

	log := models.DailyLog{
		ID:     uuid.New(),
		UserID: user.ID,
		Date:   "2026-01-01",
		Meals:  []model.Meal{{Name: "Breakfast", Items: []model.Food{{ID: "f", Name: "Egg", Calories: 78}}}},
	}
	require.NoError(t, db.Create(&log).Error)

	dup := models.DailyLog{ID: uuid.New(), UserID: user.ID, Date: "2026-01-01"}
	assert.Error(t, db.Create(&dup).Error)

	var logs []models.DailyLog
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&logs).Error)
	m := models.LogMap(logs)
	assert.Equal(t, float64(78), m["2026-01-01"].Meals[0].Items[0].Calories)

	require.NoError(t, DropAll(db))
	assert.False(t, db.Migrator().HasTable(&models.DailyLog{}))
}
