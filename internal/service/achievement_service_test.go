package service

import (
	"context"
	"testing"

	"edunova_backend/internal/model"
	"edunova_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func achievementByID(t *testing.T, set *model.AchievementSet, id string) model.Achievement {
	t.Helper()
	for _, a := range set.Achievements {
		if a.ID == id {
			return a
		}
	}
	t.Fatalf("achievement %s not found", id)
	return model.Achievement{}
}

func TestEvaluateAchievements_NoRecords(t *testing.T) {
	set := evaluateAchievements(nil)

	require.Len(t, set.Achievements, 5)
	assert.Equal(t, 0, set.EarnedCount)
	assert.Equal(t, 0, set.TotalXP)
	assert.Equal(t, 0.0, set.CompletionRate)
	for _, a := range set.Achievements {
		assert.False(t, a.Earned, a.ID)
	}
}

func TestEvaluateAchievements_FirstSteps(t *testing.T) {
	set := evaluateAchievements([]model.Progress{
		{Status: model.StatusCompleted},
		{Status: model.StatusInProgress},
	})

	first := achievementByID(t, set, "first-steps")
	assert.True(t, first.Earned)
	assert.Equal(t, 1.0, first.Progress)
	assert.Equal(t, "10 XP", first.Reward)

	assert.Equal(t, 1, set.EarnedCount)
	assert.Equal(t, 10, set.TotalXP)
	assert.InDelta(t, 50.0, set.CompletionRate, 0.001)
}

func TestEvaluateAchievements_PerfectScore(t *testing.T) {
	// 满分但未完成的记录不算
	set := evaluateAchievements([]model.Progress{
		{Status: model.StatusInProgress, Score: intPtr(100)},
	})
	assert.False(t, achievementByID(t, set, "perfect-score").Earned)

	set = evaluateAchievements([]model.Progress{
		{Status: model.StatusCompleted, Score: intPtr(100)},
	})
	perfect := achievementByID(t, set, "perfect-score")
	assert.True(t, perfect.Earned)
	assert.Equal(t, "50 XP", perfect.Reward)
}

func TestEvaluateAchievements_TimeMasterBoundary(t *testing.T) {
	// 7199秒差一秒，不授予
	set := evaluateAchievements([]model.Progress{
		{Status: model.StatusInProgress, TimeSpent: 7199},
	})
	tm := achievementByID(t, set, "time-master")
	assert.False(t, tm.Earned)
	assert.InDelta(t, 99.986, tm.Progress, 0.01)

	set = evaluateAchievements([]model.Progress{
		{Status: model.StatusInProgress, TimeSpent: 7200},
	})
	tm = achievementByID(t, set, "time-master")
	assert.True(t, tm.Earned)
	assert.Equal(t, 100.0, tm.Progress)

	// 进度封顶在100
	set = evaluateAchievements([]model.Progress{
		{Status: model.StatusInProgress, TimeSpent: 20000},
	})
	assert.Equal(t, 100.0, achievementByID(t, set, "time-master").Progress)
}

func TestEvaluateAchievements_HighAchieverAverage(t *testing.T) {
	// 已完成记录缺分按0分摊进平均
	set := evaluateAchievements([]model.Progress{
		{Status: model.StatusCompleted, Score: intPtr(95)},
		{Status: model.StatusCompleted}, // 无成绩
	})
	high := achievementByID(t, set, "high-achiever")
	assert.False(t, high.Earned)
	assert.InDelta(t, 47.5, high.Progress, 0.001)

	set = evaluateAchievements([]model.Progress{
		{Status: model.StatusCompleted, Score: intPtr(95)},
		{Status: model.StatusCompleted, Score: intPtr(85)},
	})
	high = achievementByID(t, set, "high-achiever")
	assert.True(t, high.Earned) // 平均正好90
}

func TestEvaluateAchievements_AllEarned(t *testing.T) {
	var records []model.Progress
	for i := 0; i < 10; i++ {
		records = append(records, model.Progress{
			Status:    model.StatusCompleted,
			TimeSpent: 800,
			Score:     intPtr(100),
		})
	}

	set := evaluateAchievements(records)
	assert.Equal(t, 5, set.EarnedCount)
	assert.Equal(t, 310, set.TotalXP) // 10+50+25+75+150
	assert.Equal(t, 100.0, set.CompletionRate)

	master := achievementByID(t, set, "subject-master")
	assert.True(t, master.Earned)
	assert.Equal(t, 10.0, master.Progress)
}

func TestGetAchievements_FromDatabase(t *testing.T) {
	db := setupTestDB(t)
	progressSvc := newTestProgressService(db)
	svc := newTestAchievementService(db)
	ctx := context.Background()

	_, err := progressSvc.StartLearning(ctx, StartLearningRequest{
		UserID: "user-1", ResourceID: "res-1", ResourceType: "video",
	})
	require.NoError(t, err)
	_, err = progressSvc.CompleteResource(ctx, "user-1", "res-1", CompleteResourceRequest{Score: intPtr(100)})
	require.NoError(t, err)

	set, err := svc.GetAchievements(ctx, "user-1")
	require.NoError(t, err)
	assert.True(t, achievementByID(t, set, "first-steps").Earned)
	assert.True(t, achievementByID(t, set, "perfect-score").Earned)
	assert.Equal(t, 60, set.TotalXP)
}

func TestGetAchievements_Validation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAchievementService(db)

	_, err := svc.GetAchievements(context.Background(), "")
	assert.True(t, util.IsValidationError(err))
}
