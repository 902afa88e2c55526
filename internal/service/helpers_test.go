package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"edunova_backend/internal/model"
	"edunova_backend/internal/repository"
	"edunova_backend/pkg/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// setupTestDB 每个测试用独立命名的共享内存库，避免用例之间串数据
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:edunova_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestProgressService(db *gorm.DB) *ProgressService {
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
		NewViewCache(nil, 0),
	)
}

func newTestGradingService(db *gorm.DB) *GradingService {
	return NewGradingService(
		repository.NewAssessmentRepository(db),
		repository.NewProgressRepository(db),
		NewViewCache(nil, 0),
	)
}

func newTestAnalyticsService(db *gorm.DB) *AnalyticsService {
	return NewAnalyticsService(
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
		NewViewCache(nil, 0),
	)
}

func newTestAchievementService(db *gorm.DB) *AchievementService {
	return NewAchievementService(repository.NewProgressRepository(db), NewViewCache(nil, 0))
}

func newTestReportService(db *gorm.DB) *ReportService {
	return NewReportService(
		repository.NewUserRepository(db),
		repository.NewProgressRepository(db),
		repository.NewLessonRepository(db),
		NewViewCache(nil, 0),
	)
}

func seedLesson(t *testing.T, db *gorm.DB, id, title, subject string) {
	t.Helper()
	require.NoError(t, db.Create(&model.Lesson{
		UUIDBase: model.UUIDBase{ID: id},
		Title:    title,
		Subject:  subject,
		Grade:    "5",
	}).Error)
}

func seedUser(t *testing.T, db *gorm.DB, id, name string, role model.UserRole, grade string) {
	t.Helper()
	require.NoError(t, db.Create(&model.User{
		UUIDBase: model.UUIDBase{ID: id},
		Name:     name,
		Email:    id + "@example.com",
		Password: "x",
		Role:     role,
		Grade:    grade,
	}).Error)
}

func intPtr(v int) *int { return &v }

func strPtr(s string) *string { return &s }
