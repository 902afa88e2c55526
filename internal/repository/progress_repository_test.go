package repository

import (
	"fmt"
	"sync/atomic"
	"testing"

	"edunova_backend/internal/model"
	"edunova_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:edunova_repo_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestCreateIfAbsent_CreatesOnce(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)

	first, created, err := repo.CreateIfAbsent(&model.Progress{
		UserID:       "user-1",
		ResourceID:   "res-1",
		ResourceType: model.ResourceVideo,
		Status:       model.StatusInProgress,
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotZero(t, first.ID)

	// 撞唯一索引时返回已有记录，不报错也不新增
	second, created, err := repo.CreateIfAbsent(&model.Progress{
		UserID:       "user-1",
		ResourceID:   "res-1",
		ResourceType: model.ResourceVideo,
		Status:       model.StatusInProgress,
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&model.Progress{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateIfAbsent_DistinctPairsCoexist(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)

	pairs := []struct{ user, resource string }{
		{"user-1", "res-1"},
		{"user-1", "res-2"},
		{"user-2", "res-1"},
	}
	for _, p := range pairs {
		_, created, err := repo.CreateIfAbsent(&model.Progress{
			UserID:       p.user,
			ResourceID:   p.resource,
			ResourceType: model.ResourceContent,
			Status:       model.StatusInProgress,
		})
		require.NoError(t, err)
		assert.True(t, created)
	}
}

func TestFindByUser_OrdersByUpdatedAtDesc(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)

	for i := 0; i < 3; i++ {
		_, _, err := repo.CreateIfAbsent(&model.Progress{
			UserID:       "user-1",
			ResourceID:   fmt.Sprintf("res-%d", i),
			ResourceType: model.ResourceVideo,
			Status:       model.StatusInProgress,
		})
		require.NoError(t, err)
	}

	records, err := repo.FindByUser("user-1")
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].UpdatedAt.After(records[i-1].UpdatedAt))
	}
}

func TestFindByUsers_EmptyInput(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)

	records, err := repo.FindByUsers(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFindByUserAndResource_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProgressRepository(db)

	_, err := repo.FindByUserAndResource("user-1", "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
