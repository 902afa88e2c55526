package repository

import (
	"edunova_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// CreateIfAbsent 原子地创建进度记录。(user_id, resource_id) 撞唯一索引时
// 不报错也不写入，转而取回已有记录，保证并发 start 只产生一条
func (r *ProgressRepository) CreateIfAbsent(p *model.Progress) (*model.Progress, bool, error) {
	result := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "resource_id"}},
		DoNothing: true,
	}).Create(p)
	if result.Error != nil {
		return nil, false, result.Error
	}

	if result.RowsAffected == 0 {
		existing, err := r.FindByUserAndResource(p.UserID, p.ResourceID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	return p, true, nil
}

func (r *ProgressRepository) FindByUserAndResource(userID, resourceID string) (*model.Progress, error) {
	var progress model.Progress
	err := r.DB.Where("user_id = ? AND resource_id = ?", userID, resourceID).First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) FindByUser(userID string) ([]model.Progress, error) {
	var records []model.Progress
	err := r.DB.Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&records).Error
	return records, err
}

func (r *ProgressRepository) FindByUsers(userIDs []string) ([]model.Progress, error) {
	var records []model.Progress
	if len(userIDs) == 0 {
		return records, nil
	}
	err := r.DB.Where("user_id IN ?", userIDs).Find(&records).Error
	return records, err
}

func (r *ProgressRepository) Save(p *model.Progress) error {
	return r.DB.Save(p).Error
}
