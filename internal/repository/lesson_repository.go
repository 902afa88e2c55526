package repository

import (
	"edunova_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// MapByIDs 批量取课程并按ID建映射，供分析视图联表用
func (r *LessonRepository) MapByIDs(ids []string) (map[string]model.Lesson, error) {
	lessons := make(map[string]model.Lesson, len(ids))
	if len(ids) == 0 {
		return lessons, nil
	}

	var rows []model.Lesson
	if err := r.DB.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, l := range rows {
		lessons[l.ID] = l
	}
	return lessons, nil
}
