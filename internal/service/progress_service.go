package service

import (
	"context"
	"errors"
	"time"

	"edunova_backend/internal/model"
	"edunova_backend/internal/repository"
	"edunova_backend/internal/util"
	"edunova_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	Cache        *ViewCache
}

func NewProgressService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	cache *ViewCache,
) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		Cache:        cache,
	}
}

type StartLearningRequest struct {
	UserID       string  `json:"userId" binding:"required"`
	ResourceID   string  `json:"resourceId" binding:"required"`
	ResourceType string  `json:"resourceType" binding:"required"`
	LessonID     *string `json:"lessonId"`
}

type UpdateProgressRequest struct {
	Progress  int `json:"progress"`
	TimeSpent int `json:"timeSpent"` // 增量，秒
}

type CompleteResourceRequest struct {
	Score   *int                 `json:"score"`
	Answers []model.GradedAnswer `json:"answers"`
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// StartLearning 建立(user, resource)进度记录，重复 start 不回退已有进度
func (s *ProgressService) StartLearning(ctx context.Context, req StartLearningRequest) (*model.Progress, error) {
	if req.UserID == "" || req.ResourceID == "" || req.ResourceType == "" {
		return nil, util.NewValidationError("missing required fields: userId, resourceId, resourceType")
	}

	resourceType := model.NormalizeResourceType(req.ResourceType)
	if !resourceType.Valid() {
		return nil, util.NewValidationError("invalid resource type: %s", req.ResourceType)
	}

	candidate := &model.Progress{
		UserID:       req.UserID,
		ResourceID:   req.ResourceID,
		ResourceType: resourceType,
		LessonID:     req.LessonID,
		Status:       model.StatusInProgress,
		Progress:     0,
	}

	progress, created, err := s.ProgressRepo.CreateIfAbsent(candidate)
	if err != nil {
		return nil, err
	}

	// 正常创建即 in_progress；not_started 仅出现在历史数据里，防御性拉起
	if !created && progress.Status == model.StatusNotStarted {
		progress.Status = model.StatusInProgress
		progress.Progress = 0
		if err := s.ProgressRepo.Save(progress); err != nil {
			return nil, err
		}
	}

	if created {
		s.Cache.InvalidateUser(ctx, req.UserID)
	}

	return progress, nil
}

// UpdateProgress 进度百分比夹取到[0,100]，学习时长只增不减。
// 到达100时置完成，完成时间只在首次完成时落，重复满分更新不覆盖
func (s *ProgressService) UpdateProgress(ctx context.Context, userID, resourceID string, req UpdateProgressRequest) (*model.Progress, error) {
	if userID == "" || resourceID == "" {
		return nil, util.NewValidationError("missing user ID or resource ID")
	}

	progress, err := s.ProgressRepo.FindByUserAndResource(userID, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	progress.Progress = clampPercent(req.Progress)
	if req.TimeSpent > 0 {
		progress.TimeSpent += req.TimeSpent
	}

	completedNow := false
	if progress.Progress >= 100 {
		completedNow = progress.Status != model.StatusCompleted
		progress.Status = model.StatusCompleted
		if progress.CompletedAt == nil {
			now := time.Now()
			progress.CompletedAt = &now
		}
	}

	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	// 落库成功后才计数，保存失败不算完成
	if completedNow {
		monitoring.ResourcesCompleted.WithLabelValues(string(progress.ResourceType)).Inc()
	}

	s.Cache.InvalidateUser(ctx, userID)
	return progress, nil
}

// CompleteResource 显式标记完成，完成时间总是覆盖为当前时间
func (s *ProgressService) CompleteResource(ctx context.Context, userID, resourceID string, req CompleteResourceRequest) (*model.Progress, error) {
	if userID == "" || resourceID == "" {
		return nil, util.NewValidationError("missing user ID or resource ID")
	}

	progress, err := s.ProgressRepo.FindByUserAndResource(userID, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}

	completedNow := progress.Status != model.StatusCompleted

	now := time.Now()
	progress.Status = model.StatusCompleted
	progress.Progress = 100
	progress.CompletedAt = &now

	if req.Score != nil {
		score := clampPercent(*req.Score)
		progress.Score = &score
	}
	if req.Answers != nil {
		progress.Answers = req.Answers
	}

	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}

	if completedNow {
		monitoring.ResourcesCompleted.WithLabelValues(string(progress.ResourceType)).Inc()
	}

	s.Cache.InvalidateUser(ctx, userID)
	return progress, nil
}

// GetUserProgress 用户全部进度，按更新时间倒序并联表课程信息
func (s *ProgressService) GetUserProgress(userID string) ([]model.ProgressWithLesson, error) {
	if userID == "" {
		return nil, util.NewValidationError("missing user ID")
	}

	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.LessonRepo.MapByIDs(lessonIDs(records))
	if err != nil {
		return nil, err
	}

	result := make([]model.ProgressWithLesson, len(records))
	for i, r := range records {
		item := model.ProgressWithLesson{Progress: r}
		if r.LessonID != nil {
			if lesson, ok := lessons[*r.LessonID]; ok {
				item.LessonTitle = lesson.Title
				item.LessonSubject = lesson.Subject
			}
		}
		result[i] = item
	}
	return result, nil
}

// GetResourceProgress 单个资源进度，没有记录时返回 not_started 的占位
func (s *ProgressService) GetResourceProgress(userID, resourceID string) (*model.Progress, error) {
	if userID == "" || resourceID == "" {
		return nil, util.NewValidationError("missing user ID or resource ID")
	}

	progress, err := s.ProgressRepo.FindByUserAndResource(userID, resourceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.Progress{
				UserID:     userID,
				ResourceID: resourceID,
				Status:     model.StatusNotStarted,
				Progress:   0,
				TimeSpent:  0,
			}, nil
		}
		return nil, err
	}
	return progress, nil
}

func lessonIDs(records []model.Progress) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, r := range records {
		if r.LessonID != nil && !seen[*r.LessonID] {
			seen[*r.LessonID] = true
			ids = append(ids, *r.LessonID)
		}
	}
	return ids
}
