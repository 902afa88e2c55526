package model

import (
	"time"

	"gorm.io/datatypes"
)

type ProgressStatus string

const (
	StatusNotStarted ProgressStatus = "not_started"
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
)

type ResourceType string

const (
	ResourceAssessment ResourceType = "assessment"
	ResourceContent    ResourceType = "content"
	ResourceImage      ResourceType = "image"
	ResourceComic      ResourceType = "comic"
	ResourceSlide      ResourceType = "slide"
	ResourceVideo      ResourceType = "video"
	ResourceWebSearch  ResourceType = "websearch"
)

// NormalizeResourceType 前端历史版本会传 webSearch，统一成小写枚举
func NormalizeResourceType(t string) ResourceType {
	if t == "webSearch" {
		return ResourceWebSearch
	}
	return ResourceType(t)
}

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceAssessment, ResourceContent, ResourceImage,
		ResourceComic, ResourceSlide, ResourceVideo, ResourceWebSearch:
		return true
	}
	return false
}

// GradedAnswer 单题作答及判分结果
type GradedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Progress 用户对单个资源的学习进度，(user_id, resource_id) 全局唯一
// swagger:model Progress
type Progress struct {
	BaseModel
	UserID       string                            `gorm:"type:varchar(36);not null;index:idx_user_resource,unique" json:"userId"`
	ResourceID   string                            `gorm:"type:varchar(36);not null;index:idx_user_resource,unique" json:"resourceId"`
	LessonID     *string                           `gorm:"type:varchar(36);index" json:"lessonId,omitempty"`
	ResourceType ResourceType                      `gorm:"size:20;not null" json:"resourceType"`
	Status       ProgressStatus                    `gorm:"size:20;not null;default:'not_started'" json:"status"`
	Progress     int                               `gorm:"not null;default:0" json:"progress"`
	TimeSpent    int                               `gorm:"not null;default:0" json:"timeSpent"` // 秒
	Score        *int                              `json:"score,omitempty"`
	Answers      datatypes.JSONSlice[GradedAnswer] `json:"answers,omitempty"`
	CompletedAt  *time.Time                        `json:"completedAt,omitempty"`
}

func (Progress) TableName() string {
	return "progress_records"
}

func (p *Progress) IsCompleted() bool {
	return p.Status == StatusCompleted
}
