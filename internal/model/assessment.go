package model

import (
	"gorm.io/datatypes"
)

type AssessmentStatus string

const (
	AssessmentDraft    AssessmentStatus = "draft"
	AssessmentActive   AssessmentStatus = "active"
	AssessmentInactive AssessmentStatus = "inactive"
)

// AssessmentQuestion 生成的题目，按数组下标排序
type AssessmentQuestion struct {
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

// AssessmentSolution 标准答案，questionNumber 从 1 开始
type AssessmentSolution struct {
	QuestionNumber int    `json:"questionNumber"`
	Answer         string `json:"answer"`
}

// Assessment 测评定义，判分引擎只读
// swagger:model Assessment
type Assessment struct {
	UUIDBase
	Title     string                                  `gorm:"size:255;not null" json:"title"`
	Subject   string                                  `gorm:"size:100;not null" json:"subject"`
	Grade     string                                  `gorm:"size:10;not null" json:"grade"`
	LessonID  *string                                 `gorm:"type:varchar(36);index" json:"lessonId,omitempty"`
	Questions datatypes.JSONSlice[AssessmentQuestion] `json:"questions"`
	Solutions datatypes.JSONSlice[AssessmentSolution] `json:"solutions"`
	Status    AssessmentStatus                        `gorm:"size:20;default:'draft'" json:"status"`
	CreatedBy string                                  `gorm:"type:varchar(36);index" json:"createdBy"`
}

func (Assessment) TableName() string {
	return "assessments"
}
