package model

// Lesson 课程目录，分析视图按 lessonId 联表取学科与标题
// swagger:model Lesson
type Lesson struct {
	UUIDBase
	Title   string `gorm:"size:255;not null" json:"title"`
	Subject string `gorm:"size:100;not null;index" json:"subject"`
	Grade   string `gorm:"size:10;index" json:"grade"`
}

func (Lesson) TableName() string {
	return "lessons"
}
