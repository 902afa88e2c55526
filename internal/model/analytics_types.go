package model

import "time"

// 以下均为派生视图，不落库，由分析服务按需计算

// swagger:model LearningStats
type LearningStats struct {
	TotalResources      int     `json:"totalResources"`
	CompletedResources  int     `json:"completedResources"`
	InProgressResources int     `json:"inProgressResources"`
	TotalTimeSpent      int     `json:"totalTimeSpent"`
	AverageScore        float64 `json:"averageScore"`
}

type TypeBreakdown struct {
	ResourceType ResourceType `json:"resourceType"`
	Count        int          `json:"count"`
	Completed    int          `json:"completed"`
	TotalTime    int          `json:"totalTime"`
	AvgScore     float64      `json:"avgScore"`
}

type SubjectBreakdown struct {
	Subject   string  `json:"subject"`
	Count     int     `json:"count"`
	Completed int     `json:"completed"`
	TotalTime int     `json:"totalTime"`
	AvgScore  float64 `json:"avgScore"`
}

// WeeklyActivity 按 ISO 周聚合的活跃度
type WeeklyActivity struct {
	Year      int `json:"year"`
	Week      int `json:"week"`
	Completed int `json:"completed"`
	TimeSpent int `json:"timeSpent"`
}

// swagger:model ProgressAnalytics
type ProgressAnalytics struct {
	ByType         []TypeBreakdown    `json:"progressByType"`
	BySubject      []SubjectBreakdown `json:"progressBySubject"`
	WeeklyActivity []WeeklyActivity   `json:"weeklyActivity"`
}

type Achievement struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Earned      bool    `json:"earned"`
	Progress    float64 `json:"progress"`
	MaxProgress int     `json:"maxProgress"`
	Reward      string  `json:"reward"` // e.g. "10 XP"
}

// swagger:model AchievementSet
type AchievementSet struct {
	Achievements   []Achievement `json:"achievements"`
	EarnedCount    int           `json:"earnedCount"`
	TotalXP        int           `json:"totalXP"`
	CompletionRate float64       `json:"completionRate"`
}

// ProgressWithLesson 进度记录及联表出的课程信息
type ProgressWithLesson struct {
	Progress
	LessonTitle   string `json:"lessonTitle,omitempty"`
	LessonSubject string `json:"lessonSubject,omitempty"`
}

type ReportOverview struct {
	TotalStudents      int     `json:"totalStudents"`
	AveragePerformance int     `json:"averagePerformance"`
	AttendanceRate     float64 `json:"attendanceRate"`
	BehaviorScore      float64 `json:"behaviorScore"`
	Improvement        float64 `json:"improvement"`
	Engagement         float64 `json:"engagement"`
}

type PerformanceDistribution struct {
	Excellent        int `json:"excellent"`        // >= 90
	Good             int `json:"good"`             // [80, 90)
	Average          int `json:"average"`          // [70, 80)
	NeedsImprovement int `json:"needsImprovement"` // < 70
}

type SubjectPerformance struct {
	Name        string `json:"name"`
	Performance int    `json:"performance"`
	Improvement int    `json:"improvement"`
	Students    int    `json:"students"`
}

type TopPerformer struct {
	Name        string `json:"name"`
	Grade       string `json:"grade"` // 等级字母，如 A+
	Performance int    `json:"performance"`
	Improvement int    `json:"improvement"`
}

type BehaviorAnalysis struct {
	Excellent        int `json:"excellent"`
	Good             int `json:"good"`
	NeedsImprovement int `json:"needsImprovement"`
	Incidents        int `json:"incidents"`
}

type AttendanceSplit struct {
	Present float64 `json:"present"`
	Absent  float64 `json:"absent"`
	Late    float64 `json:"late"`
}

type RecentAssessment struct {
	Title       string     `json:"title"`
	Score       int        `json:"score"`
	CompletedAt *time.Time `json:"completedAt"`
}

type StudentReport struct {
	StudentID          string             `json:"studentId"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Grade              string             `json:"grade"`
	AverageScore       int                `json:"averageScore"`
	CompletionRate     int                `json:"completionRate"`
	CompletedResources int                `json:"completedResources"`
	TotalResources     int                `json:"totalResources"`
	LastActive         *time.Time         `json:"lastActive"`
	RecentAssessments  []RecentAssessment `json:"recentAssessments"`
}

// swagger:model TeacherReport
type TeacherReport struct {
	Overview         ReportOverview          `json:"overview"`
	Performance      PerformanceDistribution `json:"performance"`
	Subjects         []SubjectPerformance    `json:"subjects"`
	Trends           []string                `json:"trends"`
	TopPerformers    []TopPerformer          `json:"topPerformers"`
	BehaviorAnalysis BehaviorAnalysis        `json:"behaviorAnalysis"`
	Attendance       AttendanceSplit         `json:"attendance"`
	StudentReports   []StudentReport         `json:"studentReports"`
}
