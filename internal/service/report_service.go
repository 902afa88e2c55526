package service

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"edunova_backend/internal/model"
	"edunova_backend/internal/repository"
	"edunova_backend/internal/util"

	"gorm.io/gorm"
)

type ReportService struct {
	UserRepo     *repository.UserRepository
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	Cache        *ViewCache
}

func NewReportService(
	userRepo *repository.UserRepository,
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	cache *ViewCache,
) *ReportService {
	return &ReportService{
		UserRepo:     userRepo,
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		Cache:        cache,
	}
}

// 报表里的考勤和行为字段是静态占位数据，没有真实数据来源，
// 前端展示用。接真实考勤系统之前不要当成统计结果
const (
	placeholderAttendanceRate = 92.3
	placeholderBehaviorScore  = 8.7
	placeholderImprovement    = 12.5
	placeholderEngagement     = 85.2
	placeholderAbsentRate     = 5.2
	placeholderLateRate       = 2.5
)

// GetTeacherReport 汇总与教师同年级全部学生的学习报表
func (s *ReportService) GetTeacherReport(ctx context.Context, teacherID string) (*model.TeacherReport, error) {
	if teacherID == "" {
		return nil, util.NewValidationError("missing teacher ID")
	}

	var cached model.TeacherReport
	if s.Cache.Get(ctx, "report:"+teacherID, &cached) {
		return &cached, nil
	}

	teacher, err := s.UserRepo.FindByID(teacherID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTeacherNotFound
		}
		return nil, err
	}

	students, err := s.UserRepo.FindStudentsByGrade(teacher.Grade)
	if err != nil {
		return nil, err
	}

	// 没有学生不算错误，返回全零的报表骨架
	if len(students) == 0 {
		return emptyReport(), nil
	}

	studentIDs := make([]string, len(students))
	for i, st := range students {
		studentIDs[i] = st.ID
	}

	allProgress, err := s.ProgressRepo.FindByUsers(studentIDs)
	if err != nil {
		return nil, err
	}

	lessons, err := s.LessonRepo.MapByIDs(lessonIDs(allProgress))
	if err != nil {
		return nil, err
	}

	report := buildTeacherReport(students, allProgress, lessons)
	s.Cache.Set(ctx, "report:"+teacherID, report)
	return report, nil
}

func emptyReport() *model.TeacherReport {
	return &model.TeacherReport{
		Subjects:       []model.SubjectPerformance{},
		Trends:         []string{},
		TopPerformers:  []model.TopPerformer{},
		StudentReports: []model.StudentReport{},
	}
}

func buildTeacherReport(students []model.User, allProgress []model.Progress, lessons map[string]model.Lesson) *model.TeacherReport {
	assessments := filterCompletedAssessments(allProgress)
	totalStudents := len(students)

	return &model.TeacherReport{
		Overview: model.ReportOverview{
			TotalStudents:      totalStudents,
			AveragePerformance: roundMeanScore(assessments),
			AttendanceRate:     placeholderAttendanceRate,
			BehaviorScore:      placeholderBehaviorScore,
			Improvement:        placeholderImprovement,
			Engagement:         placeholderEngagement,
		},
		Performance:   bucketPerformance(assessments),
		Subjects:      subjectPerformance(assessments, lessons),
		Trends:        []string{},
		TopPerformers: topPerformers(students, assessments),
		BehaviorAnalysis: model.BehaviorAnalysis{
			// 按学生数的固定比例切分，同样是占位口径
			Excellent:        int(math.Round(float64(totalStudents) * 0.3)),
			Good:             int(math.Round(float64(totalStudents) * 0.5)),
			NeedsImprovement: int(math.Round(float64(totalStudents) * 0.15)),
			Incidents:        int(math.Round(float64(totalStudents) * 0.05)),
		},
		Attendance: model.AttendanceSplit{
			Present: placeholderAttendanceRate,
			Absent:  placeholderAbsentRate,
			Late:    placeholderLateRate,
		},
		StudentReports: studentReports(students, allProgress, lessons),
	}
}

func filterCompletedAssessments(records []model.Progress) []model.Progress {
	var out []model.Progress
	for _, r := range records {
		if r.ResourceType == model.ResourceAssessment && r.Status == model.StatusCompleted {
			out = append(out, r)
		}
	}
	return out
}

func scoreOrZero(r model.Progress) int {
	if r.Score == nil {
		return 0
	}
	return *r.Score
}

func roundMeanScore(records []model.Progress) int {
	if len(records) == 0 {
		return 0
	}
	sum := 0
	for _, r := range records {
		sum += scoreOrZero(r)
	}
	return int(math.Round(float64(sum) / float64(len(records))))
}

func bucketPerformance(assessments []model.Progress) model.PerformanceDistribution {
	var dist model.PerformanceDistribution
	for _, r := range assessments {
		score := scoreOrZero(r)
		switch {
		case score >= 90:
			dist.Excellent++
		case score >= 80:
			dist.Good++
		case score >= 70:
			dist.Average++
		default:
			dist.NeedsImprovement++
		}
	}
	return dist
}

func subjectPerformance(assessments []model.Progress, lessons map[string]model.Lesson) []model.SubjectPerformance {
	type subjectAgg struct {
		totalScore int
		count      int
		students   map[string]bool
	}

	groups := make(map[string]*subjectAgg)
	for _, r := range assessments {
		subject := "Unknown"
		if r.LessonID != nil {
			if lesson, ok := lessons[*r.LessonID]; ok {
				subject = lesson.Subject
			}
		}
		g, ok := groups[subject]
		if !ok {
			g = &subjectAgg{students: make(map[string]bool)}
			groups[subject] = g
		}
		g.totalScore += scoreOrZero(r)
		g.count++
		g.students[r.UserID] = true
	}

	result := make([]model.SubjectPerformance, 0, len(groups))
	for name, g := range groups {
		result = append(result, model.SubjectPerformance{
			Name:        name,
			Performance: int(math.Round(float64(g.totalScore) / float64(g.count))),
			Improvement: 0,
			Students:    len(g.students),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func topPerformers(students []model.User, assessments []model.Progress) []model.TopPerformer {
	type studentAgg struct {
		totalScore int
		count      int
	}

	byStudent := make(map[string]*studentAgg)
	for _, r := range assessments {
		g, ok := byStudent[r.UserID]
		if !ok {
			g = &studentAgg{}
			byStudent[r.UserID] = g
		}
		g.totalScore += scoreOrZero(r)
		g.count++
	}

	names := make(map[string]string, len(students))
	for _, st := range students {
		names[st.ID] = st.Name
	}

	performers := make([]model.TopPerformer, 0, len(byStudent))
	for id, g := range byStudent {
		mean := float64(g.totalScore) / float64(g.count)
		name := names[id]
		if name == "" {
			name = "Unknown Student"
		}
		performers = append(performers, model.TopPerformer{
			Name:        name,
			Grade:       letterGrade(mean),
			Performance: int(math.Round(mean)),
			Improvement: 0,
		})
	}

	sort.Slice(performers, func(i, j int) bool {
		if performers[i].Performance != performers[j].Performance {
			return performers[i].Performance > performers[j].Performance
		}
		return performers[i].Name < performers[j].Name
	})

	if len(performers) > 5 {
		performers = performers[:5]
	}
	return performers
}

func studentReports(students []model.User, allProgress []model.Progress, lessons map[string]model.Lesson) []model.StudentReport {
	byUser := make(map[string][]model.Progress)
	for _, r := range allProgress {
		byUser[r.UserID] = append(byUser[r.UserID], r)
	}

	reports := make([]model.StudentReport, len(students))
	for i, st := range students {
		records := byUser[st.ID]
		assessments := filterCompletedAssessments(records)

		completed := 0
		var lastActive *time.Time
		for _, r := range records {
			if r.Status == model.StatusCompleted {
				completed++
			}
			if lastActive == nil || r.UpdatedAt.After(*lastActive) {
				t := r.UpdatedAt
				lastActive = &t
			}
		}

		completionRate := 0
		if len(records) > 0 {
			completionRate = int(math.Round(float64(completed) / float64(len(records)) * 100))
		}

		reports[i] = model.StudentReport{
			StudentID:          st.ID,
			Name:               st.Name,
			Email:              st.Email,
			Grade:              st.Grade,
			AverageScore:       roundMeanScore(assessments),
			CompletionRate:     completionRate,
			CompletedResources: completed,
			TotalResources:     len(records),
			LastActive:         lastActive,
			RecentAssessments:  recentAssessments(assessments, lessons, 3),
		}
	}
	return reports
}

func recentAssessments(assessments []model.Progress, lessons map[string]model.Lesson, limit int) []model.RecentAssessment {
	sorted := make([]model.Progress, len(assessments))
	copy(sorted, assessments)
	sort.Slice(sorted, func(i, j int) bool {
		ti, tj := sorted[i].CompletedAt, sorted[j].CompletedAt
		if ti == nil {
			return false
		}
		if tj == nil {
			return true
		}
		return ti.After(*tj)
	})

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	result := make([]model.RecentAssessment, len(sorted))
	for i, r := range sorted {
		title := "Unknown Assessment"
		if r.LessonID != nil {
			if lesson, ok := lessons[*r.LessonID]; ok {
				title = lesson.Title
			}
		}
		result[i] = model.RecentAssessment{
			Title:       title,
			Score:       scoreOrZero(r),
			CompletedAt: r.CompletedAt,
		}
	}
	return result
}

func letterGrade(score float64) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 85:
		return "A"
	case score >= 80:
		return "A-"
	case score >= 75:
		return "B+"
	case score >= 70:
		return "B"
	case score >= 65:
		return "B-"
	case score >= 60:
		return "C+"
	case score >= 55:
		return "C"
	case score >= 50:
		return "C-"
	default:
		return "D"
	}
}
