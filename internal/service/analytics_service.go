package service

import (
	"context"
	"sort"

	"edunova_backend/internal/model"
	"edunova_backend/internal/repository"
	"edunova_backend/internal/util"
)

type AnalyticsService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
	Cache        *ViewCache
}

func NewAnalyticsService(
	progressRepo *repository.ProgressRepository,
	lessonRepo *repository.LessonRepository,
	cache *ViewCache,
) *AnalyticsService {
	return &AnalyticsService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
		Cache:        cache,
	}
}

const weeklyActivityLimit = 8

func (s *AnalyticsService) GetLearningStats(ctx context.Context, userID string) (*model.LearningStats, error) {
	if userID == "" {
		return nil, util.NewValidationError("missing user ID")
	}

	var cached model.LearningStats
	if s.Cache.Get(ctx, "stats:"+userID, &cached) {
		return &cached, nil
	}

	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	stats := computeStats(records)
	s.Cache.Set(ctx, "stats:"+userID, stats)
	return stats, nil
}

func (s *AnalyticsService) GetProgressAnalytics(ctx context.Context, userID string) (*model.ProgressAnalytics, error) {
	if userID == "" {
		return nil, util.NewValidationError("missing user ID")
	}

	var cached model.ProgressAnalytics
	if s.Cache.Get(ctx, "analytics:"+userID, &cached) {
		return &cached, nil
	}

	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	lessons, err := s.LessonRepo.MapByIDs(lessonIDs(records))
	if err != nil {
		return nil, err
	}

	analytics := &model.ProgressAnalytics{
		ByType:         groupByType(records),
		BySubject:      groupBySubject(records, lessons),
		WeeklyActivity: weeklyBuckets(records, weeklyActivityLimit),
	}
	s.Cache.Set(ctx, "analytics:"+userID, analytics)
	return analytics, nil
}

func computeStats(records []model.Progress) *model.LearningStats {
	stats := &model.LearningStats{TotalResources: len(records)}

	scoreSum, scoreCount := 0, 0
	for _, r := range records {
		switch r.Status {
		case model.StatusCompleted:
			stats.CompletedResources++
		case model.StatusInProgress:
			stats.InProgressResources++
		}
		stats.TotalTimeSpent += r.TimeSpent
		if r.Score != nil {
			scoreSum += *r.Score
			scoreCount++
		}
	}

	if scoreCount > 0 {
		stats.AverageScore = float64(scoreSum) / float64(scoreCount)
	}
	return stats
}

type groupAgg struct {
	count     int
	completed int
	totalTime int
	scoreSum  int
	scoreN    int
}

func (g *groupAgg) add(r model.Progress) {
	g.count++
	if r.Status == model.StatusCompleted {
		g.completed++
	}
	g.totalTime += r.TimeSpent
	if r.Score != nil {
		g.scoreSum += *r.Score
		g.scoreN++
	}
}

func (g *groupAgg) avgScore() float64 {
	if g.scoreN == 0 {
		return 0
	}
	return float64(g.scoreSum) / float64(g.scoreN)
}

func groupByType(records []model.Progress) []model.TypeBreakdown {
	groups := make(map[model.ResourceType]*groupAgg)
	for _, r := range records {
		g, ok := groups[r.ResourceType]
		if !ok {
			g = &groupAgg{}
			groups[r.ResourceType] = g
		}
		g.add(r)
	}

	result := make([]model.TypeBreakdown, 0, len(groups))
	for t, g := range groups {
		result = append(result, model.TypeBreakdown{
			ResourceType: t,
			Count:        g.count,
			Completed:    g.completed,
			TotalTime:    g.totalTime,
			AvgScore:     g.avgScore(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ResourceType < result[j].ResourceType })
	return result
}

// groupBySubject 只统计能联出课程的记录，孤儿 lessonId 不算错误、直接跳过
func groupBySubject(records []model.Progress, lessons map[string]model.Lesson) []model.SubjectBreakdown {
	groups := make(map[string]*groupAgg)
	for _, r := range records {
		if r.LessonID == nil {
			continue
		}
		lesson, ok := lessons[*r.LessonID]
		if !ok {
			continue
		}
		g, ok := groups[lesson.Subject]
		if !ok {
			g = &groupAgg{}
			groups[lesson.Subject] = g
		}
		g.add(r)
	}

	result := make([]model.SubjectBreakdown, 0, len(groups))
	for subject, g := range groups {
		result = append(result, model.SubjectBreakdown{
			Subject:   subject,
			Count:     g.count,
			Completed: g.completed,
			TotalTime: g.totalTime,
			AvgScore:  g.avgScore(),
		})
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Subject < result[j].Subject })
	return result
}

// weeklyBuckets 按记录最近更新时间的 ISO 年/周分桶，新的在前，最多 limit 个
func weeklyBuckets(records []model.Progress, limit int) []model.WeeklyActivity {
	type weekKey struct {
		year int
		week int
	}

	buckets := make(map[weekKey]*model.WeeklyActivity)
	for _, r := range records {
		year, week := r.UpdatedAt.ISOWeek()
		key := weekKey{year, week}
		b, ok := buckets[key]
		if !ok {
			b = &model.WeeklyActivity{Year: year, Week: week}
			buckets[key] = b
		}
		if r.Status == model.StatusCompleted {
			b.Completed++
		}
		b.TimeSpent += r.TimeSpent
	}

	result := make([]model.WeeklyActivity, 0, len(buckets))
	for _, b := range buckets {
		result = append(result, *b)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Year != result[j].Year {
			return result[i].Year > result[j].Year
		}
		return result[i].Week > result[j].Week
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result
}
