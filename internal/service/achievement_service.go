package service

import (
	"context"
	"fmt"

	"edunova_backend/internal/model"
	"edunova_backend/internal/repository"
	"edunova_backend/internal/util"
)

type AchievementService struct {
	ProgressRepo *repository.ProgressRepository
	Cache        *ViewCache
}

func NewAchievementService(progressRepo *repository.ProgressRepository, cache *ViewCache) *AchievementService {
	return &AchievementService{ProgressRepo: progressRepo, Cache: cache}
}

// achievementMetrics 成就规则的输入指标，全部由当前进度集合派生
type achievementMetrics struct {
	completed      int
	totalResources int
	totalTimeSpent int
	perfectScores  int     // 已完成且满分的数量
	averageScore   float64 // 已完成记录的平均分，缺分按0计
}

// achievementRule 声明式成就规则。新增成就只需加一行，不碰聚合逻辑
type achievementRule struct {
	id          string
	title       string
	description string
	rewardXP    int
	maxProgress int
	earned      func(m achievementMetrics) bool
	progress    func(m achievementMetrics) float64
}

const timeMasterGoalSeconds = 7200 // 2小时

var achievementRules = []achievementRule{
	{
		id:          "first-steps",
		title:       "First Steps",
		description: "Complete your first learning resource",
		rewardXP:    10,
		maxProgress: 1,
		earned:      func(m achievementMetrics) bool { return m.completed > 0 },
		progress: func(m achievementMetrics) float64 {
			if m.completed > 1 {
				return 1
			}
			return float64(m.completed)
		},
	},
	{
		id:          "perfect-score",
		title:       "Perfect Score",
		description: "Get 100% on any assessment",
		rewardXP:    50,
		maxProgress: 1,
		earned:      func(m achievementMetrics) bool { return m.perfectScores > 0 },
		progress:    func(m achievementMetrics) float64 { return float64(m.perfectScores) },
	},
	{
		id:          "time-master",
		title:       "Time Master",
		description: "Spend 2 hours learning",
		rewardXP:    25,
		maxProgress: 100,
		earned:      func(m achievementMetrics) bool { return m.totalTimeSpent >= timeMasterGoalSeconds },
		progress: func(m achievementMetrics) float64 {
			p := float64(m.totalTimeSpent) / timeMasterGoalSeconds * 100
			if p > 100 {
				return 100
			}
			return p
		},
	},
	{
		id:          "subject-master",
		title:       "Subject Master",
		description: "Complete 10 resources in any subject",
		rewardXP:    75,
		maxProgress: 10,
		earned:      func(m achievementMetrics) bool { return m.completed >= 10 },
		progress: func(m achievementMetrics) float64 {
			if m.completed > 10 {
				return 10
			}
			return float64(m.completed)
		},
	},
	{
		id:          "high-achiever",
		title:       "High Achiever",
		description: "Maintain 90%+ average score",
		rewardXP:    150,
		maxProgress: 90,
		earned:      func(m achievementMetrics) bool { return m.averageScore >= 90 },
		progress:    func(m achievementMetrics) float64 { return m.averageScore },
	},
}

func (s *AchievementService) GetAchievements(ctx context.Context, userID string) (*model.AchievementSet, error) {
	if userID == "" {
		return nil, util.NewValidationError("missing user ID")
	}

	var cached model.AchievementSet
	if s.Cache.Get(ctx, "achievements:"+userID, &cached) {
		return &cached, nil
	}

	records, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}

	set := evaluateAchievements(records)
	s.Cache.Set(ctx, "achievements:"+userID, set)
	return set, nil
}

func evaluateAchievements(records []model.Progress) *model.AchievementSet {
	m := deriveMetrics(records)

	achievements := make([]model.Achievement, len(achievementRules))
	earnedCount, totalXP := 0, 0
	for i, rule := range achievementRules {
		earned := rule.earned(m)
		if earned {
			earnedCount++
			totalXP += rule.rewardXP
		}
		achievements[i] = model.Achievement{
			ID:          rule.id,
			Title:       rule.title,
			Description: rule.description,
			Earned:      earned,
			Progress:    rule.progress(m),
			MaxProgress: rule.maxProgress,
			Reward:      fmt.Sprintf("%d XP", rule.rewardXP),
		}
	}

	completionRate := 0.0
	if m.totalResources > 0 {
		completionRate = float64(m.completed) / float64(m.totalResources) * 100
	}

	return &model.AchievementSet{
		Achievements:   achievements,
		EarnedCount:    earnedCount,
		TotalXP:        totalXP,
		CompletionRate: completionRate,
	}
}

func deriveMetrics(records []model.Progress) achievementMetrics {
	m := achievementMetrics{totalResources: len(records)}

	scoreSum := 0
	for _, r := range records {
		m.totalTimeSpent += r.TimeSpent
		if r.Status != model.StatusCompleted {
			continue
		}
		m.completed++
		if r.Score != nil {
			scoreSum += *r.Score
			if *r.Score == 100 {
				m.perfectScores++
			}
		}
	}

	if m.completed > 0 {
		m.averageScore = float64(scoreSum) / float64(m.completed)
	}
	return m
}
