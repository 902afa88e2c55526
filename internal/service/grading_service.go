package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"edunova_backend/internal/model"
	"edunova_backend/internal/repository"
	"edunova_backend/internal/util"
	"edunova_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type GradingService struct {
	AssessmentRepo *repository.AssessmentRepository
	ProgressRepo   *repository.ProgressRepository
	Cache          *ViewCache
}

func NewGradingService(
	assessmentRepo *repository.AssessmentRepository,
	progressRepo *repository.ProgressRepository,
	cache *ViewCache,
) *GradingService {
	return &GradingService{
		AssessmentRepo: assessmentRepo,
		ProgressRepo:   progressRepo,
		Cache:          cache,
	}
}

// SubmittedAnswer questionId 是题目数组的下标（从0计），answer 为自由文本
type SubmittedAnswer struct {
	QuestionID string `json:"questionId"`
	Answer     string `json:"answer"`
}

type SubmitAssessmentRequest struct {
	Answers []SubmittedAnswer `json:"answers"`
}

type AssessmentResult struct {
	Progress       *model.Progress `json:"progress"`
	Score          int             `json:"score"`
	TotalQuestions int             `json:"totalQuestions"`
	CorrectAnswers int             `json:"correctAnswers"`
}

// answerMatches 判分规则：去首尾空白、折小写后精确相等，不给部分分
func answerMatches(expected, actual string) bool {
	return strings.ToLower(strings.TrimSpace(expected)) == strings.ToLower(strings.TrimSpace(actual))
}

// SubmitAssessment 对照答案判分并落进度。重复提交直接覆盖上一次的成绩，
// 不保留历史（与产品约定一致）。判分失败不会留下半成品进度
func (s *GradingService) SubmitAssessment(ctx context.Context, userID, assessmentID string, req SubmitAssessmentRequest) (*AssessmentResult, error) {
	if userID == "" || assessmentID == "" {
		return nil, util.NewValidationError("missing user ID or assessment ID")
	}
	if req.Answers == nil {
		return nil, util.NewValidationError("answers array is required")
	}

	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAssessmentNotFound
		}
		return nil, err
	}

	if len(assessment.Questions) == 0 {
		return nil, util.NewValidationError("assessment has no questions")
	}
	if len(assessment.Solutions) == 0 {
		return nil, util.NewValidationError("assessment has no solutions")
	}

	graded, correct := gradeAnswers(req.Answers, assessment.Solutions)

	// 部分提交按全部题目数计分，漏答等于答错
	totalQuestions := len(assessment.Questions)
	score := int(math.Round(float64(correct) / float64(totalQuestions) * 100))

	progress, err := s.writeResult(userID, assessmentID, assessment.LessonID, score, graded)
	if err != nil {
		return nil, err
	}

	monitoring.AssessmentsGraded.Inc()
	s.Cache.InvalidateUser(ctx, userID)

	return &AssessmentResult{
		Progress:       progress,
		Score:          score,
		TotalQuestions: totalQuestions,
		CorrectAnswers: correct,
	}, nil
}

// gradeAnswers 逐题判分。questionId 解析为下标 i，标准答案按 questionNumber == i+1
// 匹配；找不到对应答案的题记为答错
func gradeAnswers(answers []SubmittedAnswer, solutions []model.AssessmentSolution) ([]model.GradedAnswer, int) {
	graded := make([]model.GradedAnswer, len(answers))
	correct := 0

	for i, a := range answers {
		result := model.GradedAnswer{
			QuestionID: a.QuestionID,
			Answer:     a.Answer,
		}

		if idx, err := strconv.Atoi(a.QuestionID); err == nil {
			if solution := findSolution(solutions, idx+1); solution != nil {
				result.IsCorrect = answerMatches(solution.Answer, a.Answer)
			}
		}

		if result.IsCorrect {
			correct++
		}
		graded[i] = result
	}

	return graded, correct
}

func findSolution(solutions []model.AssessmentSolution, questionNumber int) *model.AssessmentSolution {
	for i := range solutions {
		if solutions[i].QuestionNumber == questionNumber {
			return &solutions[i]
		}
	}
	return nil
}

func (s *GradingService) writeResult(userID, assessmentID string, lessonID *string, score int, graded []model.GradedAnswer) (*model.Progress, error) {
	now := time.Now()
	candidate := &model.Progress{
		UserID:       userID,
		ResourceID:   assessmentID,
		ResourceType: model.ResourceAssessment,
		LessonID:     lessonID,
		Status:       model.StatusCompleted,
		Progress:     100,
		CompletedAt:  &now,
		Score:        &score,
		Answers:      graded,
	}

	progress, created, err := s.ProgressRepo.CreateIfAbsent(candidate)
	if err != nil {
		return nil, err
	}
	if created {
		return progress, nil
	}

	// 已有记录：无条件覆盖成绩相关字段
	progress.Status = model.StatusCompleted
	progress.Progress = 100
	progress.CompletedAt = &now
	progress.Score = &score
	progress.Answers = graded
	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}
	return progress, nil
}
