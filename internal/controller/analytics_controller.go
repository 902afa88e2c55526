package controller

import (
	"edunova_backend/internal/service"
	"edunova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService   *service.AnalyticsService
	AchievementService *service.AchievementService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService, achievementService *service.AchievementService) *AnalyticsController {
	return &AnalyticsController{
		AnalyticsService:   analyticsService,
		AchievementService: achievementService,
	}
}

// @Summary 获取学习统计
// @Description 资源总数、完成数、进行中数、总时长、平均分
// @Tags 学习分析
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/progress/stats/{userId} [get]
func (c *AnalyticsController) GetLearningStats(ctx *gin.Context) {
	stats, err := c.AnalyticsService.GetLearningStats(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// @Summary 获取多维度进度分析
// @Description 按资源类型、按学科、按周活跃度的分组聚合
// @Tags 学习分析
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/progress/analytics/{userId} [get]
func (c *AnalyticsController) GetProgressAnalytics(ctx *gin.Context) {
	analytics, err := c.AnalyticsService.GetProgressAnalytics(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}

// @Summary 获取成就
// @Description 五项固定成就规则的达成情况与总XP
// @Tags 学习分析
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/progress/achievements/{userId} [get]
func (c *AnalyticsController) GetAchievements(ctx *gin.Context) {
	achievements, err := c.AchievementService.GetAchievements(ctx.Request.Context(), ctx.Param("userId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, achievements)
}
