package controller

import (
	"edunova_backend/internal/service"
	"edunova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
	GradingService  *service.GradingService
}

func NewProgressController(progressService *service.ProgressService, gradingService *service.GradingService) *ProgressController {
	return &ProgressController{
		ProgressService: progressService,
		GradingService:  gradingService,
	}
}

// @Summary 获取用户全部学习进度
// @Description 按更新时间倒序返回用户所有资源的进度，并带课程信息
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Success 200 {object} util.Response
// @Router /api/progress/user/{userId} [get]
func (c *ProgressController) GetUserProgress(ctx *gin.Context) {
	records, err := c.ProgressService.GetUserProgress(ctx.Param("userId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 获取单个资源的进度
// @Description 没有进度记录时返回 not_started 占位
// @Tags 学习进度
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param resourceId path string true "资源ID"
// @Success 200 {object} util.Response
// @Router /api/progress/resource/{userId}/{resourceId} [get]
func (c *ProgressController) GetResourceProgress(ctx *gin.Context) {
	progress, err := c.ProgressService.GetResourceProgress(ctx.Param("userId"), ctx.Param("resourceId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 开始学习资源
// @Description 创建进度记录，已有记录时不回退进度
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.StartLearningRequest true "开始学习参数"
// @Success 200 {object} util.Response
// @Router /api/progress/start [post]
func (c *ProgressController) StartLearning(ctx *gin.Context) {
	var req service.StartLearningRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.StartLearning(ctx.Request.Context(), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 更新学习进度
// @Description 进度夹取到[0,100]，timeSpent 为增量秒数
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param resourceId path string true "资源ID"
// @Param body body service.UpdateProgressRequest true "进度更新"
// @Success 200 {object} util.Response
// @Router /api/progress/{userId}/{resourceId} [patch]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	var req service.UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.UpdateProgress(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("resourceId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 标记资源完成
// @Description 强制置为完成态，可附带分数与作答
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param resourceId path string true "资源ID"
// @Param body body service.CompleteResourceRequest false "完成参数"
// @Success 200 {object} util.Response
// @Router /api/progress/{userId}/{resourceId}/complete [post]
func (c *ProgressController) CompleteResource(ctx *gin.Context) {
	var req service.CompleteResourceRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	progress, err := c.ProgressService.CompleteResource(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("resourceId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 提交测评答案
// @Description 判分并写入进度，重复提交覆盖上一次成绩
// @Tags 学习进度
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId path string true "用户ID"
// @Param resourceId path string true "测评ID"
// @Param body body service.SubmitAssessmentRequest true "作答列表"
// @Success 200 {object} util.Response
// @Router /api/progress/{userId}/{resourceId}/assessment [post]
func (c *ProgressController) SubmitAssessment(ctx *gin.Context) {
	var req service.SubmitAssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.GradingService.SubmitAssessment(ctx.Request.Context(), ctx.Param("userId"), ctx.Param("resourceId"), req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}
