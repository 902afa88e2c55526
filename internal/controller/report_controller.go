package controller

import (
	"edunova_backend/internal/service"
	"edunova_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// @Summary 获取教师班级报表
// @Description 汇总同年级全部学生的成绩分布、学科表现、前五名与个人报告
// @Tags 教师报表
// @Produce json
// @Security ApiKeyAuth
// @Param teacherId path string true "教师ID"
// @Success 200 {object} util.Response
// @Router /api/progress/teacher/{teacherId} [get]
func (c *ReportController) GetTeacherReport(ctx *gin.Context) {
	report, err := c.ReportService.GetTeacherReport(ctx.Request.Context(), ctx.Param("teacherId"))
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, report)
}
