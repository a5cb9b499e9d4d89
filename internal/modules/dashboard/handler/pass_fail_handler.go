package handler

import (
	"edu-admin/internal/api/response/dashboard"
	"edu-admin/internal/pkg/response"

	"github.com/labstack/echo/v4"
)

// ChartProvider 图表数据来源
type ChartProvider interface {
	PassFailPercentage() dashboard.PassFailChart
}

// MetricsHandler 学生指标图表接口
type MetricsHandler struct {
	charts     ChartProvider
	respWriter response.Writer
}

// NewMetricsHandler 创建图表 handler
func NewMetricsHandler(charts ChartProvider, respWriter response.Writer) *MetricsHandler {
	return &MetricsHandler{
		charts:     charts,
		respWriter: respWriter,
	}
}

// GetPassFailPercentage 获取及格率环形图
// @Summary 及格率环形图
// @Description 返回固定的及格/不及格百分比及渲染所需的中心文字、提示与配色
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} response.ResponseResult[dashboard.PassFailChart] "获取成功"
// @Router /admin/metrics/students/pass-fail [get]
func (h *MetricsHandler) GetPassFailPercentage(c echo.Context) error {
	return response.EchoOK(c, h.respWriter, h.charts.PassFailPercentage())
}
