package service

import (
	"fmt"

	"edu-admin/internal/api/response/dashboard"
)

// 图表常量
const (
	PassPercentage = 72
	FailPercentage = 28
	PassColor      = "#28a745"
	FailColor      = "#dc3545"
)

var chartData = []dashboard.ChartSlice{
	{Status: "Pass", Percentage: PassPercentage, Fill: PassColor},
	{Status: "Fail", Percentage: FailPercentage, Fill: FailColor},
}

// PassFailService 及格率图表，数据固定不查询任何存储
type PassFailService struct{}

// NewPassFailService 创建图表服务
func NewPassFailService() *PassFailService {
	return &PassFailService{}
}

// PassFailPercentage 返回及格/不及格环形图
func (s *PassFailService) PassFailPercentage() dashboard.PassFailChart {
	data := make([]dashboard.ChartSlice, len(chartData))
	copy(data, chartData)

	pass, fail := find(data, "Pass"), find(data, "Fail")

	tooltip := make([]dashboard.TooltipEntry, 0, len(data))
	for _, slice := range data {
		tooltip = append(tooltip, dashboard.TooltipEntry{
			Label: slice.Status,
			Value: fmt.Sprintf("%d%%", slice.Percentage),
			Color: slice.Fill,
		})
	}

	return dashboard.PassFailChart{
		Title:       "Pass/Fail Percentage",
		Description: "January - June 2024",
		DataKey:     "percentage",
		NameKey:     "status",
		Data:        data,
		Config: map[string]dashboard.SeriesConfig{
			"pass": {Label: "Pass", Color: PassColor},
			"fail": {Label: "Fail", Color: FailColor},
		},
		CenterLabel: dashboard.CenterLabel{
			Primary:   fmt.Sprintf("%d%% Pass", pass.Percentage),
			Secondary: fmt.Sprintf("%d%% Fail", fail.Percentage),
		},
		Tooltip: tooltip,
		Geometry: dashboard.RingGeometry{
			InnerRadius: 60,
			OuterRadius: 80,
			StrokeWidth: 5,
		},
		Footer: dashboard.ChartFooter{
			Trend:   "Pass rate trending upward",
			Caption: "Showing pass/fail percentages for the last 6 months",
		},
	}
}

func find(data []dashboard.ChartSlice, status string) dashboard.ChartSlice {
	for _, slice := range data {
		if slice.Status == status {
			return slice
		}
	}
	return dashboard.ChartSlice{Status: status}
}
