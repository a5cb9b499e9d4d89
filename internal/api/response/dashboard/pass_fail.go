package dashboard

// ChartSlice 环形图中的一个分类
type ChartSlice struct {
	Status     string `json:"status" example:"Pass"`
	Percentage int    `json:"percentage" example:"72"`
	Fill       string `json:"fill" example:"#28a745"`
} // @name ChartSlice

// SeriesConfig 图例配置
type SeriesConfig struct {
	Label string `json:"label" example:"Pass"`
	Color string `json:"color" example:"#28a745"`
} // @name SeriesConfig

// CenterLabel 环形图中心文字，两行
type CenterLabel struct {
	Primary   string `json:"primary" example:"72% Pass"`
	Secondary string `json:"secondary" example:"28% Fail"`
} // @name CenterLabel

// TooltipEntry 悬停提示
type TooltipEntry struct {
	Label string `json:"label" example:"Pass"`
	Value string `json:"value" example:"72%"`
	Color string `json:"color" example:"#28a745"`
} // @name TooltipEntry

// RingGeometry 环形尺寸
type RingGeometry struct {
	InnerRadius int `json:"inner_radius" example:"60"`
	OuterRadius int `json:"outer_radius" example:"80"`
	StrokeWidth int `json:"stroke_width" example:"5"`
} // @name RingGeometry

// ChartFooter 卡片底部说明
type ChartFooter struct {
	Trend   string `json:"trend" example:"Pass rate trending upward"`
	Caption string `json:"caption" example:"Showing pass/fail percentages for the last 6 months"`
} // @name ChartFooter

// PassFailChart 及格率环形图描述
// @Description 静态数据，前端直接渲染
type PassFailChart struct {
	Title       string                  `json:"title" example:"Pass/Fail Percentage"`
	Description string                  `json:"description" example:"January - June 2024"`
	DataKey     string                  `json:"data_key" example:"percentage"`
	NameKey     string                  `json:"name_key" example:"status"`
	Data        []ChartSlice            `json:"data"`
	Config      map[string]SeriesConfig `json:"config"`
	CenterLabel CenterLabel             `json:"center_label"`
	Tooltip     []TooltipEntry          `json:"tooltip"`
	Geometry    RingGeometry            `json:"geometry"`
	Footer      ChartFooter             `json:"footer"`
} // @name PassFailChart
