package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassFailPercentage(t *testing.T) {
	chart := NewPassFailService().PassFailPercentage()

	assert.Equal(t, "Pass/Fail Percentage", chart.Title)
	assert.Equal(t, "January - June 2024", chart.Description)
	require.Len(t, chart.Data, 2)
	assert.Equal(t, "Pass", chart.Data[0].Status)
	assert.Equal(t, 72, chart.Data[0].Percentage)
	assert.Equal(t, "#28a745", chart.Data[0].Fill)
	assert.Equal(t, "Fail", chart.Data[1].Status)
	assert.Equal(t, 28, chart.Data[1].Percentage)
	assert.Equal(t, "#dc3545", chart.Data[1].Fill)
	assert.Equal(t, 100, chart.Data[0].Percentage+chart.Data[1].Percentage)

	assert.Equal(t, "72% Pass", chart.CenterLabel.Primary)
	assert.Equal(t, "28% Fail", chart.CenterLabel.Secondary)
	assert.Equal(t, 60, chart.Geometry.InnerRadius)
	assert.Equal(t, 80, chart.Geometry.OuterRadius)
	assert.Equal(t, 5, chart.Geometry.StrokeWidth)
	assert.Equal(t, "Pass rate trending upward", chart.Footer.Trend)
	assert.Equal(t, "Showing pass/fail percentages for the last 6 months", chart.Footer.Caption)

	require.Len(t, chart.Tooltip, 2)
	assert.Equal(t, "72%", chart.Tooltip[0].Value)
	assert.Equal(t, "#dc3545", chart.Tooltip[1].Color)
	assert.Equal(t, "#28a745", chart.Config["pass"].Color)
}

func TestPassFailPercentage_ReturnsCopy(t *testing.T) {
	s := NewPassFailService()
	first := s.PassFailPercentage()
	first.Data[0].Percentage = 0

	second := s.PassFailPercentage()
	assert.Equal(t, 72, second.Data[0].Percentage)
}
