// Package charts renders review activity as an interactive HTML bar chart.
package charts

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// ErrLengthMismatch is returned when labels and values differ in length
var ErrLengthMismatch = errors.New("labels and values differ in length")

// Sink accepts an ordered series of labels and values and renders it
type Sink interface {
	RenderBar(w io.Writer, labels []string, values []int) error
}

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string // Chart title
	Subtitle   string // Chart subtitle
	SeriesName string // Name shown in the legend and tooltip
	YAxisLabel string // Y-axis label
	XAxisLabel string // X-axis label
	Width      string // Chart width (e.g., "900px")
	Height     string // Chart height (e.g., "500px")
	Theme      string // Chart theme
	Color      string // Bar color
}

// DefaultChartConfig returns the configuration of the review activity chart.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:      "Review Activity",
		SeriesName: "Cards Reviewed",
		YAxisLabel: "Number of Reviews",
		XAxisLabel: "Date",
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		Color:      "#4a6fa5",
	}
}

// EChartsSink renders bar charts with go-echarts
type EChartsSink struct {
	Config ChartConfig
}

// NewEChartsSink creates a sink with the default configuration
func NewEChartsSink() *EChartsSink {
	return &EChartsSink{Config: DefaultChartConfig()}
}

// RenderBar writes an HTML page with one bar per label
func (s *EChartsSink) RenderBar(w io.Writer, labels []string, values []int) error {
	if len(labels) != len(values) {
		return fmt.Errorf("%w: %d labels, %d values", ErrLengthMismatch, len(labels), len(values))
	}

	config := s.Config
	bar := charts.NewBar()

	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: config.Title,
			Width:     config.Width,
			Height:    config.Height,
			Theme:     config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: config.XAxisLabel,
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: config.YAxisLabel,
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Color,
		}),
	)

	// Prepare Y-axis data
	yData := make([]opts.BarData, len(values))
	for i, v := range values {
		yData[i] = opts.BarData{Value: v}
	}

	bar.SetXAxis(labels).
		AddSeries(config.SeriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}
