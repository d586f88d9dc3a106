// Package charts renders dashboard statistics as images.
package charts

import (
	"bytes"
	"fmt"
	"strconv"

	"hisab/backend/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	incomeColor  = drawing.ColorFromHex("2e7d32")
	expenseColor = drawing.ColorFromHex("c62828")
	balanceColor = drawing.ColorFromHex("1565c0")
)

// MonthlyChart renders income, expense and running balance for one year of
// monthly buckets as a PNG image.
func MonthlyChart(stats *models.MonthlyStats) ([]byte, error) {
	if stats == nil || len(stats.Data) == 0 {
		return nil, fmt.Errorf("no monthly data to render")
	}

	n := len(stats.Data)
	xValues := make([]float64, n)
	incomeValues := make([]float64, n)
	expenseValues := make([]float64, n)
	balanceValues := make([]float64, n)
	ticks := make([]chart.Tick, n)

	runningBalance := 0.0
	low, high := 0.0, 0.0
	for i, b := range stats.Data {
		xValues[i] = float64(b.Month)
		incomeValues[i] = b.Income
		expenseValues[i] = b.Expense
		runningBalance += b.Income - b.Expense
		balanceValues[i] = runningBalance
		ticks[i] = chart.Tick{Value: float64(b.Month), Label: b.MonthName}

		for _, v := range []float64{b.Income, b.Expense, runningBalance} {
			if v < low {
				low = v
			}
			if v > high {
				high = v
			}
		}
	}
	// A flat year still needs a non-empty range.
	if high == low {
		high = low + 1
	}

	graph := chart.Chart{
		Title:  strconv.Itoa(stats.Year),
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding: chart.Box{
				Top:    50,
				Left:   50,
				Right:  50,
				Bottom: 50,
			},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: low, Max: high * 1.1},
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
			Style: chart.Style{
				FontSize:  12,
				FontColor: chart.ColorBlack,
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: incomeValues,
				Style: chart.Style{
					StrokeColor: incomeColor,
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Expense",
				XValues: xValues,
				YValues: expenseValues,
				Style: chart.Style{
					StrokeColor: expenseColor,
					StrokeWidth: 2,
				},
			},
			chart.ContinuousSeries{
				Name:    "Balance",
				XValues: xValues,
				YValues: balanceValues,
				Style: chart.Style{
					StrokeColor:     balanceColor,
					StrokeWidth:     2,
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
		},
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph, chart.Style{
			FontSize:  12,
			FontColor: chart.ColorBlack,
		}),
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("failed to render monthly chart: %w", err)
	}

	return buffer.Bytes(), nil
}
