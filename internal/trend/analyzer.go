// Package trend derives direction statistics from monthly market series.
package trend

import (
	"math"

	"rentradar/server/internal/models"
)

// Rate thresholds (percent, over the whole series) separating the three
// trend labels.
const (
	risingThreshold  = 5.0
	fallingThreshold = -5.0
)

// Analyze computes total and per-month percent change over a chronologically
// ascending series. Series shorter than two points carry no trend; callers
// substitute synthetic data in that case. A zero start value would make the
// change rate undefined, so it is treated the same way.
func Analyze(series []models.MonthlyMarketPoint) *models.TrendAnalysis {
	if len(series) < 2 {
		return nil
	}
	first := series[0]
	last := series[len(series)-1]
	if first.AvgRent == 0 {
		return nil
	}

	totalChange := (float64(last.AvgRent) - float64(first.AvgRent)) / float64(first.AvgRent) * 100
	monthlyChange := totalChange / float64(len(series))

	label := models.TrendFlat
	switch {
	case totalChange > risingThreshold:
		label = models.TrendRising
	case totalChange < fallingThreshold:
		label = models.TrendFalling
	}

	return &models.TrendAnalysis{
		StartPeriod:       first.Period,
		EndPeriod:         last.Period,
		StartValue:        first.AvgRent,
		EndValue:          last.AvgRent,
		TotalChangeRate:   round2(totalChange),
		MonthlyChangeRate: round2(monthlyChange),
		Trend:             label,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
