package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentradar/server/internal/models"
)

func point(period string, avg int64) models.MonthlyMarketPoint {
	return models.MonthlyMarketPoint{Period: period, AvgRent: avg, TransactionCount: 10}
}

func TestAnalyze_TooShort(t *testing.T) {
	assert.Nil(t, Analyze(nil))
	assert.Nil(t, Analyze([]models.MonthlyMarketPoint{point("2025-07", 750000)}))
}

func TestAnalyze_ZeroStartValue(t *testing.T) {
	series := []models.MonthlyMarketPoint{point("2025-06", 0), point("2025-07", 750000)}
	assert.Nil(t, Analyze(series))
}

func TestAnalyze_Rates(t *testing.T) {
	series := []models.MonthlyMarketPoint{
		point("2025-04", 700000),
		point("2025-05", 720000),
		point("2025-06", 740000),
		point("2025-07", 770000),
	}

	analysis := Analyze(series)
	require.NotNil(t, analysis)

	assert.Equal(t, "2025-04", analysis.StartPeriod)
	assert.Equal(t, "2025-07", analysis.EndPeriod)
	assert.Equal(t, int64(700000), analysis.StartValue)
	assert.Equal(t, int64(770000), analysis.EndValue)
	// (770000-700000)/700000*100 = 10, /4 = 2.5
	assert.Equal(t, 10.0, analysis.TotalChangeRate)
	assert.Equal(t, 2.5, analysis.MonthlyChangeRate)
}

func TestAnalyze_TrendLabels(t *testing.T) {
	tests := []struct {
		name     string
		start    int64
		end      int64
		expected string
	}{
		{
			name:     "Above five percent is rising",
			start:    100000,
			end:      110000,
			expected: models.TrendRising,
		},
		{
			name:     "Below minus five percent is falling",
			start:    100000,
			end:      90000,
			expected: models.TrendFalling,
		},
		{
			name:     "Exactly five percent is flat",
			start:    100000,
			end:      105000,
			expected: models.TrendFlat,
		},
		{
			name:     "Exactly minus five percent is flat",
			start:    100000,
			end:      95000,
			expected: models.TrendFlat,
		},
		{
			name:     "No movement is flat",
			start:    100000,
			end:      100000,
			expected: models.TrendFlat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := []models.MonthlyMarketPoint{point("2025-06", tt.start), point("2025-07", tt.end)}
			analysis := Analyze(series)
			require.NotNil(t, analysis)
			assert.Equal(t, tt.expected, analysis.Trend)
		})
	}
}

func TestAnalyze_RoundsToTwoDecimals(t *testing.T) {
	series := []models.MonthlyMarketPoint{
		point("2025-05", 300000),
		point("2025-06", 300000),
		point("2025-07", 310000),
	}

	analysis := Analyze(series)
	require.NotNil(t, analysis)

	// 10000/300000*100 = 3.333..., /3 = 1.111...
	assert.Equal(t, 3.33, analysis.TotalChangeRate)
	assert.Equal(t, 1.11, analysis.MonthlyChangeRate)
}
