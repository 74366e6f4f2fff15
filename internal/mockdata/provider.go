// Package mockdata synthesizes per-month market statistics for when the live
// registry path fails or yields nothing. Every result it produces is flagged
// IsMockData so consumers can always tell synthetic from live output.
package mockdata

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"rentradar/server/internal/models"
	"rentradar/server/internal/molit"
	"rentradar/server/internal/trend"
)

// Provider builds deterministic-shaped synthetic series. The jitter source is
// seeded from (property type, window, current month), so within a calendar
// month repeated calls return identical data.
type Provider struct {
	now func() time.Time
}

func NewProvider() *Provider {
	return &Provider{now: time.Now}
}

// Series produces a monotonically-trending synthetic rent series over the
// trailing months, labeled with the real calendar periods, plus a trend
// analysis computed exactly as for live data.
func (p *Provider) Series(propertyType models.PropertyType, months int) models.TimeSeriesResult {
	months = molit.ClampWindow(months)
	schema := molit.SchemaFor(propertyType)

	anchor := time.Date(p.now().Year(), p.now().Month(), 1, 0, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(seed(propertyType, months, anchor)))

	jitterAmp := schema.MockBaseRent * 0.01
	series := make([]models.MonthlyMarketPoint, 0, months)
	for i := months - 1; i >= 0; i-- {
		step := float64(months-1-i) * schema.MockMonthlyStep
		jitter := (rng.Float64()*2 - 1) * jitterAmp
		series = append(series, models.MonthlyMarketPoint{
			Period:           anchor.AddDate(0, -i, 0).Format("2006-01"),
			AvgRent:          int64(math.Round(schema.MockBaseRent + step + jitter)),
			TransactionCount: 8 + rng.Intn(13),
		})
	}

	return models.TimeSeriesResult{
		TimeSeries: series,
		Analysis:   trend.Analyze(series),
		Period:     fmt.Sprintf("%d개월", months),
		IsMockData: true,
	}
}

func seed(propertyType models.PropertyType, months int, anchor time.Time) int64 {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%d|%s", propertyType, months, anchor.Format("200601"))
	return int64(h.Sum64())
}
