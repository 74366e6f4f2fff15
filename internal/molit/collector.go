package molit

import (
	"context"
	"time"

	"rentradar/server/internal/models"
)

// DefaultWindowMonths is the trailing window used by the live transaction
// feed. MaxWindowMonths bounds caller-supplied time-series windows so one
// inbound request cannot fan out into an unbounded burst of registry calls.
const (
	DefaultWindowMonths = 3
	MaxWindowMonths     = 6
)

// ClampWindow bounds a requested month count to [1, MaxWindowMonths].
func ClampWindow(months int) int {
	if months < 1 {
		return 1
	}
	if months > MaxWindowMonths {
		return MaxWindowMonths
	}
	return months
}

// CollectWindow fetches a trailing window of calendar months for one region,
// newest month first, and concatenates whatever each month returned. The
// degraded flag is set when any month's fetch was absorbed. Collection is
// all-or-nothing on context cancellation: partial results are discarded.
func (c *Client) CollectWindow(ctx context.Context, propertyType models.PropertyType, regionCode string, monthsBack int) (models.FetchResult, error) {
	var out models.FetchResult
	for i := 0; i < monthsBack; i++ {
		if err := ctx.Err(); err != nil {
			return models.FetchResult{}, err
		}
		dealYmd := c.targetMonth(i)
		result := c.FetchMonth(ctx, propertyType, regionCode, dealYmd)
		out.Records = append(out.Records, result.Records...)
		out.Degraded = out.Degraded || result.Degraded
	}
	if err := ctx.Err(); err != nil {
		return models.FetchResult{}, err
	}
	return out, nil
}

// MonthlyWindow lists the YYYYMM labels of the trailing window, oldest first,
// for callers that aggregate per month rather than over the whole window.
func (c *Client) MonthlyWindow(monthsBack int) []string {
	months := make([]string, 0, monthsBack)
	for i := monthsBack - 1; i >= 0; i-- {
		months = append(months, c.targetMonth(i))
	}
	return months
}

func (c *Client) targetMonth(monthsAgo int) string {
	t := c.now()
	// Normalize to the first of the month so AddDate cannot skip short months.
	t = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return t.AddDate(0, -monthsAgo, 0).Format("200601")
}
