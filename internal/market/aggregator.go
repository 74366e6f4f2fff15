package market

import (
	"math"
	"sort"

	"rentradar/server/internal/models"
	"rentradar/server/internal/molit"
)

// AggregateByNeighborhood groups classified records by neighborhood and
// computes the per-group statistics for one category.
//
// Deposit statistics: jeonse groups use only positive deposits; monthly-rent
// groups use every deposit, zero included (a zero-deposit wolse contract is a
// real price point). Rent statistics always use only positive payments and
// are forced to zero for jeonse groups. Monetary outputs are rounded
// half-up to two decimals. The group's district comes from its first-seen
// member: neighborhoods do not straddle districts.
func AggregateByNeighborhood(records []models.RentTransaction, category models.Category) []models.NeighborhoodStat {
	groups := make(map[string][]models.RentTransaction)
	for _, r := range records {
		groups[r.Neighborhood] = append(groups[r.Neighborhood], r)
	}

	// Stable output order keeps repeated calls byte-identical.
	order := make([]string, 0, len(groups))
	for neighborhood := range groups {
		order = append(order, neighborhood)
	}
	sort.Strings(order)

	stats := make([]models.NeighborhoodStat, 0, len(order))
	for _, neighborhood := range order {
		group := groups[neighborhood]

		var deposits, rents []float64
		latestDate := ""
		for _, r := range group {
			deposit := molit.ParseAmount(r.Deposit)
			if category == models.CategoryMonthlyRent || deposit > 0 {
				deposits = append(deposits, deposit)
			}
			if rent := molit.ParseAmount(r.MonthlyRent); rent > 0 {
				rents = append(rents, rent)
			}
			if date := r.DealDate(); date > latestDate {
				latestDate = date
			}
		}

		stat := models.NeighborhoodStat{
			Neighborhood:     neighborhood,
			District:         group[0].District,
			AvgDeposit:       round2(mean(deposits)),
			MedianDeposit:    round2(median(deposits)),
			TransactionCount: len(group),
			LatestDate:       latestDate,
		}
		if category == models.CategoryMonthlyRent {
			stat.AvgMonthlyRent = round2(mean(rents))
			stat.MedianRent = round2(median(rents))
		}
		stats = append(stats, stat)
	}
	return stats
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// median sorts a copy ascending; even-length lists average the two middle
// elements, empty lists yield 0.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// round2 rounds half-up to two decimal places.
func round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
