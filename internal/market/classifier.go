package market

import (
	"strings"

	"rentradar/server/internal/models"
	"rentradar/server/internal/molit"
)

// Classify partitions records into jeonse and monthly-rent lists.
//
// Records without a neighborhood label are dropped first: they cannot be
// grouped and carry no locality signal. A record is jeonse when it has a
// positive deposit and no periodic payment; monthly-rent when it has any
// positive periodic payment. A record with neither (zero deposit, zero rent)
// is excluded from both lists — it carries no usable pricing signal.
func Classify(records []models.RentTransaction) (jeonse, monthlyRent []models.RentTransaction) {
	for _, r := range records {
		if strings.TrimSpace(r.Neighborhood) == "" {
			continue
		}
		rent := molit.ParseAmount(r.MonthlyRent)
		deposit := molit.ParseAmount(r.Deposit)
		switch {
		case rent > 0:
			monthlyRent = append(monthlyRent, r)
		case deposit > 0:
			jeonse = append(jeonse, r)
		}
	}
	return jeonse, monthlyRent
}
