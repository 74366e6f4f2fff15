package models

import "fmt"

// PropertyType selects which upstream registry feed a request targets.
type PropertyType string

const (
	PropertyOfficetel PropertyType = "officetel"
	PropertyVilla     PropertyType = "villa"
)

// Valid reports whether the property type is one of the supported feeds.
func (p PropertyType) Valid() bool {
	return p == PropertyOfficetel || p == PropertyVilla
}

// Category is the lease structure of a classified transaction.
type Category string

const (
	CategoryJeonse      Category = "JEONSE"
	CategoryMonthlyRent Category = "MONTHLY_RENT"
)

// RentTransaction is one parsed record from the upstream registry.
// Amount fields keep the wire form (possibly comma-grouped strings); numeric
// meaning only exists after molit.ParseAmount. Records are request-scoped and
// immutable once parsed.
type RentTransaction struct {
	BuildingName string  `json:"building_name"`
	Deposit      string  `json:"deposit"`
	MonthlyRent  string  `json:"monthly_rent"`
	FloorArea    float64 `json:"floor_area"`
	DealYear     int     `json:"deal_year"`
	DealMonth    int     `json:"deal_month"`
	DealDay      int     `json:"deal_day"`
	District     string  `json:"district"`
	Neighborhood string  `json:"neighborhood"`
	Floor        string  `json:"floor"`
	BuildYear    string  `json:"build_year"`
	ContractType string  `json:"contract_type"`
	ContractTerm string  `json:"contract_term"`
}

// DealDate returns the zero-padded YYYY-MM-DD transaction date. The format is
// lexicographically comparable, which the aggregator relies on.
func (t RentTransaction) DealDate() string {
	return fmt.Sprintf("%04d-%02d-%02d", t.DealYear, t.DealMonth, t.DealDay)
}

// FetchResult carries the records of one upstream call plus a degradation
// marker. A degraded result means the call failed (network, non-2xx, bad XML)
// and was absorbed; it is distinct from a legitimately empty month.
type FetchResult struct {
	Records  []RentTransaction
	Degraded bool
}

// NeighborhoodStat aggregates classified transactions sharing a neighborhood.
type NeighborhoodStat struct {
	Neighborhood     string  `json:"neighborhood"`
	District         string  `json:"district"`
	AvgDeposit       float64 `json:"avg_deposit"`
	AvgMonthlyRent   float64 `json:"avg_monthly_rent"`
	MedianDeposit    float64 `json:"median_deposit"`
	MedianRent       float64 `json:"median_monthly_rent"`
	TransactionCount int     `json:"transaction_count"`
	LatestDate       string  `json:"latest_transaction_date"`
}

// MonthlyMarketPoint is one point in a rent time series.
type MonthlyMarketPoint struct {
	Period           string `json:"period"` // YYYY-MM
	AvgRent          int64  `json:"avg_rent"`
	TransactionCount int    `json:"transaction_count"`
}

// Trend labels for a time series.
const (
	TrendRising  = "RISING"
	TrendFalling = "FALLING"
	TrendFlat    = "FLAT"
)

// TrendAnalysis summarizes the movement of a monthly series of length >= 2.
type TrendAnalysis struct {
	StartPeriod       string  `json:"start_period"`
	EndPeriod         string  `json:"end_period"`
	StartValue        int64   `json:"start_value"`
	EndValue          int64   `json:"end_value"`
	TotalChangeRate   float64 `json:"total_change_rate"`
	MonthlyChangeRate float64 `json:"monthly_change_rate"`
	Trend             string  `json:"trend"`
}

// TimeSeriesResult is the time-series operation response. IsMockData is true
// whenever the series was synthesized rather than aggregated from live data.
type TimeSeriesResult struct {
	TimeSeries []MonthlyMarketPoint `json:"timeSeries"`
	Analysis   *TrendAnalysis       `json:"analysis"`
	Period     string               `json:"period"`
	IsMockData bool                 `json:"isMockData"`
}
