package market

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"

	"rentradar/server/internal/mockdata"
	"rentradar/server/internal/models"
	"rentradar/server/internal/molit"
	"rentradar/server/internal/trend"
)

// Fetcher is the slice of the registry client the service depends on.
type Fetcher interface {
	FetchMonth(ctx context.Context, propertyType models.PropertyType, regionCode, dealYmd string) models.FetchResult
	CollectWindow(ctx context.Context, propertyType models.PropertyType, regionCode string, monthsBack int) (models.FetchResult, error)
	MonthlyWindow(monthsBack int) []string
}

// Service wires fetching, classification, aggregation and trend analysis
// into the four market-data operations. It holds no per-request state; the
// only fallible dependency is the registry fetcher, and its failures surface
// as reduced data or, on the time-series path, as labeled synthetic data.
type Service struct {
	fetcher Fetcher
	mock    *mockdata.Provider
	logger  *logrus.Logger
}

func NewService(fetcher Fetcher, mock *mockdata.Provider, logger *logrus.Logger) *Service {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if mock == nil {
		mock = mockdata.NewProvider()
	}
	return &Service{
		fetcher: fetcher,
		mock:    mock,
		logger:  logger,
	}
}

// GetTransactions returns the raw window of records grouped by building name,
// unclassified, for the transaction-browsing view.
func (s *Service) GetTransactions(ctx context.Context, propertyType models.PropertyType, regionCode string) (map[string][]models.RentTransaction, error) {
	result, err := s.collect(ctx, propertyType, regionCode)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.RentTransaction)
	for _, r := range result.Records {
		grouped[r.BuildingName] = append(grouped[r.BuildingName], r)
	}
	return grouped, nil
}

// GetJeonseMarket aggregates deposit-only transactions per neighborhood.
func (s *Service) GetJeonseMarket(ctx context.Context, propertyType models.PropertyType, regionCode string) ([]models.NeighborhoodStat, error) {
	result, err := s.collect(ctx, propertyType, regionCode)
	if err != nil {
		return nil, err
	}
	jeonse, _ := Classify(result.Records)
	return AggregateByNeighborhood(jeonse, models.CategoryJeonse), nil
}

// GetMonthlyRentMarket aggregates deposit-plus-rent transactions per
// neighborhood.
func (s *Service) GetMonthlyRentMarket(ctx context.Context, propertyType models.PropertyType, regionCode string) ([]models.NeighborhoodStat, error) {
	result, err := s.collect(ctx, propertyType, regionCode)
	if err != nil {
		return nil, err
	}
	_, monthlyRent := Classify(result.Records)
	return AggregateByNeighborhood(monthlyRent, models.CategoryMonthlyRent), nil
}

// GetTimeSeriesAnalysis builds a per-month average rent series over the
// requested (capped) window and analyzes its trend. When the live series
// comes back empty — or the computation fails outright — the response is
// substituted with synthetic data and flagged IsMockData.
func (s *Service) GetTimeSeriesAnalysis(ctx context.Context, propertyType models.PropertyType, regionCode string, monthsRequested int) (result models.TimeSeriesResult, err error) {
	months := molit.ClampWindow(monthsRequested)

	// The time-series endpoint answers with labeled mock data on any
	// failure rather than surfacing it; context cancellation is the one
	// exception since the caller is already gone.
	defer func() {
		if r := recover(); r != nil {
			s.logger.WithField("panic", r).Error("Time series computation failed, substituting mock data")
			result = s.mock.Series(propertyType, months)
			err = nil
		}
	}()

	series := make([]models.MonthlyMarketPoint, 0, months)
	for _, dealYmd := range s.fetcher.MonthlyWindow(months) {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.TimeSeriesResult{}, ctxErr
		}
		fetched := s.fetcher.FetchMonth(ctx, propertyType, regionCode, dealYmd)
		if point, ok := monthlyPoint(dealYmd, fetched.Records); ok {
			series = append(series, point)
		}
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return models.TimeSeriesResult{}, ctxErr
	}

	if len(series) == 0 {
		s.logger.WithFields(logrus.Fields{
			"property_type": propertyType,
			"region_code":   regionCode,
		}).Warn("No live time series data, substituting mock data")
		return s.mock.Series(propertyType, months), nil
	}

	return models.TimeSeriesResult{
		TimeSeries: series,
		Analysis:   trend.Analyze(series),
		Period:     fmt.Sprintf("%d개월", months),
		IsMockData: false,
	}, nil
}

func (s *Service) collect(ctx context.Context, propertyType models.PropertyType, regionCode string) (models.FetchResult, error) {
	result, err := s.fetcher.CollectWindow(ctx, propertyType, regionCode, molit.DefaultWindowMonths)
	if err != nil {
		return models.FetchResult{}, err
	}
	if result.Degraded {
		s.logger.WithFields(logrus.Fields{
			"property_type": propertyType,
			"region_code":   regionCode,
			"records":       len(result.Records),
		}).Warn("Window collection degraded, continuing with partial data")
	}
	return result, nil
}

// monthlyPoint averages the positive periodic payments of one month's
// records. Months with no priced rent records contribute no point.
func monthlyPoint(dealYmd string, records []models.RentTransaction) (models.MonthlyMarketPoint, bool) {
	var sum float64
	var count int
	for _, r := range records {
		if rent := molit.ParseAmount(r.MonthlyRent); rent > 0 {
			sum += rent
			count++
		}
	}
	if count == 0 {
		return models.MonthlyMarketPoint{}, false
	}
	return models.MonthlyMarketPoint{
		Period:           dealYmd[:4] + "-" + dealYmd[4:],
		AvgRent:          int64(math.Round(sum / float64(count))),
		TransactionCount: count,
	}, true
}
