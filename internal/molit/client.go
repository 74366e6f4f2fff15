package molit

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"rentradar/server/internal/models"
)

const pageSize = "100"

// MonthCache is an optional read-through cache for one month of records.
// Implementations must treat their own failures as a miss.
type MonthCache interface {
	Get(propertyType models.PropertyType, regionCode, dealYmd string) ([]models.RentTransaction, bool)
	Put(propertyType models.PropertyType, regionCode, dealYmd string, records []models.RentTransaction)
}

// Client fetches rent transaction records from the public registry.
type Client struct {
	baseURL    string
	serviceKey string
	httpClient *http.Client
	logger     *logrus.Logger
	cache      MonthCache
	now        func() time.Time
}

// NewClient creates a registry client. cache may be nil, in which case every
// month goes to the network.
func NewClient(baseURL, serviceKey string, timeout time.Duration, cache MonthCache, logger *logrus.Logger) *Client {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		serviceKey: serviceKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		cache:      cache,
		now:        time.Now,
	}
}

type registryResponse struct {
	Header struct {
		ResultCode string `xml:"resultCode"`
		ResultMsg  string `xml:"resultMsg"`
	} `xml:"header"`
	Body struct {
		Items struct {
			Item []registryItem `xml:"item"`
		} `xml:"items"`
		TotalCount int `xml:"totalCount"`
	} `xml:"body"`
}

// registryItem keeps every child element of an <item> so that the two feeds'
// diverging tag sets can be resolved against the schema afterwards.
type registryItem struct {
	Fields []registryField `xml:",any"`
}

type registryField struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// FetchMonth issues one GET against the registry for a (region, month) pair
// and parses the XML body. Every failure mode — network error, non-2xx,
// malformed XML, registry-level error code — is absorbed into a degraded
// empty result so that one bad month never aborts a window aggregation.
func (c *Client) FetchMonth(ctx context.Context, propertyType models.PropertyType, regionCode, dealYmd string) models.FetchResult {
	if c.cache != nil {
		if records, ok := c.cache.Get(propertyType, regionCode, dealYmd); ok {
			return models.FetchResult{Records: records}
		}
	}

	records, err := c.fetchRemote(ctx, propertyType, regionCode, dealYmd)
	if err != nil {
		c.logger.WithError(err).WithFields(logrus.Fields{
			"property_type": propertyType,
			"region_code":   regionCode,
			"deal_ymd":      dealYmd,
		}).Warn("Registry fetch failed, continuing with empty month")
		return models.FetchResult{Degraded: true}
	}

	if c.cache != nil {
		c.cache.Put(propertyType, regionCode, dealYmd, records)
	}
	return models.FetchResult{Records: records}
}

func (c *Client) fetchRemote(ctx context.Context, propertyType models.PropertyType, regionCode, dealYmd string) ([]models.RentTransaction, error) {
	schema := SchemaFor(propertyType)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+schema.Path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	params := url.Values{
		"serviceKey": []string{c.serviceKey},
		"LAWD_CD":    []string{regionCode},
		"DEAL_YMD":   []string{dealYmd},
		"numOfRows":  []string{pageSize},
	}
	req.URL.RawQuery = params.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var parsed registryResponse
	if err := xml.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if code := parsed.Header.ResultCode; code != "" && code != "00" && code != "000" {
		return nil, fmt.Errorf("registry error %s: %s", code, parsed.Header.ResultMsg)
	}

	records := make([]models.RentTransaction, 0, len(parsed.Body.Items.Item))
	for _, item := range parsed.Body.Items.Item {
		records = append(records, item.toTransaction(schema))
	}
	return records, nil
}

func (it registryItem) toTransaction(schema Schema) models.RentTransaction {
	fields := make(map[string]string, len(it.Fields))
	for _, f := range it.Fields {
		fields[f.XMLName.Local] = strings.TrimSpace(f.Value)
	}

	return models.RentTransaction{
		BuildingName: pickLabel(fields, schema.BuildingTags),
		Deposit:      pick(fields, schema.DepositTags),
		MonthlyRent:  pick(fields, schema.MonthlyRentTags),
		FloorArea:    ParseAmount(pick(fields, schema.FloorAreaTags)),
		DealYear:     pickInt(fields, schema.YearTags),
		DealMonth:    pickInt(fields, schema.MonthTags),
		DealDay:      pickInt(fields, schema.DayTags),
		District:     pick(fields, schema.DistrictTags),
		Neighborhood: pick(fields, schema.NeighborhoodTags),
		Floor:        pick(fields, schema.FloorTags),
		BuildYear:    pick(fields, schema.BuildYearTags),
		ContractType: pick(fields, schema.ContractTypeTags),
		ContractTerm: pick(fields, schema.ContractTermTags),
	}
}

func pick(fields map[string]string, tags []string) string {
	for _, tag := range tags {
		if v, ok := fields[tag]; ok && v != "" {
			return v
		}
	}
	return ""
}

// pickLabel is pick with the registry's conventional placeholder for
// unnamed buildings.
func pickLabel(fields map[string]string, tags []string) string {
	if v := pick(fields, tags); v != "" {
		return v
	}
	return "N/A"
}

func pickInt(fields map[string]string, tags []string) int {
	return int(ParseAmount(pick(fields, tags)))
}
