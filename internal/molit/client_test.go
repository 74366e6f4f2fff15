package molit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentradar/server/internal/models"
)

const officetelXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>00</resultCode><resultMsg>NORMAL SERVICE.</resultMsg></header>
  <body>
    <items>
      <item>
        <offiNm>신촌스카이</offiNm>
        <deposit>5,000</deposit>
        <monthlyRent>50</monthlyRent>
        <excluUseAr>24.18</excluUseAr>
        <dealYear>2025</dealYear>
        <dealMonth>7</dealMonth>
        <dealDay>14</dealDay>
        <sggNm>서대문구</sggNm>
        <umdNm>미근동</umdNm>
        <floor>7</floor>
        <buildYear>2014</buildYear>
        <contractType>신규</contractType>
        <contractTerm>25.08~27.08</contractTerm>
      </item>
      <item>
        <offiNm></offiNm>
        <deposit>12,000</deposit>
        <monthlyRent>0</monthlyRent>
        <dealYear>2025</dealYear>
        <dealMonth>7</dealMonth>
        <dealDay>2</dealDay>
        <umdNm>합동</umdNm>
      </item>
    </items>
    <totalCount>2</totalCount>
  </body>
</response>`

const villaXML = `<?xml version="1.0" encoding="UTF-8"?>
<response>
  <header><resultCode>000</resultCode><resultMsg>OK</resultMsg></header>
  <body>
    <items>
      <item>
        <연립다세대>행복빌라</연립다세대>
        <보증금액>8,000</보증금액>
        <월세금액>40</월세금액>
        <전용면적>42.5</전용면적>
        <년>2025</년>
        <월>6</월>
        <일>3</일>
        <시군구>마포구</시군구>
        <법정동>합정동</법정동>
      </item>
    </items>
    <totalCount>1</totalCount>
  </body>
</response>`

func newTestClient(t *testing.T, handler http.HandlerFunc, cache MonthCache) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient(server.URL, "test-key", 5*time.Second, cache, logger), server
}

func TestFetchMonth_Officetel(t *testing.T) {
	var gotQuery map[string]string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"serviceKey": r.URL.Query().Get("serviceKey"),
			"LAWD_CD":    r.URL.Query().Get("LAWD_CD"),
			"DEAL_YMD":   r.URL.Query().Get("DEAL_YMD"),
			"numOfRows":  r.URL.Query().Get("numOfRows"),
			"path":       r.URL.Path,
		}
		w.Write([]byte(officetelXML))
	}, nil)

	result := client.FetchMonth(context.Background(), models.PropertyOfficetel, "11410", "202507")

	assert.False(t, result.Degraded)
	require.Len(t, result.Records, 2)

	assert.Equal(t, "test-key", gotQuery["serviceKey"])
	assert.Equal(t, "11410", gotQuery["LAWD_CD"])
	assert.Equal(t, "202507", gotQuery["DEAL_YMD"])
	assert.Equal(t, "100", gotQuery["numOfRows"])
	assert.Equal(t, "/OffiRent/getRTMSDataSvcOffiRent", gotQuery["path"])

	first := result.Records[0]
	assert.Equal(t, "신촌스카이", first.BuildingName)
	assert.Equal(t, "5,000", first.Deposit)
	assert.Equal(t, "50", first.MonthlyRent)
	assert.Equal(t, 24.18, first.FloorArea)
	assert.Equal(t, 2025, first.DealYear)
	assert.Equal(t, 7, first.DealMonth)
	assert.Equal(t, 14, first.DealDay)
	assert.Equal(t, "서대문구", first.District)
	assert.Equal(t, "미근동", first.Neighborhood)
	assert.Equal(t, "2025-07-14", first.DealDate())

	// Missing or empty fields get their defaults, unknown stay zero-valued.
	second := result.Records[1]
	assert.Equal(t, "N/A", second.BuildingName)
	assert.Equal(t, "", second.District)
	assert.Equal(t, 0.0, second.FloorArea)
	assert.Equal(t, "합동", second.Neighborhood)
}

func TestFetchMonth_VillaSchema(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/RHRent/getRTMSDataSvcRHRent", r.URL.Path)
		w.Write([]byte(villaXML))
	}, nil)

	result := client.FetchMonth(context.Background(), models.PropertyVilla, "11440", "202506")

	assert.False(t, result.Degraded)
	require.Len(t, result.Records, 1)

	record := result.Records[0]
	assert.Equal(t, "행복빌라", record.BuildingName)
	assert.Equal(t, "8,000", record.Deposit)
	assert.Equal(t, "40", record.MonthlyRent)
	assert.Equal(t, 42.5, record.FloorArea)
	assert.Equal(t, "마포구", record.District)
	assert.Equal(t, "합정동", record.Neighborhood)
}

func TestFetchMonth_FailuresAreDegraded(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "Server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "Malformed XML",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte("<response><body>"))
			},
		},
		{
			name: "Registry level error code",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`<response><header><resultCode>22</resultCode><resultMsg>LIMITED</resultMsg></header></response>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler, nil)
			result := client.FetchMonth(context.Background(), models.PropertyOfficetel, "11410", "202507")
			assert.True(t, result.Degraded)
			assert.Empty(t, result.Records)
		})
	}
}

func TestFetchMonth_NetworkFailureIsDegraded(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {}, nil)
	server.Close()

	result := client.FetchMonth(context.Background(), models.PropertyOfficetel, "11410", "202507")
	assert.True(t, result.Degraded)
	assert.Empty(t, result.Records)
}

func TestFetchMonth_EmptyMonthIsNotDegraded(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<response><header><resultCode>00</resultCode></header><body><items></items><totalCount>0</totalCount></body></response>`))
	}, nil)

	result := client.FetchMonth(context.Background(), models.PropertyOfficetel, "11410", "202507")
	assert.False(t, result.Degraded)
	assert.Empty(t, result.Records)
}

type fakeCache struct {
	records map[string][]models.RentTransaction
	puts    int
}

func (f *fakeCache) key(pt models.PropertyType, region, ymd string) string {
	return string(pt) + "|" + region + "|" + ymd
}

func (f *fakeCache) Get(pt models.PropertyType, region, ymd string) ([]models.RentTransaction, bool) {
	records, ok := f.records[f.key(pt, region, ymd)]
	return records, ok
}

func (f *fakeCache) Put(pt models.PropertyType, region, ymd string, records []models.RentTransaction) {
	if f.records == nil {
		f.records = make(map[string][]models.RentTransaction)
	}
	f.records[f.key(pt, region, ymd)] = records
	f.puts++
}

func TestFetchMonth_CacheHitSkipsNetwork(t *testing.T) {
	cache := &fakeCache{}
	cache.Put(models.PropertyOfficetel, "11410", "202507", []models.RentTransaction{{Neighborhood: "미근동"}})

	requests := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(officetelXML))
	}, cache)

	result := client.FetchMonth(context.Background(), models.PropertyOfficetel, "11410", "202507")

	assert.Equal(t, 0, requests)
	assert.False(t, result.Degraded)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "미근동", result.Records[0].Neighborhood)
}

func TestFetchMonth_CacheMissPopulatesCache(t *testing.T) {
	cache := &fakeCache{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(officetelXML))
	}, cache)

	result := client.FetchMonth(context.Background(), models.PropertyOfficetel, "11410", "202507")

	assert.False(t, result.Degraded)
	assert.Equal(t, 1, cache.puts)
	cached, ok := cache.Get(models.PropertyOfficetel, "11410", "202507")
	assert.True(t, ok)
	assert.Len(t, cached, 2)
}
