package molit

import "rentradar/server/internal/models"

// Schema describes one property-type feed of the transaction registry: which
// endpoint to call, how its XML item tags map onto canonical record fields,
// and the synthetic-data baseline used when the feed yields nothing.
//
// The officetel and villa feeds expose the same logical record under
// different (and occasionally renamed) tag sets, so every canonical field
// lists its candidate tags in priority order. Tags missing from an item
// default to "N/A" for labels and zero for numbers; unknown tags are ignored.
type Schema struct {
	// Endpoint path under the registry base URL.
	Path string

	// Candidate item tags per canonical field, first match wins.
	BuildingTags     []string
	DepositTags      []string
	MonthlyRentTags  []string
	FloorAreaTags    []string
	YearTags         []string
	MonthTags        []string
	DayTags          []string
	DistrictTags     []string
	NeighborhoodTags []string
	FloorTags        []string
	BuildYearTags    []string
	ContractTypeTags []string
	ContractTermTags []string

	// Synthetic series shape (currency minor units).
	MockBaseRent    float64
	MockMonthlyStep float64
}

var schemas = map[models.PropertyType]Schema{
	models.PropertyOfficetel: {
		Path:             "/OffiRent/getRTMSDataSvcOffiRent",
		BuildingTags:     []string{"offiNm", "단지"},
		DepositTags:      []string{"deposit", "보증금"},
		MonthlyRentTags:  []string{"monthlyRent", "월세"},
		FloorAreaTags:    []string{"excluUseAr", "전용면적"},
		YearTags:         []string{"dealYear", "년"},
		MonthTags:        []string{"dealMonth", "월"},
		DayTags:          []string{"dealDay", "일"},
		DistrictTags:     []string{"sggNm", "시군구"},
		NeighborhoodTags: []string{"umdNm", "법정동"},
		FloorTags:        []string{"floor", "층"},
		BuildYearTags:    []string{"buildYear", "건축년도"},
		ContractTypeTags: []string{"contractType", "계약구분"},
		ContractTermTags: []string{"contractTerm", "계약기간"},
		MockBaseRent:     750000,
		MockMonthlyStep:  5000,
	},
	models.PropertyVilla: {
		Path:             "/RHRent/getRTMSDataSvcRHRent",
		BuildingTags:     []string{"mhouseNm", "연립다세대"},
		DepositTags:      []string{"deposit", "보증금액"},
		MonthlyRentTags:  []string{"monthlyRent", "월세금액"},
		FloorAreaTags:    []string{"excluUseAr", "전용면적"},
		YearTags:         []string{"dealYear", "년"},
		MonthTags:        []string{"dealMonth", "월"},
		DayTags:          []string{"dealDay", "일"},
		DistrictTags:     []string{"sggNm", "시군구"},
		NeighborhoodTags: []string{"umdNm", "법정동"},
		FloorTags:        []string{"floor", "층"},
		BuildYearTags:    []string{"buildYear", "건축년도"},
		ContractTypeTags: []string{"contractType", "계약구분"},
		ContractTermTags: []string{"contractTerm", "계약기간"},
		MockBaseRent:     580000,
		MockMonthlyStep:  4000,
	},
}

// SchemaFor returns the feed schema for a property type. Unknown types fall
// back to the officetel schema; callers validate the type at the API boundary.
func SchemaFor(propertyType models.PropertyType) Schema {
	if s, ok := schemas[propertyType]; ok {
		return s
	}
	return schemas[models.PropertyOfficetel]
}
