package config

// Region is one administrative district the server aggregates data for. The
// code is the 5-digit LAWD_CD the registry is queried with; the bounding box
// supports best-effort coordinate-to-region lookup.
type Region struct {
	Name   string    `json:"name"`
	Code   string    `json:"code"`
	Center []float64 `json:"center"` // lat, lng
	// Bounds is [minLat, minLng, maxLat, maxLng].
	Bounds []float64 `json:"bounds"`
}

// SupportedRegions is the static district table. It is loaded once at compile
// time and never mutated; lookups go through the functions below.
var SupportedRegions = []Region{
	{
		Name:   "종로구",
		Code:   "11110",
		Center: []float64{37.5735, 126.9790},
		Bounds: []float64{37.5580, 126.9470, 37.6300, 127.0180},
	},
	{
		Name:   "마포구",
		Code:   "11440",
		Center: []float64{37.5663, 126.9014},
		Bounds: []float64{37.5330, 126.8550, 37.5800, 126.9530},
	},
	{
		Name:   "서대문구",
		Code:   "11410",
		Center: []float64{37.5791, 126.9368},
		Bounds: []float64{37.5550, 126.9000, 37.6050, 126.9700},
	},
	{
		Name:   "강남구",
		Code:   "11680",
		Center: []float64{37.5172, 127.0473},
		Bounds: []float64{37.4600, 127.0110, 37.5400, 127.1200},
	},
	{
		Name:   "송파구",
		Code:   "11710",
		Center: []float64{37.5145, 127.1060},
		Bounds: []float64{37.4720, 127.0710, 37.5520, 127.1550},
	},
	{
		Name:   "영등포구",
		Code:   "11560",
		Center: []float64{37.5264, 126.8963},
		Bounds: []float64{37.4930, 126.8710, 37.5490, 126.9470},
	},
}

// RegionNames returns the configured district names.
func RegionNames() []string {
	names := make([]string, len(SupportedRegions))
	for i, r := range SupportedRegions {
		names[i] = r.Name
	}
	return names
}

// RegionByCode returns the region with the given LAWD code, or nil.
func RegionByCode(code string) *Region {
	for _, r := range SupportedRegions {
		if r.Code == code {
			region := r
			return &region
		}
	}
	return nil
}

// RegionByName returns the region with the given district name, or nil.
func RegionByName(name string) *Region {
	for _, r := range SupportedRegions {
		if r.Name == name {
			region := r
			return &region
		}
	}
	return nil
}
