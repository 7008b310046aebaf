package analytics

// Stats summarizes a world.
type Stats struct {
	Network   NetworkStats   `json:"network"`
	Buildings BuildingStats  `json:"buildings"`
	Trees     int            `json:"trees"`
	Markings  map[string]int `json:"markings"`
	Lights    []LightGroup   `json:"light_groups"`
	Bounds    *Bounds        `json:"bounds,omitempty"`
}

// NetworkStats describes the road skeleton and its surface.
type NetworkStats struct {
	Points         int     `json:"points"`
	Segments       int     `json:"segments"`
	OneWaySegments int     `json:"one_way_segments"`
	RoadLength     float64 `json:"road_length"`
	BorderLength   float64 `json:"border_length"`
	Intersections  int     `json:"intersections"`
	DeadEnds       int     `json:"dead_ends"`
	Components     int     `json:"components"`
}

// BuildingStats counts buildings by origin.
type BuildingStats struct {
	Total         int     `json:"total"`
	Generated     int     `json:"generated"`
	Placed        int     `json:"placed"`
	FootprintArea float64 `json:"footprint_area"`
}

// LightGroup is one signalized intersection.
type LightGroup struct {
	Intersection [2]float64 `json:"intersection"`
	Lights       int        `json:"lights"`
}

// Bounds is the extent of the road skeleton.
type Bounds struct {
	Min [2]float64 `json:"min"`
	Max [2]float64 `json:"max"`
}
