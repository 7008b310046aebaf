package config

// Config is the top-level project configuration for a road world.
type Config struct {
	ConfigVersion string    `yaml:"config_version" json:"config_version"`
	World         WorldDef  `yaml:"world" json:"world"`
	Lights        LightsDef `yaml:"lights" json:"lights"`
	Render        RenderDef `yaml:"render" json:"render"`
	Server        ServerDef `yaml:"server" json:"server"`
	Store         StoreDef  `yaml:"store" json:"store"`
}

// WorldDef holds the generation parameters.
type WorldDef struct {
	RoadWidth         float64 `yaml:"road_width" json:"road_width"`
	RoadRoundness     int     `yaml:"road_roundness" json:"road_roundness"`
	BuildingWidth     float64 `yaml:"building_width" json:"building_width"`
	BuildingMinLength float64 `yaml:"building_min_length" json:"building_min_length"`
	Spacing           float64 `yaml:"spacing" json:"spacing"`
	TreeSize          float64 `yaml:"tree_size" json:"tree_size"`
	// Seed drives tree placement. Equal seeds give equal forests.
	Seed uint64 `yaml:"seed" json:"seed"`
}

// LightsDef controls the traffic light cycle. Durations are in ticks.
type LightsDef struct {
	Green         int `yaml:"green" json:"green"`
	Yellow        int `yaml:"yellow" json:"yellow"`
	FramesPerTick int `yaml:"frames_per_tick" json:"frames_per_tick"`
}

// RenderDef configures one-shot renders and the frame endpoint defaults.
type RenderDef struct {
	Radius float64 `yaml:"radius" json:"radius"`
	Width  int     `yaml:"width" json:"width"`
	Height int     `yaml:"height" json:"height"`
	Zoom   float64 `yaml:"zoom" json:"zoom"`
}

// ServerDef configures the HTTP server.
type ServerDef struct {
	Port int `yaml:"port" json:"port"`
	// FrameMillis is the cadence of the server-side draw loop that feeds
	// the light stream.
	FrameMillis int `yaml:"frame_millis" json:"frame_millis"`
}

// StoreDef selects and configures the snapshot backend.
type StoreDef struct {
	Backend    string `yaml:"backend" json:"backend"` // "file" or "mongo"
	Path       string `yaml:"path" json:"path"`
	MongoURI   string `yaml:"mongo_uri" json:"mongo_uri"`
	Database   string `yaml:"database" json:"database"`
	Collection string `yaml:"collection" json:"collection"`
	Name       string `yaml:"name" json:"name"`
}

const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)
