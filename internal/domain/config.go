package domain

import "time"

// Config represents the AccessAI configuration loaded from accessai.yaml.
type Config struct {
	API        APIConfig
	Simulation SimulationConfig
	Snapshot   SnapshotConfig
	Paths      PathsConfig
	Masking    MaskingConfig
}

type APIConfig struct {
	URL             string
	Timeout         time.Duration
	SuggestionsPath string
	// InsecureSkipVerify accepts self-signed certificates on the analysis endpoint.
	InsecureSkipVerify bool
}

type SimulationConfig struct {
	TransitionDelay time.Duration
	SettleDelay     time.Duration
}

type SnapshotConfig struct {
	Headless          bool
	ViewportWidth     int
	ViewportHeight    int
	NavigationTimeout time.Duration
	FullPage          bool
}

type PathsConfig struct {
	ReportsDir   string
	SnapshotsDir string
}

type MaskingConfig struct {
	Enabled bool
}

// Default delays between selecting a mode and its effects becoming fully visible.
const (
	DefaultTransitionDelay = 500 * time.Millisecond
	DefaultSettleDelay     = 1000 * time.Millisecond
)

// DefaultAPIURL is the analysis endpoint used when none is configured.
const DefaultAPIURL = "https://3.86.6.230:5000/api"

// DefaultConfig provides sane defaults if accessai.yaml is partially missing.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			URL:             DefaultAPIURL,
			Timeout:         30 * time.Second,
			SuggestionsPath: "$.suggestions",
		},
		Simulation: SimulationConfig{
			TransitionDelay: DefaultTransitionDelay,
			SettleDelay:     DefaultSettleDelay,
		},
		Snapshot: SnapshotConfig{
			Headless:          true,
			ViewportWidth:     1280,
			ViewportHeight:    800,
			NavigationTimeout: 30 * time.Second,
		},
		Paths: PathsConfig{
			ReportsDir:   "reports",
			SnapshotsDir: "snapshots",
		},
		Masking: MaskingConfig{Enabled: true},
	}
}

// WorkspaceSpec describes where a workspace should be created.
type WorkspaceSpec struct {
	Root   string
	APIURL string // optional; written into accessai.yaml
}
