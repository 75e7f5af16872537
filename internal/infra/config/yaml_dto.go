package config

// YAMLConfig mirrors accessai.yaml. Pointers and strings distinguish unset keys from zero values.
type YAMLConfig struct {
	AccessAI YAMLAccessAI `yaml:"accessai"`
}

type YAMLAccessAI struct {
	API        YAMLAPI        `yaml:"api"`
	Simulation YAMLSimulation `yaml:"simulation"`
	Snapshot   YAMLSnapshot   `yaml:"snapshot"`
	Paths      YAMLPaths      `yaml:"paths"`
	Masking    YAMLMasking    `yaml:"masking"`
}

type YAMLAPI struct {
	URL                string `yaml:"url"`
	Timeout            string `yaml:"timeout"`
	SuggestionsPath    string `yaml:"suggestions_path"`
	InsecureSkipVerify *bool  `yaml:"insecure_skip_verify"`
}

type YAMLSimulation struct {
	TransitionDelay string `yaml:"transition_delay"`
	SettleDelay     string `yaml:"settle_delay"`
}

type YAMLSnapshot struct {
	Headless          *bool  `yaml:"headless"`
	ViewportWidth     int    `yaml:"viewport_width"`
	ViewportHeight    int    `yaml:"viewport_height"`
	NavigationTimeout string `yaml:"navigation_timeout"`
	FullPage          *bool  `yaml:"full_page"`
}

type YAMLPaths struct {
	ReportsDir   string `yaml:"reports_dir"`
	SnapshotsDir string `yaml:"snapshots_dir"`
}

type YAMLMasking struct {
	Enabled *bool `yaml:"enabled"`
}
