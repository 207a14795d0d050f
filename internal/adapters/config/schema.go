package config

// Wikifile represents the structure of the wikipath.yaml configuration file.
// Pointer fields distinguish an omitted key from an explicit zero value.
type Wikifile struct {
	ProgressInterval *int     `yaml:"progress_interval"`
	Cache            CacheDTO `yaml:"cache"`
	Log              LogDTO   `yaml:"log"`
}

// CacheDTO represents the cache section of the configuration.
type CacheDTO struct {
	Dir               string `yaml:"dir"`
	Compression       string `yaml:"compression"`
	FallbackOnCorrupt *bool  `yaml:"fallback_on_corrupt"`
}

// LogDTO represents the log section of the configuration.
type LogDTO struct {
	JSON bool `yaml:"json"`
}
