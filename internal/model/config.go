package model

import "time"

// Config is the complete storyintake configuration
type Config struct {
	Urgency     UrgencyConfig     `yaml:"urgency" mapstructure:"urgency"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Eval        EvalConfig        `yaml:"eval" mapstructure:"eval"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// UrgencyConfig selects and tunes the urgency strategy
type UrgencyConfig struct {
	Strategy      string                     `yaml:"strategy" mapstructure:"strategy"`             // contextual-v2 or keyword-v1
	MaxAdjustment float64                    `yaml:"max_adjustment" mapstructure:"max_adjustment"` // Single cap on summed adjustments
	Thresholds    map[string]ThresholdConfig `yaml:"thresholds,omitempty" mapstructure:"thresholds"`
}

// ThresholdConfig is one category's score cutoffs (score >= cutoff reaches the level)
type ThresholdConfig struct {
	Medium   float64 `yaml:"medium" mapstructure:"medium"`
	High     float64 `yaml:"high" mapstructure:"high"`
	Critical float64 `yaml:"critical" mapstructure:"critical"`
}

// ConcurrencyConfig controls batch/eval parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// CacheConfig controls memoization of serialized batch results
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// EvalConfig holds regression floors for baseline comparison
type EvalConfig struct {
	PassRateFloor float64            `yaml:"pass_rate_floor" mapstructure:"pass_rate_floor"`
	FieldFloors   map[string]float64 `yaml:"field_floors" mapstructure:"field_floors"`
}

// LoggingConfig controls zerolog output
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // console or json
}

// OutputConfig controls result rendering
type OutputConfig struct {
	Pretty  bool `yaml:"pretty" mapstructure:"pretty"`
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		Urgency: UrgencyConfig{
			Strategy:      "contextual-v2",
			MaxAdjustment: 0.15,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		Cache: CacheConfig{
			Enabled:   false,
			Dir:       ".storyintake-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Eval: EvalConfig{
			PassRateFloor: 0.85,
			FieldFloors: map[string]float64{
				string(FieldName):       0.85,
				string(FieldCategory):   0.90,
				string(FieldUrgency):    0.75,
				string(FieldGoalAmount): 0.90,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Pretty: false,
		},
	}
}
