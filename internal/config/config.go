// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Config represents the configuration for javacheck
type Config struct {
	// General settings
	Version     string `yaml:"version" json:"version"`
	ProjectName string `yaml:"project_name,omitempty" json:"project_name,omitempty"`

	// Analysis settings
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`

	// Output settings
	Output OutputConfig `yaml:"output" json:"output"`

	// Rule-specific configurations
	Rules RulesConfig `yaml:"rules" json:"rules"`

	// File patterns
	Files FilesConfig `yaml:"files" json:"files"`
}

type AnalysisConfig struct {
	// Quality score thresholds
	ScoreThresholds ScoreThresholds `yaml:"score_thresholds" json:"score_thresholds"`

	// Enable/disable entire categories
	EnabledCategories []string `yaml:"enabled_categories" json:"enabled_categories"`

	// Files analyzed in parallel
	MaxWorkers int `yaml:"max_workers" json:"max_workers"`

	// Collect per-file metrics (ncss, node count, ...)
	CollectMetrics bool `yaml:"collect_metrics" json:"collect_metrics"`
}

type ScoreThresholds struct {
	Excellent int `yaml:"excellent" json:"excellent"` // >= 90
	Good      int `yaml:"good" json:"good"`           // >= 75
	Fair      int `yaml:"fair" json:"fair"`           // >= 50
	Poor      int `yaml:"poor" json:"poor"`           // < 50
}

type OutputConfig struct {
	// Default output format
	Format string `yaml:"format" json:"format"`

	// Colorized output
	Colors bool `yaml:"colors" json:"colors"`

	// Verbosity level
	Verbose bool `yaml:"verbose" json:"verbose"`

	// Show suggestions
	ShowSuggestions bool `yaml:"show_suggestions" json:"show_suggestions"`

	// Output file path (optional)
	OutputFile string `yaml:"output_file,omitempty" json:"output_file,omitempty"`

	// Prometheus text-format metrics file (optional)
	MetricsFile string `yaml:"metrics_file,omitempty" json:"metrics_file,omitempty"`
}

type RulesConfig struct {
	Complexity  ComplexityRules  `yaml:"complexity" json:"complexity"`
	Performance PerformanceRules `yaml:"performance" json:"performance"`
	Design      DesignRules      `yaml:"design" json:"design"`
}

type ComplexityRules struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// Cyclomatic complexity thresholds
	CyclomaticComplexity ThresholdConfig `yaml:"cyclomatic_complexity" json:"cyclomatic_complexity"`

	// Method length thresholds, in source lines
	MethodLength ThresholdConfig `yaml:"method_length" json:"method_length"`
}

type PerformanceRules struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	NestedLoops  NestedLoopConfig   `yaml:"nested_loops" json:"nested_loops"`
	StringConcat StringConcatConfig `yaml:"string_concat" json:"string_concat"`
}

type DesignRules struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	ClassicGetter     ToggleConfig      `yaml:"classic_getter" json:"classic_getter"`
	ClassicSetter     ToggleConfig      `yaml:"classic_setter" json:"classic_setter"`
	HybridConstructor ToggleConfig      `yaml:"hybrid_constructor" json:"hybrid_constructor"`
	MethodChain       MethodChainConfig `yaml:"method_chain" json:"method_chain"`
}

// Individual rule configurations
type ToggleConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`
}

type ThresholdConfig struct {
	Enabled           bool `yaml:"enabled" json:"enabled"`
	MediumThreshold   int  `yaml:"medium_threshold" json:"medium_threshold"`
	HighThreshold     int  `yaml:"high_threshold" json:"high_threshold"`
	CriticalThreshold int  `yaml:"critical_threshold" json:"critical_threshold"`
}

type NestedLoopConfig struct {
	Enabled  bool `yaml:"enabled" json:"enabled"`
	MaxDepth int  `yaml:"max_depth" json:"max_depth"`
}

type StringConcatConfig struct {
	Enabled       bool `yaml:"enabled" json:"enabled"`
	DetectInLoops bool `yaml:"detect_in_loops" json:"detect_in_loops"`
}

type MethodChainConfig struct {
	Enabled  bool `yaml:"enabled" json:"enabled"`
	MaxChain int  `yaml:"max_chain" json:"max_chain"`
}

type FilesConfig struct {
	// Include patterns (doublestar globs, slash separated)
	Include []string `yaml:"include" json:"include"`

	// Exclude patterns
	Exclude []string `yaml:"exclude" json:"exclude"`

	// Whether to analyze test sources (src/test/**, *Test.java)
	IncludeTests bool `yaml:"include_tests" json:"include_tests"`

	// Max file size (in KB)
	MaxFileSize int `yaml:"max_file_size" json:"max_file_size"`
}

func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Analysis: AnalysisConfig{
			ScoreThresholds: ScoreThresholds{
				Excellent: 90,
				Good:      75,
				Fair:      50,
				Poor:      0,
			},
			EnabledCategories: []string{"complexity", "performance", "design"},
			MaxWorkers:        4,
			CollectMetrics:    true,
		},
		Output: OutputConfig{
			Format:          "console",
			Colors:          true,
			Verbose:         false,
			ShowSuggestions: false,
		},
		Rules: RulesConfig{
			Complexity: ComplexityRules{
				Enabled: true,
				CyclomaticComplexity: ThresholdConfig{
					Enabled:           true,
					MediumThreshold:   10,
					HighThreshold:     15,
					CriticalThreshold: 25,
				},
				MethodLength: ThresholdConfig{
					Enabled:           true,
					MediumThreshold:   30,
					HighThreshold:     60,
					CriticalThreshold: 120,
				},
			},
			Performance: PerformanceRules{
				Enabled: true,
				NestedLoops: NestedLoopConfig{
					Enabled:  true,
					MaxDepth: 1,
				},
				StringConcat: StringConcatConfig{
					Enabled:       true,
					DetectInLoops: true,
				},
			},
			Design: DesignRules{
				Enabled:           true,
				ClassicGetter:     ToggleConfig{Enabled: true},
				ClassicSetter:     ToggleConfig{Enabled: true},
				HybridConstructor: ToggleConfig{Enabled: true},
				MethodChain: MethodChainConfig{
					Enabled:  true,
					MaxChain: 3,
				},
			},
		},
		Files: FilesConfig{
			Include:      []string{"**/*.java"},
			Exclude:      []string{"**/target/**", "**/build/**", "**/.git/**", "**/node_modules/**"},
			IncludeTests: false,
			MaxFileSize:  1024, // 1MB
		},
	}
}

// LoadConfig loads configuration from file or returns default
func LoadConfig(configPath string) (*Config, error) {
	// If no config path provided, look for default config files
	if configPath == "" {
		configPath = findConfigFile()
	}

	// If still no config found, return default
	if configPath == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig() // Start with defaults

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// findConfigFile looks for config files in common locations
func findConfigFile() string {
	possiblePaths := []string{
		".javacheck.yml",
		".javacheck.yaml",
		"javacheck.yml",
		"javacheck.yaml",
		".config/javacheck.yml",
		".config/javacheck.yaml",
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	st := c.Analysis.ScoreThresholds
	if st.Excellent < st.Good || st.Good < st.Fair || st.Fair < st.Poor {
		return fmt.Errorf("score thresholds must be in descending order")
	}

	validFormats := []string{"console", "json"}
	if !slices.Contains(validFormats, c.Output.Format) {
		return fmt.Errorf("invalid output format: %s (valid: %v)", c.Output.Format, validFormats)
	}

	if c.Analysis.MaxWorkers < 1 {
		return fmt.Errorf("max_workers must be at least 1")
	}

	cc := c.Rules.Complexity.CyclomaticComplexity
	if cc.Enabled && (cc.MediumThreshold >= cc.HighThreshold || cc.HighThreshold >= cc.CriticalThreshold) {
		return fmt.Errorf("cyclomatic complexity thresholds must be in ascending order")
	}

	ml := c.Rules.Complexity.MethodLength
	if ml.Enabled && (ml.MediumThreshold >= ml.HighThreshold || ml.HighThreshold >= ml.CriticalThreshold) {
		return fmt.Errorf("method length thresholds must be in ascending order")
	}

	if nl := c.Rules.Performance.NestedLoops; nl.Enabled && nl.MaxDepth < 1 {
		return fmt.Errorf("nested_loops.max_depth must be at least 1")
	}

	if mc := c.Rules.Design.MethodChain; mc.Enabled && mc.MaxChain < 1 {
		return fmt.Errorf("method_chain.max_chain must be at least 1")
	}

	for _, pattern := range append(slices.Clone(c.Files.Include), c.Files.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("invalid file pattern: %q", pattern)
		}
	}

	return nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateConfig creates a sample configuration file
func GenerateConfig(configPath string) error {
	config := DefaultConfig()
	return config.SaveConfig(configPath)
}

func (c *Config) categoryEnabled(category string) bool {
	return len(c.Analysis.EnabledCategories) == 0 || slices.Contains(c.Analysis.EnabledCategories, category)
}

// IsRuleEnabled checks if a specific rule is enabled
func (c *Config) IsRuleEnabled(ruleType string) bool {
	complexity := c.categoryEnabled("complexity") && c.Rules.Complexity.Enabled
	performance := c.categoryEnabled("performance") && c.Rules.Performance.Enabled
	design := c.categoryEnabled("design") && c.Rules.Design.Enabled

	switch ruleType {
	case "cyclomatic_complexity":
		return complexity && c.Rules.Complexity.CyclomaticComplexity.Enabled
	case "method_length":
		return complexity && c.Rules.Complexity.MethodLength.Enabled
	case "nested_loops":
		return performance && c.Rules.Performance.NestedLoops.Enabled
	case "string_concatenation":
		return performance && c.Rules.Performance.StringConcat.Enabled
	case "classic_getter":
		return design && c.Rules.Design.ClassicGetter.Enabled
	case "classic_setter":
		return design && c.Rules.Design.ClassicSetter.Enabled
	case "hybrid_constructor":
		return design && c.Rules.Design.HybridConstructor.Enabled
	case "method_chain":
		return design && c.Rules.Design.MethodChain.Enabled
	default:
		return false
	}
}

// GetThreshold returns the threshold for a given rule and severity
func (c *Config) GetThreshold(ruleType, severity string) int {
	var t ThresholdConfig
	switch ruleType {
	case "cyclomatic_complexity":
		t = c.Rules.Complexity.CyclomaticComplexity
	case "method_length":
		t = c.Rules.Complexity.MethodLength
	default:
		return 0
	}
	switch severity {
	case "medium":
		return t.MediumThreshold
	case "high":
		return t.HighThreshold
	case "critical":
		return t.CriticalThreshold
	}
	return 0
}

// ShouldAnalyze reports whether path is selected by the include/exclude
// patterns. Patterns match against the slash-separated path, so
// "**/target/**" also matches a relative "target/Foo.java".
func (f FilesConfig) ShouldAnalyze(path string) bool {
	p := filepath.ToSlash(filepath.Clean(path))

	for _, pattern := range f.Exclude {
		if matchAny(pattern, p) {
			return false
		}
	}
	if !f.IncludeTests && IsTestFile(p) {
		return false
	}
	if len(f.Include) == 0 {
		return strings.HasSuffix(p, ".java")
	}
	for _, pattern := range f.Include {
		if matchAny(pattern, p) {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether a directory is excluded, so walkers can prune it.
func (f FilesConfig) ExcludesDir(dir string) bool {
	p := filepath.ToSlash(filepath.Clean(dir))
	for _, pattern := range f.Exclude {
		if matchAny(pattern, p) || matchAny(pattern, p+"/x") {
			return true
		}
	}
	return false
}

func matchAny(pattern, path string) bool {
	if ok, _ := doublestar.Match(pattern, path); ok {
		return true
	}
	// Let "**/x/**" style patterns also hit paths relative to the root.
	if strings.HasPrefix(pattern, "**/") {
		return false
	}
	ok, _ := doublestar.Match("**/"+pattern, path)
	return ok
}

// IsTestFile reports whether path looks like Java test source.
func IsTestFile(path string) bool {
	p := filepath.ToSlash(path)
	base := filepath.Base(p)
	return strings.Contains("/"+p, "/src/test/") ||
		strings.HasSuffix(base, "Test.java") ||
		strings.HasSuffix(base, "Tests.java")
}
