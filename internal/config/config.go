package config

import (
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"gobayes/adapters/gaf"
	"gobayes/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Annotation AnnotationConfig `yaml:"annotation"`
	Ontology   OntologyConfig   `yaml:"ontology"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	LogLevel   string           `yaml:"log_level"`
}

// AnnotationConfig describes the annotation table
type AnnotationConfig struct {
	File       string `yaml:"file"`
	GeneColumn int    `yaml:"gene_column"`
	TermColumn int    `yaml:"term_column"`
	Discard    string `yaml:"discard"` // "column:value,..."
}

// OntologyConfig describes the ontology graph
type OntologyConfig struct {
	File          string   `yaml:"file"`
	Format        string   `yaml:"format"` // obo or pairs
	Separator     string   `yaml:"separator"`
	Relationships []string `yaml:"relationships"`
	Trace         bool     `yaml:"trace"`
}

// AnalysisConfig holds enrichment settings
type AnalysisConfig struct {
	Mode    string  `yaml:"mode"`
	Workers int     `yaml:"workers"`
	Alpha   float64 `yaml:"alpha"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Annotation: AnnotationConfig{
			GeneColumn: 2,
			TermColumn: 4,
			Discard:    "6:IEA",
		},
		Ontology: OntologyConfig{
			Format:        "obo",
			Separator:     ",",
			Relationships: []string{"is_a", "part_of"},
			Trace:         true,
		},
		Analysis: AnalysisConfig{
			Mode:    "standard",
			Workers: 4,
			Alpha:   0.05,
		},
		LogLevel: "INFO",
	}
}

// Load builds the configuration from defaults, then the YAML file named by
// GOBAYES_CONFIG if set, then environment variables, and validates it.
func Load() (*Config, error) {
	config := Default()

	if path := os.Getenv("GOBAYES_CONFIG"); path != "" {
		if err := config.mergeFile(path); err != nil {
			return nil, errors.Wrapf(err, "failed to load configuration file %s", path)
		}
	}

	config.mergeEnv()

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	return nil
}

func (c *Config) mergeEnv() {
	c.Annotation.File = getEnvOrDefault("GOBAYES_ANNOTATION_FILE", c.Annotation.File)
	c.Annotation.GeneColumn = getEnvIntOrDefault("GOBAYES_GENE_COLUMN", c.Annotation.GeneColumn)
	c.Annotation.TermColumn = getEnvIntOrDefault("GOBAYES_TERM_COLUMN", c.Annotation.TermColumn)
	if v, ok := os.LookupEnv("GOBAYES_DISCARD"); ok {
		c.Annotation.Discard = v
	}

	c.Ontology.File = getEnvOrDefault("GOBAYES_ONTOLOGY_FILE", c.Ontology.File)
	c.Ontology.Format = getEnvOrDefault("GOBAYES_ONTOLOGY_FORMAT", c.Ontology.Format)
	c.Ontology.Separator = getEnvOrDefault("GOBAYES_PAIRS_SEP", c.Ontology.Separator)
	if v := os.Getenv("GOBAYES_RELATIONSHIPS"); v != "" {
		c.Ontology.Relationships = splitList(v)
	}
	c.Ontology.Trace = getEnvBoolOrDefault("GOBAYES_TRACE", c.Ontology.Trace)

	c.Analysis.Mode = getEnvOrDefault("GOBAYES_MODE", c.Analysis.Mode)
	c.Analysis.Workers = getEnvIntOrDefault("GOBAYES_WORKERS", c.Analysis.Workers)
	c.Analysis.Alpha = getEnvFloatOrDefault("GOBAYES_ALPHA", c.Analysis.Alpha)

	c.LogLevel = getEnvOrDefault("LOG_LEVEL", c.LogLevel)
}

// Validate checks values that do not depend on which command runs
func (c *Config) Validate() error {
	if c.Annotation.GeneColumn < 0 || c.Annotation.TermColumn < 0 {
		return errors.ConfigInvalid("annotation columns must not be negative")
	}
	if c.Annotation.GeneColumn == c.Annotation.TermColumn {
		return errors.ConfigInvalid("gene and term columns must differ")
	}
	if _, err := c.Annotation.DiscardRules(); err != nil {
		return errors.ConfigInvalid(err.Error())
	}
	switch c.Ontology.Format {
	case "obo", "pairs":
	default:
		return errors.ConfigInvalid("ontology format must be obo or pairs, got " + strconv.Quote(c.Ontology.Format))
	}
	if c.Analysis.Workers < 1 {
		return errors.ConfigInvalid("workers must be at least 1")
	}
	if c.Analysis.Alpha <= 0 || c.Analysis.Alpha > 1 {
		return errors.ConfigInvalid("alpha must be in (0, 1]")
	}
	return nil
}

// RequireFiles checks that the inputs a command needs are configured
func (c *Config) RequireFiles(annotation, ontology bool) error {
	if annotation && c.Annotation.File == "" {
		return errors.ConfigInvalid("annotation file is required (GOBAYES_ANNOTATION_FILE or --annotations)")
	}
	if ontology && c.Ontology.File == "" {
		return errors.ConfigInvalid("ontology file is required (GOBAYES_ONTOLOGY_FILE or --ontology)")
	}
	return nil
}

// DiscardRules parses the discard setting
func (a AnnotationConfig) DiscardRules() ([]gaf.Discard, error) {
	return gaf.ParseDiscard(a.Discard)
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
