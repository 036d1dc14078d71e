package contract

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/covgate/covgate/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 2
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for one evaluation run.
// This struct remains the "final, validated" config.
type Config struct {
	ReportPath  string
	Format      schema.ReportFormat
	Rules       []schema.ComponentRule
	Policy      schema.TierPolicy
	Workers     int
	ResultLimit int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in output headers
	UseColors bool // Enable colored labels in table output
}

// Clone returns a deep copy of the config so callers can mutate
// per-request settings without racing on the shared base config.
func (c *Config) Clone() *Config {
	clone := *c

	clone.Rules = make([]schema.ComponentRule, len(c.Rules))
	copy(clone.Rules, c.Rules)

	clone.Policy.LineThresholds = make(map[schema.Tier]float64, len(c.Policy.LineThresholds))
	for tier, threshold := range c.Policy.LineThresholds {
		clone.Policy.LineThresholds[tier] = threshold
	}
	clone.Policy.BranchThresholds = make(map[schema.Tier]float64, len(c.Policy.BranchThresholds))
	for tier, threshold := range c.Policy.BranchThresholds {
		clone.Policy.BranchThresholds[tier] = threshold
	}

	return &clone
}

// RuleRawInput holds one component rule from the YAML config file.
type RuleRawInput struct {
	Name     string `mapstructure:"name"`
	Pattern  string `mapstructure:"pattern"`
	Tier     string `mapstructure:"tier"`
	Priority int    `mapstructure:"priority"`
}

// ThresholdsRawInput holds tier threshold definitions from the YAML config
// file. Pointers distinguish "not configured" from an explicit zero.
type ThresholdsRawInput struct {
	Critical     *float64 `mapstructure:"critical"`
	Standard     *float64 `mapstructure:"standard"`
	Experimental *float64 `mapstructure:"experimental"`
	OverallMin   *float64 `mapstructure:"overall-min"`
}

// BranchThresholdsRawInput holds optional per-tier branch thresholds from
// the YAML config file.
type BranchThresholdsRawInput struct {
	Critical     *float64 `mapstructure:"critical"`
	Standard     *float64 `mapstructure:"standard"`
	Experimental *float64 `mapstructure:"experimental"`
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config
// file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	ReportPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	Format           string `mapstructure:"format"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Workers          int    `mapstructure:"workers"`
	Limit            int    `mapstructure:"limit"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Emoji            string `mapstructure:"emoji"`
	Color            string `mapstructure:"color"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Component rules from config file ---
	Components []RuleRawInput `mapstructure:"components"`

	// --- Tier thresholds from config file ---
	Thresholds       ThresholdsRawInput       `mapstructure:"thresholds"`
	BranchThresholds BranchThresholdsRawInput `mapstructure:"branch-thresholds"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct. Configuration errors are fatal and
// reported with the specific offending rule or threshold.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processComponentRules(cfg, input); err != nil {
		return err
	}
	if err := processTierThresholds(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-policy fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.ReportPath = input.ReportPathStr
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Format Validation ---
	cfg.Format = schema.ReportFormat(strings.ToLower(input.Format))
	if _, ok := schema.ValidReportFormats[cfg.Format]; !ok {
		return fmt.Errorf("invalid report format '%s'. must be cobertura, json", input.Format)
	}

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", cfg.Output)
	}

	return nil
}

// processComponentRules converts raw rule entries into typed rules. Deep
// validation (duplicate priorities, unknown tiers, empty patterns) happens
// in the classifier constructor before any aggregation runs.
func processComponentRules(cfg *Config, input *ConfigRawInput) error {
	cfg.Rules = make([]schema.ComponentRule, 0, len(input.Components))
	for _, raw := range input.Components {
		tier := schema.Tier(strings.ToLower(strings.TrimSpace(raw.Tier)))
		if tier == "" {
			tier = schema.StandardTier
		}
		cfg.Rules = append(cfg.Rules, schema.ComponentRule{
			Name:     strings.TrimSpace(raw.Name),
			Pattern:  raw.Pattern,
			Tier:     tier,
			Priority: raw.Priority,
		})
	}
	return nil
}

// processTierThresholds merges configured thresholds over the defaults and
// validates the ranges.
func processTierThresholds(cfg *Config, input *ConfigRawInput) error {
	cfg.Policy = schema.DefaultTierPolicy()

	lineOverrides := map[schema.Tier]*float64{
		schema.CriticalTier:     input.Thresholds.Critical,
		schema.StandardTier:     input.Thresholds.Standard,
		schema.ExperimentalTier: input.Thresholds.Experimental,
	}
	for tier, v := range lineOverrides {
		if v == nil {
			continue
		}
		if *v < 0 || *v > 100 {
			return fmt.Errorf("line threshold for tier '%s' must be within [0, 100] (received %.1f)", tier, *v)
		}
		cfg.Policy.LineThresholds[tier] = *v
	}

	branchOverrides := map[schema.Tier]*float64{
		schema.CriticalTier:     input.BranchThresholds.Critical,
		schema.StandardTier:     input.BranchThresholds.Standard,
		schema.ExperimentalTier: input.BranchThresholds.Experimental,
	}
	for tier, v := range branchOverrides {
		if v == nil {
			continue
		}
		if *v < 0 || *v > 100 {
			return fmt.Errorf("branch threshold for tier '%s' must be within [0, 100] (received %.1f)", tier, *v)
		}
		cfg.Policy.BranchThresholds[tier] = *v
	}

	if input.Thresholds.OverallMin != nil {
		v := *input.Thresholds.OverallMin
		if v < 0 || v > 100 {
			return fmt.Errorf("overall-min must be within [0, 100] (received %.1f)", v)
		}
		cfg.Policy.OverallMin = v
	}

	return nil
}

// ValidateDatabaseConnectionString validates the format of database
// connection strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") && !strings.HasPrefix(connStr, "postgres://") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter or use the postgres:// scheme")
		}
	}
	return nil
}

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be none, sqlite, mysql, postgresql", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}
