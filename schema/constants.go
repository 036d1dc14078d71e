package schema

// Custom string types for type safety.
type (
	// Tier represents the strictness bucket a component is held to.
	Tier string

	// Status represents a pass/fail evaluation outcome.
	Status string

	// OutputMode represents the format of the output.
	OutputMode string

	// ReportFormat represents the format of the input coverage report.
	ReportFormat string

	// DatabaseBackend represents the database backend for verdict history.
	DatabaseBackend string
)

// All tiers supported.
const (
	CriticalTier     Tier = "critical"
	StandardTier     Tier = "standard" // default for unclassified files
	ExperimentalTier Tier = "experimental"
)

// All evaluation statuses supported.
const (
	PassStatus Status = "pass"
	FailStatus Status = "fail"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	JSONOut OutputMode = "json"
	CSVOut  OutputMode = "csv"
)

// All report formats supported.
const (
	CoberturaFormat ReportFormat = "cobertura" // default
	JSONFormat      ReportFormat = "json"
)

// All history backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// Process exit codes for CI gating.
const (
	ExitPass  = 0 // All components and the overall floor passed
	ExitFail  = 1 // One or more policy gaps (a business outcome, not an error)
	ExitError = 2 // Internal error: unparseable report, empty report, bad config
)

// Default tier thresholds and overall floor, in percent.
const (
	DefaultCriticalThreshold     = 85.0
	DefaultStandardThreshold     = 80.0
	DefaultExperimentalThreshold = 70.0
	DefaultOverallMin            = 80.0
)

// UnclassifiedComponent is the sentinel component for files matching no
// rule. Unmatched files still count toward the overall aggregate so the
// project-wide percentage stays path-complete.
const UnclassifiedComponent = "unclassified"

// AllTiers returns a list of all supported tiers.
var AllTiers = []Tier{CriticalTier, StandardTier, ExperimentalTier}

// ValidTiers lists all valid tiers.
var ValidTiers = map[Tier]struct{}{
	CriticalTier:     {},
	StandardTier:     {},
	ExperimentalTier: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	JSONOut: {},
	CSVOut:  {},
}

// ValidReportFormats lists all valid report formats.
var ValidReportFormats = map[ReportFormat]struct{}{
	CoberturaFormat: {},
	JSONFormat:      {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}
