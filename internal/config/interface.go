package config

// LogLevel represents valid logging levels
type LogLevel string

const (
	LogLevelDebug   LogLevel = "debug"
	LogLevelInfo    LogLevel = "info"
	LogLevelWarning LogLevel = "warning"
	LogLevelError   LogLevel = "error"
)

// IsValid returns whether the log level is valid
func (l LogLevel) IsValid() bool {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarning, LogLevelError:
		return true
	default:
		return false
	}
}

// String implements the Stringer interface
func (l LogLevel) String() string {
	return string(l)
}

// Provider defines read access to configuration values. All values are
// immutable after initial loading.
type Provider interface {
	// GetScanPath returns the path to the raw scan JSON file
	GetScanPath() string

	// GetReportPath returns the report output path, empty for stdout
	GetReportPath() string

	// IsStoreEnabled returns whether report persistence is enabled
	IsStoreEnabled() bool

	// GetDatabase returns the path to the report database
	GetDatabase() string

	// IsSpeedTestEnabled returns whether the external speed test may run
	IsSpeedTestEnabled() bool

	// GetLogLevel returns the configured logging level
	GetLogLevel() string
}

func (c *Config) GetScanPath() string      { return c.ScanPath }
func (c *Config) GetReportPath() string    { return c.ReportPath }
func (c *Config) IsStoreEnabled() bool     { return c.Store }
func (c *Config) GetDatabase() string      { return c.Database }
func (c *Config) IsSpeedTestEnabled() bool { return c.SpeedTest }
func (c *Config) GetLogLevel() string      { return c.LogLevel }
