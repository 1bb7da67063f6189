// Package constants defines shared configuration constants.
package constants

var (
	// AppName is the binary name used in help output and config paths.
	AppName = "rowcut"

	ConfigFile = "config.yaml"

	DefaultDir = ".rowcut"

	// EnvPrefix prefixes every environment variable read by the config loader.
	EnvPrefix = "ROWCUT_"

	// ConfigPathEnv points at a config file to use instead of ~/.rowcut/config.yaml.
	ConfigPathEnv = EnvPrefix + "CONFIG"

	DefaultLogLevel = "info"

	// DefaultReportFormat is the report format used when --report is not given.
	DefaultReportFormat = "table"
)
