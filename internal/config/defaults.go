package config

import (
	"github.com/coral-mesh/rowcut/internal/constants"
	"github.com/coral-mesh/rowcut/internal/datetime"
	"github.com/coral-mesh/rowcut/internal/prune"
	"github.com/coral-mesh/rowcut/internal/safe"
)

// Default returns a config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: SchemaVersion,
		Log: LogConfig{
			Level:  constants.DefaultLogLevel,
			Format: LogFormatAuto,
		},
		Input: InputConfig{
			MaxFileSize: safe.DefaultMaxFileSize,
		},
		Detect: DetectConfig{
			SampleSize: datetime.DefaultSampleSize,
		},
		Output: OutputConfig{
			BackupSuffix: prune.DefaultBackupSuffix,
			PreviewRows:  prune.DefaultPreviewRows,
			Report:       constants.DefaultReportFormat,
		},
	}
}
