package config

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// SchemaVersion is the current config schema version.
const SchemaVersion = "1"

// Config is the rowcut configuration file (~/.rowcut/config.yaml).
// Command-line flags override every value.
type Config struct {
	Version string       `yaml:"version" json:"version" jsonschema:"description=Config schema version,default=1"`
	Log     LogConfig    `yaml:"log" json:"log"`
	Input   InputConfig  `yaml:"input" json:"input"`
	Detect  DetectConfig `yaml:"detect" json:"detect"`
	Output  OutputConfig `yaml:"output" json:"output"`
}

// LogConfig controls diagnostic output on stderr.
type LogConfig struct {
	Level string `yaml:"level" json:"level" env:"ROWCUT_LOG_LEVEL" jsonschema:"description=Log level,enum=trace,enum=debug,enum=info,enum=warn,enum=error,enum=disabled,default=info"`
	// Format is auto (pretty on a terminal), pretty or json.
	Format string `yaml:"format" json:"format" env:"ROWCUT_LOG_FORMAT" jsonschema:"description=Log output format,enum=auto,enum=pretty,enum=json,default=auto"`
}

// InputConfig controls how input files are read.
type InputConfig struct {
	// Delimiter overrides the delimiter chosen from the file extension.
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty" env:"ROWCUT_DELIMITER" jsonschema:"description=Field delimiter (single character or 'tab'); empty selects by file extension"`
	// MaxFileSize is the largest input accepted, in bytes.
	MaxFileSize int64 `yaml:"max_file_size" json:"max_file_size" env:"ROWCUT_MAX_FILE_SIZE" jsonschema:"description=Largest input file accepted in bytes,minimum=1"`
}

// DetectConfig controls datetime format resolution.
type DetectConfig struct {
	// SampleSize is the number of non-empty values checked per candidate.
	// Zero checks every value.
	SampleSize int `yaml:"sample_size" json:"sample_size" env:"ROWCUT_SAMPLE_SIZE" jsonschema:"description=Non-empty values checked during auto-detection (0 checks all),minimum=0,default=1000"`
	// Candidates replaces the built-in candidate list when non-empty.
	Candidates []CandidateConfig `yaml:"candidates,omitempty" json:"candidates,omitempty" jsonschema:"description=Ordered candidate formats replacing the built-in list"`
}

// CandidateConfig is one auto-detection candidate.
type CandidateConfig struct {
	Name   string `yaml:"name" json:"name" jsonschema:"description=Display name (e.g. YYYY-MM-DD)"`
	Format string `yaml:"format" json:"format" jsonschema:"required,description=strftime-style format (e.g. %Y-%m-%d)"`
}

// OutputConfig controls what a run writes.
type OutputConfig struct {
	BackupSuffix string `yaml:"backup_suffix" json:"backup_suffix" env:"ROWCUT_BACKUP_SUFFIX" jsonschema:"description=Suffix appended to the input path for backups,default=.backup"`
	// PreviewRows is the number of deleted rows listed in a report.
	PreviewRows int `yaml:"preview_rows" json:"preview_rows" env:"ROWCUT_PREVIEW_ROWS" jsonschema:"description=Deleted rows listed in the report (negative lists all),default=5"`
	// Report is the default report format.
	Report string `yaml:"report" json:"report" env:"ROWCUT_REPORT" jsonschema:"description=Report format,enum=table,enum=json,enum=yaml,enum=csv,default=table"`
}

// Schema returns the JSON schema of the config file.
func Schema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Title = "rowcut configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
