package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/coral-mesh/rowcut/internal/cli/helpers"
	"github.com/coral-mesh/rowcut/internal/config"
	"github.com/coral-mesh/rowcut/internal/datetime"
	"github.com/coral-mesh/rowcut/internal/prune"
)

// pruneFlags holds the flags of the root command. Flags that mirror a config
// value only override it when set on the command line.
type pruneFlags struct {
	column string
	rng    helpers.RangeFlags
	output string
	dryRun bool
	backup bool

	backupSuffix string
	delimiter    string
	sampleSize   int
	preview      int
	report       string
}

func (f *pruneFlags) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	helpers.AddColumnFlag(cmd, &f.column)
	f.rng.AddFlags(flags)
	flags.StringVarP(&f.output, "output-file", "o", "", "Write the result here instead of overwriting the input")
	flags.BoolVar(&f.dryRun, "dry-run", false, "Report what would be deleted without writing anything")
	flags.BoolVar(&f.backup, "backup", false, "Copy the input to <input>.backup before writing")
	flags.StringVar(&f.backupSuffix, "backup-suffix", prune.DefaultBackupSuffix, "Suffix appended to the input path for --backup")
	addInputFlags(flags, &f.delimiter, &f.sampleSize)
	flags.IntVar(&f.preview, "preview", prune.DefaultPreviewRows, "Deleted rows listed in the report (0 lists none, -1 lists all)")
	helpers.AddReportFlag(cmd, &f.report, helpers.FormatTable, helpers.AllFormats)

	_ = cmd.MarkFlagRequired("datetime-column")
	_ = cmd.MarkFlagRequired("start-date")
	_ = cmd.MarkFlagRequired("end-date")
}

// addInputFlags adds the flags shared by commands that read an input table.
func addInputFlags(flags *pflag.FlagSet, delimiter *string, sampleSize *int) {
	flags.StringVar(delimiter, "delimiter", "", "Field delimiter (single character or 'tab'); default by extension, ',' or tab for .tsv")
	flags.IntVar(sampleSize, "sample-size", datetime.DefaultSampleSize, "Values checked per candidate during auto-detection (0 checks all)")
}

// apply overlays the flags set on the command line onto cfg.
func (f *pruneFlags) apply(flags *pflag.FlagSet, cfg *config.Config) error {
	if flags.Changed("backup-suffix") {
		cfg.Output.BackupSuffix = f.backupSuffix
	}
	if flags.Changed("preview") {
		cfg.Output.PreviewRows = f.preview
	}
	if flags.Changed("report") {
		cfg.Output.Report = f.report
	}
	applyInputFlags(flags, cfg, f.delimiter, f.sampleSize)
	return cfg.Validate()
}

func applyInputFlags(flags *pflag.FlagSet, cfg *config.Config, delimiter string, sampleSize int) {
	if flags.Changed("delimiter") {
		cfg.Input.Delimiter = delimiter
	}
	if flags.Changed("sample-size") {
		cfg.Detect.SampleSize = sampleSize
	}
}

// baseOptions builds the run options every command derives from cfg.
func baseOptions(cfg *config.Config, input, column, format string) (prune.Options, error) {
	comma, err := cfg.Input.Comma()
	if err != nil {
		return prune.Options{}, err
	}
	candidates, err := cfg.Detect.Patterns()
	if err != nil {
		return prune.Options{}, err
	}

	return prune.Options{
		InputPath:   input,
		Column:      column,
		Format:      format,
		Comma:       comma,
		SampleSize:  cfg.Detect.SampleSize,
		Candidates:  candidates,
		MaxFileSize: cfg.Input.MaxFileSize,
	}, nil
}

func runPrune(cmd *cobra.Command, g *helpers.Globals, f *pruneFlags, input string) error {
	if err := f.rng.Validate(); err != nil {
		return err
	}

	cfg, err := g.LoadConfig()
	if err != nil {
		return err
	}
	if err := f.apply(cmd.Flags(), cfg); err != nil {
		return err
	}

	opts, err := baseOptions(cfg, input, f.column, f.rng.Format)
	if err != nil {
		return err
	}
	opts.OutputPath = f.output
	opts.Start = f.rng.Start
	opts.End = f.rng.End
	opts.DryRun = f.dryRun
	opts.Backup = f.backup
	opts.BackupSuffix = cfg.Output.BackupSuffix
	opts.PreviewRows = cfg.Output.PreviewRows

	logger := g.Logger(cfg)
	report, err := prune.NewRunner(logger).Run(opts)
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), report, helpers.OutputFormat(cfg.Output.Report))
}
