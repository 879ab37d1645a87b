package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect"
	"github.com/ukaji3/xlunlock-go/pkg/unprotect/models"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code without printing an error message.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return fmt.Sprintf("exit status %d", e.Code) }

// exitWarning is returned when a run completed but needs review: nothing
// was removed, a worksheet part failed, or the output failed its integrity
// check.
const exitWarning = 2

// runPackage is replaced in tests.
var runPackage = unprotect.Run

type rootFlags struct {
	inspect    bool
	yes        bool
	outputPath string
	jsonOutput bool
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "xlunlock [file.xlsx|file.xlsm]",
		Short: "Remove worksheet protection from Excel workbooks",
		Long: `xlunlock removes sheetProtection elements from every worksheet of an
.xlsx or .xlsm workbook. The original file is copied to <file>.backup and
the result is written to <file>_unprotected.<ext>. All other parts of the
workbook are kept as they are.

Examples:
  xlunlock report.xlsx
  xlunlock --inspect macros.xlsm
  xlunlock -y -o unlocked.xlsx report.xlsx`,
		Args:          cobra.MaximumNArgs(1),
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.inspect, "inspect", "i", false, "Inspect protection elements and confirm before removing them")
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, "Do not ask for confirmation after inspection")
	cmd.Flags().StringVarP(&flags.outputPath, "output", "o", "", "Output file path (default: <file>_unprotected.<ext>)")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the result as JSON")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (env: XLUNLOCK_LOG_LEVEL)")

	return cmd
}

func resolveLogLevel(flag string) (log.Level, error) {
	v := flag
	if v == "" {
		v = os.Getenv("XLUNLOCK_LOG_LEVEL")
	}
	if v == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(v)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("invalid log level %q", v)
	}
	return lvl, nil
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Prefix: "xlunlock",
		Level:  level,
	})
}

func run(cmd *cobra.Command, args []string, flags rootFlags) error {
	level, err := resolveLogLevel(flags.logLevel)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	in := cmd.InOrStdin()
	out := cmd.OutOrStdout()
	prompt := newPrompter(in, out)

	var inputPath string
	if len(args) == 1 {
		inputPath = args[0]
	} else {
		if !isTerminal(in) {
			return fmt.Errorf("input file required")
		}
		inputPath, err = prompt.Line("Enter full path to the .xlsm/.xlsx file: ")
		if err != nil {
			return fmt.Errorf("reading input path: %w", err)
		}
	}
	inputPath = strings.Trim(strings.TrimSpace(inputPath), `"'`)

	opts := unprotect.DefaultOptions()
	opts.InspectFirst = flags.inspect
	opts.OutputPath = flags.outputPath
	opts.Logger = logger
	if flags.inspect && !flags.yes {
		opts.Confirm = func(inspections []models.Inspection) bool {
			if !flags.jsonOutput {
				printInspections(out, inspections)
			}
			ok, err := prompt.YesNo("Proceed with removing the protection? (y/n): ")
			if err != nil {
				logger.Warn("no confirmation received", "err", err)
			}
			return ok
		}
	}

	result, err := runPackage(inputPath, opts)
	if err != nil {
		return err
	}

	if flags.jsonOutput {
		if err := jsonPrint(out, newResultView(result)); err != nil {
			return err
		}
	} else {
		if flags.inspect && flags.yes {
			printInspections(out, result.Inspections)
		}
		printSummary(out, result)
	}

	if result.HasWarnings() {
		return &ExitError{Code: exitWarning}
	}
	return nil
}
