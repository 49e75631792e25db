// Package cmd wires the command line interface to the scanner.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/strfind/internal/config"
	"github.com/harrison/strfind/internal/display"
	"github.com/harrison/strfind/internal/logger"
	"github.com/harrison/strfind/internal/report"
	"github.com/harrison/strfind/internal/scanner"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for strfind
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strfind [directory] [pattern]",
		Short: "Brute-force pattern scanner for recovered files",
		Long: `strfind walks every file under a directory and searches for a literal
pattern in two passes: a text pass over permissively decoded content and a
binary pass over raw bytes. Matches are reported with surrounding context
and saved to a results file inside the scanned directory.

Defaults: directory = current directory, pattern = 'HTB{', case-insensitive,
recursive, verbose.`,
		Example: `  strfind                          # Search for 'HTB{' in current directory
  strfind recovered_files          # Search for 'HTB{' in recovered_files
  strfind . "flag{"                # Search for 'flag{' in current directory
  strfind . "password" --no-recursive`,
		Version: Version,
		Args:    cobra.MaximumNArgs(2),
		RunE:    runScan,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.Flags().Bool("case-sensitive", false, "Make the search case-sensitive")
	cmd.Flags().Bool("no-recursive", false, "Do not search subdirectories recursively")
	cmd.Flags().Bool("quiet", false, "Reduce output verbosity")
	cmd.Flags().String("config", "", fmt.Sprintf("Path to config file (default: %s)", config.DefaultConfigFile))
	cmd.Flags().StringSlice("exclude-dir", nil, "Directory name to skip while walking (repeatable)")

	return cmd
}

// buildConfig merges the config file, positional arguments and flags into
// the immutable per-run configuration. Flags win over the config file.
func buildConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.DefaultConfigFile
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return config.Config{}, err
	}

	if len(args) >= 1 {
		cfg.RootDirectory = args[0]
	}
	if len(args) >= 2 {
		cfg.Pattern = args[1]
	}

	if v, _ := cmd.Flags().GetBool("case-sensitive"); v {
		cfg.CaseSensitive = true
	}
	if v, _ := cmd.Flags().GetBool("no-recursive"); v {
		cfg.Recursive = false
	}
	if v, _ := cmd.Flags().GetBool("quiet"); v {
		cfg.Verbose = false
	}
	if dirs, _ := cmd.Flags().GetStringSlice("exclude-dir"); len(dirs) > 0 {
		cfg.ExcludeDirs = append(cfg.ExcludeDirs, dirs...)
	}

	return *cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	renderer := report.NewRenderer(out, colorEnabled(out))

	// Per-file diagnostics go to stderr and only appear in verbose mode.
	var log *logger.ConsoleLogger
	if cfg.Verbose {
		log = logger.NewConsoleLogger(cmd.ErrOrStderr(), "debug")
	} else {
		log = logger.NewConsoleLogger(nil, "error")
	}

	renderer.Banner(cfg)

	s := scanner.New(cfg, log)

	var progress *display.ScanProgress
	started := false
	progressFn := func(index, total int, path string) {
		if !started {
			started = true
			renderer.ScanStart(total)
		}
		if !cfg.Verbose {
			return
		}
		if progress == nil {
			progress = display.NewScanProgress(out, total)
		}
		progress.Step(path)
	}

	summary, err := s.Run(progressFn)
	if progress != nil {
		progress.Finish()
	}
	if err != nil {
		// Missing or unreadable root aborts the scan but is not a process
		// failure; the exit code stays zero either way.
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(out, "Directory '%s' not found!\n", cfg.RootDirectory)
			return nil
		}
		fmt.Fprintf(out, "Error: %v\n", err)
		return nil
	}

	if summary.TotalFiles == 0 {
		renderer.NoFiles()
		return nil
	}

	if summary.MatchedFiles() == 0 {
		var suggestions []scanner.Suggestion
		if scanner.ShouldSuggest(cfg, summary.MatchedFiles()) {
			suggestions = s.SuggestAlternates()
		}
		renderer.NoMatches(cfg.Pattern, suggestions)
		return nil
	}

	renderer.Results(cfg.Pattern, summary)
	renderer.Summary(cfg.Pattern, summary)

	path, err := report.Persist(cfg, summary)
	if err != nil {
		display.Warning{
			Title:      "Could not save results",
			Message:    err.Error(),
			Suggestion: "Make sure the search directory is writable",
		}.Display(out)
		return nil
	}
	renderer.Saved(path)

	return nil
}

// colorEnabled reports whether output to w should use color: only real
// terminals get ANSI, and the color package's NO_COLOR handling is left to
// the renderer.
func colorEnabled(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
