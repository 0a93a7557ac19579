package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Nomadcxx/jellyparse/internal/batch"
	"github.com/Nomadcxx/jellyparse/internal/config"
	"github.com/Nomadcxx/jellyparse/internal/logging"
	"github.com/Nomadcxx/jellyparse/internal/match"
	"github.com/Nomadcxx/jellyparse/internal/naming"
	"github.com/Nomadcxx/jellyparse/internal/parser"
	"github.com/Nomadcxx/jellyparse/internal/quality"
	"github.com/Nomadcxx/jellyparse/internal/reporter"
	"github.com/Nomadcxx/jellyparse/internal/ui"
)

var (
	// Version information (set via -ldflags during build)
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

const exampleConfig = `[parser]
current_year = 0     # 0 uses the system clock
folders = false      # treat inputs as folder names

[batch]
workers = 8

[output]
format = "auto"      # auto, text, json, yaml, jsonl
quality = false

[log]
level = "warn"       # debug, info, warn, error
file = ""

[libraries]
paths = ["/path/to/your/movies"]
`

// app carries what every command needs once flags and config are resolved.
type app struct {
	cfgFile     string
	logLevel    string
	logFile     string
	currentYear int

	cfg    *config.Config
	parser *parser.Parser
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintf(os.Stderr, "Cancelled by user\n")
			os.Exit(130) // Exit code 130 for SIGINT
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "jellyparse",
		Short:         "Release and folder name parser for Jellyfin/Plex libraries",
		Long:          getLongDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/jellyparse/config.toml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFile, "log-file", "", "also write JSON logs to this rotating file")
	rootCmd.PersistentFlags().IntVar(&a.currentYear, "current-year", 0, "pin the current year instead of using the clock")

	rootCmd.AddCommand(
		a.parseCmd(),
		a.batchCmd(),
		a.normalizeCmd(),
		a.slugCmd(),
		a.cleanCmd(),
		a.imdbCmd(),
		a.nameCmd(),
		a.matchCmd(),
		a.tryCmd(),
		a.configCmd(),
		versionCmd(),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	var err error
	if a.cfgFile != "" {
		a.cfg, err = config.LoadFrom(a.cfgFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	if cmd.Flags().Changed("log-level") {
		a.cfg.Log.Level = a.logLevel
	}
	if a.logFile != "" {
		a.cfg.Log.File = a.logFile
	}
	if a.currentYear != 0 {
		a.cfg.Parser.CurrentYear = a.currentYear
	}

	// config and its subcommands print validation problems as warnings.
	if err := a.cfg.Validate(); err != nil && !isConfigCmd(cmd) {
		return errors.Wrap(err, "invalid config")
	}

	if err := logging.Setup(logging.Options{
		Level: a.cfg.Log.Level,
		File:  a.cfg.Log.File,
		Out:   cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	a.parser = parser.New(parser.WithCurrentYear(a.cfg.Parser.CurrentYear))
	return nil
}

func isConfigCmd(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// format resolves the --format flag against the configured default.
func (a *app) format(flag string) (reporter.Format, error) {
	if flag == "" {
		flag = a.cfg.Output.Format
	}
	return reporter.ParseFormat(flag)
}

func (a *app) parseCmd() *cobra.Command {
	var (
		isDir       bool
		format      string
		explain     bool
		withQuality bool
	)

	cmd := &cobra.Command{
		Use:   "parse <name> [name...]",
		Short: "Parse release or folder names",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.format(format)
			if err != nil {
				return err
			}
			isDir = isDir || a.cfg.Parser.Folders
			withQuality = withQuality || a.cfg.Output.Quality
			out := cmd.OutOrStdout()

			if len(args) == 1 {
				d := reporter.Detail{Input: args[0], IsDir: isDir}
				if explain {
					info, trace := a.parser.Explain(args[0], isDir)
					d.Info, d.Trace = info, &trace
				} else {
					d.Info = a.parser.Parse(args[0], isDir)
				}
				if withQuality {
					q := quality.Detect(args[0])
					d.Quality = &q
				}
				return reporter.WriteDetail(out, f, d)
			}

			inputs := make([]batch.Input, len(args))
			for i, arg := range args {
				inputs[i] = batch.NewInput(arg, isDir)
			}
			results, err := batch.Run(cmd.Context(), inputs, batch.Config{
				Workers: a.cfg.Batch.Workers,
				Quality: withQuality,
				Parser:  a.parser,
			})
			if err != nil {
				return err
			}
			return reporter.Write(out, f, reporter.Report{Timestamp: time.Now(), Results: results})
		},
	}

	cmd.Flags().BoolVarP(&isDir, "dir", "d", false, "treat names as folder names")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: auto, text, json, yaml, jsonl")
	cmd.Flags().BoolVar(&explain, "explain", false, "show how the title was found")
	cmd.Flags().BoolVarP(&withQuality, "quality", "q", false, "include quality tags")
	return cmd
}

func (a *app) batchCmd() *cobra.Command {
	var (
		isDir       bool
		jsonInput   bool
		fromDirs    []string
		workers     int
		format      string
		withQuality bool
		save        bool
		tui         bool
	)

	cmd := &cobra.Command{
		Use:   "batch [file|-]",
		Short: "Parse many names from a file, stdin, or library folders",
		Long: "Reads one name per line (or a JSON array with --json) from a file or stdin.\n" +
			"With --from-dir, or with library paths configured and no input given,\n" +
			"the entries of each folder are parsed instead.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.format(format)
			if err != nil {
				return err
			}

			dirs := fromDirs
			if len(args) == 0 && len(dirs) == 0 {
				dirs = a.cfg.Libraries.Paths
			}

			var inputs []batch.Input
			source := "stdin"
			switch {
			case len(args) == 0 && len(dirs) > 0:
				source = strings.Join(dirs, ", ")
				for _, dir := range dirs {
					entries, err := batch.ReadDir(dir)
					if err != nil {
						return err
					}
					inputs = append(inputs, entries...)
				}
			default:
				var r io.Reader = cmd.InOrStdin()
				if len(args) == 1 && args[0] != "-" {
					file, err := os.Open(args[0])
					if err != nil {
						return errors.Wrap(err, "failed to open input file")
					}
					defer file.Close()
					r = file
					source = args[0]
				}
				folders := isDir || a.cfg.Parser.Folders
				if jsonInput {
					inputs, err = batch.ReadJSON(r, folders)
				} else {
					inputs, err = batch.ReadLines(r, folders)
				}
				if err != nil {
					return err
				}
			}

			if workers <= 0 {
				workers = a.cfg.Batch.Workers
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			results, err := batch.Run(ctx, inputs, batch.Config{
				Workers: workers,
				Quality: withQuality || a.cfg.Output.Quality,
				Parser:  a.parser,
			})
			if err != nil {
				return err
			}

			report := reporter.Report{Timestamp: time.Now(), Source: source, Results: results}

			if save {
				path, err := reporter.Generate(report)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Report saved to:\n  %s\n", path)
			}

			if tui {
				_, err := ui.Run(ui.NewReportModel(report))
				return err
			}
			return reporter.Write(cmd.OutOrStdout(), f, report)
		},
	}

	cmd.Flags().BoolVarP(&isDir, "dir", "d", false, "treat lines as folder names")
	cmd.Flags().BoolVar(&jsonInput, "json", false, "input is a JSON array of strings (null entries are reported as errors)")
	cmd.Flags().StringSliceVar(&fromDirs, "from-dir", nil, "parse the entries of these folders")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent parses (default from config)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: auto, text, json, yaml, jsonl")
	cmd.Flags().BoolVarP(&withQuality, "quality", "q", false, "include quality tags")
	cmd.Flags().BoolVar(&save, "save", false, "also save a text report under ~/.local/share/jellyparse/reports")
	cmd.Flags().BoolVar(&tui, "tui", false, "browse the results in the TUI")
	return cmd
}

func (a *app) normalizeCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "normalize <text>",
		Short: "Strip release noise and show display and comparison forms",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n := parser.Normalize(args[0])
			if format == "json" {
				return writeJSONLine(cmd.OutOrStdout(), n)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Display: %s\nCompare: %s\n", n.Display, n.Compare)
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}

func (a *app) slugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "slug <title>",
		Short: "Print the URL slug for a title",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), parser.ToURLSlug(args[0]))
		},
	}
}

func (a *app) cleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean <title>",
		Short: "Print the comparison form of a title",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), parser.CleanTitle(args[0]))
		},
	}
}

func (a *app) imdbCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "imdb <id>",
		Short: "Validate and normalize an IMDb id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, ok := parser.NormalizeImdbID(args[0])
			if !ok {
				return errors.Errorf("not an IMDb id: %q", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func (a *app) nameCmd() *cobra.Command {
	var (
		isDir    bool
		ext      string
		noIDs    bool
		keepCase bool
	)

	cmd := &cobra.Command{
		Use:   "name <release>",
		Short: "Suggest a Jellyfin folder (or file, with --ext) name",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			info := a.parser.Parse(args[0], isDir || a.cfg.Parser.Folders)
			opts := naming.DefaultOptions()
			if noIDs {
				opts.ImdbID, opts.TmdbID = false, false
			}
			if keepCase {
				opts.TitleCase = false
			}

			if ext != "" {
				fmt.Fprintln(cmd.OutOrStdout(), naming.FileName(info, quality.Detect(args[0]), ext, opts))
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), naming.FolderName(info, opts))
		},
	}

	cmd.Flags().BoolVarP(&isDir, "dir", "d", false, "treat the name as a folder name")
	cmd.Flags().StringVar(&ext, "ext", "", "build a file name with this extension, including quality and language tags")
	cmd.Flags().BoolVar(&noIDs, "no-ids", false, "leave out imdbid/tmdbid tags")
	cmd.Flags().BoolVar(&keepCase, "keep-case", false, "keep the title's original casing")
	return cmd
}

func (a *app) matchCmd() *cobra.Command {
	var (
		minSimilarity float32
		format        string
	)

	cmd := &cobra.Command{
		Use:   "match <query> <candidate> [candidate...]",
		Short: "Rank catalog titles against a release name or query",
		Long: "Candidates may carry a year as \"Title (Year)\". Candidates whose year\n" +
			"is more than one off the query's year are skipped.",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			candidates := make([]match.Candidate, len(args)-1)
			for i, arg := range args[1:] {
				info := a.parser.Parse(arg, true)
				c := match.Candidate{Title: info.PrimaryTitle()}
				if y, ok := info.YearValue(); ok {
					c.Year = y
				}
				candidates[i] = c
			}

			results := match.Rank(a.parser, args[0], candidates, minSimilarity)
			if format == "json" {
				return writeJSONLine(cmd.OutOrStdout(), results)
			}
			if len(results) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No matches")
				return nil
			}
			for _, r := range results {
				title := r.Title
				if r.Year != 0 {
					title = fmt.Sprintf("%s (%d)", r.Title, r.Year)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%.3f  %s\n", r.Similarity, title)
			}
			return nil
		},
	}

	cmd.Flags().Float32Var(&minSimilarity, "min", 0.8, "minimum similarity, 0..1")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")
	return cmd
}

func (a *app) tryCmd() *cobra.Command {
	var isDir bool

	cmd := &cobra.Command{
		Use:   "try [name]",
		Short: "Interactively parse names as you type",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			initial := ""
			if len(args) == 1 {
				initial = args[0]
			}
			m, err := ui.Run(ui.NewTryModel(a.parser, initial, isDir || a.cfg.Parser.Folders))
			if err != nil {
				return errors.Wrap(err, "running TUI")
			}
			for _, h := range m.History() {
				fmt.Fprintln(cmd.OutOrStdout(), h)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&isDir, "dir", "d", false, "start in folder mode")
	return cmd
}

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration file location and contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.cfgFile
			if path == "" {
				var err error
				if path, err = config.ConfigPath(); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration file: %s\n\n", path)
			if err := a.cfg.Validate(); err != nil {
				fmt.Fprintf(out, "Warning: %v\n\n", err)
			}
			fmt.Fprintln(out, "Current configuration:")
			return errors.Wrap(toml.NewEncoder(out).Encode(a.cfg), "encoding config")
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "example",
		Short: "Print an example config file",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), exampleConfig)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "libraries",
		Short: "Add or remove library folders in the TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			save := config.Save
			if a.cfgFile != "" {
				save = func(c *config.Config) error {
					if err := os.MkdirAll(filepath.Dir(a.cfgFile), 0755); err != nil {
						return errors.Wrap(err, "failed to create config directory")
					}
					return config.SaveTo(c, a.cfgFile)
				}
			}
			_, err := ui.RunProgram(ui.NewLibraryModel(a.cfg, save))
			return err
		},
	})

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		// Version needs neither config nor logging.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "jellyparse %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Built:      %s\n", buildTime)
		},
	}
}

func writeJSONLine(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(v), "encoding JSON")
}

func getLongDescription() string {
	return ui.FormatASCIIHeader() + "\n\n" +
		"jellyparse turns release and folder names into clean titles, years, editions,\n" +
		"languages and catalog ids, and suggests Jellyfin-compliant names."
}
