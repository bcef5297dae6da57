package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fretwork/fretwork"
	"github.com/fretwork/fretwork/editor"
	"github.com/fretwork/fretwork/editor/tui"
	"github.com/fretwork/fretwork/version"
	"github.com/spf13/cobra"
)

var (
	logFile    string
	configFile string
)

var rootCmd = &cobra.Command{
	Use:   "fretwork [file]",
	Short: "A keyboard driven tablature editor for the terminal",
	Long: `fretwork edits multi-track guitar and bass tablature in the terminal.

Scores are saved as YAML, or as JSON when the file name ends in .json.
Key bindings, preferences and editor settings can be overridden with
keybindings.yml, preferences.yml and config.yml in the fretwork directory
of the user configuration directory.`,
	Version:       version.VersionOrHash,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEdit,
}

var editCmd = &cobra.Command{
	Use:   "edit [file]",
	Short: "Open a score in the editor, creating it on the first save if it does not exist",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEdit,
}

var checkCmd = &cobra.Command{
	Use:   "check <file>...",
	Short: "Validate score files and print how full each bar is",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&logFile, "log", "l", "", "write logs to `file` (empty disables)")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "read editor settings from `file` instead of the user config.yml")
	rootCmd.AddCommand(editCmd, checkCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setupLogging routes logs to the --log file. The terminal belongs to the
// editor, so logs are discarded without one.
func setupLogging() (*slog.Logger, func(), error) {
	if logFile == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), func() { f.Close() }, nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()
	config, err := editor.LoadConfig(configFile)
	if err != nil {
		return err
	}
	model := editor.NewModel(config, editor.WithLogger(logger))
	model.NewDocument(config.DefaultTrack)
	if len(args) > 0 {
		if err := openDocument(model, args[0]); err != nil {
			return err
		}
	}
	keys, err := tui.LoadKeyMap()
	if err != nil {
		return err
	}
	ui, err := tui.New(model, keys, tui.MakePreferences())
	if err != nil {
		return err
	}
	logger.Info("editor started", "version", version.VersionOrHash, "file", model.FilePath())
	return tui.Run(ui)
}

// openDocument loads path into the model. A missing file is not an error: the
// model keeps its new document and saves to path.
func openDocument(model *editor.Model, path string) error {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		model.SetFilePath(path)
		return nil
	}
	if err != nil {
		return err
	}
	if err := model.ReadDocument(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		if err := checkFile(out, path); err != nil {
			fmt.Fprintf(out, "%s: %v\n", path, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files are invalid", failed, len(args))
	}
	return nil
}

func checkFile(out io.Writer, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	model := editor.NewModel(editor.DefaultConfig(), editor.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err := model.ReadDocument(f); err != nil {
		return err
	}
	doc := model.Document()
	fmt.Fprintf(out, "%s: %d tracks, %d measures\n", path, len(doc.Tracks), doc.NumMeasures())
	for _, t := range doc.Tracks {
		fmt.Fprintf(out, "  %s [%v]\n", t.FullName, t.Tuning)
		for i, id := range t.Measures {
			ms := doc.Measures[id]
			filled, capacity, err := doc.Fill(ms)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "    %3d  %-5s %s/%s\n", i+1, ms.TimeSignature, fretwork.FormatAmount(filled), fretwork.FormatAmount(capacity))
		}
	}
	return nil
}
