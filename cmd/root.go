// Package cmd implements the CLI command structure for todos.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/nibzard/todos-go/internal/config"
	"github.com/nibzard/todos-go/internal/logging"
	"github.com/nibzard/todos-go/internal/output"
	"github.com/nibzard/todos-go/internal/script"
	"github.com/nibzard/todos-go/internal/todo"
	"github.com/nibzard/todos-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Output streams, replaced in tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// Run executes the todos CLI.
func Run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todos", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	withSources, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := withSources.Config
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	// No args runs the demo
	subcommand := "demo"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "demo":
		return demoCommand(ctx, cfg, remainingArgs)
	case "run":
		return runCommand(ctx, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "config":
		return configCommand(withSources, remainingArgs)
	case "logs":
		return logsCommand(cfg, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// session bundles the sinks of one command invocation.
type session struct {
	id      string
	console *output.LogSink
	file    *output.LogSink
	run     *logging.RunLogger
}

// newSession builds the console sink and, when log_dir is set, a JSONL file
// sink for the run.
func newSession(cfg *config.Config, console io.Writer) (*session, error) {
	s := &session{id: logging.NewRunID(time.Now())}
	if console != nil {
		s.console = output.NewLogSink(console, logOptions(cfg))
	}
	if cfg.LogDir == "" {
		return s, nil
	}

	run, err := logging.NewRunLogger(cfg.LogDir, s.id)
	if err != nil {
		return nil, fmt.Errorf("creating run log: %w", err)
	}
	s.run = run
	s.file = output.NewLogSink(run.Writer(), output.LogOptions{
		Level:           output.ParseLevel(cfg.LogLevel),
		Formatter:       output.ParseFormatter("json"),
		ReportTimestamp: true,
		Prefix:          cfg.LogPrefix,
		Fields:          []any{"session", s.id},
	})
	return s, nil
}

// sink fans out to the console, the run log, and any extra sinks.
func (s *session) sink(extra ...output.Sink) output.Sink {
	sinks := make([]output.Sink, 0, len(extra)+2)
	if s.console != nil {
		sinks = append(sinks, s.console)
	}
	if s.file != nil {
		sinks = append(sinks, s.file)
	}
	sinks = append(sinks, extra...)
	return output.Multi(sinks...)
}

func (s *session) Close() error {
	return s.run.Close()
}

// closeSession closes sess, reporting a close failure through err when no
// earlier error is set.
func closeSession(sess *session, err *error) {
	if cerr := sess.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("closing run log: %w", cerr)
	}
}

func logOptions(cfg *config.Config) output.LogOptions {
	return output.LogOptions{
		Level:           output.ParseLevel(cfg.LogLevel),
		Formatter:       output.ParseFormatter(cfg.LogFormat),
		ReportTimestamp: cfg.LogTimestamps,
		ReportCaller:    cfg.LogCaller,
		Prefix:          cfg.LogPrefix,
	}
}

// demoCommand runs the built-in scenario.
func demoCommand(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	return runScript(ctx, cfg, script.Demo(), cfg.Strict)
}

// runCommand executes a script file.
func runCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", cfg.Strict, "Stop at the first rejected step")

	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return fmt.Errorf("run requires a script file")
	}
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}

	s, err := script.Load(remaining[0])
	if err != nil {
		return err
	}
	return runScript(ctx, cfg, s, *strict)
}

func runScript(ctx context.Context, cfg *config.Config, s *script.Script, strict bool) (err error) {
	sess, err := newSession(cfg, stdout)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	sink := sess.sink()
	store := todo.New(todo.WithSink(sink))
	if s.Name != "" {
		sink.Info("Running script", "name", s.Name, "steps", len(s.Steps))
	}

	report, err := script.Run(ctx, store, s, script.Options{Sink: sink, Strict: strict})
	if err != nil {
		return err
	}
	if report.Rejected > 0 || report.Warnings > 0 {
		sink.Warn(fmt.Sprintf("Applied %d steps: %d rejected, %d warnings.", report.Steps, report.Rejected, report.Warnings))
	}
	return nil
}

// tuiCommand launches the interactive UI.
func tuiCommand(ctx context.Context, cfg *config.Config, args []string) (err error) {
	fs := flag.NewFlagSet("todos tui", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filter := fs.String("filter", cfg.UI.DefaultFilter, "Initial filter (all|pending|done)")
	showHelp := fs.Bool("help-keys", cfg.UI.ShowHelp, "Show key help on start")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// The console would corrupt the terminal, so only the run log and the
	// status recorder receive store output.
	sess, err := newSession(cfg, nil)
	if err != nil {
		return err
	}
	defer closeSession(sess, &err)

	status := output.NewRecorder()
	store := todo.New(todo.WithSink(sess.sink(status)))
	return ui.Run(ctx, store, status, ui.Options{
		ShowHelp: *showHelp,
		Filter:   ui.ParseFilter(*filter),
	})
}

// configCommand prints the effective configuration or an example file.
func configCommand(ws *config.WithSources, args []string) error {
	fs := flag.NewFlagSet("todos config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	example := fs.Bool("example", false, "Print an example configuration file")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Fprint(stdout, config.ExampleConfig())
		return nil
	}

	cfg := ws.Config
	values := map[string]string{
		"log_level":         cfg.LogLevel,
		"log_format":        cfg.LogFormat,
		"log_timestamps":    fmt.Sprint(cfg.LogTimestamps),
		"log_caller":        fmt.Sprint(cfg.LogCaller),
		"log_prefix":        cfg.LogPrefix,
		"log_dir":           cfg.LogDir,
		"strict":            fmt.Sprint(cfg.Strict),
		"ui.show_help":      fmt.Sprint(cfg.UI.ShowHelp),
		"ui.default_filter": cfg.UI.DefaultFilter,
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if cfg.ConfigFile != "" {
		fmt.Fprintf(stdout, "# config file: %s\n", cfg.ConfigFile)
	}
	for _, k := range keys {
		fmt.Fprintf(stdout, "%-18s = %-10q # %s\n", k, values[k], ws.Sources[k])
	}
	return nil
}

// logsCommand prints the latest run log.
func logsCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todos logs", flag.ContinueOnError)
	fs.SetOutput(stderr)
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if cfg.LogDir == "" {
		return fmt.Errorf("log_dir is not set")
	}

	logPath, err := logging.FindLatestLog(cfg.LogDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(stdout, "No log files found.")
		return nil
	}
	return logging.TailLog(stdout, logPath, *n)
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Fprintf(stdout, "todos version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	var b strings.Builder
	b.WriteString("Todos - an in-memory todo list manager\n\n")
	b.WriteString("Usage:\n")
	b.WriteString("  todos [global options] [command] [options]\n\n")
	b.WriteString("Commands:\n")
	b.WriteString("  demo          Run the built-in demo scenario (default command)\n")
	b.WriteString("  run <file>    Run a JSON or YAML script of todo operations\n")
	b.WriteString("  tui           Launch the interactive terminal UI\n")
	b.WriteString("  config        Show the effective configuration and its sources\n")
	b.WriteString("  logs          Print the latest run log (requires log_dir)\n")
	b.WriteString("  version       Show version information\n")
	b.WriteString("  help          Show this help message\n\n")
	b.WriteString("Global Options:\n")
	fmt.Fprint(w, b.String())

	fs.SetOutput(w)
	fs.PrintDefaults()
	fs.SetOutput(stderr)

	b.Reset()
	b.WriteString("\nRun Options (use with 'run' command):\n")
	b.WriteString("  -strict\n")
	b.WriteString("        Stop at the first rejected step\n\n")
	b.WriteString("Tui Options (use with 'tui' command):\n")
	b.WriteString("  -filter string\n")
	b.WriteString("        Initial filter (all|pending|done)\n")
	b.WriteString("  -help-keys\n")
	b.WriteString("        Show key help on start\n\n")
	b.WriteString("Config Options (use with 'config' command):\n")
	b.WriteString("  -example\n")
	b.WriteString("        Print an example configuration file\n\n")
	b.WriteString("Logs Options (use with 'logs' command):\n")
	b.WriteString("  -n int\n")
	b.WriteString("        Number of lines to show (0 = all)\n")
	fmt.Fprint(w, b.String())
}
