// Package main is the entry point for the keycompose sequence tool.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dshills/keycompose/internal/config"
	"github.com/dshills/keycompose/internal/definition"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	ConfigPath string
	DataDir    string
	LogLevel   string
	List       bool
	Count      bool
	Lookup     string
	Try        bool
	Watch      bool
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()
	logger := setupLogger(opts.LogLevel)

	storeOpts := []config.Option{config.WithLogger(logger)}
	if opts.ConfigPath != "" {
		storeOpts = append(storeOpts, config.WithConfigPath(opts.ConfigPath))
	}
	if opts.DataDir != "" {
		storeOpts = append(storeOpts, config.WithDataDir(opts.DataDir))
	}

	store := config.New(storeOpts...)
	store.Load()
	store.LoadSequences()

	switch {
	case opts.Count:
		fmt.Println(store.EntryCount())
		return 0

	case opts.List:
		listEntries(os.Stdout, store)
		return 0

	case opts.Lookup != "":
		return lookup(store, opts.Lookup)

	case opts.Try:
		if opts.Watch {
			if err := store.StartWatch(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to watch settings: %v\n", err)
				return 1
			}
			defer store.StopWatch()
		}
		if err := runTry(store); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0

	case opts.Watch:
		return watch(store, logger)

	default:
		printSummary(os.Stdout, store)
		return 0
	}
}

// watch blocks until interrupted, reloading settings as the file changes.
func watch(store *config.Store, logger *zap.SugaredLogger) int {
	if err := store.StartWatch(); err != nil {
		logger.Errorw("Failed to watch settings", "error", err)
		return 1
	}
	defer store.StopWatch()

	logger.Infow("Watching settings", "path", store.ConfigPath())

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	<-signals

	return 0
}

func lookup(store *config.Store, raw string) int {
	seq, err := definition.ParseTriggers(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if result := store.Result(seq); result != "" {
		fmt.Println(result)
		return 0
	}
	if store.IsValidPrefix(seq) {
		fmt.Fprintf(os.Stderr, "%s is a prefix of a longer sequence\n", seq.Labels())
		return 1
	}
	fmt.Fprintf(os.Stderr, "%s matches nothing\n", seq.Labels())
	return 1
}

func listEntries(w io.Writer, store *config.Store) {
	for _, d := range store.Entries() {
		cp := ""
		if d.HasCodepoint() {
			cp = fmt.Sprintf("U+%04X", d.Codepoint)
		}
		fmt.Fprintf(w, "%-20s %-6s %-8s %s\n", d.Sequence.Labels(), d.Result, cp, d.Description)
	}
}

func printSummary(w io.Writer, store *config.Store) {
	fmt.Fprintf(w, "Settings:    %s\n", store.ConfigPath())
	fmt.Fprintf(w, "Compose key: %s (%s)\n", store.ComposeKey(), store.ComposeKey().Name())
	fmt.Fprintf(w, "Language:    %s (available: %s)\n",
		displayLanguage(store.Language()), strings.Join(store.Languages(), ", "))
	fmt.Fprintf(w, "Sequences:   %d\n", store.EntryCount())
}

func displayLanguage(lang string) string {
	if lang == "" {
		return "default"
	}
	return lang
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to settings file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to settings file (shorthand)")
	flag.StringVar(&opts.DataDir, "data", "", "Directory with extra sequence files")
	flag.BoolVar(&opts.List, "list", false, "List all sequences and exit")
	flag.BoolVar(&opts.List, "l", false, "List all sequences and exit (shorthand)")
	flag.BoolVar(&opts.Count, "count", false, "Print the number of sequences and exit")
	flag.StringVar(&opts.Lookup, "lookup", "", "Resolve one trigger list, e.g. '<o> <c>'")
	flag.BoolVar(&opts.Try, "try", false, "Try sequences interactively")
	flag.BoolVar(&opts.Try, "t", false, "Try sequences interactively (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Reload settings when the file changes")
	flag.BoolVar(&opts.Watch, "w", false, "Reload settings when the file changes (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Keycompose - compose key sequence engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keycompose [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keycompose                    Show settings and sequence count\n")
		fmt.Fprintf(os.Stderr, "  keycompose -list              List every sequence\n")
		fmt.Fprintf(os.Stderr, "  keycompose -lookup '<o> <c>'  Resolve one sequence\n")
		fmt.Fprintf(os.Stderr, "  keycompose -try               Type sequences interactively\n")
		fmt.Fprintf(os.Stderr, "  keycompose -try -watch        Pick up settings edits live\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Keycompose %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	// Validate log level
	switch opts.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.LogLevel)
		os.Exit(1)
	}

	return opts
}

func setupLogger(level string) *zap.SugaredLogger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapLevel)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	return logger.Sugar()
}
