package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mfridman/xflag"
	"github.com/pressly/sqlturso/internal/cfg"
)

var (
	// version is set with -ldflags "-X main.version=v1.2.3".
	version = ""
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *cliEnv, args []string) error
}

var commands = []command{
	{name: "args", summary: "Print the dialect and the connection target of a URL", run: runArgs},
	{name: "ping", summary: "Connect to one or more URLs and run SELECT 1", run: runPing},
	{name: "dialects", summary: "List the registered dialects", run: runDialects},
	{name: "env", summary: "Print the environment configuration", run: runEnv},
	{name: "version", summary: "Print the sqlturso version", run: runVersion},
}

// cliEnv is the state shared by all commands.
type cliEnv struct {
	stdout  io.Writer
	stderr  io.Writer
	logger  *slog.Logger
	verbose bool
	// options are added to the query of every URL, overriding values already present.
	options map[string]string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "sqlturso: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("sqlturso", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { usage(flags) }
	var (
		verbose = flags.Bool("v", false, "enable verbose output")
		envFile = flags.String("env", "", "load environment variables from file (default .env, if present)")
		options = flags.String("o", "", "extra connection options, comma separated key=value pairs")
	)
	if err := xflag.ParseToEnd(flags, args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := loadEnvFile(*envFile); err != nil {
		return err
	}
	cfg.Load()

	isVerbose := *verbose
	if v, err := strconv.ParseBool(cfg.SQLTURSOVERBOSE); err == nil && v {
		isVerbose = true
	}
	level := slog.LevelInfo
	if isVerbose {
		level = slog.LevelDebug
	}
	env := &cliEnv{
		stdout:  stdout,
		stderr:  stderr,
		logger:  slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		verbose: isVerbose,
		options: cfg.SplitKeyValuesIntoMap(*options),
	}
	rest := flags.Args()
	if len(rest) == 0 {
		flags.Usage()
		return errors.New("missing command")
	}
	name, cmdArgs := rest[0], rest[1:]
	for _, c := range commands {
		if c.name == name {
			return c.run(ctx, env, cmdArgs)
		}
	}
	flags.Usage()
	return fmt.Errorf("unknown command %q", name)
}

// loadEnvFile loads name into the process environment. Without a name the default file is loaded
// only when it exists.
func loadEnvFile(name string) error {
	if name == "" {
		name = cfg.DefaultEnvFile
		if v := os.Getenv("SQLTURSO_ENV_FILE"); v != "" {
			name = v
		}
		if _, err := os.Stat(name); err != nil {
			return nil
		}
	}
	if err := godotenv.Load(name); err != nil {
		return fmt.Errorf("failed to load env file %q: %w", name, err)
	}
	return nil
}

func runVersion(_ context.Context, env *cliEnv, _ []string) error {
	v := version
	if v == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			v = info.Main.Version
		} else {
			v = "(devel)"
		}
	}
	fmt.Fprintf(env.stdout, "sqlturso version: %s\n", v)
	return nil
}

func runEnv(_ context.Context, env *cliEnv, _ []string) error {
	for _, e := range cfg.List() {
		fmt.Fprintf(env.stdout, "%s=%q\n", e.Name, e.Value)
	}
	return nil
}

// slogPrinter adapts a slog.Logger to the sqlturso.Logger interface.
type slogPrinter struct {
	logger *slog.Logger
}

func (p slogPrinter) Printf(format string, v ...any) {
	p.logger.Debug(fmt.Sprintf(format, v...))
}

func (p slogPrinter) Fatalf(format string, v ...any) {
	p.logger.Error(fmt.Sprintf(format, v...))
	os.Exit(1)
}

func usage(flags *flag.FlagSet) {
	out := flags.Output()
	fmt.Fprint(out, usagePrefix)
	flags.PrintDefaults()
	fmt.Fprint(out, "\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(out, "    %-10s %s\n", c.name, c.summary)
	}
	fmt.Fprint(out, usageExamples)
}

var (
	usagePrefix = `Usage: sqlturso [OPTIONS] COMMAND [URL...]

or

Set environment key
SQLTURSO_URL=URL

Usage: sqlturso [OPTIONS] COMMAND

Options:
`

	usageExamples = `
Examples:
    sqlturso args "sqlite+turso://db.example.com/main?secure=true"
    sqlturso -o authToken='${TURSO_AUTH_TOKEN}' ping "sqlite+turso://db.example.com/main"
    sqlturso ping sqlite+turso:///./local.db sqlite:///:memory:
    SQLTURSO_URL=sqlite+aioturso:///app.db sqlturso args
`
)
