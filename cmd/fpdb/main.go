// Command fpdb renders a query template with arguments read from a YAML or
// JSON list, and optionally executes the result on a MySQL server.
//
//	fpdb [-config file] [-args file|-] [-dsn dsn] template
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/pozitronik/fpdb/internal/config"
)

// Version is set at build time via ldflags
var Version = "dev"

type options struct {
	config   string
	args     string
	dsn      string
	template string
}

var errUsage = errors.New("usage: fpdb [-config file] [-args file|-] [-dsn dsn] template")

func parseOptions(args []string, output io.Writer) (options, error) {
	var opts options

	flags := flag.NewFlagSet("fpdb", flag.ContinueOnError)
	flags.SetOutput(output)
	flags.StringVar(&opts.config, "config", "", "Path to a YAML or JSON config file")
	flags.StringVar(&opts.args, "args", "", `Path to a YAML or JSON list of arguments, or "-" for stdin`)
	flags.StringVar(&opts.dsn, "dsn", "", "MySQL data source name; overrides the config")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if flags.NArg() != 1 {
		return opts, errUsage
	}
	opts.template = flags.Arg(0)
	return opts, nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logConfig := zap.NewDevelopmentConfig()
	logConfig.Level = lvl
	return logConfig.Build()
}

func main() {
	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(opts.config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Debug("Configuration loaded",
		zap.String("version", Version),
		zap.String("config", opts.config),
		zap.Bool("skip_quoted", cfg.Template.SkipQuoted))

	cli := &app{
		cfg:    cfg,
		logger: logger,
		stdin:  os.Stdin,
		stdout: os.Stdout,
	}
	if err := cli.run(context.Background(), opts); err != nil {
		logger.Error("fpdb failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
