package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/pozitronik/fpdb"
	"github.com/pozitronik/fpdb/internal/config"
)

type app struct {
	cfg    *config.Config
	logger *zap.Logger
	stdin  io.Reader
	stdout io.Writer
}

// run renders the template, prints it, and executes it when a DSN is set.
func (a *app) run(ctx context.Context, opts options) error {
	args, err := a.readArgs(opts.args)
	if err != nil {
		return err
	}

	query, err := a.render(opts.template, args)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintln(a.stdout, query); err != nil {
		return fmt.Errorf("failed to write query: %w", err)
	}

	dsn := opts.dsn
	if dsn == "" {
		dsn = a.cfg.Database.DSN
	}
	if dsn == "" {
		return nil
	}
	return a.execute(ctx, dsn, query)
}

func (a *app) readArgs(path string) ([]fpdb.Value, error) {
	var (
		src []byte
		err error
	)

	switch path {
	case "":
		return nil, nil
	case "-":
		src, err = io.ReadAll(a.stdin)
	default:
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read arguments: %w", err)
	}

	args, err := decodeArgs(src, a.cfg.Template.SkipMarker)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("Arguments decoded", zap.String("source", path), zap.Int("count", len(args)))
	return args, nil
}

func (a *app) render(template string, args []fpdb.Value) (string, error) {
	query, err := a.cfg.Builder().Build(template, args)
	if err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}
	a.logger.Debug("Template rendered", zap.Int("args", len(args)), zap.Int("length", len(query)))
	return query, nil
}
